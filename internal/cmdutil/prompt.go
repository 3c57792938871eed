package cmdutil

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

// Prompter reads interactive input line by line and writes colored prompts.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	ask    *color.Color
	warn   *color.Color
	praise *color.Color
}

// NewPrompter creates a Prompter over the given streams.
func NewPrompter(in io.Reader, out io.Writer, noColor bool) *Prompter {
	ask := color.New(color.FgMagenta)
	warn := color.New(color.FgRed)
	praise := color.New(color.FgGreen)
	if noColor {
		for _, c := range []*color.Color{ask, warn, praise} {
			c.DisableColor()
		}
	}
	return &Prompter{
		in:     bufio.NewReader(in),
		out:    out,
		ask:    ask,
		warn:   warn,
		praise: praise,
	}
}

// Line prints the prompt and reads one trimmed line. io.EOF is returned
// when input runs out.
func (p *Prompter) Line(prompt string) (string, error) {
	p.ask.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// NonEmptyLine keeps asking until the user enters something.
func (p *Prompter) NonEmptyLine(prompt string) (string, error) {
	for {
		line, err := p.Line(prompt)
		if err != nil {
			return "", err
		}
		if line != "" {
			return line, nil
		}
		p.Warnf("Input cannot be empty.\n")
	}
}

// Rating keeps asking until a finite rating between 0 and 10 is entered.
// Both '.' and ',' decimal separators are accepted.
func (p *Prompter) Rating(prompt string) (float64, error) {
	for {
		raw, err := p.Line(prompt)
		if err != nil {
			return 0, err
		}
		if v, ok := movies.ParseRating(raw); ok && v >= 0 && v <= 10 {
			return v, nil
		}
		p.Warnf("Rating must be a finite number between 0.0 and 10.0.\n")
	}
}

// OptionalFloat reads a float bound; blank input means no bound.
func (p *Prompter) OptionalFloat(prompt string) (*float64, error) {
	for {
		raw, err := p.Line(prompt)
		if err != nil {
			return nil, err
		}
		if raw == "" {
			return nil, nil
		}
		if v, ok := movies.ParseRating(raw); ok {
			return &v, nil
		}
		p.Warnf("Enter a number or leave blank.\n")
	}
}

// OptionalYear reads a four-digit year; blank input means no bound.
func (p *Prompter) OptionalYear(prompt string) (*int, error) {
	for {
		raw, err := p.Line(prompt)
		if err != nil {
			return nil, err
		}
		if raw == "" {
			return nil, nil
		}
		if len(raw) == 4 {
			if year, err := strconv.Atoi(raw); err == nil {
				return &year, nil
			}
		}
		p.Warnf("Year must be a four-digit number.\n")
	}
}

// Index shows a pick-one prompt for 1..n; blank input cancels (-1).
func (p *Prompter) Index(n int) (int, error) {
	for {
		raw, err := p.Line("Enter number to choose (blank to cancel): ")
		if err != nil {
			return -1, err
		}
		if raw == "" {
			return -1, nil
		}
		if num, convErr := strconv.Atoi(raw); convErr == nil && num >= 1 && num <= n {
			return num - 1, nil
		}
		p.Warnf("Please enter a number between 1 and %d.\n", n)
	}
}

// Confirm asks a y/n question; anything but y/Y declines.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	raw, err := p.Line(prompt)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(raw, "y"), nil
}

// Printf writes plain output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Warnf writes an error or validation message.
func (p *Prompter) Warnf(format string, args ...any) {
	p.warn.Fprintf(p.out, format, args...)
}

// Successf writes a success message.
func (p *Prompter) Successf(format string, args ...any) {
	p.praise.Fprintf(p.out, format, args...)
}
