// Package cmdutil provides shared command plumbing: output formatting for
// list-shaped results and the interactive prompts used by the menu and the
// destructive flows.
package cmdutil

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
)

// Format types for command output.
type Format string

const (
	// FormatTable renders an aligned text table.
	FormatTable Format = "table"
	// FormatJSON renders indented JSON.
	FormatJSON Format = "json"
	// FormatYAML renders YAML.
	FormatYAML Format = "yaml"
)

// Formatter renders command results to a writer.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates the formatter for a format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// ParseFormat converts a string to a Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
		return format, nil
	case "":
		return DetectFormat(), nil
	default:
		return "", fmt.Errorf("unknown output format %q (use table, json, or yaml)", s)
	}
}

// DetectFormat picks a default format: tables on a terminal, JSON for pipes.
func DetectFormat() Format {
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	return FormatJSON
}

// JSONFormatter outputs JSON.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML.
type YAMLFormatter struct{}

// Format implements the Formatter interface for YAML output.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// Table is list-shaped data prepared for table rendering. Formatters other
// than the table one fall back to the Raw value when present.
type Table struct {
	Headers []string
	Rows    [][]string

	// Raw is the structured form of the same data, used by JSON/YAML output.
	Raw any
}

// TableFormatter renders Table data with tablewriter and falls back to JSON
// for anything else.
type TableFormatter struct{}

// Format implements the Formatter interface for table output.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	td, ok := data.(Table)
	if !ok {
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}

	table := tablewriter.NewTable(w)
	if len(td.Headers) > 0 {
		headers := make([]any, len(td.Headers))
		for i, h := range td.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}
	for _, row := range td.Rows {
		cells := make([]any, len(row))
		for i, c := range row {
			cells[i] = c
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

// Render writes data in the given format. Table data carries its structured
// form along, so JSON and YAML render the real values instead of cells.
func Render(w io.Writer, format Format, data any) error {
	if td, ok := data.(Table); ok && format != FormatTable && td.Raw != nil {
		return NewFormatter(format).Format(w, td.Raw)
	}
	return NewFormatter(format).Format(w, data)
}
