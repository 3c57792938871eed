// Package website renders the collection as a static HTML page. The page
// template ships embedded in the binary and can be overridden with a file on
// disk; rendering substitutes the site title and one card per movie.
package website

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

//go:embed index.gohtml
var defaultTemplate string

// Config controls one website build.
type Config struct {
	// Title is the site heading.
	Title string

	// OutputPath is where the rendered page is written.
	OutputPath string

	// TemplatePath optionally overrides the embedded page template.
	TemplatePath string
}

// DefaultTitle is used when no site title is configured.
const DefaultTitle = "My Movie Collection"

// card is the view model for one movie on the page.
type card struct {
	Title       string
	Year        string
	Poster      string
	Notes       string
	RatingText  string
	StarPercent int
}

// page is the top-level view model.
type page struct {
	Title  string
	Movies []card
}

// Generate renders the collection to cfg.OutputPath. Movies appear in title
// order with fully parsed fields; absent ratings render as "N/A" with an
// empty star bar.
func Generate(c movies.Collection, cfg Config) error {
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "index.html"
	}

	tmpl, err := loadTemplate(cfg.TemplatePath)
	if err != nil {
		return err
	}

	view := page{Title: cfg.Title}
	for _, m := range c.Movies() {
		view.Movies = append(view.Movies, newCard(m))
	}

	if dir := filepath.Dir(cfg.OutputPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.WrapIO("create directory for", cfg.OutputPath, err)
		}
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return errors.WrapIO("write", cfg.OutputPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, view); err != nil {
		return errors.WrapIO("render", cfg.OutputPath, err)
	}
	return nil
}

func loadTemplate(path string) (*template.Template, error) {
	if path == "" {
		return template.Must(template.New("index").Parse(defaultTemplate)), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read template", path, err)
	}
	tmpl, err := template.New(filepath.Base(path)).Parse(string(raw))
	if err != nil {
		return nil, errors.WrapParse("template", path, err)
	}
	return tmpl, nil
}

func newCard(m movies.Movie) card {
	c := card{
		Title:      m.Title,
		Year:       m.Year,
		Poster:     m.Poster,
		Notes:      m.Notes,
		RatingText: "N/A",
	}
	if m.Rated() {
		c.RatingText = fmt.Sprintf("%.1f", *m.Rating)
		pct := int(*m.Rating / 10 * 100)
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		c.StarPercent = pct
	}
	return c
}
