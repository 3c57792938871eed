// Package cmd implements the reelkeeper CLI commands. Every command receives
// its dependencies through the AppContext interface so tests can supply
// fakes without the full application wiring.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/internal/omdb"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
	"github.com/reelkeeper/reelkeeper/pkg/movies/search"
	"github.com/reelkeeper/reelkeeper/pkg/storage"
)

// AppContext is the slice of the application that commands need.
type AppContext interface {
	// Store returns the storage handle for the configured backing file.
	Store() (storage.Storage, error)

	// Lookup returns the OMDb client.
	Lookup() *omdb.Client

	// Logger returns the application logger.
	Logger() *zerolog.Logger

	// Format returns the configured output format.
	Format() cmdutil.Format

	// NoColor reports whether colored output is disabled.
	NoColor() bool

	// SiteTitle returns the configured website title, if any.
	SiteTitle() string
}

// Register adds all reelkeeper commands to the root command.
func Register(root *cobra.Command, app AppContext) {
	root.AddCommand(
		NewListCommand(app),
		NewAddCommand(app),
		NewDeleteCommand(app),
		NewUpdateCommand(app),
		NewStatsCommand(app),
		NewRandomCommand(app),
		NewSearchCommand(app),
		NewSortCommand(app),
		NewFilterCommand(app),
		NewHistogramCommand(app),
		NewWebsiteCommand(app),
		NewMigrateCommand(app),
		NewMenuCommand(app),
	)
}

// loadCollection opens storage and lists the collection in one step.
func loadCollection(app AppContext) (storage.Storage, movies.Collection, error) {
	store, err := app.Store()
	if err != nil {
		return nil, nil, err
	}
	c, err := store.List()
	if err != nil {
		return nil, nil, err
	}
	return store, c, nil
}

// resolveTitle matches user input against stored titles: exact and single
// substring matches resolve directly; ambiguous matches are listed for the
// user to pick from. The caller's Prompter is reused so input buffered here
// stays readable for whatever the caller asks next. An empty result with a
// nil error means the user cancelled or nothing matched.
func resolveTitle(c movies.Collection, input string, p *cmdutil.Prompter) (string, error) {
	found := search.Resolve(c.Titles(), input)

	switch {
	case found.Resolved():
		return found.Exact, nil

	case len(found.Substring) > 0:
		p.Printf("Multiple matches:\n")
		for i, title := range found.Substring {
			p.Printf("%d. %s\n", i+1, title)
		}
		idx, err := p.Index(len(found.Substring))
		if err != nil || idx < 0 {
			return "", err
		}
		return found.Substring[idx], nil

	case len(found.Fuzzy) > 0:
		p.Printf("Fuzzy matches:\n")
		for i, m := range found.Fuzzy {
			p.Printf("%d. %s [score: %d]\n", i+1, m.Title, m.Score)
		}
		idx, err := p.Index(len(found.Fuzzy))
		if err != nil || idx < 0 {
			return "", err
		}
		return found.Fuzzy[idx].Title, nil

	default:
		p.Printf("No matching titles found.\n")
		return "", nil
	}
}
