package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/internal/histogram"
	"github.com/reelkeeper/reelkeeper/internal/website"
	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
	"github.com/reelkeeper/reelkeeper/pkg/storage"
)

// NewMenuCommand creates the interactive menu command. The same loop runs
// when reelkeeper is invoked without a subcommand.
func NewMenuCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunMenu(cmd.Context(), app, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

var menuEntries = []string{
	"Exit",
	"List movies",
	"Add movie",
	"Delete movie",
	"Update movie",
	"Stats",
	"Random movie",
	"Search movie",
	"Movies sorted by rating",
	"Movies sorted by year",
	"Filter movies",
	"Rating histogram",
	"Generate website",
}

// RunMenu drives the interactive menu loop until the user exits or input
// runs out. Operation errors are printed and the loop continues; only a
// failure to open storage is fatal.
func RunMenu(ctx context.Context, app AppContext, in io.Reader, out io.Writer) error {
	store, err := app.Store()
	if err != nil {
		return err
	}
	p := cmdutil.NewPrompter(in, out, app.NoColor())

	p.Printf("********** Movie Collection **********\n")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.Printf("\nMenu:\n")
		for i, entry := range menuEntries {
			p.Printf("%d. %s\n", i, entry)
		}
		choice, err := p.Line(fmt.Sprintf("\nEnter choice (0-%d): ", len(menuEntries)-1))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if choice == "0" {
			p.Printf("Bye!\n")
			return nil
		}

		if err := runMenuChoice(ctx, app, store, p, choice); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			p.Warnf("Error: %v\n", err)
		}

		if _, err := p.Line("\nPress enter to continue "); err != nil {
			return nil
		}
	}
}

func runMenuChoice(ctx context.Context, app AppContext, store storage.Storage, p *cmdutil.Prompter, choice string) error {
	switch choice {
	case "1":
		return menuList(store, p)
	case "2":
		return menuAdd(ctx, app, store, p)
	case "3":
		return menuDelete(store, p)
	case "4":
		return menuUpdate(store, p)
	case "5":
		return menuStats(store, p)
	case "6":
		return menuRandom(store, p)
	case "7":
		return menuSearch(store, p)
	case "8":
		return menuSorted(store, p, movies.SortByRating)
	case "9":
		return menuSorted(store, p, func(c movies.Collection) []movies.Movie {
			return movies.SortByYear(c, true)
		})
	case "10":
		return menuFilter(store, p)
	case "11":
		return menuHistogram(store, p)
	case "12":
		return menuWebsite(app, store, p)
	default:
		p.Warnf("Invalid choice\n")
		return nil
	}
}

func menuList(store storage.Storage, p *cmdutil.Prompter) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	p.Printf("%d movies in total\n", len(c))
	for _, m := range c.Movies() {
		p.Printf("%s\n", cmdutil.OneLine(m))
	}
	return nil
}

func menuAdd(ctx context.Context, app AppContext, store storage.Storage, p *cmdutil.Prompter) error {
	title, err := p.NonEmptyLine("Enter new movie name: ")
	if err != nil {
		return err
	}

	m, err := app.Lookup().ByTitle(ctx, title)
	switch {
	case err == nil:
		// enriched from OMDb
	case errors.IsNotFound(err):
		p.Warnf("Movie %q not found on OMDb, adding manually.\n", title)
		m, err = promptManualMovie(p, title)
		if err != nil {
			return err
		}
	case errors.Is(err, errors.ErrAPIKeyRequired) || errors.IsRateLimited(err) || errors.Is(err, errors.ErrUnavailable):
		p.Warnf("OMDb lookup unavailable (%v), adding manually.\n", err)
		m, err = promptManualMovie(p, title)
		if err != nil {
			return err
		}
	default:
		return err
	}

	if err := store.Add(m); err != nil {
		return err
	}
	p.Successf("Movie %s successfully added\n", m.Title)
	return nil
}

func promptManualMovie(p *cmdutil.Prompter, title string) (movies.Movie, error) {
	year, err := p.Line("Enter release year (blank if unknown): ")
	if err != nil {
		return movies.Movie{}, err
	}
	rating, err := p.Rating("Enter rating (0-10): ")
	if err != nil {
		return movies.Movie{}, err
	}
	return movies.Movie{Title: title, Year: year}.Rate(rating), nil
}

func menuDelete(store storage.Storage, p *cmdutil.Prompter) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	input, err := p.NonEmptyLine("Enter movie name to delete: ")
	if err != nil {
		return err
	}
	title, err := resolveTitle(c, input, p)
	if err != nil || title == "" {
		return err
	}
	if err := store.Delete(title); err != nil {
		return err
	}
	p.Successf("Movie %s successfully deleted\n", title)
	return nil
}

func menuUpdate(store storage.Storage, p *cmdutil.Prompter) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	input, err := p.NonEmptyLine("Enter movie name: ")
	if err != nil {
		return err
	}
	title, err := resolveTitle(c, input, p)
	if err != nil || title == "" {
		return err
	}
	notes, err := p.Line("Enter movie notes: ")
	if err != nil {
		return err
	}
	if err := store.UpdateNotes(title, notes); err != nil {
		return err
	}
	p.Successf("Movie %s successfully updated\n", title)
	return nil
}

func menuStats(store storage.Storage, p *cmdutil.Prompter) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	stats, err := movies.ComputeStats(c)
	if err != nil {
		if errors.IsEmptyCollection(err) {
			p.Printf("No rated movies in database.\n")
			return nil
		}
		return err
	}
	p.Printf("Average rating: %.1f\n", stats.Average)
	p.Printf("Median rating: %.1f\n", stats.Median)
	p.Printf("Best movie: %s\n", cmdutil.OneLine(stats.Best))
	p.Printf("Worst movie: %s\n", cmdutil.OneLine(stats.Worst))
	return nil
}

func menuRandom(store storage.Storage, p *cmdutil.Prompter) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	m, err := movies.RandomPick(c)
	if err != nil {
		if errors.IsEmptyCollection(err) {
			p.Printf("No movies in database.\n")
			return nil
		}
		return err
	}
	p.Printf("Your movie for tonight: %s\n", cmdutil.OneLine(m))
	return nil
}

func menuSearch(store storage.Storage, p *cmdutil.Prompter) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	query, err := p.NonEmptyLine("Enter part of movie name: ")
	if err != nil {
		return err
	}
	title, err := resolveTitle(c, query, p)
	if err != nil || title == "" {
		return err
	}
	p.Printf("%s\n", cmdutil.OneLine(c[title]))
	return nil
}

func menuSorted(store storage.Storage, p *cmdutil.Prompter, sort func(movies.Collection) []movies.Movie) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	for _, m := range sort(c) {
		p.Printf("%s\n", cmdutil.OneLine(m))
	}
	return nil
}

func menuFilter(store storage.Storage, p *cmdutil.Prompter) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	var opts movies.FilterOptions
	if opts.MinRating, err = p.OptionalFloat("Enter minimum rating (leave blank for no minimum rating): "); err != nil {
		return err
	}
	if opts.StartYear, err = p.OptionalYear("Enter start year (leave blank for no start year): "); err != nil {
		return err
	}
	if opts.EndYear, err = p.OptionalYear("Enter end year (leave blank for no end year): "); err != nil {
		return err
	}

	filtered := movies.Filter(c, opts)
	if len(filtered) == 0 {
		p.Printf("No movies match the given criteria.\n")
		return nil
	}
	for _, m := range filtered.Movies() {
		p.Printf("%s\n", cmdutil.OneLine(m))
	}
	return nil
}

func menuHistogram(store storage.Storage, p *cmdutil.Prompter) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	path, err := p.Line("Enter output file (blank for ratings.png): ")
	if err != nil {
		return err
	}
	if path == "" {
		path = "ratings.png"
	}
	if err := histogram.Render(c, path); err != nil {
		if errors.IsEmptyCollection(err) {
			p.Printf("No rated movies in database.\n")
			return nil
		}
		return err
	}
	p.Successf("Histogram saved to %s\n", path)
	return nil
}

func menuWebsite(app AppContext, store storage.Storage, p *cmdutil.Prompter) error {
	c, err := store.List()
	if err != nil {
		return err
	}
	cfg := website.Config{Title: app.SiteTitle(), OutputPath: "index.html"}
	if err := website.Generate(c, cfg); err != nil {
		return err
	}
	p.Successf("Website was generated successfully.\n")
	return nil
}
