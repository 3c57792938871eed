package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

// NewAddCommand creates the add command. Without flags the record is
// enriched from the OMDb lookup API; --offline skips the lookup and takes
// the fields from flags instead.
func NewAddCommand(app AppContext) *cobra.Command {
	var (
		offline bool
		year    string
		rating  float64
		poster  string
		notes   string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a movie, enriched from the OMDb lookup API",
		Example: `  reelkeeper add "Inception"
  reelkeeper add "Home Video" --offline --year 2024 --rating 7.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return &errors.ValidationError{Field: "title", Message: "cannot be empty"}
			}

			store, err := app.Store()
			if err != nil {
				return err
			}

			var m movies.Movie
			if offline {
				m = movies.Movie{Title: title, Year: year, Poster: poster, Notes: notes}
				if cmd.Flags().Changed("rating") {
					m = m.Rate(rating)
				}
			} else {
				m, err = app.Lookup().ByTitle(cmd.Context(), title)
				if err != nil {
					return err
				}
				app.Logger().Debug().
					Str("title", m.Title).
					Str("imdb_id", m.IMDbID).
					Msg("lookup succeeded")
				// Flags override looked-up fields.
				if cmd.Flags().Changed("rating") {
					m = m.Rate(rating)
				}
				if notes != "" {
					m.Notes = notes
				}
			}

			if err := store.Add(m); err != nil {
				return err
			}
			cmd.Printf("Added: %s\n", cmdutil.OneLine(m))
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "skip the OMDb lookup and use flag values")
	cmd.Flags().StringVar(&year, "year", "", "release year (offline mode)")
	cmd.Flags().Float64Var(&rating, "rating", 0, "rating 0-10")
	cmd.Flags().StringVar(&poster, "poster", "", "poster URL (offline mode)")
	cmd.Flags().StringVar(&notes, "notes", "", "personal notes")
	return cmd
}
