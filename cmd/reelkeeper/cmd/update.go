package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/pkg/errors"
)

// NewUpdateCommand creates the update command for ratings and notes.
func NewUpdateCommand(app AppContext) *cobra.Command {
	var (
		rating      float64
		clearRating bool
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "update <title>",
		Short: "Update the rating or notes of a movie",
		Example: `  reelkeeper update "Titanic" --rating 9.1
  reelkeeper update "Titanic" --notes "rewatch with the director's commentary"
  reelkeeper update "Titanic" --notes ""   # clears the notes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ratingSet := cmd.Flags().Changed("rating")
			notesSet := cmd.Flags().Changed("notes")
			if !ratingSet && !clearRating && !notesSet {
				return &errors.ValidationError{
					Message: "nothing to update: pass --rating, --clear-rating, or --notes",
				}
			}
			if ratingSet && clearRating {
				return &errors.ValidationError{
					Message: "--rating and --clear-rating are mutually exclusive",
				}
			}

			store, c, err := loadCollection(app)
			if err != nil {
				return err
			}
			if len(c) == 0 {
				cmd.Println("No movies in database.")
				return nil
			}

			input := strings.Join(args, " ")
			p := cmdutil.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), app.NoColor())
			title, err := resolveTitle(c, input, p)
			if err != nil || title == "" {
				return err
			}

			if ratingSet {
				if err := store.UpdateRating(title, &rating); err != nil {
					return err
				}
				cmd.Printf("Rating of %q set to %.1f.\n", title, rating)
			}
			if clearRating {
				if err := store.UpdateRating(title, nil); err != nil {
					return err
				}
				cmd.Printf("Rating cleared for %q.\n", title)
			}
			if notesSet {
				if err := store.UpdateNotes(title, notes); err != nil {
					return err
				}
				if notes == "" {
					cmd.Printf("Notes cleared for %q.\n", title)
				} else {
					cmd.Printf("Notes updated for %q.\n", title)
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&rating, "rating", 0, "new rating 0-10")
	cmd.Flags().BoolVar(&clearRating, "clear-rating", false, "remove the rating")
	cmd.Flags().StringVar(&notes, "notes", "", "new notes (empty clears)")
	return cmd
}
