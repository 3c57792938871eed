package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

// NewSortCommand creates the sort command with rating and year subcommands.
func NewSortCommand(app AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "List movies in sorted order",
	}
	cmd.AddCommand(newSortRatingCommand(app))
	cmd.AddCommand(newSortYearCommand(app))
	return cmd
}

func newSortRatingCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rating",
		Short: "List movies from best to worst rated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := loadCollection(app)
			if err != nil {
				return err
			}
			if len(c) == 0 {
				cmd.Println("No movies in database.")
				return nil
			}
			sorted := movies.SortByRating(c)
			return cmdutil.Render(cmd.OutOrStdout(), app.Format(), cmdutil.MovieTable(sorted))
		},
	}
}

func newSortYearCommand(app AppContext) *cobra.Command {
	var latestFirst bool

	cmd := &cobra.Command{
		Use:   "year",
		Short: "List movies in chronological order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := loadCollection(app)
			if err != nil {
				return err
			}
			if len(c) == 0 {
				cmd.Println("No movies in database.")
				return nil
			}
			sorted := movies.SortByYear(c, latestFirst)
			return cmdutil.Render(cmd.OutOrStdout(), app.Format(), cmdutil.MovieTable(sorted))
		},
	}

	cmd.Flags().BoolVar(&latestFirst, "latest-first", false, "newest movies first")
	return cmd
}
