package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

// NewFilterCommand creates the filter command.
func NewFilterCommand(app AppContext) *cobra.Command {
	var (
		minRating float64
		fromYear  int
		toYear    int
	)

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List movies matching rating and year criteria",
		Example: `  reelkeeper filter --min-rating 8
  reelkeeper filter --from-year 1990 --to-year 1999`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := loadCollection(app)
			if err != nil {
				return err
			}

			var opts movies.FilterOptions
			if cmd.Flags().Changed("min-rating") {
				opts.MinRating = &minRating
			}
			if cmd.Flags().Changed("from-year") {
				opts.StartYear = &fromYear
			}
			if cmd.Flags().Changed("to-year") {
				opts.EndYear = &toYear
			}

			filtered := movies.Filter(c, opts)
			if len(filtered) == 0 {
				cmd.Println("No movies match the given criteria.")
				return nil
			}
			return cmdutil.Render(cmd.OutOrStdout(), app.Format(), cmdutil.MovieTable(filtered.Movies()))
		},
	}

	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "minimum rating (inclusive)")
	cmd.Flags().IntVar(&fromYear, "from-year", 0, "earliest release year (inclusive)")
	cmd.Flags().IntVar(&toYear, "to-year", 0, "latest release year (inclusive)")
	return cmd
}
