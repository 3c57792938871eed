package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

// NewStatsCommand creates the stats command.
func NewStatsCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show collection statistics (average, median, best, worst)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, c, err := loadCollection(app)
			if err != nil {
				return err
			}

			stats, err := movies.ComputeStats(c)
			if errors.IsEmptyCollection(err) {
				cmd.Println("No rated movies in database.")
				return nil
			}
			if err != nil {
				return err
			}

			return cmdutil.Render(cmd.OutOrStdout(), app.Format(), statsTable(stats))
		},
	}
}

func statsTable(stats movies.Stats) cmdutil.Table {
	return cmdutil.Table{
		Headers: []string{"Average", "Median", "Best", "Worst", "Rated", "Total"},
		Rows: [][]string{{
			fmt.Sprintf("%.1f", stats.Average),
			fmt.Sprintf("%.1f", stats.Median),
			cmdutil.OneLine(stats.Best),
			cmdutil.OneLine(stats.Worst),
			strconv.Itoa(stats.Rated),
			strconv.Itoa(stats.Total),
		}},
		Raw: stats,
	}
}
