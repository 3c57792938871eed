package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/pkg/movies/search"
)

// NewSearchCommand creates the fuzzy search command.
func NewSearchCommand(app AppContext) *cobra.Command {
	var threshold int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy-search movies by title",
		Example: `  reelkeeper search titanic
  reelkeeper search "incepton" --threshold 50`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := loadCollection(app)
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			matches := search.Fuzzy(c.Titles(), query, threshold)
			if len(matches) == 0 {
				cmd.Println("No matching titles found.")
				return nil
			}

			rows := make([][]string, 0, len(matches))
			for _, match := range matches {
				m := c[match.Title]
				rows = append(rows, []string{
					m.Title, cmdutil.YearCell(m), cmdutil.RatingCell(m), strconv.Itoa(match.Score),
				})
			}
			return cmdutil.Render(cmd.OutOrStdout(), app.Format(), cmdutil.Table{
				Headers: []string{"Title", "Year", "Rating", "Score"},
				Rows:    rows,
				Raw:     matches,
			})
		},
	}

	cmd.Flags().IntVar(&threshold, "threshold", search.DefaultThreshold, "minimum match score (0-100)")
	return cmd
}
