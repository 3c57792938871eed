package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/histogram"
	"github.com/reelkeeper/reelkeeper/pkg/errors"
)

// NewHistogramCommand creates the histogram export command.
func NewHistogramCommand(app AppContext) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "histogram",
		Short: "Render a PNG histogram of movie ratings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := loadCollection(app)
			if err != nil {
				return err
			}
			if err := histogram.Render(c, out); err != nil {
				if errors.IsEmptyCollection(err) {
					cmd.Println("No rated movies in database.")
					return nil
				}
				return err
			}
			app.Logger().Info().Str("path", out).Msg("histogram written")
			cmd.Printf("Histogram saved to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "ratings.png", "output PNG path")
	return cmd
}
