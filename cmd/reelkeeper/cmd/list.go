package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
)

// NewListCommand creates the list command.
func NewListCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all movies",
		Example: `  reelkeeper list
  reelkeeper list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, c, err := loadCollection(app)
			if err != nil {
				return err
			}
			if len(c) == 0 {
				cmd.Println("No movies in database.")
				return nil
			}
			return cmdutil.Render(cmd.OutOrStdout(), app.Format(), cmdutil.MovieTable(c.Movies()))
		},
	}
}
