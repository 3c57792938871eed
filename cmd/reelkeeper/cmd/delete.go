package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
)

// NewDeleteCommand creates the delete command. The argument is resolved
// against stored titles (exact, substring, fuzzy) and the deletion is
// confirmed unless --yes is given.
func NewDeleteCommand(app AppContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <title>",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete a movie",
		Example: `  reelkeeper delete "Titanic"
  reelkeeper delete titanik --yes`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, c, err := loadCollection(app)
			if err != nil {
				return err
			}
			if len(c) == 0 {
				cmd.Println("No movies in database.")
				return nil
			}

			// One prompter serves both the pick list and the confirmation,
			// so input buffered during resolution is not lost between them.
			p := cmdutil.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), app.NoColor())

			input := strings.Join(args, " ")
			title, err := resolveTitle(c, input, p)
			if err != nil || title == "" {
				return err
			}

			if !yes {
				p.Printf("About to delete: %s\n", cmdutil.OneLine(c[title]))
				ok, err := p.Confirm("Delete? (y/N): ")
				if err != nil {
					return err
				}
				if !ok {
					cmd.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := store.Delete(title); err != nil {
				return err
			}
			cmd.Printf("%q successfully deleted.\n", title)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
