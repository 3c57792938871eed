package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

// NewRandomCommand creates the random command.
func NewRandomCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "random",
		Short: "Pick a random movie for tonight",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, c, err := loadCollection(app)
			if err != nil {
				return err
			}

			m, err := movies.RandomPick(c)
			if errors.IsEmptyCollection(err) {
				cmd.Println("No movies in database.")
				return nil
			}
			if err != nil {
				return err
			}
			cmd.Printf("Your movie for tonight: %s\n", cmdutil.OneLine(m))
			return nil
		},
	}
}
