package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reelkeeper/reelkeeper/pkg/storage"
)

// NewMigrateCommand creates the command that upgrades legacy storage files
// in place.
func NewMigrateCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade a legacy storage file to the current format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := app.Store()
			if err != nil {
				return err
			}

			migrator, ok := store.(storage.Migrator)
			if !ok {
				cmd.Printf("%s is already in the current format.\n", store.Path())
				return nil
			}
			changed, err := migrator.Migrate()
			if err != nil {
				return err
			}
			if changed {
				app.Logger().Info().Str("path", store.Path()).Msg("storage file migrated")
				cmd.Printf("Migrated %s to the current format.\n", store.Path())
			} else {
				cmd.Printf("%s is already in the current format.\n", store.Path())
			}
			return nil
		},
	}
}
