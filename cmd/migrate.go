package cmd

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the attendance tables if they do not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.migrate(cmd.Context()); err != nil {
			return err
		}
		a.log.Info().Str("driver", a.cfg.DB.Driver).Msg("migrasi selesai")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
