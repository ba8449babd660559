package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetTodayCmd = &cobra.Command{
	Use:   "reset-today",
	Short: "Delete every attendance log of the current local day",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		deleted, err := a.attendance.ResetToday(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Berhasil mereset log absensi hari ini. Total %d log dihapus.\n", deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetTodayCmd)
}
