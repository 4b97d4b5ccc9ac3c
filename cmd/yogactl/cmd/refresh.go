package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCountsCmd = &cobra.Command{
	Use:   "refresh-counts",
	Short: "Recompute every practice's trial support count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		changed, err := backend.rctService.RefreshRCTCounts(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Updated %d practice(s)\n", changed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCountsCmd)
}
