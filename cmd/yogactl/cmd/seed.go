package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed <dir>",
	Short: "Import YAML seed files into the catalog",
	Long: `Parses every *.yaml file in the directory and imports diseases,
modules, practices, contraindications and trials in one transaction.
Diseases already present in the catalog are skipped, so re-running an
import is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := backend.seedService.ImportDir(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported %d file(s): %d diseases, %d modules, %d practices, %d contraindications, %d trials\n",
			report.Files, report.Diseases, report.Modules, report.Practices, report.Contraindications, report.RCTs)
		fmt.Printf("Refreshed trial support counts on %d practice(s)\n", report.CountsRefreshed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
