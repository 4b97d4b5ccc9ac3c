package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var recommendJSON bool

var recommendCmd = &cobra.Command{
	Use:   "recommend <disease> [disease...]",
	Short: "Generate a recommendation for one or more diseases",
	Long: `Runs the unweighted recommendation path for the given disease names
and prints the plain-text summary, or the full structured result with
--json.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if recommendJSON {
			rec, err := backend.recommendationService.RecommendByDiseaseNames(cmd.Context(), args)
			if err != nil {
				return err
			}
			raw, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(raw))
			return nil
		}

		text, err := backend.recommendationService.Summary(cmd.Context(), args)
		if err != nil {
			return err
		}
		fmt.Print(text)
		return nil
	},
}

func init() {
	recommendCmd.Flags().BoolVar(&recommendJSON, "json", false, "print the structured result instead of the text summary")
	rootCmd.AddCommand(recommendCmd)
}
