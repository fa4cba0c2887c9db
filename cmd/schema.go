package cmd

import (
	"encoding/json"
	"os"

	"github.com/anisan-cli/vidman/sim"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.SetOut(os.Stdout)
}

// schemaCmd prints the JSON schema of scenario files.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of scenario files",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(sim.Schema()))
	},
}
