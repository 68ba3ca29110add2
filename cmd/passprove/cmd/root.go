package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "passprove",
	Short: "PassProve age verification service",
	Long: `PassProve runs the verification session API behind the embeddable
age verification widget. Configuration is read from PASSPROVE_* environment
variables.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
