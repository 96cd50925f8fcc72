package main

import (
	"os"

	"github.com/Dauletnazarr/donation-project/config"
	"github.com/Dauletnazarr/donation-project/internal/infra/logging"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "donation-project",
	Short: "Donation collects API and notification worker",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		logging.Init(config.DEBUG)
	},
	// no subcommand means serve
	RunE: runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd, seedCmd, createSuperuserCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
