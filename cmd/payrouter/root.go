package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "payrouter",
	Short: "Route HR supplemental-pay queries to specialized agents",
	Long: `Payrouter classifies free-text HR queries about supplemental pay
(policies, pay calculation, analytics) and runs them against remotely
provisioned agents. Agents are created on first use and reused across
restarts via a persisted id mapping.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(purgeCmd)
}
