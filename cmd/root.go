// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "weekly-metrics",
	Short: "A scheduled job that aggregates team metrics and posts a summary.",
	Long: `weekly-metrics pulls finance and recruitment rows from spreadsheet
ranges and pull-request/issue activity from GitHub, computes per-team weekly
metrics (velocity, participation, NPO impact, staleness alerts) and posts
the results to a Discord webhook.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
