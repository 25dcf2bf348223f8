// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/stevens-blueprint/weekly-metrics/internal/runner"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Runs all metric pipelines and posts the results",
	Long: `Runs the finance, recruitment and GitHub metric pipelines concurrently,
posts each result to the configured Discord webhook and prints the structured
run result as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := log.New(io.Discard, "", log.LstdFlags) // Default: discard all logs.
		if verbose {
			logger.SetOutput(os.Stderr) // If verbose, log to standard error.
		}

		configPath, _ := cmd.Flags().GetString("config")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		run, err := runner.Setup(ctx, configPath, dryRun, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set up pipelines: %v\n", err)
			os.Exit(1)
		}

		response := run.Run(ctx)

		// Marshal the run result into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal result to JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(jsonData))

		if response.StatusCode != http.StatusOK {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(collectCmd)
	collectCmd.Flags().String("config", "config.json", "Path to the JSON config file (ignored when PROD is set)")
	collectCmd.Flags().Bool("dry-run", false, "Compute metrics but skip webhook delivery")
}
