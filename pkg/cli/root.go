// Package cli implements the calcd command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "calcd",
	Short: "calcd is a tutorial-grade arithmetic HTTP API",
	Long: `calcd serves arithmetic over HTTP: two integers come in as path
segments, a JSON result comes back. It exists to demonstrate standing up a
minimal web API, checking its contract end-to-end, and wiring both into CI.

Start the server with 'calcd serve' and verify it with 'calcd check'.`,
	// No Run function here means 'calcd' with no args will print help text by default.
	SilenceUsage:  true,
	SilenceErrors: true, // We handle errors in Execute()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
