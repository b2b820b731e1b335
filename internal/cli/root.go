// Package cli implements the linkvote command-line interface using Cobra.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linkvote",
	Short: "linkvote is the shared-link voting extension backend",
	Long: `linkvote is the webhook backend for the shared-link voting extension.
It receives lock platform events, runs the weighted voting game, and pushes
time adjustments back to the platform.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
