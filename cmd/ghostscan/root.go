// Package main provides the entry point for the ghostscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ghostscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ghostscan",
		Short: "Detect invisible Unicode characters and their effect on AI detectors",
		Long: `Ghostscan finds invisible Unicode characters (zero-width spaces, joiners,
bidirectional controls, Unicode tags) hidden in text, classifies them by
threat level, and removes them.

It can also run text through third-party AI-text detectors before and
after cleaning to show whether a detector's verdict depends on invisible
byte patterns rather than the actual content.

Detection commands need API credentials; run 'ghostscan init' to create
a credentials file. Scanning and cleaning work without any credentials.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewCleanCmd())
	cmd.AddCommand(NewDetectCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewExperimentCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
