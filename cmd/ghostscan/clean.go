package main

import (
	"fmt"
	"log/slog"

	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/report"
	"github.com/ghostedhq/ghostscan/internal/scanner"
	"github.com/spf13/cobra"
)

// NewCleanCmd creates the clean command.
func NewCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [text]",
		Short: "Remove invisible Unicode characters from text",
		Long: `Clean removes all invisible Unicode characters from the input and reports
exactly what was removed, ordered by first occurrence.

Legitimate whitespace (spaces, tabs, newlines) is always preserved. With
--smart, typographic characters are normalized to their ASCII equivalents
as well: smart quotes become straight quotes, em dashes become "--", and
ellipses become "...".

Cleaning is entirely local and needs no API credentials.

Examples:
  # Clean text and print the report
  ghostscan clean --file essay.txt

  # Normalize smart quotes and em dashes too
  ghostscan clean --smart --file essay.txt

  # Print only the cleaned text, nothing else
  ghostscan clean --text-only --file essay.txt > cleaned.txt

  # JSON report with the cleaned text and removal log
  ghostscan clean --json "some text"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCleanCmd,
	}

	cmd.Flags().BoolP("smart", "s", false,
		"Normalize smart quotes, em dashes, and ellipses to ASCII")
	cmd.Flags().BoolP("text-only", "t", false,
		"Print only the cleaned text without a report")
	addInputFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runCleanCmd executes the clean command.
func runCleanCmd(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	cfg := config.NewConfig()
	cfg.Verbose = verbose

	text, err := readInputText(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.ValidateScanText(text); err != nil {
		return err
	}

	smart, err := cmd.Flags().GetBool("smart")
	if err != nil {
		return err
	}
	textOnly, err := cmd.Flags().GetBool("text-only")
	if err != nil {
		return err
	}

	result := scanner.Clean(text, smart)
	logger.Debug("clean finished",
		"originalLength", result.OriginalLength,
		"charsRemoved", result.CharsRemoved,
	)

	// Text-only mode bypasses the report writers so the output can be
	// piped directly into another tool or back into a file.
	if textOnly {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), result.CleanedText)
		return err
	}

	return outputReport(cmd, verbose, func(w report.Writer) (int, error) {
		return w.WriteClean(result)
	})
}
