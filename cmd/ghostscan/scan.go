package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/log"
	"github.com/ghostedhq/ghostscan/internal/report"
	"github.com/ghostedhq/ghostscan/internal/scanner"
	"github.com/spf13/cobra"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [text]",
		Short: "Scan text for invisible Unicode characters",
		Long: `Scan analyzes text for invisible Unicode characters and reports what it
finds: zero-width spaces and joiners, bidirectional controls, Unicode
tags, variation selectors, and other characters that render as nothing.

Each finding is categorized and assigned a threat level. The report also
guesses the likely source of the contamination (AI watermarking, copy
paste artifacts, or deliberate steganography).

Scanning is entirely local and needs no API credentials.

Examples:
  # Scan text passed as an argument
  ghostscan scan "Hello‌ world"

  # Scan a file
  ghostscan scan --file essay.txt

  # Scan from stdin
  cat essay.txt | ghostscan scan

  # Include smart quotes and em dashes in the report
  ghostscan scan --smart --file essay.txt

  # Output JSON report
  ghostscan scan --json "some text"`,
		Args: cobra.MaximumNArgs(1),
		RunE: runScanCmd,
	}

	cmd.Flags().BoolP("smart", "s", false,
		"Include smart quotes, em dashes, and ellipses in the report")
	addInputFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
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

	result := scanner.Scan(text, smart)
	logger.Debug("scan finished",
		"charCount", result.CharCount,
		"invisibleCount", result.TotalInvisibleCount,
	)

	return outputReport(cmd, verbose, func(w report.Writer) (int, error) {
		return w.WriteScan(result)
	})
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// The secure handler masks API keys and tokens before they reach the log
// output.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}

// addInputFlags registers the text input flag shared by all text commands.
func addInputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "",
		"Read input text from the specified file instead of the argument")
}

// addReportFlags registers the report format flags shared by all text
// commands.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// readInputText resolves the input text from, in order of precedence,
// the --file flag, the positional argument, and stdin.
func readInputText(cmd *cobra.Command, args []string) (string, error) {
	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return "", err
	}
	if file != "" {
		data, err := os.ReadFile(file) //nolint:gosec // User-provided input path is intentional
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	if len(args) > 0 {
		return args[0], nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return "", fmt.Errorf("no input text (pass text as an argument, use --file, or pipe to stdin)")
	}
	return text, nil
}

// outputReport writes a report in the requested format. The write
// callback receives the selected report writer so each command can emit
// its own report type through the shared format and destination logic.
func outputReport(cmd *cobra.Command, verbose bool, write func(report.Writer) (int, error)) error {
	jsonReport, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownReport, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	reportFile, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	// Determine output destination
	var output io.Writer = cmd.OutOrStdout()
	if reportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(reportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Create/overwrite the output file with secure permissions (0600)
		// Reports may contain the full input text, which can be sensitive
		f, err := os.OpenFile(reportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case jsonReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case markdownReport:
		w = report.NewMarkdownWriter(output)
	default:
		w = report.NewSimpleWriter(output, report.WithVerbose(verbose))
	}

	_, err = write(w)
	return err
}
