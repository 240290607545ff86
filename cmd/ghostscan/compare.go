package main

import (
	"log/slog"

	"github.com/ghostedhq/ghostscan/internal/compare"
	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/report"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
// This command runs detectors against the text before and after cleaning
// and diffs the two result sets.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [text]",
		Short: "Compare detector verdicts before and after cleaning",
		Long: `Compare scans the text, cleans it, runs the configured AI-text
detectors against both versions concurrently, and reports how each
detector's verdict and score changed.

A verdict that flips after removing invisible characters means that
detector reacts to invisible byte patterns rather than the actual
content. The report's insight summarizes what the comparison revealed
and how reliable the detectors look.

Detector credentials are read the same way as for 'ghostscan detect'.

Examples:
  # Compare with all configured detectors
  ghostscan compare --file essay.txt

  # Compare with specific detectors
  ghostscan compare --detectors sapling,hf_roberta_coai "some text"

  # Normalize smart quotes during cleaning too
  ghostscan compare --smart --file essay.txt

  # Output JSON report
  ghostscan compare --json --file essay.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().StringSliceP("detectors", "d", nil,
		"Comma-separated detector ids to run (default: all configured)")
	cmd.Flags().BoolP("smart", "s", false,
		"Normalize smart quotes, em dashes, and ellipses during cleaning")
	addConfigFlag(cmd)
	addInputFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	cfg := config.NewConfig()
	cfg.Verbose = verbose
	if err := loadCredentials(cmd, cfg); err != nil {
		return err
	}

	text, err := readInputText(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.ValidateDetectText(text); err != nil {
		return err
	}

	ids, err := cmd.Flags().GetStringSlice("detectors")
	if err != nil {
		return err
	}
	smart, err := cmd.Flags().GetBool("smart")
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	registry := detector.DefaultRegistry(cfg, logger)
	if len(registry.AvailableIDs()) == 0 {
		logger.Warn("no detector credentials configured; all detectors are unavailable")
	}

	comparison := compare.New(registry).Compare(ctx, text, ids, smart)

	return outputReport(cmd, verbose, func(w report.Writer) (int, error) {
		return w.WriteCompare(comparison)
	})
}
