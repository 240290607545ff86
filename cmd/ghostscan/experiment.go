package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/experiment"
	"github.com/spf13/cobra"
)

// NewExperimentCmd creates the experiment command.
func NewExperimentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Measure detector sensitivity to injected invisible characters",
		Long: `Experiment injects invisible characters into a fixed corpus of human
written samples at several densities, scores every variant with the
configured detectors, and aggregates how much each character type moves
detector scores and flips verdicts.

The run makes many API calls (every sample is scored once per variant
per detector) and paces itself between requests, so it can take a long
time. Results are written as a JSON artifact that the HTTP server serves
at /api/v1/experiment-results.

Injection positions are seeded per variant, so repeated runs score
identical texts.

Examples:
  # Run the full experiment with all configured detectors
  ghostscan experiment

  # Run with specific detectors only
  ghostscan experiment --detectors sapling

  # Write the artifact to a custom path
  ghostscan experiment -o results.json

  # Slow down the request pacing
  ghostscan experiment --delay 2s`,
		Args: cobra.NoArgs,
		RunE: runExperimentCmd,
	}

	cmd.Flags().StringSliceP("detectors", "d", nil,
		"Comma-separated detector ids to score with (default: all configured)")
	cmd.Flags().DurationP("delay", "D", 500*time.Millisecond,
		"Delay between detector API requests")
	cmd.Flags().StringP("output", "o", "",
		"Artifact file path (default: XDG data directory)")
	addConfigFlag(cmd)

	return cmd
}

// runExperimentCmd executes the experiment command.
func runExperimentCmd(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	cfg := config.NewConfig()
	cfg.Verbose = verbose
	if err := loadCredentials(cmd, cfg); err != nil {
		return err
	}

	ids, err := cmd.Flags().GetStringSlice("detectors")
	if err != nil {
		return err
	}
	delay, err := cmd.Flags().GetDuration("delay")
	if err != nil {
		return err
	}
	artifactPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if artifactPath == "" {
		artifactPath = cfg.ExperimentFile
	}

	registry := detector.DefaultRegistry(cfg, logger)
	scorers, err := selectScorers(registry, ids)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Running experiment with %d detector(s). This makes many API calls and may take a while.\n\n", len(scorers))

	runner := experiment.NewRunner(logger, scorers, experiment.WithDelay(delay))
	artifact, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("experiment failed: %w", err)
	}

	if err := experiment.WriteArtifact(artifactPath, artifact); err != nil {
		return fmt.Errorf("failed to write experiment artifact: %w", err)
	}

	printArtifactSummary(out, artifact)
	fmt.Fprintf(out, "\nResults written to %s\n", artifactPath)
	return nil
}

// selectScorers builds experiment scorers from the registry, restricted
// to the requested ids when given. Only detectors with credentials can
// score, so unavailable ones are rejected up front rather than failing
// thousands of requests later.
func selectScorers(registry *detector.Registry, ids []string) ([]experiment.Scorer, error) {
	if len(ids) == 0 {
		ids = registry.AvailableIDs()
	}
	if len(ids) == 0 {
		return nil, errors.New("no detector credentials configured (run 'ghostscan init' and set API keys)")
	}

	scorers := make([]experiment.Scorer, 0, len(ids))
	for _, id := range ids {
		det := registry.Get(id)
		if det == nil {
			return nil, fmt.Errorf("unknown detector id: %s", id)
		}
		if !det.Available() {
			return nil, fmt.Errorf("detector %s has no credentials configured", id)
		}
		scorers = append(scorers, experiment.NewDetectorScorer(det))
	}
	return scorers, nil
}

// printArtifactSummary prints a per-character summary table of the
// experiment results.
func printArtifactSummary(out io.Writer, artifact *experiment.Artifact) {
	fmt.Fprintf(out, "Character sensitivity (%d samples, %d detectors):\n\n",
		artifact.Methodology.CorpusSize, len(artifact.Methodology.DetectorsUsed))
	fmt.Fprintf(out, "  %-8s  %-8s  %-12s  %s\n", "Char", "Threat", "Avg Delta", "Flip Rate")

	for _, result := range artifact.Results {
		fmt.Fprintf(out, "  %-8s  %-8s  %-12.4f  %.0f%%\n",
			result.CharCode,
			result.ThreatLevel.String(),
			result.AvgScoreDelta,
			result.VerdictFlipRate*100,
		)
	}
}
