package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/report"
	"github.com/spf13/cobra"
)

// NewDetectCmd creates the detect command.
func NewDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [text]",
		Short: "Run text through third-party AI-text detectors",
		Long: `Detect sends the text to the configured AI-text detection APIs
concurrently and aggregates their verdicts into a consensus.

Available detectors:
  sapling            Sapling AI Detector (classifier)
  hf_roberta_coai    COAI Academic AI Detector v2 (classifier)
  hf_roberta_openai  OpenAI RoBERTa Detector (classifier)
  groq_stylistic     Llama stylistic judge (LLM analysis)
  groq_structural    Llama structural judge (LLM analysis)

A detector runs only when its API credential is set. Credentials are
read from the credentials file (.ghostscan) and the GHOSTSCAN_*
environment variables; run 'ghostscan init' to create the file.

Detection is probabilistic. The consensus is never proof of anything.

Examples:
  # Run all configured detectors
  ghostscan detect --file essay.txt

  # Run specific detectors only
  ghostscan detect --detectors sapling,hf_roberta_coai "some text"

  # Use a custom credentials file
  ghostscan detect -c mycreds.yaml --file essay.txt

  # Output JSON report
  ghostscan detect --json --file essay.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDetectCmd,
	}

	cmd.Flags().StringSliceP("detectors", "d", nil,
		"Comma-separated detector ids to run (default: all configured)")
	addConfigFlag(cmd)
	addInputFlags(cmd)
	addReportFlags(cmd)

	return cmd
}

// runDetectCmd executes the detect command.
func runDetectCmd(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := signalContext(logger)
	defer cancel()

	registry := detector.DefaultRegistry(cfg, logger)
	if len(registry.AvailableIDs()) == 0 {
		logger.Warn("no detector credentials configured; all detectors are unavailable")
	}

	results := registry.DetectAll(ctx, text, ids)

	return outputReport(cmd, verbose, func(w report.Writer) (int, error) {
		return w.WriteDetect(detector.Report(results))
	})
}

// addConfigFlag registers the credentials file flag shared by all
// detector-backed commands.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Credentials file path (default: .ghostscan in current or home directory)")
}

// loadCredentials resolves detector credentials from the credentials
// file and the environment.
// If the user explicitly specified a file path, error if not found.
// If no path specified, silently continue without file credentials.
// Environment variables override file values either way.
func loadCredentials(cmd *cobra.Command, cfg *config.Config) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg.ConfigFilePath = path

	explicitConfigPath := path != ""
	configPath := config.FindConfigFile(path)

	if configPath != "" {
		creds, err := config.LoadCredentialsFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load credentials file %s: %w", configPath, err)
		}
		cfg.Credentials = creds
	} else if explicitConfigPath {
		return fmt.Errorf("credentials file not found: %s", path)
	}

	cfg.Credentials.ApplyEnv()
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}
