package main

import (
	"fmt"
	"log/slog"

	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/server"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the ghostscan HTTP API server",
		Long: `Serve starts an HTTP server exposing the scanning, cleaning, detection,
and comparison operations as a JSON API.

Endpoints:
  GET  /api/v1/health              Health check
  POST /api/v1/scan                Scan text for invisible characters
  POST /api/v1/clean               Remove invisible characters
  POST /api/v1/detect              Run AI-text detectors
  POST /api/v1/compare             Compare verdicts before/after cleaning
  GET  /api/v1/experiment-results  Serve the experiment artifact

The server drains in-flight requests on SIGINT or SIGTERM before
exiting.

Examples:
  # Listen on the default address (:8080)
  ghostscan serve

  # Listen on a specific address
  ghostscan serve --addr 127.0.0.1:9000

  # Use a custom credentials file
  ghostscan serve -c mycreds.yaml`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultListenAddr,
		"HTTP listen address")
	cmd.Flags().StringP("experiment-file", "e", "",
		"Experiment results artifact path (default: XDG data directory)")
	addConfigFlag(cmd)

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	verbose := getVerboseFlag(cmd)
	logger := setupLogger(verbose)
	slog.SetDefault(logger)

	cfg := config.NewConfig()
	cfg.Verbose = verbose
	if err := loadCredentials(cmd, cfg); err != nil {
		return err
	}

	var err error
	cfg.ListenAddr, err = cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	experimentFile, err := cmd.Flags().GetString("experiment-file")
	if err != nil {
		return err
	}
	if experimentFile != "" {
		cfg.ExperimentFile = experimentFile
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	registry := detector.DefaultRegistry(cfg, logger)
	if len(registry.AvailableIDs()) == 0 {
		logger.Warn("no detector credentials configured; detect and compare endpoints will return empty results")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", cfg.ListenAddr)
	return server.New(cfg, logger, registry, getVersion()).ListenAndServe(ctx)
}
