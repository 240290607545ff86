package main

import (
	"io"
	"strings"
	"testing"

	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/log"
)

// TestNewExperimentCmd tests the experiment command creation.
func TestNewExperimentCmd(t *testing.T) {
	t.Parallel()

	cmd := NewExperimentCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "experiment" {
			t.Errorf("expected use 'experiment', got %q", cmd.Use)
		}
	})

	t.Run("has detectors flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("detectors")
		if flag == nil {
			t.Fatal("expected detectors flag")
		}
	})

	t.Run("has delay flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("delay")
		if flag == nil {
			t.Fatal("expected delay flag")
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag")
		}
	})
}

// TestSelectScorers tests scorer selection against a registry with a
// mix of configured and unconfigured detectors.
func TestSelectScorers(t *testing.T) {
	t.Parallel()

	logger := log.NewSecureLogger(io.Discard, false)
	registry := detector.NewRegistry(logger,
		detector.NewSapling("test-key"),
		detector.NewLlamaStylistic(""),
	)

	t.Run("defaults to available detectors", func(t *testing.T) {
		t.Parallel()

		scorers, err := selectScorers(registry, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(scorers) != 1 {
			t.Fatalf("expected 1 scorer, got %d", len(scorers))
		}
		if scorers[0].ID() != "sapling" {
			t.Errorf("expected sapling scorer, got %q", scorers[0].ID())
		}
	})

	t.Run("explicit available detector", func(t *testing.T) {
		t.Parallel()

		scorers, err := selectScorers(registry, []string{"sapling"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(scorers) != 1 {
			t.Errorf("expected 1 scorer, got %d", len(scorers))
		}
	})

	t.Run("unknown detector id errors", func(t *testing.T) {
		t.Parallel()

		_, err := selectScorers(registry, []string{"nope"})
		if err == nil {
			t.Fatal("expected error for unknown detector id")
		}
		if !strings.Contains(err.Error(), "unknown detector id") {
			t.Errorf("unexpected error message: %v", err)
		}
	})

	t.Run("unconfigured detector errors", func(t *testing.T) {
		t.Parallel()

		_, err := selectScorers(registry, []string{"groq_stylistic"})
		if err == nil {
			t.Fatal("expected error for unconfigured detector")
		}
		if !strings.Contains(err.Error(), "no credentials") {
			t.Errorf("unexpected error message: %v", err)
		}
	})

	t.Run("no configured detectors errors", func(t *testing.T) {
		t.Parallel()

		empty := detector.NewRegistry(logger, detector.NewSapling(""))
		_, err := selectScorers(empty, nil)
		if err == nil {
			t.Fatal("expected error when nothing is configured")
		}
	})
}
