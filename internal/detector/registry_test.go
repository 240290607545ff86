package detector

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ghostedhq/ghostscan/internal/model"
)

// stubDetector is a configurable in-memory Detector.
type stubDetector struct {
	id        string
	available bool
	score     float64
	err       error
}

func (s *stubDetector) ID() string                    { return s.id }
func (s *stubDetector) DisplayName() string           { return "Stub " + s.id }
func (s *stubDetector) Method() model.DetectionMethod { return model.MethodClassifier }
func (s *stubDetector) Available() bool               { return s.available }

func (s *stubDetector) Detect(_ context.Context, _ string) (*model.DetectionResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.DetectionResult{
		Detector:     s.id,
		DetectorName: s.DisplayName(),
		Verdict:      model.VerdictFromScore(s.score),
		AIScore:      s.score,
		HumanScore:   1.0 - s.score,
		Method:       s.Method(),
	}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	t.Run("preserves registration order", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry(testLogger(),
			&stubDetector{id: "c", available: true},
			&stubDetector{id: "a", available: true},
			&stubDetector{id: "b", available: true},
		)

		ids := r.IDs()
		want := []string{"c", "a", "b"}
		if len(ids) != len(want) {
			t.Fatalf("expected %d ids, got %d", len(want), len(ids))
		}
		for i, id := range want {
			if ids[i] != id {
				t.Errorf("ids[%d]: expected %q, got %q", i, id, ids[i])
			}
		}
	})

	t.Run("ignores duplicate ids", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry(testLogger(),
			&stubDetector{id: "a", available: true, score: 0.1},
			&stubDetector{id: "a", available: true, score: 0.9},
		)
		if len(r.IDs()) != 1 {
			t.Errorf("expected 1 id, got %d", len(r.IDs()))
		}
	})

	t.Run("available ids excludes unconfigured", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry(testLogger(),
			&stubDetector{id: "a", available: true},
			&stubDetector{id: "b", available: false},
		)
		available := r.AvailableIDs()
		if len(available) != 1 || available[0] != "a" {
			t.Errorf("expected [a], got %v", available)
		}
	})

	t.Run("get unknown id returns nil", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry(testLogger())
		if r.Get("nope") != nil {
			t.Error("expected nil for unknown id")
		}
	})
}

func TestRegistryDetectAll(t *testing.T) {
	t.Parallel()

	t.Run("runs all available by default", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry(testLogger(),
			&stubDetector{id: "a", available: true, score: 0.9},
			&stubDetector{id: "b", available: false, score: 0.1},
			&stubDetector{id: "c", available: true, score: 0.2},
		)

		results := r.DetectAll(context.Background(), "text", nil)
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		if results[0].Detector != "a" || results[1].Detector != "c" {
			t.Errorf("expected results in registration order, got %s, %s",
				results[0].Detector, results[1].Detector)
		}
	})

	t.Run("failed detector is excluded", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry(testLogger(),
			&stubDetector{id: "a", available: true, err: errors.New("api down")},
			&stubDetector{id: "b", available: true, score: 0.5},
		)

		results := r.DetectAll(context.Background(), "text", nil)
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].Detector != "b" {
			t.Errorf("expected result from b, got %s", results[0].Detector)
		}
	})

	t.Run("unknown ids are ignored", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry(testLogger(),
			&stubDetector{id: "a", available: true, score: 0.5},
		)

		results := r.DetectAll(context.Background(), "text", []string{"a", "ghost"})
		if len(results) != 1 {
			t.Errorf("expected 1 result, got %d", len(results))
		}
	})

	t.Run("all failures return empty slice not nil error", func(t *testing.T) {
		t.Parallel()

		r := NewRegistry(testLogger(),
			&stubDetector{id: "a", available: true, err: errors.New("down")},
		)

		results := r.DetectAll(context.Background(), "text", nil)
		if results == nil {
			t.Fatal("expected non-nil slice")
		}
		if len(results) != 0 {
			t.Errorf("expected 0 results, got %d", len(results))
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	result := func(score float64) model.DetectionResult {
		return model.DetectionResult{
			Verdict: model.VerdictFromScore(score),
			AIScore: score,
		}
	}

	tests := []struct {
		name          string
		scores        []float64
		wantConsensus model.Consensus
		wantAgreement float64
		wantAvg       float64
	}{
		{
			name:          "all likely ai",
			scores:        []float64{0.9, 0.8},
			wantConsensus: model.ConsensusLikelyAI,
			wantAgreement: 1.0,
			wantAvg:       0.85,
		},
		{
			name:          "all likely human",
			scores:        []float64{0.1, 0.2},
			wantConsensus: model.ConsensusLikelyHuman,
			wantAgreement: 1.0,
			wantAvg:       0.15,
		},
		{
			name:          "mixed verdicts",
			scores:        []float64{0.9, 0.1},
			wantConsensus: model.ConsensusMixed,
			wantAgreement: 0.5,
			wantAvg:       0.5,
		},
		{
			name:          "uncertain only",
			scores:        []float64{0.5, 0.5},
			wantConsensus: model.ConsensusUncertain,
			wantAgreement: 1.0,
			wantAvg:       0.5,
		},
		{
			name:          "uncertain plus one ai stays uncertain",
			scores:        []float64{0.5, 0.9},
			wantConsensus: model.ConsensusUncertain,
			wantAgreement: 0.5,
			wantAvg:       0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			results := make([]model.DetectionResult, 0, len(tt.scores))
			for _, s := range tt.scores {
				results = append(results, result(s))
			}

			summary := Summarize(results)
			if summary.Consensus != tt.wantConsensus {
				t.Errorf("consensus: expected %q, got %q", tt.wantConsensus, summary.Consensus)
			}
			if summary.AgreementRatio != tt.wantAgreement {
				t.Errorf("agreement: expected %v, got %v", tt.wantAgreement, summary.AgreementRatio)
			}
			if summary.AverageAIScore != tt.wantAvg {
				t.Errorf("average: expected %v, got %v", tt.wantAvg, summary.AverageAIScore)
			}
			if summary.Disclaimer == "" {
				t.Error("expected non-empty disclaimer")
			}
		})
	}

	t.Run("empty results", func(t *testing.T) {
		t.Parallel()

		summary := Summarize(nil)
		if summary.Consensus != model.ConsensusUncertain {
			t.Errorf("expected uncertain consensus, got %q", summary.Consensus)
		}
		if summary.AgreementRatio != 0 {
			t.Errorf("expected zero agreement, got %v", summary.AgreementRatio)
		}
		if summary.Disclaimer == "" {
			t.Error("expected non-empty disclaimer")
		}
	})
}

func TestReport(t *testing.T) {
	t.Parallel()

	results := []model.DetectionResult{
		{Detector: "a", AIScore: 0.123456, HumanScore: 0.876544},
	}

	report := Report(results)
	if len(report.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(report.Results))
	}
	if report.Results[0].AIScore != 0.1235 {
		t.Errorf("expected rounded AI score 0.1235, got %v", report.Results[0].AIScore)
	}
	if report.Results[0].HumanScore != 0.8765 {
		t.Errorf("expected rounded human score 0.8765, got %v", report.Results[0].HumanScore)
	}
}
