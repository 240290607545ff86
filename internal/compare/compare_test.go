package compare

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/model"
)

// fakeDetector scores text by whether it still carries a zero width
// space, so cleaning moves its score in a controlled way.
type fakeDetector struct {
	id           string
	dirtyScore   float64
	cleanScore   float64
	avail        bool
	returnsError bool
}

func (f *fakeDetector) ID() string                    { return f.id }
func (f *fakeDetector) DisplayName() string           { return "Fake " + f.id }
func (f *fakeDetector) Method() model.DetectionMethod { return model.MethodClassifier }
func (f *fakeDetector) Available() bool               { return f.avail }

func (f *fakeDetector) Detect(_ context.Context, text string) (*model.DetectionResult, error) {
	if f.returnsError {
		return nil, &detector.TransportError{Detector: f.id, Err: context.DeadlineExceeded}
	}
	score := f.cleanScore
	if strings.ContainsRune(text, '​') {
		score = f.dirtyScore
	}
	return &model.DetectionResult{
		Detector:     f.id,
		DetectorName: f.DisplayName(),
		Verdict:      model.VerdictFromScore(score),
		AIScore:      score,
		HumanScore:   1 - score,
		Method:       model.MethodClassifier,
	}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestComparator_Compare_verdictFlip(t *testing.T) {
	t.Parallel()

	reg := detector.NewRegistry(testLogger(),
		&fakeDetector{id: "flipper", dirtyScore: 0.9, cleanScore: 0.1, avail: true},
		&fakeDetector{id: "stable", dirtyScore: 0.8, cleanScore: 0.8, avail: true},
	)

	report := New(reg).Compare(context.Background(), "Hello​world", nil, false)

	if report.Comparison.CharsRemoved != 1 {
		t.Errorf("CharsRemoved = %d, want 1", report.Comparison.CharsRemoved)
	}
	if got := len(report.Comparison.VerdictChanges); got != 1 {
		t.Fatalf("len(VerdictChanges) = %d, want 1", got)
	}
	change := report.Comparison.VerdictChanges[0]
	if change.Detector != "flipper" {
		t.Errorf("changed detector = %q, want flipper", change.Detector)
	}
	if change.BeforeVerdict != model.VerdictLikelyAI || change.AfterVerdict != model.VerdictLikelyHuman {
		t.Errorf("verdicts = %s -> %s, want likely_ai -> likely_human", change.BeforeVerdict, change.AfterVerdict)
	}
	if change.ScoreDelta != -0.8 {
		t.Errorf("ScoreDelta = %v, want -0.8", change.ScoreDelta)
	}
	if got := len(report.Comparison.ScoreDeltas); got != 2 {
		t.Errorf("len(ScoreDeltas) = %d, want 2", got)
	}
	if report.Comparison.Reliability != model.ReliabilityBytePattern {
		t.Errorf("Reliability = %q, want %q", report.Comparison.Reliability, model.ReliabilityBytePattern)
	}
	if !strings.Contains(report.Comparison.Insight, "1 of 2 detectors changed verdict after cleaning (flipper)") {
		t.Errorf("unexpected insight: %q", report.Comparison.Insight)
	}
	if !strings.HasPrefix(report.Comparison.Insight, "Removed 1 invisible character.") {
		t.Errorf("insight missing removal sentence: %q", report.Comparison.Insight)
	}
}

func TestComparator_Compare_cleanText(t *testing.T) {
	t.Parallel()

	reg := detector.NewRegistry(testLogger(),
		&fakeDetector{id: "stable", dirtyScore: 0.8, cleanScore: 0.8, avail: true},
	)

	report := New(reg).Compare(context.Background(), "Hello world", nil, false)

	if report.Comparison.CharsRemoved != 0 {
		t.Errorf("CharsRemoved = %d, want 0", report.Comparison.CharsRemoved)
	}
	if report.Comparison.Reliability != model.ReliabilityInconclusive {
		t.Errorf("Reliability = %q, want %q", report.Comparison.Reliability, model.ReliabilityInconclusive)
	}
	want := "No invisible characters were found, so original and cleaned results are identical."
	if report.Comparison.Insight != want {
		t.Errorf("Insight = %q, want %q", report.Comparison.Insight, want)
	}
}

func TestComparator_Compare_noDetectors(t *testing.T) {
	t.Parallel()

	reg := detector.NewRegistry(testLogger())
	report := New(reg).Compare(context.Background(), "Hi​there", nil, false)

	if report.Comparison.Reliability != model.ReliabilityInconclusive {
		t.Errorf("Reliability = %q, want %q", report.Comparison.Reliability, model.ReliabilityInconclusive)
	}
	if report.Comparison.Insight != "No detectors were available for comparison." {
		t.Errorf("Insight = %q", report.Comparison.Insight)
	}
}

func TestComparator_Compare_scoreShiftWithoutFlip(t *testing.T) {
	t.Parallel()

	// Scores move by 0.1 but both stay above the AI threshold, so the
	// verdict holds while the shift is still above the 5% bar.
	reg := detector.NewRegistry(testLogger(),
		&fakeDetector{id: "drifter", dirtyScore: 0.95, cleanScore: 0.85, avail: true},
	)

	report := New(reg).Compare(context.Background(), "Hi​there", nil, false)

	if got := len(report.Comparison.VerdictChanges); got != 0 {
		t.Fatalf("len(VerdictChanges) = %d, want 0", got)
	}
	if report.Comparison.Reliability != model.ReliabilityBytePattern {
		t.Errorf("Reliability = %q, want %q", report.Comparison.Reliability, model.ReliabilityBytePattern)
	}
	if !strings.Contains(report.Comparison.Insight, "scores shifted by 10% on average") {
		t.Errorf("unexpected insight: %q", report.Comparison.Insight)
	}
}

func TestComparator_Compare_stableScores(t *testing.T) {
	t.Parallel()

	reg := detector.NewRegistry(testLogger(),
		&fakeDetector{id: "stable", dirtyScore: 0.8, cleanScore: 0.79, avail: true},
	)

	report := New(reg).Compare(context.Background(), "Hi​there", nil, false)

	if report.Comparison.Reliability != model.ReliabilityContentBased {
		t.Errorf("Reliability = %q, want %q", report.Comparison.Reliability, model.ReliabilityContentBased)
	}
	if !strings.Contains(report.Comparison.Insight, "appear to analyze content rather than byte patterns") {
		t.Errorf("unexpected insight: %q", report.Comparison.Insight)
	}
}

func TestComparator_Compare_failedDetectorExcluded(t *testing.T) {
	t.Parallel()

	reg := detector.NewRegistry(testLogger(),
		&fakeDetector{id: "ok", dirtyScore: 0.9, cleanScore: 0.1, avail: true},
		&fakeDetector{id: "broken", avail: true, returnsError: true},
	)

	report := New(reg).Compare(context.Background(), "Hi​there", nil, false)

	if got := len(report.Comparison.ScoreDeltas); got != 1 {
		t.Fatalf("len(ScoreDeltas) = %d, want 1", got)
	}
	if report.Comparison.ScoreDeltas[0].Detector != "ok" {
		t.Errorf("surviving detector = %q, want ok", report.Comparison.ScoreDeltas[0].Detector)
	}
}
