package compare

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/model"
	"github.com/ghostedhq/ghostscan/internal/scanner"
	"golang.org/x/sync/errgroup"
)

// meaningfulDelta is the mean absolute score shift above which the
// detectors are considered byte-pattern sensitive even without a
// verdict flip.
const meaningfulDelta = 0.05

// Comparator runs the full before/after pipeline over one registry.
// It holds no mutable state; one value can serve concurrent callers.
type Comparator struct {
	registry *detector.Registry
}

// New creates a Comparator over the given detector registry.
func New(registry *detector.Registry) *Comparator {
	return &Comparator{registry: registry}
}

// Compare scans the original text, cleans it, runs the selected
// detectors against the original and cleaned versions concurrently, and
// diffs the two result sets.
//
// Smart character findings are included in the scan, and smart
// characters normalized during cleaning, iff normalizeSmartChars is set.
// Numeric report fields are rounded at this boundary only.
func (c *Comparator) Compare(ctx context.Context, text string, ids []string, normalizeSmartChars bool) *model.CompareReport {
	scanResult := scanner.Scan(text, normalizeSmartChars)
	cleanResult := scanner.Clean(text, normalizeSmartChars)

	// The two detector batches are independent network fan-outs, so
	// they run concurrently with each other as well.
	var original, cleaned []model.DetectionResult
	var g errgroup.Group
	g.Go(func() error {
		original = c.registry.DetectAll(ctx, text, ids)
		return nil
	})
	g.Go(func() error {
		cleaned = c.registry.DetectAll(ctx, cleanResult.CleanedText, ids)
		return nil
	})
	// DetectAll never fails; failed detectors are logged and dropped.
	_ = g.Wait()

	changes, deltas := diffResults(original, cleaned)
	insight, reliability := buildInsight(cleanResult.CharsRemoved, changes, deltas)

	return &model.CompareReport{
		Scan:              scanResult,
		OriginalDetection: detector.Report(original),
		CleanedDetection:  detector.Report(cleaned),
		Comparison: &model.Comparison{
			CharsRemoved:   cleanResult.CharsRemoved,
			VerdictChanges: changes,
			ScoreDeltas:    deltas,
			Insight:        insight,
			Reliability:    reliability,
		},
		Disclaimer: detector.Disclaimer,
	}
}

// diffResults pairs the two result sets by detector id and computes the
// score movement of every detector present in both. Detectors missing
// from either side are excluded from both lists; there are no partial
// entries. A verdict change entry is added only when the verdict
// actually flipped.
func diffResults(original, cleaned []model.DetectionResult) ([]model.VerdictChange, []model.ScoreDelta) {
	cleanedByID := make(map[string]model.DetectionResult, len(cleaned))
	for _, res := range cleaned {
		cleanedByID[res.Detector] = res
	}

	changes := make([]model.VerdictChange, 0)
	deltas := make([]model.ScoreDelta, 0, len(original))

	for _, before := range original {
		after, ok := cleanedByID[before.Detector]
		if !ok {
			continue
		}

		delta := after.AIScore - before.AIScore
		deltas = append(deltas, model.ScoreDelta{
			Detector: before.Detector,
			Delta:    model.Round4(delta),
		})

		if before.Verdict != after.Verdict {
			changes = append(changes, model.VerdictChange{
				Detector:      before.Detector,
				BeforeVerdict: before.Verdict,
				AfterVerdict:  after.Verdict,
				BeforeAIScore: model.Round4(before.AIScore),
				AfterAIScore:  model.Round4(after.AIScore),
				ScoreDelta:    model.Round4(delta),
			})
		}
	}

	return changes, deltas
}

// buildInsight generates the human-readable interpretation and the
// reliability assessment. The rules are evaluated in priority order:
// nothing removed, no detectors, verdict flips, measurable score shift,
// stable scores.
func buildInsight(charsRemoved int, changes []model.VerdictChange, deltas []model.ScoreDelta) (string, model.Reliability) {
	if charsRemoved == 0 {
		return "No invisible characters were found, so original and cleaned results are identical.",
			model.ReliabilityInconclusive
	}

	totalDetectors := len(deltas)
	if totalDetectors == 0 {
		return "No detectors were available for comparison.", model.ReliabilityInconclusive
	}

	var deltaSum float64
	for _, d := range deltas {
		deltaSum += math.Abs(d.Delta)
	}
	avgDelta := deltaSum / float64(totalDetectors)

	parts := []string{fmt.Sprintf("Removed %d invisible character%s.", charsRemoved, plural(charsRemoved))}

	switch {
	case len(changes) > 0:
		names := make([]string, len(changes))
		for i, change := range changes {
			names[i] = change.Detector
		}
		relies := "this detector relies"
		if len(changes) > 1 {
			relies = "these detectors rely"
		}
		parts = append(parts, fmt.Sprintf(
			"%d of %d detector%s changed verdict after cleaning (%s). "+
				"This suggests %s partly on invisible byte patterns rather than content analysis.",
			len(changes), totalDetectors, plural(totalDetectors), strings.Join(names, ", "), relies,
		))
		return strings.Join(parts, " "), model.ReliabilityBytePattern

	case avgDelta > meaningfulDelta:
		parts = append(parts, fmt.Sprintf(
			"While no detectors changed their overall verdict, scores shifted by "+
				"%.0f%% on average. Invisible characters had a measurable effect.",
			avgDelta*100,
		))
		return strings.Join(parts, " "), model.ReliabilityBytePattern

	default:
		parts = append(parts,
			"Detection scores remained stable after removing invisible characters. "+
				"These detectors appear to analyze content rather than byte patterns.")
		return strings.Join(parts, " "), model.ReliabilityContentBased
	}
}

// plural returns "s" for counts other than one.
func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
