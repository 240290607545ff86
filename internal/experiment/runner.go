package experiment

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/model"
)

// Threat classification thresholds: a character is high threat when it
// moves scores by more than 15% on average or flips verdicts in more
// than 30% of trials, medium above 5% / 10%.
const (
	highDeltaThreshold   = 0.15
	highFlipThreshold    = 0.30
	mediumDeltaThreshold = 0.05
	mediumFlipThreshold  = 0.10
)

// Scorer scores a text for AI likelihood. It is the minimal surface the
// experiment needs from a detector, kept narrow so tests can stub it.
type Scorer interface {
	// ID identifies the scorer in the artifact.
	ID() string

	// Score returns the AI probability in [0,1].
	Score(ctx context.Context, text string) (float64, error)
}

// detectorScorer adapts a detector.Detector to the Scorer interface.
type detectorScorer struct {
	det detector.Detector
}

// NewDetectorScorer wraps a detector as an experiment Scorer.
func NewDetectorScorer(det detector.Detector) Scorer {
	return &detectorScorer{det: det}
}

func (s *detectorScorer) ID() string { return s.det.ID() }

func (s *detectorScorer) Score(ctx context.Context, text string) (float64, error) {
	res, err := s.det.Detect(ctx, text)
	if err != nil {
		return 0, err
	}
	return res.AIScore, nil
}

// Runner executes the injection experiment.
type Runner struct {
	scorers []Scorer
	logger  *slog.Logger
	samples []Sample
	chars   []string

	// delay is the politeness pause between API calls.
	delay time.Duration

	// maxAttempts and backoff govern retries around transient provider
	// failures (rate limits, model cold starts).
	maxAttempts int
	backoff     time.Duration
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithDelay sets the pause between scoring calls.
func WithDelay(d time.Duration) RunnerOption {
	return func(r *Runner) { r.delay = d }
}

// WithRetry sets the retry attempts and initial backoff for scoring
// calls. The backoff doubles on each failed attempt.
func WithRetry(attempts int, backoff time.Duration) RunnerOption {
	return func(r *Runner) {
		r.maxAttempts = attempts
		r.backoff = backoff
	}
}

// WithSamples replaces the default corpus. Used by tests to keep runs
// small.
func WithSamples(samples []Sample) RunnerOption {
	return func(r *Runner) { r.samples = samples }
}

// WithChars replaces the default tested character set.
func WithChars(chars []string) RunnerOption {
	return func(r *Runner) { r.chars = chars }
}

// NewRunner creates a Runner scoring against the given scorers.
func NewRunner(logger *slog.Logger, scorers []Scorer, opts ...RunnerOption) *Runner {
	r := &Runner{
		scorers:     scorers,
		logger:      logger,
		samples:     Samples(),
		chars:       TestChars,
		delay:       500 * time.Millisecond,
		maxAttempts: 3,
		backoff:     10 * time.Second,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// DetectorStats aggregates one detector's behavior for one character.
type DetectorStats struct {
	AvgDelta float64 `json:"avg_delta"`
	FlipRate float64 `json:"flip_rate"`
}

// CharResult aggregates all trials for one injected character.
type CharResult struct {
	CharCode        string                   `json:"char_code"`
	CharName        string                   `json:"char_name"`
	ThreatLevel     model.ThreatLevel        `json:"threat_level"`
	AvgScoreDelta   float64                  `json:"avg_score_delta"`
	VerdictFlipRate float64                  `json:"verdict_flip_rate"`
	ByDensity       map[string]float64       `json:"by_density"`
	ByDetector      map[string]DetectorStats `json:"by_detector"`
}

// Methodology describes the experiment setup for artifact readers.
type Methodology struct {
	CorpusSize        int      `json:"corpus_size"`
	CharTypesTested   int      `json:"char_types_tested"`
	Densities         []string `json:"densities"`
	DetectorsUsed     []string `json:"detectors_used"`
	SamplesPerVariant int      `json:"samples_per_variant"`
}

// ThreatBand documents one classification threshold band.
type ThreatBand struct {
	MinDelta    float64 `json:"min_delta,omitempty"`
	MinFlipRate float64 `json:"min_flip_rate,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Artifact is the experiment output written to disk and served over
// HTTP.
type Artifact struct {
	Methodology  Methodology           `json:"methodology"`
	Results      []CharResult          `json:"results"`
	ThreatLevels map[string]ThreatBand `json:"threat_levels"`
	GeneratedAt  time.Time             `json:"generated_at"`
}

// Run executes the full experiment. Baseline scores are computed once
// per sample and detector; failed scorings are logged and excluded from
// aggregation rather than aborting the run.
func (r *Runner) Run(ctx context.Context) (*Artifact, error) {
	baselines, err := r.scoreBaselines(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]CharResult, 0, len(r.chars))
	for _, charCode := range r.chars {
		result, err := r.runChar(ctx, charCode, baselines)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
		r.logger.Info("character tested",
			"char", charCode,
			"threat", result.ThreatLevel.String(),
			"avg_delta", result.AvgScoreDelta,
			"flip_rate", result.VerdictFlipRate,
		)
	}

	scorerIDs := make([]string, len(r.scorers))
	for i, s := range r.scorers {
		scorerIDs[i] = s.ID()
	}

	return &Artifact{
		Methodology: Methodology{
			CorpusSize:        len(r.samples),
			CharTypesTested:   len(r.chars),
			Densities:         Densities,
			DetectorsUsed:     scorerIDs,
			SamplesPerVariant: len(r.samples),
		},
		Results: results,
		ThreatLevels: map[string]ThreatBand{
			"high":   {MinDelta: highDeltaThreshold, MinFlipRate: highFlipThreshold},
			"medium": {MinDelta: mediumDeltaThreshold, MinFlipRate: mediumFlipThreshold},
			"low":    {Description: "Score delta < 5% and flip rate < 10%"},
		},
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// scoreBaselines scores every sample's original text once per scorer.
// A missing entry means the scorer failed for that sample.
func (r *Runner) scoreBaselines(ctx context.Context) (map[string]map[string]float64, error) {
	baselines := make(map[string]map[string]float64, len(r.samples))
	for _, sample := range r.samples {
		perScorer := make(map[string]float64, len(r.scorers))
		for _, scorer := range r.scorers {
			score, err := r.score(ctx, scorer, sample.Text)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				r.logger.Warn("baseline scoring failed", "scorer", scorer.ID(), "sample", sample.ID, "err", err)
				continue
			}
			perScorer[scorer.ID()] = score
		}
		baselines[sample.ID] = perScorer
	}
	return baselines, nil
}

// runChar runs all densities and samples for one character.
func (r *Runner) runChar(ctx context.Context, charCode string, baselines map[string]map[string]float64) (*CharResult, error) {
	densityDeltas := make(map[string][]float64, len(Densities))
	detectorDeltas := make(map[string][]float64)
	detectorFlips := make(map[string][]bool)

	for _, density := range Densities {
		for _, sample := range r.samples {
			rng := rand.New(rand.NewSource(variantSeed(sample.ID, charCode, density)))
			injected := Inject(rng, sample.Text, charCode, density)

			for _, scorer := range r.scorers {
				baseline, ok := baselines[sample.ID][scorer.ID()]
				if !ok {
					continue
				}

				score, err := r.score(ctx, scorer, injected)
				if err != nil {
					if ctx.Err() != nil {
						return nil, ctx.Err()
					}
					r.logger.Warn("injected scoring failed",
						"scorer", scorer.ID(), "sample", sample.ID, "char", charCode, "density", density, "err", err)
					continue
				}

				delta := score - baseline
				densityDeltas[density] = append(densityDeltas[density], delta)
				detectorDeltas[scorer.ID()] = append(detectorDeltas[scorer.ID()], delta)
				detectorFlips[scorer.ID()] = append(detectorFlips[scorer.ID()], (baseline < 0.5) != (score < 0.5))
			}
		}
	}

	return r.aggregateChar(charCode, densityDeltas, detectorDeltas, detectorFlips), nil
}

// aggregateChar folds per-trial deltas into the character's result.
func (r *Runner) aggregateChar(charCode string, densityDeltas map[string][]float64, detectorDeltas map[string][]float64, detectorFlips map[string][]bool) *CharResult {
	byDensity := make(map[string]float64, len(Densities))
	var allDeltas []float64
	for _, density := range Densities {
		deltas := densityDeltas[density]
		byDensity[density] = model.Round4(mean(deltas))
		allDeltas = append(allDeltas, deltas...)
	}

	avgDelta := meanAbs(allDeltas)

	var flips, trials int
	byDetector := make(map[string]DetectorStats, len(detectorDeltas))
	for id, deltas := range detectorDeltas {
		detFlips := detectorFlips[id]
		flipped := 0
		for _, f := range detFlips {
			if f {
				flipped++
			}
		}
		flips += flipped
		trials += len(detFlips)

		byDetector[id] = DetectorStats{
			AvgDelta: model.Round4(meanAbs(deltas)),
			FlipRate: model.Round4(ratio(flipped, len(detFlips))),
		}
	}
	flipRate := ratio(flips, trials)

	return &CharResult{
		CharCode:        charCode,
		CharName:        charNames[charCode],
		ThreatLevel:     classifyThreat(avgDelta, flipRate),
		AvgScoreDelta:   model.Round4(avgDelta),
		VerdictFlipRate: model.Round4(flipRate),
		ByDensity:       byDensity,
		ByDetector:      byDetector,
	}
}

// classifyThreat maps aggregate movement to a threat level.
func classifyThreat(avgDelta, flipRate float64) model.ThreatLevel {
	switch {
	case avgDelta > highDeltaThreshold || flipRate > highFlipThreshold:
		return model.ThreatHigh
	case avgDelta > mediumDeltaThreshold || flipRate > mediumFlipThreshold:
		return model.ThreatMedium
	default:
		return model.ThreatLow
	}
}

// score calls the scorer with retries and backoff, pausing the
// politeness delay after each attempt.
func (r *Runner) score(ctx context.Context, scorer Scorer, text string) (float64, error) {
	backoff := r.backoff
	var lastErr error

	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			r.logger.Debug("retrying scorer", "scorer", scorer.ID(), "attempt", attempt, "backoff", backoff)
			if err := sleepCtx(ctx, backoff); err != nil {
				return 0, err
			}
			backoff *= 2
		}

		score, err := scorer.Score(ctx, text)
		if err == nil {
			if err := sleepCtx(ctx, r.delay); err != nil {
				return 0, err
			}
			return score, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
	}

	return 0, fmt.Errorf("scorer %s failed after %d attempts: %w", scorer.ID(), r.maxAttempts, lastErr)
}

// sleepCtx sleeps for d unless the context is canceled first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WriteArtifact writes the artifact as indented JSON, creating parent
// directories as needed. The file is written with 0600 permissions.
func WriteArtifact(path string, artifact *Artifact) error {
	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal experiment artifact: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write experiment artifact: %w", err)
	}
	return nil
}

// mean returns the arithmetic mean, 0 for an empty slice.
func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// meanAbs returns the mean of absolute values, 0 for an empty slice.
func meanAbs(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += math.Abs(v)
	}
	return sum / float64(len(vals))
}

// ratio returns num/den, 0 when den is 0.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
