package detector

import (
	"context"
	"log/slog"

	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/model"
	"golang.org/x/sync/errgroup"
)

// Disclaimer accompanies every detection summary. Detection is
// probabilistic and must never be presented as proof.
const Disclaimer = "AI detection is probabilistic, not definitive. No detector is reliable enough " +
	"to make accusations of academic dishonesty. These results show what automated " +
	"tools see - they are not proof of anything. This tool is for educational and " +
	"transparency purposes only."

// Registry holds the configured detectors and fans detection requests
// out to them.
//
// Design decision: The registry is constructed once at process start and
// never mutated afterwards; it is passed by reference wherever detection
// is needed. An immutable value needs no locking and eliminates
// init-order races that a lazily-populated global would invite.
type Registry struct {
	detectors map[string]Detector

	// order preserves registration order so batch results are
	// deterministic regardless of map iteration.
	order []string

	logger *slog.Logger
}

// NewRegistry creates a registry over the given detectors.
// Registration order is preserved in all listings and batch results.
func NewRegistry(logger *slog.Logger, detectors ...Detector) *Registry {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Registry{
		detectors: make(map[string]Detector, len(detectors)),
		logger:    logger,
	}
	for _, d := range detectors {
		if _, dup := r.detectors[d.ID()]; dup {
			continue
		}
		r.detectors[d.ID()] = d
		r.order = append(r.order, d.ID())
	}
	return r
}

// DefaultRegistry creates the standard detector set from configuration:
// Sapling and two RoBERTa classifiers as the primary tier, plus the two
// Llama judges as the supplementary tier.
func DefaultRegistry(cfg *config.Config, logger *slog.Logger) *Registry {
	creds := cfg.Credentials
	return NewRegistry(logger,
		NewSapling(creds.SaplingAPIKey, WithSaplingTimeout(cfg.LLMTimeout)),
		NewRoberta(
			"hf_roberta_coai",
			"COAI Academic AI Detector v2",
			"coai/roberta-ai-detector-v2",
			creds.HFAPIToken,
			WithRobertaTimeout(cfg.ClassifierTimeout),
		),
		NewRoberta(
			"hf_roberta_openai",
			"OpenAI RoBERTa Detector (Baseline)",
			"openai-community/roberta-base-openai-detector",
			creds.HFAPIToken,
			WithRobertaTimeout(cfg.ClassifierTimeout),
		),
		NewLlamaStylistic(creds.GroqAPIKey, WithLlamaTimeout(cfg.LLMTimeout)),
		NewLlamaStructural(creds.GroqAPIKey, WithLlamaTimeout(cfg.LLMTimeout)),
	)
}

// Get returns the detector with the given id, or nil if unknown.
func (r *Registry) Get(id string) Detector {
	return r.detectors[id]
}

// IDs returns all registered detector ids in registration order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// AvailableIDs returns the ids of detectors that can currently run,
// in registration order.
func (r *Registry) AvailableIDs() []string {
	var out []string
	for _, id := range r.order {
		if r.detectors[id].Available() {
			out = append(out, id)
		}
	}
	return out
}

// DetectAll runs the selected detectors against the text concurrently
// and returns the successful results in registration order.
//
// When ids is empty, all currently available detectors run. An explicit
// selection may name unavailable detectors; they simply fail and are
// excluded like any other failure. Unknown ids are ignored.
//
// Failures are isolated per detector: the error is logged and that
// detector's slot is absent from the result. A batch where everything
// fails returns an empty slice, never an error.
func (r *Registry) DetectAll(ctx context.Context, text string, ids []string) []model.DetectionResult {
	targets := ids
	if len(targets) == 0 {
		targets = r.AvailableIDs()
	}

	selected := make([]Detector, 0, len(targets))
	for _, id := range targets {
		if d, ok := r.detectors[id]; ok {
			selected = append(selected, d)
		}
	}
	if len(selected) == 0 {
		return []model.DetectionResult{}
	}

	slots := make([]*model.DetectionResult, len(selected))

	// Plain errgroup with no limit: every detector call is an
	// independent network request with its own timeout, and goroutines
	// capture their own errors rather than propagating them, so one
	// failure never cancels the siblings.
	var g errgroup.Group
	for i, d := range selected {
		g.Go(func() error {
			result, err := d.Detect(ctx, text)
			if err != nil {
				r.logger.Warn("detector failed",
					"detector", d.ID(),
					"error", err,
				)
				return nil
			}
			slots[i] = result
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // Goroutines never return errors

	results := make([]model.DetectionResult, 0, len(slots))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	return results
}

// Summarize aggregates a batch of successful results into a consensus
// verdict, agreement ratio, and average AI score.
//
// The agreement ratio is the largest single-verdict group divided by the
// total. With verdicts split evenly across all three groups this comes
// out low even though no group is an outlier; that is a deliberate
// property of the formula and downstream consumers depend on it.
func Summarize(results []model.DetectionResult) model.DetectSummary {
	if len(results) == 0 {
		return model.DetectSummary{
			Consensus:  model.ConsensusUncertain,
			Disclaimer: Disclaimer,
		}
	}

	var aiCount, humanCount, uncertainCount int
	var scoreSum float64
	for _, res := range results {
		switch res.Verdict {
		case model.VerdictLikelyAI:
			aiCount++
		case model.VerdictLikelyHuman:
			humanCount++
		default:
			uncertainCount++
		}
		scoreSum += res.AIScore
	}

	total := len(results)
	var consensus model.Consensus
	switch {
	case aiCount == total:
		consensus = model.ConsensusLikelyAI
	case humanCount == total:
		consensus = model.ConsensusLikelyHuman
	case aiCount > 0 && humanCount > 0:
		consensus = model.ConsensusMixed
	default:
		consensus = model.ConsensusUncertain
	}

	majority := max(aiCount, max(humanCount, uncertainCount))

	return model.DetectSummary{
		Consensus:      consensus,
		AgreementRatio: model.Round4(float64(majority) / float64(total)),
		AverageAIScore: model.Round4(scoreSum / float64(total)),
		Disclaimer:     Disclaimer,
	}
}

// Report builds a full detection report from a batch of successful
// results, rounding score fields at the output boundary.
func Report(results []model.DetectionResult) *model.DetectReport {
	rounded := make([]model.DetectionResult, len(results))
	for i, res := range results {
		res.AIScore = model.Round4(res.AIScore)
		res.HumanScore = model.Round4(res.HumanScore)
		rounded[i] = res
	}
	return &model.DetectReport{
		Results: rounded,
		Summary: Summarize(results),
	}
}
