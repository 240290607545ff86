package model

import "math"

// Verdict is a detector's three-way classification of text origin.
type Verdict string

const (
	// VerdictLikelyHuman means the detector scored the text at or below
	// the human threshold.
	VerdictLikelyHuman Verdict = "likely_human"

	// VerdictLikelyAI means the detector scored the text at or above
	// the AI threshold.
	VerdictLikelyAI Verdict = "likely_ai"

	// VerdictUncertain means the score fell between the thresholds.
	VerdictUncertain Verdict = "uncertain"
)

// Verdict classification thresholds, applied uniformly to every detector.
const (
	// AIScoreThreshold is the minimum ai_score for a likely_ai verdict.
	AIScoreThreshold = 0.7

	// HumanScoreThreshold is the maximum ai_score for a likely_human verdict.
	HumanScoreThreshold = 0.3
)

// VerdictFromScore maps an AI probability to a verdict using the shared
// thresholds. Every detector applies this rule so verdicts are comparable
// across providers.
func VerdictFromScore(aiScore float64) Verdict {
	switch {
	case aiScore >= AIScoreThreshold:
		return VerdictLikelyAI
	case aiScore <= HumanScoreThreshold:
		return VerdictLikelyHuman
	default:
		return VerdictUncertain
	}
}

// Consensus is the aggregate verdict across all successful detectors.
type Consensus string

const (
	// ConsensusLikelyAI means every detector returned likely_ai.
	ConsensusLikelyAI Consensus = "likely_ai"

	// ConsensusLikelyHuman means every detector returned likely_human.
	ConsensusLikelyHuman Consensus = "likely_human"

	// ConsensusMixed means both likely_ai and likely_human verdicts
	// were present.
	ConsensusMixed Consensus = "mixed"

	// ConsensusUncertain means no decisive split exists: either every
	// verdict was uncertain or there were no results at all.
	ConsensusUncertain Consensus = "uncertain"
)

// DetectionMethod identifies how a detector reaches its score.
type DetectionMethod string

const (
	// MethodClassifier marks detectors backed by a trained classifier API
	// returning a scalar score.
	MethodClassifier DetectionMethod = "classifier"

	// MethodLLMAnalysis marks detectors that prompt a large language model
	// to judge the text.
	MethodLLMAnalysis DetectionMethod = "llm_analysis"
)

// SentenceScore is a per-sentence AI probability, reported by detectors
// that support sentence-level scoring.
type SentenceScore struct {
	Sentence string  `json:"sentence"`
	Score    float64 `json:"score"`
}

// DetectionResult is one detector's judgement of one text.
// Results are ephemeral: produced per call and never persisted.
type DetectionResult struct {
	// Detector is the stable detector identifier (e.g. "sapling").
	Detector string `json:"detector"`

	// DetectorName is the human-readable detector name.
	DetectorName string `json:"detector_name"`

	// Verdict is the three-way classification derived from AIScore.
	Verdict Verdict `json:"verdict"`

	// AIScore is the probability in [0,1] that the text is AI-generated.
	AIScore float64 `json:"ai_score"`

	// HumanScore is always 1 - AIScore.
	HumanScore float64 `json:"human_score"`

	// Method identifies the detection approach.
	Method DetectionMethod `json:"method"`

	// Note carries provider-specific commentary (markers found,
	// model caveats).
	Note string `json:"note"`

	// SentenceScores holds per-sentence scores when the provider
	// supports them, nil otherwise.
	SentenceScores []SentenceScore `json:"sentence_scores,omitempty"`
}

// DetectSummary aggregates the successful results of one detection batch.
type DetectSummary struct {
	// Consensus is the aggregate verdict.
	Consensus Consensus `json:"consensus"`

	// AgreementRatio is the size of the largest single-verdict group
	// divided by the number of successful results, 0 when empty.
	AgreementRatio float64 `json:"agreement_ratio"`

	// AverageAIScore is the arithmetic mean ai_score, 0 when empty.
	AverageAIScore float64 `json:"average_ai_score"`

	// Disclaimer reminds readers that detection is probabilistic.
	Disclaimer string `json:"disclaimer"`
}

// DetectReport is a full detection response: individual results plus
// their summary.
type DetectReport struct {
	Results []DetectionResult `json:"results"`
	Summary DetectSummary     `json:"summary"`
}

// Round4 rounds a float to 4 decimal places. Report fields are rounded
// only at the output boundary; internal computation keeps full precision.
func Round4(f float64) float64 {
	return math.Round(f*10000) / 10000
}
