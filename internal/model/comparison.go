package model

// Reliability classifies whether a detector score change between the
// original and cleaned text is attributable to byte-level artifacts or
// to genuine content analysis.
type Reliability string

const (
	// ReliabilityBytePattern means at least one detector changed verdict,
	// or scores shifted measurably, after removing invisible characters.
	ReliabilityBytePattern Reliability = "byte_pattern_dependent"

	// ReliabilityContentBased means scores stayed stable after cleaning.
	ReliabilityContentBased Reliability = "content_based"

	// ReliabilityInconclusive means nothing was removed or no detectors
	// produced comparable results.
	ReliabilityInconclusive Reliability = "inconclusive"
)

// VerdictChange records one detector flipping its verdict between the
// original and cleaned text.
type VerdictChange struct {
	Detector      string  `json:"detector"`
	BeforeVerdict Verdict `json:"before_verdict"`
	AfterVerdict  Verdict `json:"after_verdict"`
	BeforeAIScore float64 `json:"before_ai_score"`
	AfterAIScore  float64 `json:"after_ai_score"`
	ScoreDelta    float64 `json:"score_delta"`
}

// ScoreDelta records one detector's score movement between the original
// and cleaned text. Delta is cleaned score minus original score.
type ScoreDelta struct {
	Detector string  `json:"detector"`
	Delta    float64 `json:"delta"`
}

// Comparison is the diff between detection runs on the original and
// cleaned text.
type Comparison struct {
	// CharsRemoved is the number of characters the cleaner removed.
	CharsRemoved int `json:"chars_removed"`

	// VerdictChanges lists detectors whose verdict flipped after
	// cleaning. Detectors missing from either run are excluded.
	VerdictChanges []VerdictChange `json:"detectors_that_changed_verdict"`

	// ScoreDeltas lists the score movement of every detector present
	// in both runs.
	ScoreDeltas []ScoreDelta `json:"score_deltas"`

	// Insight is a human-readable interpretation of the diff.
	Insight string `json:"insight"`

	// Reliability classifies the detectors' sensitivity to byte patterns.
	Reliability Reliability `json:"reliability_assessment"`
}

// CompareReport is the complete before/after comparison: the scan of the
// original text, both detection runs, and the diff.
type CompareReport struct {
	Scan              *ScanResult   `json:"scan"`
	OriginalDetection *DetectReport `json:"original_detection"`
	CleanedDetection  *DetectReport `json:"cleaned_detection"`
	Comparison        *Comparison   `json:"comparison"`
	Disclaimer        string        `json:"disclaimer"`
}
