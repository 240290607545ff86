package model

import "fmt"

// ThreatLevel represents how strongly a character class correlates with
// AI-detector signals. This allows ranking findings by how likely a
// character is to flip a detector's verdict.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The declaration order doubles
// as the sort rank (high sorts first), so new levels must be inserted with
// care. The String() method provides the wire representation.
type ThreatLevel int

const (
	// ThreatHigh indicates characters that detectors are known to key on.
	// Examples: zero-width spaces and joiners injected by LLM tokenizers.
	ThreatHigh ThreatLevel = iota

	// ThreatMedium indicates characters with a measurable but weaker signal.
	// Examples: bidirectional marks from copy-pasted RTL content.
	ThreatMedium

	// ThreatLow indicates characters that rarely move detector scores.
	// Examples: typographic spaces, deprecated formatting controls.
	ThreatLow

	// ThreatUnknown is the sentinel rank for characters outside the
	// classification table. It sorts after every known level.
	ThreatUnknown
)

// String returns the wire representation of the threat level.
func (t ThreatLevel) String() string {
	switch t {
	case ThreatHigh:
		return "high"
	case ThreatMedium:
		return "medium"
	case ThreatLow:
		return "low"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the threat level as its string form.
func (t ThreatLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON decodes a threat level from its string form.
func (t *ThreatLevel) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"high"`:
		*t = ThreatHigh
	case `"medium"`:
		*t = ThreatMedium
	case `"low"`:
		*t = ThreatLow
	case `"unknown"`:
		*t = ThreatUnknown
	default:
		return fmt.Errorf("unknown threat level: %s", data)
	}
	return nil
}

// Category classifies an invisible character by its Unicode purpose.
// The category drives both the aggregate counts in a scan result and
// the likely-source inference.
type Category string

const (
	// CategoryZeroWidth covers zero-width spaces and joiners.
	CategoryZeroWidth Category = "zero-width"

	// CategoryBidi covers bidirectional marks, embeddings, and isolates.
	CategoryBidi Category = "bidi"

	// CategoryWhitespace covers unusual space characters and the soft hyphen.
	CategoryWhitespace Category = "whitespace"

	// CategoryDeprecated covers deprecated Unicode formatting controls.
	CategoryDeprecated Category = "deprecated"

	// CategoryInvisibleMath covers invisible mathematical operators.
	CategoryInvisibleMath Category = "invisible-math"

	// CategoryAnnotation covers interlinear annotation controls.
	CategoryAnnotation Category = "annotation"

	// CategoryFormatting covers filler characters and grapheme joiners.
	CategoryFormatting Category = "formatting"
)
