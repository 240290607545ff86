package model

// MaxPositions caps the number of positions recorded per finding.
// The count field remains authoritative; positions is a sample of the
// first occurrences, kept bounded so responses stay a sane size.
const MaxPositions = 50

// LikelySource identifies the most probable origin of the invisible
// characters found in a text.
type LikelySource string

const (
	// SourceNone means no invisible characters were found.
	SourceNone LikelySource = "none"

	// SourceTokenizerArtifact means zero-width characters were found,
	// the signature of LLM tokenizer injection.
	SourceTokenizerArtifact LikelySource = "tokenizer_artifact"

	// SourceCopyPaste means bidirectional marks were found without any
	// zero-width characters, typical of copied RTL or web content.
	SourceCopyPaste LikelySource = "copy_paste"

	// SourceFormatting means only whitespace or formatting characters
	// were found, typical of document editors.
	SourceFormatting LikelySource = "formatting"
)

// CharFinding reports all occurrences of one invisible code point.
type CharFinding struct {
	// Char is the code point in U+XXXX notation.
	Char string `json:"char"`

	// Name is the official Unicode character name.
	Name string `json:"name"`

	// Category groups the character by its Unicode purpose.
	Category Category `json:"category"`

	// Threat estimates how strongly detectors react to the character.
	Threat ThreatLevel `json:"threat_level"`

	// Count is the total number of occurrences in the scanned text.
	// It is authoritative even when Positions is truncated.
	Count int `json:"count"`

	// Positions holds 0-based code point offsets of the first occurrences,
	// capped at MaxPositions entries.
	Positions []int `json:"positions"`
}

// SmartCharFinding reports all occurrences of one smart character.
type SmartCharFinding struct {
	// Char is the code point in U+XXXX notation.
	Char string `json:"char"`

	// Name is the official Unicode character name.
	Name string `json:"name"`

	// Count is the total number of occurrences in the scanned text.
	Count int `json:"count"`

	// Replacement is the ASCII text normalization would substitute.
	Replacement string `json:"replacement"`
}

// ScanContext explains where the found characters likely came from.
type ScanContext struct {
	// Explanation is a human-readable description of the inference.
	Explanation string `json:"explanation"`

	// LikelySource is the machine-readable origin classification.
	LikelySource LikelySource `json:"likely_source"`
}

// ScanResult is the outcome of scanning a text for invisible characters.
type ScanResult struct {
	// HasInvisibleChars is true when at least one invisible character
	// was found.
	HasInvisibleChars bool `json:"has_invisible_chars"`

	// TotalInvisibleCount is the sum of all finding counts, counting
	// every occurrence rather than distinct code points.
	TotalInvisibleCount int `json:"total_invisible_count"`

	// CharCount is the length of the input in code points, not bytes.
	CharCount int `json:"char_count"`

	// Categories maps each category to its total occurrence count.
	Categories map[Category]int `json:"categories"`

	// Findings lists one entry per distinct invisible code point,
	// ordered by threat level (high first) and then count descending.
	Findings []CharFinding `json:"findings"`

	// SmartChars lists smart character findings when requested.
	// It is nil when smart scanning was not requested and an empty
	// slice when requested but nothing was found.
	SmartChars []SmartCharFinding `json:"smart_chars"`

	// Context carries the likely-source inference.
	Context ScanContext `json:"context"`
}

// RemovalEntry records the removals of one distinct code point.
type RemovalEntry struct {
	// Char is the code point in U+XXXX notation.
	Char string `json:"char"`

	// Name is the official Unicode character name.
	Name string `json:"name"`

	// Count is the number of source characters removed or replaced.
	Count int `json:"count"`
}

// CleanResult is the outcome of removing invisible characters from a text.
type CleanResult struct {
	// CleanedText is the input with invisible characters removed and,
	// when requested, smart characters normalized to ASCII.
	CleanedText string `json:"cleaned_text"`

	// OriginalLength is the input length in code points.
	OriginalLength int `json:"original_length"`

	// CleanedLength is the output length in code points. Smart character
	// replacement may emit more characters than it consumes, so this is
	// not always OriginalLength minus CharsRemoved.
	CleanedLength int `json:"cleaned_length"`

	// CharsRemoved is the number of source characters removed or
	// replaced, summed across all removal entries.
	CharsRemoved int `json:"chars_removed"`

	// Removals lists one entry per distinct removed or replaced code
	// point, ordered by first occurrence in the input.
	Removals []RemovalEntry `json:"removals"`
}
