package model

import "fmt"

// InvisibleChar describes one entry in the invisible character table.
type InvisibleChar struct {
	// Name is the official Unicode character name.
	Name string

	// Category groups the character by its Unicode purpose.
	Category Category

	// Threat estimates how strongly detectors react to the character.
	Threat ThreatLevel
}

// SmartChar describes one entry in the smart character table.
// Smart characters are visible typographic characters with a direct
// ASCII equivalent; they are not removed, only normalized on request.
type SmartChar struct {
	// Replacement is the ASCII text substituted during normalization.
	// It may be more than one character (em dash becomes "--").
	Replacement string

	// Name is the official Unicode character name.
	Name string
}

// invisibleChars maps code points to their classification.
// Threat levels were assigned from experiment data; downstream ordering
// and source inference depend on exact table membership, so entries must
// not be added or removed casually.
//
// Design decision: We use a map keyed by rune rather than range checks
// because the entries are scattered across five Unicode blocks and
// membership must be exact. The map is never mutated after init.
var invisibleChars = map[rune]InvisibleChar{
	// Zero-width characters (most suspicious to detectors)
	'​': {Name: "ZERO WIDTH SPACE", Category: CategoryZeroWidth, Threat: ThreatHigh},
	'‌': {Name: "ZERO WIDTH NON-JOINER", Category: CategoryZeroWidth, Threat: ThreatHigh},
	'‍': {Name: "ZERO WIDTH JOINER", Category: CategoryZeroWidth, Threat: ThreatHigh},
	'⁠': {Name: "WORD JOINER", Category: CategoryZeroWidth, Threat: ThreatHigh},
	'\uFEFF': {Name: "ZERO WIDTH NO-BREAK SPACE / BOM", Category: CategoryZeroWidth, Threat: ThreatHigh},

	// Bidirectional marks
	'‎': {Name: "LEFT-TO-RIGHT MARK", Category: CategoryBidi, Threat: ThreatMedium},
	'‏': {Name: "RIGHT-TO-LEFT MARK", Category: CategoryBidi, Threat: ThreatMedium},
	'‪': {Name: "LEFT-TO-RIGHT EMBEDDING", Category: CategoryBidi, Threat: ThreatMedium},
	'‫': {Name: "RIGHT-TO-LEFT EMBEDDING", Category: CategoryBidi, Threat: ThreatMedium},
	'‬': {Name: "POP DIRECTIONAL FORMATTING", Category: CategoryBidi, Threat: ThreatMedium},
	'‭': {Name: "LEFT-TO-RIGHT OVERRIDE", Category: CategoryBidi, Threat: ThreatMedium},
	'‮': {Name: "RIGHT-TO-LEFT OVERRIDE", Category: CategoryBidi, Threat: ThreatMedium},
	'⁦': {Name: "LEFT-TO-RIGHT ISOLATE", Category: CategoryBidi, Threat: ThreatMedium},
	'⁧': {Name: "RIGHT-TO-LEFT ISOLATE", Category: CategoryBidi, Threat: ThreatMedium},
	'⁨': {Name: "FIRST STRONG ISOLATE", Category: CategoryBidi, Threat: ThreatMedium},
	'⁩': {Name: "POP DIRECTIONAL ISOLATE", Category: CategoryBidi, Threat: ThreatMedium},
	'؜': {Name: "ARABIC LETTER MARK", Category: CategoryBidi, Threat: ThreatMedium},

	// Unusual whitespace
	'­': {Name: "SOFT HYPHEN", Category: CategoryWhitespace, Threat: ThreatLow},
	'᠎': {Name: "MONGOLIAN VOWEL SEPARATOR", Category: CategoryWhitespace, Threat: ThreatMedium},
	' ': {Name: "EN QUAD", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "EM QUAD", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "EN SPACE", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "EM SPACE", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "THREE-PER-EM SPACE", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "FOUR-PER-EM SPACE", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "SIX-PER-EM SPACE", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "FIGURE SPACE", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "PUNCTUATION SPACE", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "THIN SPACE", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "HAIR SPACE", Category: CategoryWhitespace, Threat: ThreatLow},
	' ': {Name: "NARROW NO-BREAK SPACE", Category: CategoryWhitespace, Threat: ThreatLow},

	// Deprecated formatting
	'⁪': {Name: "INHIBIT SYMMETRIC SWAPPING", Category: CategoryDeprecated, Threat: ThreatLow},
	'⁫': {Name: "ACTIVATE SYMMETRIC SWAPPING", Category: CategoryDeprecated, Threat: ThreatLow},
	'⁬': {Name: "INHIBIT ARABIC FORM SHAPING", Category: CategoryDeprecated, Threat: ThreatLow},
	'⁭': {Name: "ACTIVATE ARABIC FORM SHAPING", Category: CategoryDeprecated, Threat: ThreatLow},
	'⁮': {Name: "NATIONAL DIGIT SHAPES", Category: CategoryDeprecated, Threat: ThreatLow},
	'⁯': {Name: "NOMINAL DIGIT SHAPES", Category: CategoryDeprecated, Threat: ThreatLow},

	// Invisible math operators
	'⁡': {Name: "FUNCTION APPLICATION", Category: CategoryInvisibleMath, Threat: ThreatLow},
	'⁢': {Name: "INVISIBLE TIMES", Category: CategoryInvisibleMath, Threat: ThreatLow},
	'⁣': {Name: "INVISIBLE SEPARATOR", Category: CategoryInvisibleMath, Threat: ThreatLow},
	'⁤': {Name: "INVISIBLE PLUS", Category: CategoryInvisibleMath, Threat: ThreatLow},

	// Annotation characters
	'￹': {Name: "INTERLINEAR ANNOTATION ANCHOR", Category: CategoryAnnotation, Threat: ThreatLow},
	'￺': {Name: "INTERLINEAR ANNOTATION SEPARATOR", Category: CategoryAnnotation, Threat: ThreatLow},
	'￻': {Name: "INTERLINEAR ANNOTATION TERMINATOR", Category: CategoryAnnotation, Threat: ThreatLow},

	// Hangul fillers
	'ᅟ': {Name: "HANGUL CHOSEONG FILLER", Category: CategoryFormatting, Threat: ThreatLow},
	'ᅠ': {Name: "HANGUL JUNGSEONG FILLER", Category: CategoryFormatting, Threat: ThreatLow},

	// Khmer inherent vowels
	'឴': {Name: "KHMER VOWEL INHERENT AQ", Category: CategoryFormatting, Threat: ThreatLow},
	'឵': {Name: "KHMER VOWEL INHERENT AA", Category: CategoryFormatting, Threat: ThreatLow},

	// Combining grapheme joiner
	'͏': {Name: "COMBINING GRAPHEME JOINER", Category: CategoryFormatting, Threat: ThreatLow},
}

// smartChars maps typographic characters to their ASCII normalization.
// These are not invisible, but they are stylistic tells of certain
// content-generation pipelines (em dashes, curly quotes).
var smartChars = map[rune]SmartChar{
	'‘': {Replacement: "'", Name: "LEFT SINGLE QUOTATION MARK"},
	'’': {Replacement: "'", Name: "RIGHT SINGLE QUOTATION MARK"},
	'“': {Replacement: `"`, Name: "LEFT DOUBLE QUOTATION MARK"},
	'”': {Replacement: `"`, Name: "RIGHT DOUBLE QUOTATION MARK"},
	'–': {Replacement: "-", Name: "EN DASH"},
	'—': {Replacement: "--", Name: "EM DASH"},
	'…': {Replacement: "...", Name: "HORIZONTAL ELLIPSIS"},
}

// LookupInvisible returns the classification for an invisible character.
// The second return value reports table membership.
func LookupInvisible(r rune) (InvisibleChar, bool) {
	entry, ok := invisibleChars[r]
	return entry, ok
}

// LookupSmart returns the normalization entry for a smart character.
// The second return value reports table membership.
func LookupSmart(r rune) (SmartChar, bool) {
	entry, ok := smartChars[r]
	return entry, ok
}

// CodePointLabel formats a rune as its standard U+XXXX notation.
func CodePointLabel(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}

// InvisibleCharCount returns the number of entries in the invisible table.
func InvisibleCharCount() int {
	return len(invisibleChars)
}

// SmartCharCount returns the number of entries in the smart table.
func SmartCharCount() int {
	return len(smartChars)
}
