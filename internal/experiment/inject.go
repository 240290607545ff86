package experiment

import (
	"hash/fnv"
	"math/rand"
	"strings"
)

// Tested character codes. CodeSmartQuotes and CodeMix get special
// injection handling; the rest map to a single rune.
const (
	CodeZeroWidthSpace     = "U+200B"
	CodeZeroWidthNonJoiner = "U+200C"
	CodeZeroWidthJoiner    = "U+200D"
	CodeBOM                = "U+FEFF"
	CodeWordJoiner         = "U+2060"
	CodeSmartQuotes        = "U+201C/D"
	CodeEmDash             = "U+2014"
	CodeMix                = "MIX"
)

// TestChars lists the character codes the experiment injects, in run
// order.
var TestChars = []string{
	CodeZeroWidthSpace,
	CodeZeroWidthNonJoiner,
	CodeZeroWidthJoiner,
	CodeBOM,
	CodeWordJoiner,
	CodeSmartQuotes,
	CodeEmDash,
	CodeMix,
}

// charNames maps tested codes to display names for the artifact.
var charNames = map[string]string{
	CodeZeroWidthSpace:     "ZERO WIDTH SPACE",
	CodeZeroWidthNonJoiner: "ZERO WIDTH NON-JOINER",
	CodeZeroWidthJoiner:    "ZERO WIDTH JOINER",
	CodeBOM:                "ZERO WIDTH NO-BREAK SPACE / BOM",
	CodeWordJoiner:         "WORD JOINER",
	CodeSmartQuotes:        "SMART QUOTES",
	CodeEmDash:             "EM DASH",
	CodeMix:                "MIXED ZERO-WIDTH CHARACTERS",
}

// injectRunes maps single-rune codes to the rune they inject.
var injectRunes = map[string]rune{
	CodeZeroWidthSpace:     '​',
	CodeZeroWidthNonJoiner: '‌',
	CodeZeroWidthJoiner:    '‍',
	CodeBOM:                '\uFEFF',
	CodeWordJoiner:         '⁠',
	CodeEmDash:             '—',
}

// mixRunes is the pool CodeMix draws from.
var mixRunes = []rune{'​', '‌', '‍', '\uFEFF', '⁠'}

// Densities lists the injection density levels, in run order.
// DensityOneChar inserts exactly one character at a word boundary; the
// percentage levels insert chars proportional to the text length.
var Densities = []string{DensityOneChar, "1%", "3%", "5%"}

// DensityOneChar is the single-character density level.
const DensityOneChar = "1_char"

// variantSeed derives a deterministic RNG seed for one injection
// variant so experiment runs are reproducible.
func variantSeed(sampleID, charCode, density string) int64 {
	h := fnv.New64a()
	h.Write([]byte(sampleID))
	h.Write([]byte(charCode))
	h.Write([]byte(density))
	return 42 + int64(h.Sum64())
}

// Inject returns text with charCode injected at the given density,
// using rng for position selection.
func Inject(rng *rand.Rand, text, charCode, density string) string {
	runes := []rune(text)

	if density == DensityOneChar {
		// Single character at a random word boundary.
		var spaces []int
		for i, r := range runes {
			if r == ' ' {
				spaces = append(spaces, i)
			}
		}
		if len(spaces) == 0 {
			return text
		}
		pos := spaces[rng.Intn(len(spaces))]
		return string(runes[:pos]) + string(pickRune(rng, charCode)) + string(runes[pos:])
	}

	pct := densityPercent(density)
	numChars := int(float64(len(runes)) * pct)
	if numChars < 1 {
		numChars = 1
	}

	if charCode == CodeSmartQuotes {
		return injectSmartQuotes(rng, text, numChars)
	}

	if numChars > len(runes) {
		numChars = len(runes)
	}

	// Insert at distinct random positions, rightmost first so earlier
	// insertions do not shift later ones.
	positions := rng.Perm(len(runes))[:numChars]
	sortDescending(positions)

	out := runes
	for _, pos := range positions {
		r := pickRune(rng, charCode)
		out = append(out[:pos], append([]rune{r}, out[pos:]...)...)
	}
	return string(out)
}

// densityPercent parses a density level like "3%" into a fraction.
func densityPercent(density string) float64 {
	switch density {
	case "1%":
		return 0.01
	case "3%":
		return 0.03
	case "5%":
		return 0.05
	default:
		return 0
	}
}

// pickRune resolves a character code to the rune to inject. CodeMix
// draws a random zero-width rune per insertion.
func pickRune(rng *rand.Rand, charCode string) rune {
	if charCode == CodeMix {
		return mixRunes[rng.Intn(len(mixRunes))]
	}
	if r, ok := injectRunes[charCode]; ok {
		return r
	}
	return '​'
}

// injectSmartQuotes replaces ASCII quotes with typographic ones, then
// inserts smart quotes at random positions if the text had too few
// quotes to reach the requested count.
func injectSmartQuotes(rng *rand.Rand, text string, count int) string {
	result := text
	replaced := 0

	for _, pair := range [][2]string{{`"`, "“"}, {"'", "‘"}} {
		for strings.Contains(result, pair[0]) && replaced < count {
			result = strings.Replace(result, pair[0], pair[1], 1)
			replaced++
		}
	}

	for replaced < count {
		runes := []rune(result)
		pos := rng.Intn(len(runes) + 1)
		quote := '“'
		if rng.Intn(2) == 1 {
			quote = '”'
		}
		result = string(runes[:pos]) + string(quote) + string(runes[pos:])
		replaced++
	}

	return result
}

// sortDescending sorts ints high to low in place. The slices are tiny,
// so insertion sort is fine.
func sortDescending(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] > s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
}
