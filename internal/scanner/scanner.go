package scanner

import (
	"sort"

	"github.com/ghostedhq/ghostscan/internal/model"
)

// Likely-source explanations shown to users. The inference rule that
// selects them is deterministic and evaluated in priority order, so the
// wording here is part of the scan contract.
const (
	explanationNone = "No invisible characters detected. Your text is clean."

	explanationTokenizer = "Zero-width characters found. These are commonly inserted by AI language model " +
		"tokenizers (especially ChatGPT's newer models) and are invisible to the naked eye. " +
		"AI detection tools may use these as signals, potentially causing false positives."

	explanationCopyPaste = "Bidirectional marks found. These typically come from copying text that includes " +
		"right-to-left language content or from certain web pages and document editors."

	explanationFormatting = "Unusual whitespace or formatting characters found. These may come from " +
		"copy-pasting from formatted documents, web pages, or specific text editors."
)

// Scan walks the code points of text once and reports every invisible
// character it finds, grouped by code point and ordered by threat level
// and count. When includeSmartChars is true the result also carries
// smart character findings; the slice is empty (not nil) when none are
// present, and nil when smart scanning was not requested.
func Scan(text string, includeSmartChars bool) *model.ScanResult {
	// Positions are 0-based code point offsets. Iterating with range
	// over the string yields byte offsets, so we track the rune index
	// separately.
	positionsByRune := make(map[rune][]int)
	var runeOrder []rune
	smartCounts := make(map[rune]int)
	var smartOrder []rune

	idx := 0
	for _, r := range text {
		if _, ok := model.LookupInvisible(r); ok {
			if _, seen := positionsByRune[r]; !seen {
				runeOrder = append(runeOrder, r)
			}
			positionsByRune[r] = append(positionsByRune[r], idx)
		} else if includeSmartChars {
			if _, ok := model.LookupSmart(r); ok {
				if smartCounts[r] == 0 {
					smartOrder = append(smartOrder, r)
				}
				smartCounts[r]++
			}
		}
		idx++
	}
	charCount := idx

	// One finding per distinct code point, positions capped but counts
	// authoritative. Building in first-seen order makes the final sort
	// tiebreak deterministic.
	findings := make([]model.CharFinding, 0, len(runeOrder))
	for _, r := range runeOrder {
		positions := positionsByRune[r]
		entry, _ := model.LookupInvisible(r)

		capped := positions
		if len(capped) > model.MaxPositions {
			capped = capped[:model.MaxPositions]
		}

		findings = append(findings, model.CharFinding{
			Char:      model.CodePointLabel(r),
			Name:      entry.Name,
			Category:  entry.Category,
			Threat:    entry.Threat,
			Count:     len(positions),
			Positions: capped,
		})
	}

	// Sort by threat rank (high first), then count descending. The sort
	// is stable, so equal pairs keep first-seen order.
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Threat != findings[j].Threat {
			return findings[i].Threat < findings[j].Threat
		}
		return findings[i].Count > findings[j].Count
	})

	categories := make(map[model.Category]int)
	total := 0
	for _, f := range findings {
		categories[f.Category] += f.Count
		total += f.Count
	}

	var smartFindings []model.SmartCharFinding
	if includeSmartChars {
		smartFindings = make([]model.SmartCharFinding, 0, len(smartOrder))
		for _, r := range smartOrder {
			entry, _ := model.LookupSmart(r)
			smartFindings = append(smartFindings, model.SmartCharFinding{
				Char:        model.CodePointLabel(r),
				Name:        entry.Name,
				Count:       smartCounts[r],
				Replacement: entry.Replacement,
			})
		}
	}

	return &model.ScanResult{
		HasInvisibleChars:   total > 0,
		TotalInvisibleCount: total,
		CharCount:           charCount,
		Categories:          categories,
		Findings:            findings,
		SmartChars:          smartFindings,
		Context:             inferContext(total, categories),
	}
}

// inferContext guesses where the found characters came from. The rules
// are evaluated in priority order: zero-width beats bidi beats anything
// else, because zero-width injection is the strongest tokenizer signal.
func inferContext(total int, categories map[model.Category]int) model.ScanContext {
	switch {
	case total == 0:
		return model.ScanContext{
			Explanation:  explanationNone,
			LikelySource: model.SourceNone,
		}
	case categories[model.CategoryZeroWidth] > 0:
		return model.ScanContext{
			Explanation:  explanationTokenizer,
			LikelySource: model.SourceTokenizerArtifact,
		}
	case categories[model.CategoryBidi] > 0:
		return model.ScanContext{
			Explanation:  explanationCopyPaste,
			LikelySource: model.SourceCopyPaste,
		}
	default:
		return model.ScanContext{
			Explanation:  explanationFormatting,
			LikelySource: model.SourceFormatting,
		}
	}
}
