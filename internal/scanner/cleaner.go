package scanner

import (
	"strings"

	"github.com/ghostedhq/ghostscan/internal/model"
)

// Clean walks the code points of text once and strips every invisible
// character. When normalizeSmartChars is true, smart characters are
// replaced by their ASCII equivalents instead of being copied through;
// the replacement may be longer than one character (em dash becomes
// "--"). CharsRemoved counts source characters consumed, not characters
// emitted.
func Clean(text string, normalizeSmartChars bool) *model.CleanResult {
	var out strings.Builder
	out.Grow(len(text))

	removedCounts := make(map[rune]int)
	var removedOrder []rune

	tally := func(r rune) {
		if removedCounts[r] == 0 {
			removedOrder = append(removedOrder, r)
		}
		removedCounts[r]++
	}

	originalLength := 0
	cleanedLength := 0
	for _, r := range text {
		originalLength++

		if _, ok := model.LookupInvisible(r); ok {
			tally(r)
			continue
		}
		if normalizeSmartChars {
			if entry, ok := model.LookupSmart(r); ok {
				tally(r)
				out.WriteString(entry.Replacement)
				cleanedLength += len([]rune(entry.Replacement))
				continue
			}
		}
		out.WriteRune(r)
		cleanedLength++
	}

	// One ledger entry per distinct code point, ordered by first
	// occurrence in the input.
	removals := make([]model.RemovalEntry, 0, len(removedOrder))
	charsRemoved := 0
	for _, r := range removedOrder {
		name := "UNKNOWN"
		if entry, ok := model.LookupInvisible(r); ok {
			name = entry.Name
		} else if entry, ok := model.LookupSmart(r); ok {
			name = entry.Name
		}
		count := removedCounts[r]
		charsRemoved += count
		removals = append(removals, model.RemovalEntry{
			Char:  model.CodePointLabel(r),
			Name:  name,
			Count: count,
		})
	}

	return &model.CleanResult{
		CleanedText:    out.String(),
		OriginalLength: originalLength,
		CleanedLength:  cleanedLength,
		CharsRemoved:   charsRemoved,
		Removals:       removals,
	}
}
