package experiment

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/ghostedhq/ghostscan/internal/scanner"
)

const injectSample = "The quick brown fox jumps over the lazy dog near the river bank today."

func newRNG(sampleID, charCode, density string) *rand.Rand {
	return rand.New(rand.NewSource(variantSeed(sampleID, charCode, density)))
}

func TestInject_deterministic(t *testing.T) {
	t.Parallel()

	a := Inject(newRNG("s1", CodeZeroWidthSpace, "3%"), injectSample, CodeZeroWidthSpace, "3%")
	b := Inject(newRNG("s1", CodeZeroWidthSpace, "3%"), injectSample, CodeZeroWidthSpace, "3%")

	if a != b {
		t.Error("same seed should produce identical injections")
	}
}

func TestInject_oneChar(t *testing.T) {
	t.Parallel()

	injected := Inject(newRNG("s1", CodeZeroWidthSpace, DensityOneChar), injectSample, CodeZeroWidthSpace, DensityOneChar)

	if got := strings.Count(injected, "​"); got != 1 {
		t.Errorf("zero width space count = %d, want 1", got)
	}
	if len([]rune(injected)) != len([]rune(injectSample))+1 {
		t.Errorf("length should grow by exactly one rune")
	}
}

func TestInject_oneChar_noSpaces(t *testing.T) {
	t.Parallel()

	injected := Inject(newRNG("s1", CodeZeroWidthSpace, DensityOneChar), "nospaceshere", CodeZeroWidthSpace, DensityOneChar)

	if injected != "nospaceshere" {
		t.Errorf("text without word boundaries should pass through unchanged, got %q", injected)
	}
}

func TestInject_percentageDensity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		density string
		want    int
	}{
		{"1%", 1}, // 70 runes * 0.01 truncates to 0, floored to 1
		{"3%", 2},
		{"5%", 3},
	}

	for _, tt := range tests {
		t.Run(tt.density, func(t *testing.T) {
			t.Parallel()

			injected := Inject(newRNG("s1", CodeZeroWidthSpace, tt.density), injectSample, CodeZeroWidthSpace, tt.density)
			if got := strings.Count(injected, "​"); got != tt.want {
				t.Errorf("injected count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInject_cleaningRecoversOriginal(t *testing.T) {
	t.Parallel()

	for _, charCode := range []string{CodeZeroWidthSpace, CodeZeroWidthNonJoiner, CodeBOM, CodeWordJoiner, CodeMix} {
		t.Run(charCode, func(t *testing.T) {
			t.Parallel()

			injected := Inject(newRNG("s1", charCode, "5%"), injectSample, charCode, "5%")
			cleaned := scanner.Clean(injected, false)

			if cleaned.CleanedText != injectSample {
				t.Errorf("cleaning injected text should recover the original, got %q", cleaned.CleanedText)
			}
		})
	}
}

func TestInject_mixUsesOnlyZeroWidthRunes(t *testing.T) {
	t.Parallel()

	injected := Inject(newRNG("s1", CodeMix, "5%"), injectSample, CodeMix, "5%")

	allowed := map[rune]bool{'​': true, '‌': true, '‍': true, '\uFEFF': true, '⁠': true}
	extra := 0
	for _, r := range injected {
		if allowed[r] {
			extra++
		}
	}
	if extra != 3 { // 70 runes * 0.05 = 3
		t.Errorf("mix injected %d zero-width runes, want 3", extra)
	}
}

func TestInject_smartQuotesReplacesASCIIQuotesFirst(t *testing.T) {
	t.Parallel()

	text := `She said "hello" and left.`
	injected := Inject(newRNG("s1", CodeSmartQuotes, "5%"), text, CodeSmartQuotes, "5%")

	if !strings.ContainsRune(injected, '“') {
		t.Errorf("expected a left smart quote in %q", injected)
	}
	if strings.Count(injected, `"`) >= strings.Count(text, `"`) {
		t.Errorf("expected ASCII quotes to be consumed, got %q", injected)
	}
}

func TestVariantSeed_distinct(t *testing.T) {
	t.Parallel()

	a := variantSeed("s1", CodeZeroWidthSpace, "1%")
	b := variantSeed("s1", CodeZeroWidthSpace, "3%")
	c := variantSeed("s2", CodeZeroWidthSpace, "1%")

	if a == b || a == c {
		t.Error("different variants should derive different seeds")
	}
}

func TestSamples_corpusShape(t *testing.T) {
	t.Parallel()

	got := Samples()
	if len(got) != 20 {
		t.Fatalf("corpus size = %d, want 20", len(got))
	}

	seen := make(map[string]bool, len(got))
	categories := make(map[string]int)
	for _, s := range got {
		if s.Text == "" {
			t.Errorf("sample %s has empty text", s.ID)
		}
		if seen[s.ID] {
			t.Errorf("duplicate sample id %s", s.ID)
		}
		seen[s.ID] = true
		categories[s.Category]++
	}

	for _, cat := range []string{"academic", "casual", "creative", "technical"} {
		if categories[cat] != 5 {
			t.Errorf("category %s has %d samples, want 5", cat, categories[cat])
		}
	}
}
