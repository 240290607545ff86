package model

import "testing"

func TestVerdictFromScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  Verdict
	}{
		{0.0, VerdictLikelyHuman},
		{0.3, VerdictLikelyHuman},
		{0.31, VerdictUncertain},
		{0.5, VerdictUncertain},
		{0.69, VerdictUncertain},
		{0.7, VerdictLikelyAI},
		{1.0, VerdictLikelyAI},
	}
	for _, tt := range tests {
		if got := VerdictFromScore(tt.score); got != tt.want {
			t.Errorf("VerdictFromScore(%v): expected %q, got %q", tt.score, tt.want, got)
		}
	}
}

func TestRound4(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want float64
	}{
		{0.123456, 0.1235},
		{0.12344, 0.1234},
		{-0.98765, -0.9877},
		{0, 0},
		{1, 1},
	}
	for _, tt := range tests {
		if got := Round4(tt.in); got != tt.want {
			t.Errorf("Round4(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
