package evaluations_test

import (
	"testing"

	"github.com/talonhq/talon/internal/evaluations"
)

func TestClassify(t *testing.T) {
	const (
		autoShortlist = 80.0
		furtherReview = 50.0
	)

	tests := []struct {
		name  string
		score float64
		want  evaluations.Eligibility
	}{
		{"well above auto shortlist", 95, evaluations.EligibilityAutoShortlist},
		{"exactly auto shortlist", 80, evaluations.EligibilityAutoShortlist},
		{"just below auto shortlist", 79.9, evaluations.EligibilityPotentialMatch},
		{"exactly further review", 50, evaluations.EligibilityPotentialMatch},
		{"just below further review", 49.9, evaluations.EligibilityFurtherReview},
		{"bottom of grace window", 30, evaluations.EligibilityFurtherReview},
		{"below grace window", 29.9, evaluations.EligibilityNotMatched},
		{"zero score", 0, evaluations.EligibilityNotMatched},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluations.Classify(tt.score, autoShortlist, furtherReview)
			if got != tt.want {
				t.Errorf("Classify(%v, %v, %v) = %q, want %q",
					tt.score, autoShortlist, furtherReview, got, tt.want)
			}
		})
	}
}

func TestClassifyMonotonic(t *testing.T) {
	rank := map[evaluations.Eligibility]int{
		evaluations.EligibilityNotMatched:     0,
		evaluations.EligibilityFurtherReview:  1,
		evaluations.EligibilityPotentialMatch: 2,
		evaluations.EligibilityAutoShortlist:  3,
	}

	prev := evaluations.EligibilityNotMatched
	for score := 0.0; score <= 100; score += 0.5 {
		got := evaluations.Classify(score, 80, 50)
		if rank[got] < rank[prev] {
			t.Fatalf("eligibility regressed from %q to %q at score %v", prev, got, score)
		}
		prev = got
	}
}

func TestFlagForReview(t *testing.T) {
	tests := []struct {
		confidence float64
		want       bool
	}{
		{0.0, true},
		{0.59, true},
		{0.6, false},
		{0.9, false},
		{1.0, false},
	}

	for _, tt := range tests {
		if got := evaluations.FlagForReview(tt.confidence); got != tt.want {
			t.Errorf("FlagForReview(%v) = %v, want %v", tt.confidence, got, tt.want)
		}
	}
}
