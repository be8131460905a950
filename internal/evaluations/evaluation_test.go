package evaluations_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/talonhq/talon/internal/evaluations"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", evaluations.ErrNotFound, http.StatusNotFound},
		{"resume not found", evaluations.ErrResumeNotFound, http.StatusNotFound},
		{"form not found", evaluations.ErrFormNotFound, http.StatusNotFound},
		{"duplicate", evaluations.ErrDuplicate, http.StatusConflict},
		{"invalid transition", evaluations.ErrInvalidTransition, http.StatusConflict},
		{"resume not approved", evaluations.ErrResumeNotApproved, http.StatusConflict},
		{"unknown status", evaluations.ErrUnknownStatus, http.StatusBadRequest},
		{"missing reason", evaluations.ErrMissingReason, http.StatusBadRequest},
		{"invalid round", evaluations.ErrInvalidRound, http.StatusBadRequest},
		{"bad recommendation", evaluations.ErrBadRecommendation, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", evaluations.ErrNotFound), http.StatusNotFound},
		{"wrapped duplicate", fmt.Errorf("insert failed: %w", evaluations.ErrDuplicate), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluations.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRecommendationValid(t *testing.T) {
	valid := []evaluations.Recommendation{
		evaluations.RecommendStrongHire,
		evaluations.RecommendHire,
		evaluations.RecommendBorderline,
		evaluations.RecommendNoHire,
		evaluations.RecommendStrongNoHire,
	}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("%s.Valid() = false, want true", r)
		}
	}

	if evaluations.Recommendation("maybe").Valid() {
		t.Error(`Recommendation("maybe").Valid() = true, want false`)
	}
	if evaluations.Recommendation("").Valid() {
		t.Error(`empty Recommendation.Valid() = true, want false`)
	}
}

func TestValidRound(t *testing.T) {
	for _, round := range []string{"phone_screen", "technical", "behavioral", "final"} {
		if !evaluations.ValidRound(round) {
			t.Errorf("ValidRound(%q) = false, want true", round)
		}
	}

	for _, round := range []string{"onsite", "PHONE_SCREEN", ""} {
		if evaluations.ValidRound(round) {
			t.Errorf("ValidRound(%q) = true, want false", round)
		}
	}
}
