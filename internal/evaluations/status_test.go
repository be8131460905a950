package evaluations_test

import (
	"testing"

	"github.com/talonhq/talon/internal/evaluations"
)

func TestStatusCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from evaluations.Status
		to   evaluations.Status
		want bool
	}{
		{"under process to shortlisted", evaluations.StatusUnderProcess, evaluations.StatusShortlisted, true},
		{"under process to rejected", evaluations.StatusUnderProcess, evaluations.StatusRejected, true},
		{"under process to withdrawn", evaluations.StatusUnderProcess, evaluations.StatusWithdrawn, true},
		{"under process skips to interviewing", evaluations.StatusUnderProcess, evaluations.StatusInterviewing, false},
		{"under process skips to hired", evaluations.StatusUnderProcess, evaluations.StatusHired, false},
		{"shortlisted to interviewing", evaluations.StatusShortlisted, evaluations.StatusInterviewing, true},
		{"interviewing to offered", evaluations.StatusInterviewing, evaluations.StatusOffered, true},
		{"offered to hired", evaluations.StatusOffered, evaluations.StatusHired, true},
		{"offered back to shortlisted", evaluations.StatusOffered, evaluations.StatusShortlisted, false},
		{"hired is terminal", evaluations.StatusHired, evaluations.StatusRejected, false},
		{"rejected is terminal", evaluations.StatusRejected, evaluations.StatusShortlisted, false},
		{"withdrawn is terminal", evaluations.StatusWithdrawn, evaluations.StatusUnderProcess, false},
		{"unknown source", evaluations.Status("PAUSED"), evaluations.StatusShortlisted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransition(tt.to); got != tt.want {
				t.Errorf("%s.CanTransition(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestStatusKnown(t *testing.T) {
	known := []evaluations.Status{
		evaluations.StatusUnderProcess,
		evaluations.StatusShortlisted,
		evaluations.StatusInterviewing,
		evaluations.StatusOffered,
		evaluations.StatusHired,
		evaluations.StatusRejected,
		evaluations.StatusWithdrawn,
	}

	for _, s := range known {
		if !s.Known() {
			t.Errorf("%s.Known() = false, want true", s)
		}
	}

	if evaluations.Status("ARCHIVED").Known() {
		t.Error(`Status("ARCHIVED").Known() = true, want false`)
	}
}

func TestStatusTerminal(t *testing.T) {
	tests := []struct {
		status evaluations.Status
		want   bool
	}{
		{evaluations.StatusUnderProcess, false},
		{evaluations.StatusShortlisted, false},
		{evaluations.StatusInterviewing, false},
		{evaluations.StatusOffered, false},
		{evaluations.StatusHired, true},
		{evaluations.StatusRejected, true},
		{evaluations.StatusWithdrawn, true},
		{evaluations.Status("ARCHIVED"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Terminal(); got != tt.want {
			t.Errorf("%s.Terminal() = %v, want %v", tt.status, got, tt.want)
		}
	}
}
