package resumes_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/talonhq/talon/internal/resumes"
)

func TestParseStatusReviewable(t *testing.T) {
	tests := []struct {
		status resumes.ParseStatus
		want   bool
	}{
		{resumes.ParsePending, true},
		{resumes.ParseEdited, true},
		{resumes.ParseApproved, false},
		{resumes.ParseRejected, false},
		{resumes.ParseStatus("unknown"), false},
	}

	for _, tt := range tests {
		if got := tt.status.Reviewable(); got != tt.want {
			t.Errorf("%s.Reviewable() = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", resumes.ErrNotFound, http.StatusNotFound},
		{"duplicate", resumes.ErrDuplicate, http.StatusConflict},
		{"not reviewable", resumes.ErrNotReviewable, http.StatusConflict},
		{"not approved", resumes.ErrNotApproved, http.StatusConflict},
		{"missing file", resumes.ErrMissingFile, http.StatusBadRequest},
		{"empty text", resumes.ErrEmptyText, http.StatusBadRequest},
		{"missing reason", resumes.ErrMissingReason, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", resumes.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resumes.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
