package hiringforms_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/talonhq/talon/internal/hiringforms"
)

func validCommand() hiringforms.CreateCommand {
	return hiringforms.CreateCommand{
		Title:                  "Backend Engineer",
		Industry:               "technology",
		Requirements:           "Go, PostgreSQL, 5 years experience",
		CutoffThreshold:        70,
		AutoShortlistThreshold: 85,
		InterviewStages:        3,
		EvaluationCategories: []hiringforms.Category{
			{Name: "Technical Skills", Weight: 60},
			{Name: "Experience", Weight: 40},
		},
	}
}

func TestCreateCommandValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*hiringforms.CreateCommand)
		wantErr error
	}{
		{
			name:   "valid command",
			mutate: func(c *hiringforms.CreateCommand) {},
		},
		{
			name:    "missing title",
			mutate:  func(c *hiringforms.CreateCommand) { c.Title = "" },
			wantErr: hiringforms.ErrMissingTitle,
		},
		{
			name: "auto shortlist below cutoff",
			mutate: func(c *hiringforms.CreateCommand) {
				c.AutoShortlistThreshold = 60
			},
			wantErr: hiringforms.ErrInvalidThresholds,
		},
		{
			name: "equal thresholds allowed",
			mutate: func(c *hiringforms.CreateCommand) {
				c.AutoShortlistThreshold = 70
			},
		},
		{
			name: "no categories",
			mutate: func(c *hiringforms.CreateCommand) {
				c.EvaluationCategories = nil
			},
			wantErr: hiringforms.ErrInvalidWeights,
		},
		{
			name: "unnamed category",
			mutate: func(c *hiringforms.CreateCommand) {
				c.EvaluationCategories[0].Name = ""
			},
			wantErr: hiringforms.ErrInvalidWeights,
		},
		{
			name: "negative weight",
			mutate: func(c *hiringforms.CreateCommand) {
				c.EvaluationCategories[0].Weight = -10
			},
			wantErr: hiringforms.ErrInvalidWeights,
		},
		{
			name: "weights under 100",
			mutate: func(c *hiringforms.CreateCommand) {
				c.EvaluationCategories[1].Weight = 30
			},
			wantErr: hiringforms.ErrInvalidWeights,
		},
		{
			name: "weights over 100",
			mutate: func(c *hiringforms.CreateCommand) {
				c.EvaluationCategories[1].Weight = 50
			},
			wantErr: hiringforms.ErrInvalidWeights,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validCommand()
			tt.mutate(&cmd)

			err := cmd.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", hiringforms.ErrNotFound, http.StatusNotFound},
		{"duplicate", hiringforms.ErrDuplicate, http.StatusConflict},
		{"missing title", hiringforms.ErrMissingTitle, http.StatusBadRequest},
		{"invalid thresholds", hiringforms.ErrInvalidThresholds, http.StatusBadRequest},
		{"invalid weights", hiringforms.ErrInvalidWeights, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hiringforms.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
