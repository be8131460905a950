// Package hiringforms implements the hiring form domain for Talon.
// A hiring form defines a position's requirements, weighted evaluation
// categories, and scoring thresholds. Evaluations are always scored
// against a specific form.
package hiringforms

import (
	"time"

	"github.com/google/uuid"
)

// Category is a weighted scoring dimension on a hiring form.
// Weights across a form's categories must sum to 100.
type Category struct {
	Name        string  `json:"name"`
	Weight      int     `json:"weight"`
	Description *string `json:"description,omitempty"`
}

// HiringForm represents a position definition that resumes are evaluated against.
type HiringForm struct {
	ID                     uuid.UUID  `json:"id"`
	Title                  string     `json:"title"`
	Industry               string     `json:"industry"`
	Requirements           string     `json:"requirements"`
	EvaluationCategories   []Category `json:"evaluation_categories"`
	CutoffThreshold        float64    `json:"cutoff_threshold"`
	AutoShortlistThreshold float64    `json:"auto_shortlist_threshold"`
	InterviewStages        int        `json:"interview_stages"`
	Active                 bool       `json:"active"`
	UsageCount             int        `json:"usage_count"`
	LastUsedAt             *time.Time `json:"last_used_at,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// CreateCommand carries the data needed to create a new hiring form.
type CreateCommand struct {
	Title                  string     `json:"title"`
	Industry               string     `json:"industry"`
	Requirements           string     `json:"requirements"`
	EvaluationCategories   []Category `json:"evaluation_categories"`
	CutoffThreshold        float64    `json:"cutoff_threshold"`
	AutoShortlistThreshold float64    `json:"auto_shortlist_threshold"`
	InterviewStages        int        `json:"interview_stages"`
}

// Validate checks threshold ordering and category weights.
func (c CreateCommand) Validate() error {
	if c.Title == "" {
		return ErrMissingTitle
	}

	if c.AutoShortlistThreshold < c.CutoffThreshold {
		return ErrInvalidThresholds
	}

	if len(c.EvaluationCategories) == 0 {
		return ErrInvalidWeights
	}

	sum := 0
	for _, cat := range c.EvaluationCategories {
		if cat.Name == "" || cat.Weight < 0 {
			return ErrInvalidWeights
		}
		sum += cat.Weight
	}
	if sum != 100 {
		return ErrInvalidWeights
	}

	return nil
}

// UpdateCommand carries the data needed to update an existing hiring form.
type UpdateCommand struct {
	Title                  string     `json:"title"`
	Industry               string     `json:"industry"`
	Requirements           string     `json:"requirements"`
	EvaluationCategories   []Category `json:"evaluation_categories"`
	CutoffThreshold        float64    `json:"cutoff_threshold"`
	AutoShortlistThreshold float64    `json:"auto_shortlist_threshold"`
	InterviewStages        int        `json:"interview_stages"`
	Active                 bool       `json:"active"`
}

// Validate checks threshold ordering and category weights.
func (c UpdateCommand) Validate() error {
	create := CreateCommand{
		Title:                  c.Title,
		Industry:               c.Industry,
		Requirements:           c.Requirements,
		EvaluationCategories:   c.EvaluationCategories,
		CutoffThreshold:        c.CutoffThreshold,
		AutoShortlistThreshold: c.AutoShortlistThreshold,
		InterviewStages:        c.InterviewStages,
	}
	return create.Validate()
}
