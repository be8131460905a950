package evaluations

import (
	"errors"
	"net/http"
)

// Domain errors for evaluation operations.
var (
	ErrNotFound          = errors.New("evaluation not found")
	ErrDuplicate         = errors.New("resume already evaluated against this hiring form")
	ErrResumeNotFound    = errors.New("resume not found")
	ErrFormNotFound      = errors.New("hiring form not found")
	ErrResumeNotApproved = errors.New("resume parse must be approved before evaluation")
	ErrUnknownStatus     = errors.New("unknown evaluation status")
	ErrInvalidTransition = errors.New("status transition not permitted")
	ErrMissingReason     = errors.New("override requires a reason and reason category")
	ErrInvalidReason     = errors.New("unknown reason category")
	ErrInvalidRound      = errors.New("unknown interview round")
	ErrNoRecommendation  = errors.New("interview feedback requires a recommendation")
	ErrBadRecommendation = errors.New("unknown interview recommendation")
)

// MapHTTPStatus maps evaluation domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrResumeNotFound) ||
		errors.Is(err, ErrFormNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrResumeNotApproved) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrUnknownStatus) ||
		errors.Is(err, ErrMissingReason) ||
		errors.Is(err, ErrInvalidReason) ||
		errors.Is(err, ErrInvalidRound) ||
		errors.Is(err, ErrNoRecommendation) ||
		errors.Is(err, ErrBadRecommendation) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
