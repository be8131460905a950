package hiringforms

import (
	"errors"
	"net/http"
)

// Domain errors for hiring form operations.
var (
	ErrNotFound          = errors.New("hiring form not found")
	ErrDuplicate         = errors.New("hiring form title already exists")
	ErrMissingTitle      = errors.New("hiring form title is required")
	ErrInvalidThresholds = errors.New("auto shortlist threshold must not be below cutoff threshold")
	ErrInvalidWeights    = errors.New("evaluation category weights must sum to 100")
)

// MapHTTPStatus maps hiring form domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingTitle) ||
		errors.Is(err, ErrInvalidThresholds) ||
		errors.Is(err, ErrInvalidWeights) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
