package resumes

import (
	"errors"
	"net/http"
)

// Domain errors for resume operations.
var (
	ErrNotFound       = errors.New("resume not found")
	ErrDuplicate      = errors.New("resume file name already exists")
	ErrMissingFile    = errors.New("file name and original name are required")
	ErrEmptyText      = errors.New("resume raw text is empty")
	ErrNotReviewable  = errors.New("parse status does not permit review")
	ErrNotParsed      = errors.New("resume has no parsed content")
	ErrMissingReason  = errors.New("a reason is required to reject parsed content")
	ErrInvalidReason  = errors.New("unknown reason category")
	ErrNotApproved    = errors.New("resume parse must be approved before evaluation")
	ErrNotProcessable = errors.New("resume is not awaiting processing")
)

// MapHTTPStatus maps resume domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotReviewable) ||
		errors.Is(err, ErrNotApproved) ||
		errors.Is(err, ErrNotProcessable) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrMissingFile) ||
		errors.Is(err, ErrEmptyText) ||
		errors.Is(err, ErrNotParsed) ||
		errors.Is(err, ErrMissingReason) ||
		errors.Is(err, ErrInvalidReason) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
