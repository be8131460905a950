package queue

import (
	"errors"
	"fmt"
)

// Domain errors for queue operations.
var (
	ErrNotFound     = errors.New("job not found")
	ErrNotFailed    = errors.New("job is not in the failed state")
	ErrUnknownType  = errors.New("no handler registered for job type")
	ErrEmptyPayload = errors.New("job payload required")
)

// permanentError marks a handler failure as non-retryable.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent wraps err so the queue fails the job immediately instead of
// retrying. Use for failures that re-running the same payload cannot fix:
// missing entities, violated preconditions, malformed responses.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err (or any error it wraps) was marked
// non-retryable via Permanent.
func IsPermanent(err error) bool {
	var pe *permanentError
	return errors.As(err, &pe)
}

func wrapf(err error, format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, err)...)
}
