package audit

import "errors"

// ErrNotFound indicates the requested audit record does not exist.
var ErrNotFound = errors.New("audit record not found")
