package oracle

import "errors"

// Oracle errors. ErrUnavailable covers transient transport conditions
// (rate limits, 5xx, network failures) and is retryable; ErrMalformedResponse
// means the model returned output that failed schema validation and
// retrying the same request is pointless.
var (
	ErrUnavailable       = errors.New("oracle unavailable")
	ErrMalformedResponse = errors.New("oracle returned malformed response")
)
