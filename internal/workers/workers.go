// Package workers implements the queue job handlers that drive the
// asynchronous pipeline: structuring uploaded resumes and scoring
// approved resumes against hiring forms.
package workers

import (
	"log/slog"

	"github.com/talonhq/talon/internal/evaluations"
	"github.com/talonhq/talon/internal/hiringforms"
	"github.com/talonhq/talon/internal/oracle"
	"github.com/talonhq/talon/internal/prompts"
	"github.com/talonhq/talon/internal/resumes"
	"github.com/talonhq/talon/pkg/queue"
)

// Default worker pool sizes. Parsing is cheap and bursty; scoring holds
// an oracle call open, so its pool stays small.
const (
	DefaultParseConcurrency    = 5
	DefaultEvaluateConcurrency = 3
)

// Runtime bundles the systems the job handlers operate on.
type Runtime struct {
	Queue       queue.System
	Resumes     resumes.System
	Evaluations evaluations.System
	HiringForms hiringforms.System
	Prompts     prompts.System
	Scorer      oracle.Scorer
	Logger      *slog.Logger
}

// Register wires the parse and evaluate handlers into the queue with the
// given pool sizes. Non-positive sizes fall back to the defaults.
func Register(rt Runtime, parseConcurrency, evaluateConcurrency int) {
	if parseConcurrency < 1 {
		parseConcurrency = DefaultParseConcurrency
	}
	if evaluateConcurrency < 1 {
		evaluateConcurrency = DefaultEvaluateConcurrency
	}

	rt.Queue.Consume(resumes.JobTypeParse, parseConcurrency, parseHandler(rt))
	rt.Queue.Consume(evaluations.JobTypeEvaluate, evaluateConcurrency, evaluateHandler(rt))
}
