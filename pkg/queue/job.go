// Package queue implements a durable, priority-ordered task queue on
// PostgreSQL with at-least-once delivery, bounded per-type worker pools,
// and exponential retry backoff. Jobs are claimed with FOR UPDATE SKIP
// LOCKED so multiple consumers never double-process a row, and jobs that
// share an entity key are serialized: a pending job is not claimable while
// a live job for the same entity is running. Claims abandoned by a dead
// process age out past the job timeout and become claimable again.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Job statuses as persisted in the queue_jobs table.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Job is a unit of asynchronous work. Payload is redelivered verbatim on
// retry, so handlers must be idempotent with respect to the entity's
// current persisted state.
type Job struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"`
	Payload     json.RawMessage `json:"payload"`
	Priority    int             `json:"priority"`
	Status      string          `json:"status"`
	Attempts    int             `json:"attempts"`
	MaxAttempts int             `json:"max_attempts"`
	EntityKey   *string         `json:"entity_key"`
	RunAt       time.Time       `json:"run_at"`
	LastError   *string         `json:"last_error"`
	CreatedAt   time.Time       `json:"created_at"`
	StartedAt   *time.Time      `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at"`
}

// Handler processes a claimed job. Returning nil completes the job;
// returning an error schedules a retry unless the error is Permanent
// or the attempt budget is exhausted.
type Handler func(ctx context.Context, job *Job) error

// EnqueueCommand carries the data needed to enqueue a job.
// Payload is marshaled to JSON. EntityKey, when set, serializes this job
// against all other jobs of the same type sharing the key. A zero
// MaxAttempts falls back to the queue's configured budget.
type EnqueueCommand struct {
	Type        string
	Payload     any
	Priority    int
	Delay       time.Duration
	EntityKey   string
	MaxAttempts int
}

// TypeStats summarizes job counts for one job type.
type TypeStats struct {
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// Backoff returns the delay before the next attempt following the given
// completed attempt count: base, doubling each retry.
func Backoff(base time.Duration, attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return base << (attempts - 1)
}
