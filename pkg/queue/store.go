package queue

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/talonhq/talon/pkg/repository"
)

const jobColumns = `id, job_type, payload, priority, status, attempts, max_attempts,
	entity_key, run_at, last_error, created_at, started_at, completed_at`

func scanJob(s repository.Scanner) (Job, error) {
	var j Job
	err := s.Scan(
		&j.ID,
		&j.Type,
		&j.Payload,
		&j.Priority,
		&j.Status,
		&j.Attempts,
		&j.MaxAttempts,
		&j.EntityKey,
		&j.RunAt,
		&j.LastError,
		&j.CreatedAt,
		&j.StartedAt,
		&j.CompletedAt,
	)
	return j, err
}

type store struct {
	db *sql.DB
}

func (s *store) insert(ctx context.Context, cmd EnqueueCommand, maxAttempts int) (*Job, error) {
	payload, err := json.Marshal(cmd.Payload)
	if err != nil {
		return nil, wrapf(err, "marshal payload")
	}

	if cmd.MaxAttempts > 0 {
		maxAttempts = cmd.MaxAttempts
	}

	var entityKey *string
	if cmd.EntityKey != "" {
		entityKey = &cmd.EntityKey
	}

	q := `
		INSERT INTO queue_jobs(job_type, payload, priority, max_attempts, entity_key, run_at)
		VALUES ($1, $2, $3, $4, $5, now() + $6)
		RETURNING ` + jobColumns

	args := []any{
		cmd.Type,
		payload,
		cmd.Priority,
		maxAttempts,
		entityKey,
		cmd.Delay,
	}

	j, err := repository.QueryOne(ctx, s.db, q, args, scanJob)
	if err != nil {
		return nil, wrapf(err, "insert job")
	}
	return &j, nil
}

// claim atomically selects the highest-priority runnable job of the given
// type and marks it running. Jobs sharing an entity key with a live running
// job are skipped so no two workers mutate the same entity concurrently.
// A running job whose claim is older than staleAfter belongs to a dead
// process: it neither blocks its entity key nor holds its claim, so it is
// claimable again and its next failure settles normally.
// Returns nil when nothing is claimable.
func (s *store) claim(ctx context.Context, jobType string, staleAfter time.Duration) (*Job, error) {
	q := `
		UPDATE queue_jobs SET status = 'running', attempts = attempts + 1, started_at = now()
		WHERE id = (
			SELECT j.id FROM queue_jobs j
			WHERE j.job_type = $1
			  AND (
				(j.status = 'pending' AND j.run_at <= now())
				OR (j.status = 'running' AND j.started_at < now() - $2)
			  )
			  AND NOT EXISTS (
				SELECT 1 FROM queue_jobs r
				WHERE r.job_type = j.job_type
				  AND r.status = 'running'
				  AND r.started_at >= now() - $2
				  AND r.id <> j.id
				  AND r.entity_key = j.entity_key
			  )
			ORDER BY j.priority DESC, j.run_at, j.created_at
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING ` + jobColumns

	j, err := repository.QueryOne(ctx, s.db, q, []any{jobType, staleAfter}, scanJob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapf(err, "claim job")
	}
	return &j, nil
}

func (s *store) complete(ctx context.Context, id uuid.UUID) error {
	return repository.ExecExpectOne(
		ctx, s.db,
		"UPDATE queue_jobs SET status = 'completed', completed_at = now() WHERE id = $1",
		id,
	)
}

// release reschedules a failed attempt for retry after the given delay.
func (s *store) release(ctx context.Context, id uuid.UUID, errMsg string, delay time.Duration) error {
	return repository.ExecExpectOne(
		ctx, s.db,
		"UPDATE queue_jobs SET status = 'pending', last_error = $2, run_at = now() + $3 WHERE id = $1",
		id, errMsg, delay,
	)
}

// fail moves a job to the failed bucket, where it is retained for inspection.
func (s *store) fail(ctx context.Context, id uuid.UUID, errMsg string) error {
	return repository.ExecExpectOne(
		ctx, s.db,
		"UPDATE queue_jobs SET status = 'failed', last_error = $2, completed_at = now() WHERE id = $1",
		id, errMsg,
	)
}

func (s *store) stats(ctx context.Context) (map[string]TypeStats, error) {
	rows, err := s.db.QueryContext(
		ctx,
		"SELECT job_type, status, COUNT(*) FROM queue_jobs GROUP BY job_type, status",
	)
	if err != nil {
		return nil, wrapf(err, "query stats")
	}
	defer rows.Close()

	stats := make(map[string]TypeStats)
	for rows.Next() {
		var jobType, status string
		var count int
		if err := rows.Scan(&jobType, &status, &count); err != nil {
			return nil, wrapf(err, "scan stats")
		}

		ts := stats[jobType]
		switch status {
		case StatusPending:
			ts.Pending = count
		case StatusRunning:
			ts.Running = count
		case StatusCompleted:
			ts.Completed = count
		case StatusFailed:
			ts.Failed = count
		}
		stats[jobType] = ts
	}

	return stats, rows.Err()
}

func (s *store) failed(ctx context.Context, jobType string, limit int) ([]Job, error) {
	q := `
		SELECT ` + jobColumns + ` FROM queue_jobs
		WHERE job_type = $1 AND status = 'failed'
		ORDER BY completed_at DESC
		LIMIT $2`

	jobs, err := repository.QueryMany(ctx, s.db, q, []any{jobType, limit}, scanJob)
	if err != nil {
		return nil, wrapf(err, "query failed jobs")
	}
	return jobs, nil
}

// retry resets a failed job's attempt counter and returns it to the
// pending state. Only jobs in the failed bucket may be retried.
func (s *store) retry(ctx context.Context, id uuid.UUID) (*Job, error) {
	q := `
		UPDATE queue_jobs
		SET status = 'pending', attempts = 0, last_error = NULL,
			run_at = now(), started_at = NULL, completed_at = NULL
		WHERE id = $1 AND status = 'failed'
		RETURNING ` + jobColumns

	j, err := repository.QueryOne(ctx, s.db, q, []any{id}, scanJob)
	if err == sql.ErrNoRows {
		if _, findErr := repository.QueryOne(
			ctx, s.db,
			"SELECT "+jobColumns+" FROM queue_jobs WHERE id = $1",
			[]any{id}, scanJob,
		); findErr == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, ErrNotFailed
	}
	if err != nil {
		return nil, wrapf(err, "retry job")
	}
	return &j, nil
}
