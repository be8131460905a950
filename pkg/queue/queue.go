package queue

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/talonhq/talon/pkg/lifecycle"
)

// System is the public contract for the task queue.
//
// Consume registrations must happen before Start; once started the queue
// runs each registered handler in its own bounded worker pool until the
// lifecycle context is cancelled, then drains in-flight jobs.
type System interface {
	Enqueue(ctx context.Context, cmd EnqueueCommand) (*Job, error)
	Consume(jobType string, concurrency int, handler Handler)
	Start(lc *lifecycle.Coordinator) error

	Stats(ctx context.Context) (map[string]TypeStats, error)
	Failed(ctx context.Context, jobType string, limit int) ([]Job, error)
	Retry(ctx context.Context, id uuid.UUID) (*Job, error)
}

type consumer struct {
	jobType     string
	concurrency int
	handler     Handler
}

// jobStore is the persistence surface the system drives. The Postgres
// store satisfies it; tests substitute an in-memory implementation.
type jobStore interface {
	insert(ctx context.Context, cmd EnqueueCommand, maxAttempts int) (*Job, error)
	claim(ctx context.Context, jobType string, staleAfter time.Duration) (*Job, error)
	complete(ctx context.Context, id uuid.UUID) error
	release(ctx context.Context, id uuid.UUID, errMsg string, delay time.Duration) error
	fail(ctx context.Context, id uuid.UUID, errMsg string) error
	stats(ctx context.Context) (map[string]TypeStats, error)
	failed(ctx context.Context, jobType string, limit int) ([]Job, error)
	retry(ctx context.Context, id uuid.UUID) (*Job, error)
}

type system struct {
	store     jobStore
	cfg       Config
	logger    *slog.Logger
	consumers []consumer
	mu        sync.Mutex
}

// New creates a queue system backed by the given database connection.
func New(db *sql.DB, cfg Config, logger *slog.Logger) System {
	return &system{
		store:  &store{db: db},
		cfg:    cfg,
		logger: logger.With("system", "queue"),
	}
}

func (s *system) Enqueue(ctx context.Context, cmd EnqueueCommand) (*Job, error) {
	if cmd.Payload == nil {
		return nil, ErrEmptyPayload
	}
	if !s.registered(cmd.Type) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, cmd.Type)
	}

	j, err := s.store.insert(ctx, cmd, s.cfg.MaxAttempts)
	if err != nil {
		return nil, err
	}

	s.logger.Info("job enqueued",
		"id", j.ID,
		"type", j.Type,
		"priority", j.Priority,
		"run_at", j.RunAt,
	)
	return j, nil
}

func (s *system) Consume(jobType string, concurrency int, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if concurrency < 1 {
		concurrency = 1
	}
	s.consumers = append(s.consumers, consumer{
		jobType:     jobType,
		concurrency: concurrency,
		handler:     handler,
	})
}

func (s *system) registered(jobType string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range s.consumers {
		if c.jobType == jobType {
			return true
		}
	}
	return false
}

// staleWindow bounds how long a claim may stay running. Handlers are
// cancelled at the job timeout, so a row running longer than this belongs
// to a process that died before settling it and may be reclaimed.
func (s *system) staleWindow() time.Duration {
	return s.cfg.JobTimeoutDuration() + s.cfg.BaseDelayDuration()
}

func (s *system) Start(lc *lifecycle.Coordinator) error {
	s.mu.Lock()
	consumers := make([]consumer, len(s.consumers))
	copy(consumers, s.consumers)
	s.mu.Unlock()

	g := &errgroup.Group{}
	for _, c := range consumers {
		s.logger.Info("starting consumer pool",
			"type", c.jobType,
			"concurrency", c.concurrency,
		)
		for range c.concurrency {
			g.Go(func() error {
				s.consumeLoop(lc.Context(), c)
				return nil
			})
		}
	}

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		s.logger.Info("draining queue consumers")
		g.Wait()
		s.logger.Info("queue consumers drained")
	})

	return nil
}

func (s *system) consumeLoop(ctx context.Context, c consumer) {
	ticker := time.NewTicker(s.cfg.PollIntervalDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		job, err := s.store.claim(ctx, c.jobType, s.staleWindow())
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Error("claim failed", "type", c.jobType, "error", err)
			}
			continue
		}
		if job == nil {
			continue
		}

		s.execute(job, c.handler)
	}
}

// execute runs the handler under its own timeout, detached from the poll
// context so an in-flight job can finish during shutdown drain.
func (s *system) execute(job *Job, handler Handler) {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.JobTimeoutDuration())
	defer cancel()

	start := time.Now()
	err := s.runHandler(ctx, job, handler)
	if err == nil {
		if err := s.store.complete(ctx, job.ID); err != nil {
			s.logger.Error("complete failed", "id", job.ID, "error", err)
		}
		s.logger.Info("job completed",
			"id", job.ID,
			"type", job.Type,
			"attempt", job.Attempts,
			"duration", time.Since(start),
		)
		return
	}

	s.settleFailure(job, err)
}

func (s *system) runHandler(ctx context.Context, job *Job, handler Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return handler(ctx, job)
}

// settleFailure applies the retry policy: permanent errors and exhausted
// attempt budgets land in the failed bucket; everything else is released
// with exponential backoff from the configured base delay.
func (s *system) settleFailure(job *Job, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if IsPermanent(err) || job.Attempts >= job.MaxAttempts {
		if failErr := s.store.fail(ctx, job.ID, err.Error()); failErr != nil {
			s.logger.Error("fail update failed", "id", job.ID, "error", failErr)
		}
		s.logger.Error("job failed",
			"id", job.ID,
			"type", job.Type,
			"attempt", job.Attempts,
			"permanent", IsPermanent(err),
			"error", err,
		)
		return
	}

	delay := Backoff(s.cfg.BaseDelayDuration(), job.Attempts)
	if relErr := s.store.release(ctx, job.ID, err.Error(), delay); relErr != nil {
		s.logger.Error("release update failed", "id", job.ID, "error", relErr)
	}
	s.logger.Warn("job retry scheduled",
		"id", job.ID,
		"type", job.Type,
		"attempt", job.Attempts,
		"delay", delay,
		"error", err,
	)
}

func (s *system) Stats(ctx context.Context) (map[string]TypeStats, error) {
	return s.store.stats(ctx)
}

func (s *system) Failed(ctx context.Context, jobType string, limit int) ([]Job, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	return s.store.failed(ctx, jobType, limit)
}

func (s *system) Retry(ctx context.Context, id uuid.UUID) (*Job, error) {
	j, err := s.store.retry(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("failed job requeued", "id", j.ID, "type", j.Type)
	return j, nil
}
