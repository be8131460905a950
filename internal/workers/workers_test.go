package workers_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/talonhq/talon/internal/evaluations"
	"github.com/talonhq/talon/internal/hiringforms"
	"github.com/talonhq/talon/internal/oracle"
	"github.com/talonhq/talon/internal/prompts"
	"github.com/talonhq/talon/internal/resumes"
	"github.com/talonhq/talon/internal/workers"
	"github.com/talonhq/talon/pkg/lifecycle"
	"github.com/talonhq/talon/pkg/pagination"
	"github.com/talonhq/talon/pkg/queue"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeQueue records Consume registrations so tests can invoke the
// registered handlers directly.
type fakeQueue struct {
	mu       sync.Mutex
	handlers map[string]queue.Handler
	pools    map[string]int
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{
		handlers: make(map[string]queue.Handler),
		pools:    make(map[string]int),
	}
}

func (q *fakeQueue) Enqueue(ctx context.Context, cmd queue.EnqueueCommand) (*queue.Job, error) {
	return &queue.Job{ID: uuid.New(), Type: cmd.Type}, nil
}

func (q *fakeQueue) Consume(jobType string, concurrency int, handler queue.Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = handler
	q.pools[jobType] = concurrency
}

func (q *fakeQueue) Start(lc *lifecycle.Coordinator) error { return nil }

func (q *fakeQueue) Stats(ctx context.Context) (map[string]queue.TypeStats, error) {
	return nil, nil
}

func (q *fakeQueue) Failed(ctx context.Context, jobType string, limit int) ([]queue.Job, error) {
	return nil, nil
}

func (q *fakeQueue) Retry(ctx context.Context, id uuid.UUID) (*queue.Job, error) {
	return nil, nil
}

// Domain fakes embed their System interface so only the methods the
// workers touch need implementations.

type fakeResumes struct {
	resumes.System

	resume *resumes.Resume

	completed    *resumes.ParsedContent
	searchText   string
	failedCause  string
	evaluating   bool
	evaluationID uuid.UUID
}

func (f *fakeResumes) Find(ctx context.Context, id uuid.UUID) (*resumes.Resume, error) {
	if f.resume == nil || f.resume.ID != id {
		return nil, resumes.ErrNotFound
	}
	return f.resume, nil
}

func (f *fakeResumes) CompleteParse(
	ctx context.Context,
	id uuid.UUID,
	content resumes.ParsedContent,
	searchText string,
) (*resumes.Resume, error) {
	f.completed = &content
	f.searchText = searchText
	return f.resume, nil
}

func (f *fakeResumes) FailParse(ctx context.Context, id uuid.UUID, cause string) error {
	f.failedCause = cause
	return nil
}

func (f *fakeResumes) MarkEvaluating(ctx context.Context, id uuid.UUID) error {
	f.evaluating = true
	return nil
}

func (f *fakeResumes) LinkEvaluation(ctx context.Context, id, evaluationID uuid.UUID) error {
	f.evaluationID = evaluationID
	return nil
}

type fakeEvaluations struct {
	evaluations.System

	inserted  *evaluations.InsertCommand
	insertErr error
	existing  *evaluations.Evaluation
}

func (f *fakeEvaluations) Insert(
	ctx context.Context,
	cmd evaluations.InsertCommand,
) (*evaluations.Evaluation, error) {
	f.inserted = &cmd
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	return &evaluations.Evaluation{
		ID:               uuid.New(),
		ResumeID:         cmd.ResumeID,
		HiringFormID:     cmd.HiringFormID,
		OverallScore:     cmd.OverallScore,
		Eligibility:      cmd.Eligibility,
		FlaggedForReview: cmd.FlaggedForReview,
	}, nil
}

func (f *fakeEvaluations) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters evaluations.Filters,
) (*pagination.PageResult[evaluations.Evaluation], error) {
	result := &pagination.PageResult[evaluations.Evaluation]{}
	if f.existing != nil {
		result.Data = []evaluations.Evaluation{*f.existing}
	}
	return result, nil
}

type fakeForms struct {
	hiringforms.System

	form       *hiringforms.HiringForm
	usageCount int
}

func (f *fakeForms) Find(ctx context.Context, id uuid.UUID) (*hiringforms.HiringForm, error) {
	if f.form == nil || f.form.ID != id {
		return nil, hiringforms.ErrNotFound
	}
	return f.form, nil
}

func (f *fakeForms) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	f.usageCount++
	return nil
}

type fakePrompts struct {
	prompts.System

	prompt     *prompts.Prompt
	usageCount int
}

func (f *fakePrompts) Resolve(ctx context.Context, industry string) (*prompts.Prompt, error) {
	if f.prompt == nil {
		return nil, prompts.ErrNotFound
	}
	return f.prompt, nil
}

func (f *fakePrompts) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	f.usageCount++
	return nil
}

type fakeScorer struct {
	response *oracle.ScoreResponse
	err      error
	request  *oracle.ScoreRequest
}

func (f *fakeScorer) Score(ctx context.Context, req oracle.ScoreRequest) (*oracle.ScoreResponse, error) {
	f.request = &req
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeScorer) Model() string { return "test-model" }

func TestRegister(t *testing.T) {
	q := newFakeQueue()
	rt := workers.Runtime{
		Queue:       q,
		Resumes:     &fakeResumes{},
		Evaluations: &fakeEvaluations{},
		HiringForms: &fakeForms{},
		Prompts:     &fakePrompts{},
		Scorer:      &fakeScorer{},
		Logger:      discardLogger(),
	}

	workers.Register(rt, 4, 2)

	if q.handlers[resumes.JobTypeParse] == nil {
		t.Error("parse handler not registered")
	}
	if q.handlers[evaluations.JobTypeEvaluate] == nil {
		t.Error("evaluate handler not registered")
	}
	if q.pools[resumes.JobTypeParse] != 4 {
		t.Errorf("parse concurrency = %d, want 4", q.pools[resumes.JobTypeParse])
	}
	if q.pools[evaluations.JobTypeEvaluate] != 2 {
		t.Errorf("evaluate concurrency = %d, want 2", q.pools[evaluations.JobTypeEvaluate])
	}
}

func TestRegisterDefaultConcurrency(t *testing.T) {
	q := newFakeQueue()
	rt := workers.Runtime{
		Queue:       q,
		Resumes:     &fakeResumes{},
		Evaluations: &fakeEvaluations{},
		HiringForms: &fakeForms{},
		Prompts:     &fakePrompts{},
		Scorer:      &fakeScorer{},
		Logger:      discardLogger(),
	}

	workers.Register(rt, 0, -1)

	if q.pools[resumes.JobTypeParse] != workers.DefaultParseConcurrency {
		t.Errorf("parse concurrency = %d, want %d",
			q.pools[resumes.JobTypeParse], workers.DefaultParseConcurrency)
	}
	if q.pools[evaluations.JobTypeEvaluate] != workers.DefaultEvaluateConcurrency {
		t.Errorf("evaluate concurrency = %d, want %d",
			q.pools[evaluations.JobTypeEvaluate], workers.DefaultEvaluateConcurrency)
	}
}
