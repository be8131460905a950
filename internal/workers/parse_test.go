package workers_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/talonhq/talon/internal/resumes"
	"github.com/talonhq/talon/internal/workers"
	"github.com/talonhq/talon/pkg/queue"
)

func ptr[T any](v T) *T { return &v }

func parseRuntime(res *fakeResumes) (*fakeQueue, workers.Runtime) {
	q := newFakeQueue()
	rt := workers.Runtime{
		Queue:       q,
		Resumes:     res,
		Evaluations: &fakeEvaluations{},
		HiringForms: &fakeForms{},
		Prompts:     &fakePrompts{},
		Scorer:      &fakeScorer{},
		Logger:      discardLogger(),
	}
	workers.Register(rt, 1, 1)
	return q, rt
}

func parseJob(t *testing.T, resumeID uuid.UUID) *queue.Job {
	t.Helper()
	payload, err := json.Marshal(resumes.ParseJob{ResumeID: resumeID})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &queue.Job{ID: uuid.New(), Type: resumes.JobTypeParse, Payload: payload, Attempts: 1}
}

func TestParseHandler(t *testing.T) {
	id := uuid.New()
	res := &fakeResumes{
		resume: &resumes.Resume{
			ID:           id,
			OriginalName: "jane-smith.pdf",
			RawText:      ptr("Python developer.\n2020 - 2022\nAcme Corp\nBuilt a billing service."),
		},
	}
	q, _ := parseRuntime(res)

	err := q.handlers[resumes.JobTypeParse](context.Background(), parseJob(t, id))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if res.completed == nil {
		t.Fatal("CompleteParse not called")
	}
	if len(res.completed.Skills) == 0 {
		t.Error("extracted content has no skills")
	}
	if res.searchText == "" {
		t.Error("search text not built")
	}
	if res.failedCause != "" {
		t.Errorf("FailParse called with %q", res.failedCause)
	}
}

func TestParseHandlerEmptyText(t *testing.T) {
	id := uuid.New()
	res := &fakeResumes{
		resume: &resumes.Resume{ID: id, OriginalName: "empty.pdf", RawText: ptr("")},
	}
	q, _ := parseRuntime(res)

	err := q.handlers[resumes.JobTypeParse](context.Background(), parseJob(t, id))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !queue.IsPermanent(err) {
		t.Errorf("error %v is not permanent", err)
	}
	if res.failedCause == "" {
		t.Error("failure not recorded on resume")
	}
	if res.completed != nil {
		t.Error("CompleteParse called for empty text")
	}
}

func TestParseHandlerResumeMissing(t *testing.T) {
	res := &fakeResumes{}
	q, _ := parseRuntime(res)

	err := q.handlers[resumes.JobTypeParse](context.Background(), parseJob(t, uuid.New()))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !queue.IsPermanent(err) {
		t.Errorf("error %v is not permanent", err)
	}
}

func TestParseHandlerBadPayload(t *testing.T) {
	q, _ := parseRuntime(&fakeResumes{})

	job := &queue.Job{ID: uuid.New(), Type: resumes.JobTypeParse, Payload: []byte("not json")}
	err := q.handlers[resumes.JobTypeParse](context.Background(), job)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !queue.IsPermanent(err) {
		t.Errorf("error %v is not permanent", err)
	}
}
