package audit

import (
	"testing"

	"github.com/google/uuid"
)

func TestInsertArgsWithoutReason(t *testing.T) {
	args, err := insertArgs(Entry{
		Actor:      Actor{ID: uuid.New(), Email: "hr@example.com", Role: "recruiter"},
		Action:     ActionResumeUpload,
		EntityType: "resume",
		EntityID:   uuid.New(),
		EntityName: "resume.pdf",
	})
	if err != nil {
		t.Fatalf("insertArgs failed: %v", err)
	}
	if len(args) != 11 {
		t.Fatalf("len(args) = %d, want 11", len(args))
	}

	reason, ok := args[9].(string)
	if !ok || reason != "" {
		t.Errorf("reason arg = %#v, want empty string", args[9])
	}
	category, ok := args[10].(ReasonCategory)
	if !ok || category != "" {
		t.Errorf("reason_category arg = %#v, want empty category", args[10])
	}
}

func TestInsertArgsWithReason(t *testing.T) {
	args, err := insertArgs(Entry{
		Actor:          Actor{ID: uuid.New(), Email: "hr@example.com", Role: "recruiter"},
		Action:         ActionEvaluationOverride,
		EntityType:     "evaluation",
		EntityID:       uuid.New(),
		EntityName:     "Jane Smith",
		Reason:         "missing mandatory certification",
		ReasonCategory: ReasonSkillMismatch,
	})
	if err != nil {
		t.Fatalf("insertArgs failed: %v", err)
	}

	if got := args[9].(string); got != "missing mandatory certification" {
		t.Errorf("reason arg = %q", got)
	}
	if got := args[10].(ReasonCategory); got != ReasonSkillMismatch {
		t.Errorf("reason_category arg = %q", got)
	}
}
