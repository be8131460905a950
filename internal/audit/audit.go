// Package audit implements the append-only audit trail for Talon.
// Every mutating pipeline operation emits exactly one record capturing who
// did what to which entity, with before/after snapshots where applicable.
// Records are never updated or deleted.
package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action identifies the kind of operation an audit record captures.
type Action string

// Audit actions emitted by the evaluation pipeline.
const (
	ActionResumeUpload       Action = "RESUME_UPLOAD"
	ActionResumeParseApprove Action = "RESUME_PARSE_APPROVE"
	ActionResumeParseEdit    Action = "RESUME_PARSE_EDIT"
	ActionResumeParseReject  Action = "RESUME_PARSE_REJECT"
	ActionEvaluationCreate   Action = "EVALUATION_CREATE"
	ActionEvaluationOverride Action = "EVALUATION_OVERRIDE"
	ActionStatusChange       Action = "STATUS_CHANGE"
	ActionFeedbackAdd        Action = "INTERVIEW_FEEDBACK_ADD"
)

// ReasonCategory standardizes the rationale attached to overrides and rejections.
type ReasonCategory string

// Reason categories for overrides and rejections.
const (
	ReasonSkillMismatch    ReasonCategory = "skill_mismatch"
	ReasonExperienceGap    ReasonCategory = "experience_gap"
	ReasonCultureFit       ReasonCategory = "culture_fit"
	ReasonIntegrityConcern ReasonCategory = "integrity_concern"
	ReasonOther            ReasonCategory = "other"
)

// Valid reports whether c is a known reason category.
func (c ReasonCategory) Valid() bool {
	switch c {
	case ReasonSkillMismatch, ReasonExperienceGap, ReasonCultureFit,
		ReasonIntegrityConcern, ReasonOther:
		return true
	}
	return false
}

// Record is a persisted audit log entry.
type Record struct {
	ID             uuid.UUID       `json:"id"`
	ActorID        uuid.UUID       `json:"actor_id"`
	ActorEmail     string          `json:"actor_email"`
	ActorRole      string          `json:"actor_role"`
	Action         Action          `json:"action"`
	EntityType     string          `json:"entity_type"`
	EntityID       uuid.UUID       `json:"entity_id"`
	EntityName     string          `json:"entity_name"`
	Before         json.RawMessage `json:"before,omitempty"`
	After          json.RawMessage `json:"after,omitempty"`
	Reason         *string         `json:"reason,omitempty"`
	ReasonCategory *ReasonCategory `json:"reason_category,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Actor identifies the user performing an audited operation.
type Actor struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// Entry carries the data for a new audit record. Before and After hold
// JSON-serializable snapshots of the affected entity state; either may be
// nil when not applicable (creations have no before, deletions no after).
type Entry struct {
	Actor          Actor
	Action         Action
	EntityType     string
	EntityID       uuid.UUID
	EntityName     string
	Before         any
	After          any
	Reason         string
	ReasonCategory ReasonCategory
}
