// Package resumes implements the resume lifecycle domain for Talon:
// upload, asynchronous parsing, and the human review workflow that gates
// evaluation. A resume's parsed content must be approved by a reviewer
// before it is eligible for scoring.
package resumes

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/talonhq/talon/internal/audit"
)

// Parse job wiring. Upload enqueues one parse job per resume; the worker
// package registers the handler for this type.
const (
	JobTypeParse  = "resume_parse"
	ParsePriority = 10
	ParseDelay    = time.Second
)

// ParseJob is the payload for a resume_parse queue job.
type ParseJob struct {
	ResumeID uuid.UUID `json:"resume_id"`
}

// ProcessingStatus tracks the mechanical file-to-content pipeline.
type ProcessingStatus string

// Processing statuses.
const (
	ProcessingUploading ProcessingStatus = "uploading"
	ProcessingActive    ProcessingStatus = "processing"
	ProcessingCompleted ProcessingStatus = "completed"
	ProcessingFailed    ProcessingStatus = "failed"
)

// ParseStatus tracks the human review state of parsed content.
type ParseStatus string

// Parse review statuses.
const (
	ParsePending  ParseStatus = "pending"
	ParseApproved ParseStatus = "approved"
	ParseEdited   ParseStatus = "edited"
	ParseRejected ParseStatus = "rejected"
)

// Reviewable reports whether the parse status permits a review action
// (approve, edit, or reject). Approved and rejected are terminal.
func (s ParseStatus) Reviewable() bool {
	return s == ParsePending || s == ParseEdited
}

// Status is the coarse resume lifecycle state.
type Status string

// Coarse resume statuses.
const (
	StatusUploaded   Status = "uploaded"
	StatusParsed     Status = "parsed"
	StatusEvaluating Status = "evaluating"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Experience is a single work history entry extracted from a resume.
type Experience struct {
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Duration    string     `json:"duration"`
	Description string     `json:"description,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

// Education is a single education entry extracted from a resume.
type Education struct {
	Degree      string     `json:"degree"`
	Institution string     `json:"institution"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	GPA         *float64   `json:"gpa,omitempty"`
}

// Project is a single project entry extracted from a resume.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies,omitempty"`
	Duration     string   `json:"duration,omitempty"`
}

// ParsedContent is the structured form of a resume produced by the parse
// worker and refined by reviewers.
type ParsedContent struct {
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
	Projects   []Project    `json:"projects"`
}

// ParseEdit records one reviewer change to a parsed content section.
// Original and new values are retained for the audit trail.
type ParseEdit struct {
	Field         string          `json:"field"`
	OriginalValue json.RawMessage `json:"original_value"`
	NewValue      json.RawMessage `json:"new_value"`
	EditedBy      uuid.UUID       `json:"edited_by"`
	EditedAt      time.Time       `json:"edited_at"`
	Reason        string          `json:"reason,omitempty"`
}

// Resume represents an uploaded candidate resume and its lifecycle state.
type Resume struct {
	ID           uuid.UUID `json:"id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	UploadedBy   uuid.UUID `json:"uploaded_by"`

	RawText       *string        `json:"raw_text,omitempty"`
	ParsedContent *ParsedContent `json:"parsed_content,omitempty"`

	ParseStatus ParseStatus `json:"parse_status"`
	ParsedBy    *uuid.UUID  `json:"parsed_by,omitempty"`
	ParsedAt    *time.Time  `json:"parsed_at,omitempty"`
	ParseEdits  []ParseEdit `json:"parse_edits,omitempty"`

	ProcessingStatus      ProcessingStatus `json:"processing_status"`
	ProcessingError       *string          `json:"processing_error,omitempty"`
	ProcessingStartedAt   *time.Time       `json:"processing_started_at,omitempty"`
	ProcessingCompletedAt *time.Time       `json:"processing_completed_at,omitempty"`

	EvaluationID *uuid.UUID `json:"evaluation_id,omitempty"`
	Status       Status     `json:"status"`

	SearchText *string   `json:"-"`
	Tags       []string  `json:"tags,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// UploadCommand carries the data needed to register an uploaded resume.
// RawText is the extracted document text the parse worker structures.
type UploadCommand struct {
	FileName     string      `json:"file_name"`
	OriginalName string      `json:"original_name"`
	FileSize     int64       `json:"file_size"`
	MimeType     string      `json:"mime_type"`
	RawText      string      `json:"raw_text"`
	Tags         []string    `json:"tags,omitempty"`
	Actor        audit.Actor `json:"actor"`
}

// EditParseCommand carries a reviewer's corrected parsed content.
type EditParseCommand struct {
	Content ParsedContent `json:"content"`
	Reason  string        `json:"reason,omitempty"`
	Actor   audit.Actor   `json:"actor"`
}

// ReviewCommand carries the actor for approve actions and the mandatory
// reason for reject actions.
type ReviewCommand struct {
	Reason         string               `json:"reason,omitempty"`
	ReasonCategory audit.ReasonCategory `json:"reason_category,omitempty"`
	Actor          audit.Actor          `json:"actor"`
}
