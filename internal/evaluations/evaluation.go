// Package evaluations implements the evaluation domain for Talon: oracle
// scored assessments of approved resumes against hiring forms, the
// recruitment status pipeline, human overrides, and interview feedback.
package evaluations

import (
	"time"

	"github.com/google/uuid"

	"github.com/talonhq/talon/internal/audit"
)

// Evaluate job wiring. Create enqueues one scoring job per resume and
// form pair; the worker package registers the handler for this type.
const (
	JobTypeEvaluate  = "resume_evaluate"
	EvaluatePriority = 5
)

// EvaluateJob is the payload for a resume_evaluate queue job.
type EvaluateJob struct {
	ResumeID     uuid.UUID   `json:"resume_id"`
	HiringFormID uuid.UUID   `json:"hiring_form_id"`
	Actor        audit.Actor `json:"actor"`
}

// flagConfidenceFloor is the confidence below which an evaluation is
// automatically flagged for human review.
const flagConfidenceFloor = 0.6

// FlagForReview reports whether an oracle confidence value requires the
// evaluation to be routed to a human.
func FlagForReview(confidence float64) bool {
	return confidence < flagConfidenceFloor
}

// Evidence is a span of resume text supporting a score.
type Evidence struct {
	Section        string   `json:"section"`
	TextExcerpt    string   `json:"text_excerpt"`
	StartIndex     int      `json:"start_index"`
	EndIndex       int      `json:"end_index"`
	Category       string   `json:"category"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// CategoryScore is the per-category breakdown of an evaluation.
type CategoryScore struct {
	Name       string     `json:"name"`
	Score      float64    `json:"score"`
	Weight     int        `json:"weight"`
	Reasoning  string     `json:"reasoning"`
	Evidence   []Evidence `json:"evidence,omitempty"`
	Strengths  []string   `json:"strengths,omitempty"`
	Gaps       []string   `json:"gaps,omitempty"`
	Confidence float64    `json:"confidence"`
}

// Override records a human decision that replaced the pipeline status.
// Original and new statuses are retained alongside the mandatory reason.
type Override struct {
	OriginalStatus Status               `json:"original_status"`
	NewStatus      Status               `json:"new_status"`
	Reason         string               `json:"reason"`
	ReasonCategory audit.ReasonCategory `json:"reason_category"`
	OverriddenBy   uuid.UUID            `json:"overridden_by"`
	OverriddenAt   time.Time            `json:"overridden_at"`
	Comments       string               `json:"comments,omitempty"`
}

// Recommendation is an interviewer's hiring recommendation.
type Recommendation string

// Interview recommendations.
const (
	RecommendStrongHire   Recommendation = "strong_hire"
	RecommendHire         Recommendation = "hire"
	RecommendBorderline   Recommendation = "borderline"
	RecommendNoHire       Recommendation = "no_hire"
	RecommendStrongNoHire Recommendation = "strong_no_hire"
)

// Valid reports whether r is a known recommendation.
func (r Recommendation) Valid() bool {
	switch r {
	case RecommendStrongHire, RecommendHire, RecommendBorderline,
		RecommendNoHire, RecommendStrongNoHire:
		return true
	}
	return false
}

// Interview rounds.
const (
	RoundPhoneScreen = "phone_screen"
	RoundTechnical   = "technical"
	RoundBehavioral  = "behavioral"
	RoundFinal       = "final"
)

// ValidRound reports whether round is a known interview round.
func ValidRound(round string) bool {
	switch round {
	case RoundPhoneScreen, RoundTechnical, RoundBehavioral, RoundFinal:
		return true
	}
	return false
}

// Feedback is one interviewer's assessment from a single round.
type Feedback struct {
	Interviewer    uuid.UUID      `json:"interviewer"`
	Round          string         `json:"round"`
	Score          *float64       `json:"score,omitempty"`
	Comments       string         `json:"comments,omitempty"`
	Strengths      []string       `json:"strengths,omitempty"`
	Concerns       []string       `json:"concerns,omitempty"`
	Recommendation Recommendation `json:"recommendation"`
	InterviewedAt  time.Time      `json:"interviewed_at"`
}

// Evaluation is a scored assessment of a resume against a hiring form.
// One evaluation exists per resume and form pair.
type Evaluation struct {
	ID            uuid.UUID `json:"id"`
	ResumeID      uuid.UUID `json:"resume_id"`
	HiringFormID  uuid.UUID `json:"hiring_form_id"`
	EvaluatedBy   uuid.UUID `json:"evaluated_by"`
	PromptVersion int       `json:"prompt_version"`

	CandidateName  string  `json:"candidate_name"`
	CandidateEmail *string `json:"candidate_email,omitempty"`
	CandidatePhone *string `json:"candidate_phone,omitempty"`

	OverallScore float64     `json:"overall_score"`
	Confidence   float64     `json:"confidence"`
	Eligibility  Eligibility `json:"eligibility"`

	CategoryScores []CategoryScore `json:"category_scores"`

	Explanation          string     `json:"explanation"`
	PlainLanguageSummary string     `json:"plain_language_summary"`
	Strengths            []string   `json:"strengths,omitempty"`
	Gaps                 []string   `json:"gaps,omitempty"`
	RiskFlags            []string   `json:"risk_flags,omitempty"`
	IntegritySignals     []string   `json:"integrity_signals,omitempty"`
	ResumeQualityScore   float64    `json:"resume_quality_score"`
	Evidence             []Evidence `json:"evidence,omitempty"`

	Status                 Status  `json:"status"`
	CurrentStage           *string `json:"current_stage,omitempty"`
	DisqualificationReason *string `json:"disqualification_reason,omitempty"`

	ManualOverride   *Override  `json:"manual_override,omitempty"`
	FlaggedForReview bool       `json:"flagged_for_review"`
	Feedback         []Feedback `json:"feedback,omitempty"`

	ProcessingTime time.Duration `json:"processing_time"`
	OracleModel    string        `json:"oracle_model,omitempty"`

	CompletedAt time.Time `json:"completed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand requests an asynchronous evaluation of a resume against
// a hiring form.
type CreateCommand struct {
	ResumeID     uuid.UUID   `json:"resume_id"`
	HiringFormID uuid.UUID   `json:"hiring_form_id"`
	Actor        audit.Actor `json:"actor"`
}

// InsertCommand carries a completed scoring result from the evaluate
// worker into the store.
type InsertCommand struct {
	ResumeID      uuid.UUID
	HiringFormID  uuid.UUID
	EvaluatedBy   uuid.UUID
	PromptVersion int

	CandidateName  string
	CandidateEmail *string
	CandidatePhone *string

	OverallScore float64
	Confidence   float64
	Eligibility  Eligibility

	CategoryScores []CategoryScore

	Explanation          string
	PlainLanguageSummary string
	Strengths            []string
	Gaps                 []string
	RiskFlags            []string
	IntegritySignals     []string
	ResumeQualityScore   float64
	Evidence             []Evidence

	FlaggedForReview bool
	ProcessingTime   time.Duration
	OracleModel      string
}

// UpdateStatusCommand moves an evaluation through the pipeline.
type UpdateStatusCommand struct {
	Status                 Status      `json:"status"`
	CurrentStage           *string     `json:"current_stage,omitempty"`
	DisqualificationReason *string     `json:"disqualification_reason,omitempty"`
	Actor                  audit.Actor `json:"actor"`
}

// OverrideCommand replaces the pipeline status by human decision.
// Reason, reason category, and new status are all mandatory.
type OverrideCommand struct {
	NewStatus      Status               `json:"new_status"`
	Reason         string               `json:"reason"`
	ReasonCategory audit.ReasonCategory `json:"reason_category"`
	Comments       string               `json:"comments,omitempty"`
	Actor          audit.Actor          `json:"actor"`
}

// AddFeedbackCommand appends one interviewer's assessment.
type AddFeedbackCommand struct {
	Round          string         `json:"round"`
	Score          *float64       `json:"score,omitempty"`
	Comments       string         `json:"comments,omitempty"`
	Strengths      []string       `json:"strengths,omitempty"`
	Concerns       []string       `json:"concerns,omitempty"`
	Recommendation Recommendation `json:"recommendation"`
	Actor          audit.Actor    `json:"actor"`
}

// StatusStats summarizes evaluations sharing one pipeline status.
type StatusStats struct {
	Status        Status  `json:"status"`
	Count         int     `json:"count"`
	AvgScore      float64 `json:"avg_score"`
	AvgConfidence float64 `json:"avg_confidence"`
}

// OverallStats summarizes the whole evaluation population.
type OverallStats struct {
	TotalEvaluations int     `json:"total_evaluations"`
	AvgScore         float64 `json:"avg_score"`
	AvgConfidence    float64 `json:"avg_confidence"`
	FlaggedForReview int     `json:"flagged_for_review"`
	WithOverrides    int     `json:"with_overrides"`
}

// Stats is the evaluation statistics report.
type Stats struct {
	ByStatus []StatusStats `json:"by_status"`
	Overall  OverallStats  `json:"overall"`
}
