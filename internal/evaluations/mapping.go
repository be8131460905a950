package evaluations

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/talonhq/talon/pkg/query"
	"github.com/talonhq/talon/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "evaluations", "e").
	Project("id", "ID").
	Project("resume_id", "ResumeID").
	Project("hiring_form_id", "HiringFormID").
	Project("evaluated_by", "EvaluatedBy").
	Project("prompt_version", "PromptVersion").
	Project("candidate_name", "CandidateName").
	Project("candidate_email", "CandidateEmail").
	Project("candidate_phone", "CandidatePhone").
	Project("overall_score", "OverallScore").
	Project("confidence", "Confidence").
	Project("eligibility", "Eligibility").
	Project("category_scores", "CategoryScores").
	Project("explanation", "Explanation").
	Project("plain_language_summary", "PlainLanguageSummary").
	Project("strengths", "Strengths").
	Project("gaps", "Gaps").
	Project("risk_flags", "RiskFlags").
	Project("integrity_signals", "IntegritySignals").
	Project("resume_quality_score", "ResumeQualityScore").
	Project("evidence", "Evidence").
	Project("status", "Status").
	Project("current_stage", "CurrentStage").
	Project("disqualification_reason", "DisqualificationReason").
	Project("manual_override", "ManualOverride").
	Project("flagged_for_review", "FlaggedForReview").
	Project("feedback", "Feedback").
	Project("processing_time_ms", "ProcessingTime").
	Project("oracle_model", "OracleModel").
	Project("completed_at", "CompletedAt").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Join("public", "resumes", "r", "INNER JOIN", "r.id = e.resume_id").
	Map("search_text", "ResumeContent")

var defaultSort = query.SortField{
	Field:      "OverallScore",
	Descending: true,
}

const evaluationColumns = `id, resume_id, hiring_form_id, evaluated_by,
		prompt_version, candidate_name, candidate_email, candidate_phone,
		overall_score, confidence, eligibility, category_scores, explanation,
		plain_language_summary, strengths, gaps, risk_flags,
		integrity_signals, resume_quality_score, evidence, status,
		current_stage, disqualification_reason, manual_override,
		flagged_for_review, feedback, processing_time_ms, oracle_model,
		completed_at, created_at, updated_at`

// Filters contains optional filtering criteria for evaluation queries.
// Nil fields are ignored. CandidateName uses case-insensitive contains
// matching; MinScore is an inclusive lower bound on the overall score.
type Filters struct {
	ResumeID      *uuid.UUID   `json:"resume_id,omitempty"`
	HiringFormID  *uuid.UUID   `json:"hiring_form_id,omitempty"`
	Status        *Status      `json:"status,omitempty"`
	Eligibility   *Eligibility `json:"eligibility,omitempty"`
	CandidateName *string      `json:"candidate_name,omitempty"`
	Flagged       *bool        `json:"flagged,omitempty"`
	MinScore      *float64     `json:"min_score,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("ResumeID", f.ResumeID).
		WhereEquals("HiringFormID", f.HiringFormID).
		WhereEquals("Status", f.Status).
		WhereEquals("Eligibility", f.Eligibility).
		WhereContains("CandidateName", f.CandidateName).
		WhereEquals("FlaggedForReview", f.Flagged)

	if f.MinScore != nil {
		b.WhereAtLeast("OverallScore", *f.MinScore)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if v := values.Get("resume_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.ResumeID = &id
		}
	}

	if v := values.Get("hiring_form_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			f.HiringFormID = &id
		}
	}

	if v := values.Get("status"); v != "" {
		status := Status(v)
		f.Status = &status
	}

	if v := values.Get("eligibility"); v != "" {
		eligibility := Eligibility(v)
		f.Eligibility = &eligibility
	}

	if v := values.Get("candidate_name"); v != "" {
		f.CandidateName = &v
	}

	if v := values.Get("flagged"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			f.Flagged = &b
		}
	}

	if v := values.Get("min_score"); v != "" {
		if score, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinScore = &score
		}
	}

	return f
}

func scanEvaluation(s repository.Scanner) (Evaluation, error) {
	var (
		e          Evaluation
		categories []byte
		strengths  []byte
		gaps       []byte
		riskFlags  []byte
		integrity  []byte
		evidence   []byte
		override   []byte
		feedback   []byte
		processing int64
	)

	err := s.Scan(
		&e.ID,
		&e.ResumeID,
		&e.HiringFormID,
		&e.EvaluatedBy,
		&e.PromptVersion,
		&e.CandidateName,
		&e.CandidateEmail,
		&e.CandidatePhone,
		&e.OverallScore,
		&e.Confidence,
		&e.Eligibility,
		&categories,
		&e.Explanation,
		&e.PlainLanguageSummary,
		&strengths,
		&gaps,
		&riskFlags,
		&integrity,
		&e.ResumeQualityScore,
		&evidence,
		&e.Status,
		&e.CurrentStage,
		&e.DisqualificationReason,
		&override,
		&e.FlaggedForReview,
		&feedback,
		&processing,
		&e.OracleModel,
		&e.CompletedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}

	e.ProcessingTime = time.Duration(processing) * time.Millisecond

	for _, field := range []struct {
		raw  []byte
		dest any
	}{
		{categories, &e.CategoryScores},
		{strengths, &e.Strengths},
		{gaps, &e.Gaps},
		{riskFlags, &e.RiskFlags},
		{integrity, &e.IntegritySignals},
		{evidence, &e.Evidence},
		{override, &e.ManualOverride},
		{feedback, &e.Feedback},
	} {
		if len(field.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(field.raw, field.dest); err != nil {
			return e, err
		}
	}

	return e, nil
}
