// Package oracle wraps the external scoring model behind a narrow
// interface. Responses are schema-validated before they reach the
// pipeline; transport failures and malformed output are distinguished so
// the queue can retry one and not the other.
package oracle

import "context"

// CategoryWeight names one scoring dimension and its weight from the
// hiring form.
type CategoryWeight struct {
	Name        string `json:"name"`
	Weight      int    `json:"weight"`
	Description string `json:"description,omitempty"`
}

// Thresholds carries the form's scoring cutoffs so the model can ground
// its explanation in them.
type Thresholds struct {
	AutoShortlist float64 `json:"auto_shortlist"`
	FurtherReview float64 `json:"further_review"`
}

// ScoreRequest is one scoring call: the formatted resume text plus the
// hiring form context and the resolved system prompt.
type ScoreRequest struct {
	ResumeText   string
	FormTitle    string
	Requirements string
	Categories   []CategoryWeight
	Thresholds   Thresholds
	SystemPrompt string
}

// Evidence is a span of resume text the model cites for a score.
type Evidence struct {
	Section        string   `json:"section"`
	TextExcerpt    string   `json:"text_excerpt"`
	StartIndex     int      `json:"start_index"`
	EndIndex       int      `json:"end_index"`
	Category       string   `json:"category"`
	RelevanceScore *float64 `json:"relevance_score,omitempty"`
}

// CategoryResult is the model's assessment of one scoring dimension.
type CategoryResult struct {
	Name       string   `json:"name"`
	Score      float64  `json:"score"`
	Reasoning  string   `json:"reasoning"`
	Strengths  []string `json:"strengths,omitempty"`
	Gaps       []string `json:"gaps,omitempty"`
	Confidence float64  `json:"confidence"`
}

// ScoreResponse is the validated scoring result. Eligibility banding and
// review flagging are derived by the caller, not trusted from the model.
type ScoreResponse struct {
	CandidateName  string  `json:"candidate_name"`
	CandidateEmail *string `json:"candidate_email,omitempty"`
	CandidatePhone *string `json:"candidate_phone,omitempty"`

	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`

	Explanation          string   `json:"explanation"`
	PlainLanguageSummary string   `json:"plain_language_summary"`
	Strengths            []string `json:"strengths,omitempty"`
	Gaps                 []string `json:"gaps,omitempty"`
	RiskFlags            []string `json:"risk_flags,omitempty"`
	IntegritySignals     []string `json:"integrity_signals,omitempty"`
	ResumeQualityScore   float64  `json:"resume_quality_score"`

	Categories []CategoryResult `json:"categories"`
	Evidence   []Evidence       `json:"evidence,omitempty"`
}

// Scorer is the scoring contract consumed by the evaluate worker.
type Scorer interface {
	Score(ctx context.Context, req ScoreRequest) (*ScoreResponse, error)
	Model() string
}
