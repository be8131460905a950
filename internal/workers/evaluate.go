package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/talonhq/talon/internal/evaluations"
	"github.com/talonhq/talon/internal/hiringforms"
	"github.com/talonhq/talon/internal/oracle"
	"github.com/talonhq/talon/internal/prompts"
	"github.com/talonhq/talon/internal/resumes"
	"github.com/talonhq/talon/pkg/pagination"
	"github.com/talonhq/talon/pkg/queue"
)

// genericInstruction is the scoring fallback when no stored prompt is
// active for the form's industry or the default pool.
const genericInstruction = "Evaluate this resume objectively."

// reviewBandOffset widens the further-review threshold below a form's
// cutoff, mirroring the offset used in eligibility classification.
const reviewBandOffset = 20

// evaluateHandler scores an approved resume against a hiring form,
// stores the evaluation, and links it back to the resume.
func evaluateHandler(rt Runtime) queue.Handler {
	logger := rt.Logger.With("worker", "evaluate")

	return func(ctx context.Context, job *queue.Job) error {
		var payload evaluations.EvaluateJob
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return queue.Permanent(fmt.Errorf("decode evaluate payload: %w", err))
		}

		logger.Info("evaluating resume",
			"resume_id", payload.ResumeID,
			"hiring_form_id", payload.HiringFormID,
			"attempt", job.Attempts,
		)

		res, err := rt.Resumes.Find(ctx, payload.ResumeID)
		if err != nil {
			if errors.Is(err, resumes.ErrNotFound) {
				return queue.Permanent(err)
			}
			return fmt.Errorf("load resume: %w", err)
		}

		form, err := rt.HiringForms.Find(ctx, payload.HiringFormID)
		if err != nil {
			if errors.Is(err, hiringforms.ErrNotFound) {
				return queue.Permanent(err)
			}
			return fmt.Errorf("load hiring form: %w", err)
		}

		if res.ParseStatus != resumes.ParseApproved {
			return queue.Permanent(evaluations.ErrResumeNotApproved)
		}
		if res.ParsedContent == nil {
			return queue.Permanent(resumes.ErrNotParsed)
		}

		if err := rt.Resumes.MarkEvaluating(ctx, res.ID); err != nil {
			return fmt.Errorf("mark evaluating: %w", err)
		}

		systemPrompt := genericInstruction
		promptVersion := 1
		var activePrompt *prompts.Prompt

		activePrompt, err = rt.Prompts.Resolve(ctx, form.Industry)
		switch {
		case err == nil:
			systemPrompt = activePrompt.SystemPrompt
			promptVersion = activePrompt.Version
		case errors.Is(err, prompts.ErrNotFound):
			activePrompt = nil
		default:
			return fmt.Errorf("resolve prompt: %w", err)
		}

		categories := make([]oracle.CategoryWeight, 0, len(form.EvaluationCategories))
		for _, cat := range form.EvaluationCategories {
			weight := oracle.CategoryWeight{Name: cat.Name, Weight: cat.Weight}
			if cat.Description != nil {
				weight.Description = *cat.Description
			}
			categories = append(categories, weight)
		}

		start := time.Now()
		score, err := rt.Scorer.Score(ctx, oracle.ScoreRequest{
			ResumeText:   FormatResumeText(*res.ParsedContent),
			FormTitle:    form.Title,
			Requirements: form.Requirements,
			Categories:   categories,
			Thresholds: oracle.Thresholds{
				AutoShortlist: form.AutoShortlistThreshold,
				FurtherReview: form.CutoffThreshold - reviewBandOffset,
			},
			SystemPrompt: systemPrompt,
		})
		if err != nil {
			if errors.Is(err, oracle.ErrUnavailable) {
				return fmt.Errorf("score resume: %w", err)
			}
			return queue.Permanent(fmt.Errorf("score resume: %w", err))
		}
		elapsed := time.Since(start)

		candidateName := score.CandidateName
		if candidateName == "" {
			candidateName = strings.TrimSuffix(
				res.OriginalName,
				filepath.Ext(res.OriginalName),
			)
		}

		cmd := evaluations.InsertCommand{
			ResumeID:      res.ID,
			HiringFormID:  form.ID,
			EvaluatedBy:   payload.Actor.ID,
			PromptVersion: promptVersion,

			CandidateName:  candidateName,
			CandidateEmail: score.CandidateEmail,
			CandidatePhone: score.CandidatePhone,

			OverallScore: score.Score,
			Confidence:   score.Confidence,
			Eligibility: evaluations.Classify(
				score.Score,
				form.AutoShortlistThreshold,
				form.CutoffThreshold-reviewBandOffset,
			),

			CategoryScores: buildCategoryScores(score, form.EvaluationCategories),

			Explanation:          score.Explanation,
			PlainLanguageSummary: score.PlainLanguageSummary,
			Strengths:            score.Strengths,
			Gaps:                 score.Gaps,
			RiskFlags:            score.RiskFlags,
			IntegritySignals:     score.IntegritySignals,
			ResumeQualityScore:   score.ResumeQualityScore,
			Evidence:             mapEvidence(score.Evidence),

			FlaggedForReview: evaluations.FlagForReview(score.Confidence),
			ProcessingTime:   elapsed,
			OracleModel:      rt.Scorer.Model(),
		}

		evaluation, err := rt.Evaluations.Insert(ctx, cmd)
		if errors.Is(err, evaluations.ErrDuplicate) {
			// A previous attempt completed the insert before failing
			// later; recover the existing row and finish linking.
			evaluation, err = findExisting(ctx, rt, payload)
		}
		if err != nil {
			return fmt.Errorf("store evaluation: %w", err)
		}

		if err := rt.Resumes.LinkEvaluation(ctx, res.ID, evaluation.ID); err != nil {
			return fmt.Errorf("link evaluation: %w", err)
		}

		if err := rt.HiringForms.IncrementUsage(ctx, form.ID); err != nil {
			logger.Error("increment form usage", "hiring_form_id", form.ID, "error", err)
		}
		if activePrompt != nil {
			if err := rt.Prompts.IncrementUsage(ctx, activePrompt.ID); err != nil {
				logger.Error("increment prompt usage", "prompt_id", activePrompt.ID, "error", err)
			}
		}

		logger.Info("resume evaluated",
			"resume_id", res.ID,
			"evaluation_id", evaluation.ID,
			"score", evaluation.OverallScore,
			"eligibility", evaluation.Eligibility,
			"flagged", evaluation.FlaggedForReview,
			"elapsed", elapsed,
		)
		return nil
	}
}

// buildCategoryScores matches the model's category results to the form's
// weighted categories by name. A category the model skipped still appears
// with a zero score so the breakdown always covers the form.
func buildCategoryScores(
	score *oracle.ScoreResponse,
	categories []hiringforms.Category,
) []evaluations.CategoryScore {
	byName := make(map[string]oracle.CategoryResult, len(score.Categories))
	for _, result := range score.Categories {
		byName[strings.ToLower(result.Name)] = result
	}

	scores := make([]evaluations.CategoryScore, 0, len(categories))
	for _, cat := range categories {
		cs := evaluations.CategoryScore{
			Name:     cat.Name,
			Weight:   cat.Weight,
			Evidence: categoryEvidence(score.Evidence, cat.Name),
		}

		if result, ok := byName[strings.ToLower(cat.Name)]; ok {
			cs.Score = result.Score
			cs.Reasoning = result.Reasoning
			cs.Strengths = result.Strengths
			cs.Gaps = result.Gaps
			cs.Confidence = result.Confidence
		}

		scores = append(scores, cs)
	}
	return scores
}

func categoryEvidence(evidence []oracle.Evidence, category string) []evaluations.Evidence {
	matched := make([]evaluations.Evidence, 0)
	for _, e := range evidence {
		if strings.EqualFold(e.Category, category) {
			matched = append(matched, evaluations.Evidence(e))
		}
	}
	return matched
}

func mapEvidence(evidence []oracle.Evidence) []evaluations.Evidence {
	mapped := make([]evaluations.Evidence, len(evidence))
	for i, e := range evidence {
		mapped[i] = evaluations.Evidence(e)
	}
	return mapped
}

func findExisting(
	ctx context.Context,
	rt Runtime,
	payload evaluations.EvaluateJob,
) (*evaluations.Evaluation, error) {
	page, err := rt.Evaluations.List(
		ctx,
		pagination.PageRequest{Page: 1, PageSize: 1},
		evaluations.Filters{
			ResumeID:     &payload.ResumeID,
			HiringFormID: &payload.HiringFormID,
		},
	)
	if err != nil {
		return nil, err
	}
	if len(page.Data) == 0 {
		return nil, evaluations.ErrNotFound
	}
	return &page.Data[0], nil
}
