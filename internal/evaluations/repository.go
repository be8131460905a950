package evaluations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/talonhq/talon/internal/audit"
	"github.com/talonhq/talon/pkg/pagination"
	"github.com/talonhq/talon/pkg/query"
	"github.com/talonhq/talon/pkg/queue"
	"github.com/talonhq/talon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	queue      queue.System
	recorder   audit.Recorder
}

// New creates an evaluation repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	q queue.System,
	recorder audit.Recorder,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "evaluations"),
		pagination: pagination,
		queue:      q,
		recorder:   recorder,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Evaluation], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "CandidateName", "Explanation", "ResumeContent")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count evaluations: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	result, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEvaluation)
	if err != nil {
		return nil, fmt.Errorf("query evaluations: %w", err)
	}

	pageResult := pagination.NewPageResult(result, total, page.Page, page.PageSize)
	return &pageResult, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEvaluation)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

// Create validates the request and enqueues the scoring job. Scoring
// itself happens in the evaluate worker; the evaluation row does not
// exist until the worker completes.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) error {
	var parseStatus, originalName string
	err := r.db.QueryRowContext(
		ctx,
		"SELECT parse_status, original_name FROM resumes WHERE id = $1",
		cmd.ResumeID,
	).Scan(&parseStatus, &originalName)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrResumeNotFound
	}
	if err != nil {
		return fmt.Errorf("check resume: %w", err)
	}
	if parseStatus != "approved" {
		return ErrResumeNotApproved
	}

	var exists bool
	if err := r.db.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM hiring_forms WHERE id = $1)",
		cmd.HiringFormID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check hiring form: %w", err)
	}
	if !exists {
		return ErrFormNotFound
	}

	if err := r.db.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM evaluations WHERE resume_id = $1 AND hiring_form_id = $2)",
		cmd.ResumeID, cmd.HiringFormID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check existing evaluation: %w", err)
	}
	if exists {
		return ErrDuplicate
	}

	if _, err := r.queue.Enqueue(ctx, queue.EnqueueCommand{
		Type:      JobTypeEvaluate,
		Payload:   EvaluateJob{ResumeID: cmd.ResumeID, HiringFormID: cmd.HiringFormID, Actor: cmd.Actor},
		Priority:  EvaluatePriority,
		EntityKey: cmd.ResumeID.String(),
	}); err != nil {
		return fmt.Errorf("enqueue evaluate job: %w", err)
	}

	r.recorder.Record(ctx, audit.Entry{
		Actor:      cmd.Actor,
		Action:     audit.ActionEvaluationCreate,
		EntityType: "resume",
		EntityID:   cmd.ResumeID,
		EntityName: originalName,
		After:      cmd,
	})

	r.logger.Info("evaluation requested",
		"resume_id", cmd.ResumeID,
		"hiring_form_id", cmd.HiringFormID,
	)
	return nil
}

func (r *repo) Insert(ctx context.Context, cmd InsertCommand) (*Evaluation, error) {
	fields, err := marshalJSONFields(map[string]any{
		"category_scores":   cmd.CategoryScores,
		"strengths":         cmd.Strengths,
		"gaps":              cmd.Gaps,
		"risk_flags":        cmd.RiskFlags,
		"integrity_signals": cmd.IntegritySignals,
		"evidence":          cmd.Evidence,
	})
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO evaluations(
			resume_id, hiring_form_id, evaluated_by, prompt_version,
			candidate_name, candidate_email, candidate_phone,
			overall_score, confidence, eligibility, category_scores,
			explanation, plain_language_summary, strengths, gaps,
			risk_flags, integrity_signals, resume_quality_score, evidence,
			flagged_for_review, processing_time_ms, oracle_model
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING %s`, evaluationColumns)

	args := []any{
		cmd.ResumeID,
		cmd.HiringFormID,
		cmd.EvaluatedBy,
		cmd.PromptVersion,
		cmd.CandidateName,
		cmd.CandidateEmail,
		cmd.CandidatePhone,
		cmd.OverallScore,
		cmd.Confidence,
		cmd.Eligibility,
		fields["category_scores"],
		cmd.Explanation,
		cmd.PlainLanguageSummary,
		fields["strengths"],
		fields["gaps"],
		fields["risk_flags"],
		fields["integrity_signals"],
		cmd.ResumeQualityScore,
		fields["evidence"],
		cmd.FlaggedForReview,
		cmd.ProcessingTime.Milliseconds(),
		cmd.OracleModel,
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Evaluation, error) {
		return repository.QueryOne(ctx, tx, q, args, scanEvaluation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("evaluation stored",
		"id", e.ID,
		"resume_id", e.ResumeID,
		"score", e.OverallScore,
		"eligibility", e.Eligibility,
		"flagged", e.FlaggedForReview,
	)
	return &e, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, cmd UpdateStatusCommand) (*Evaluation, error) {
	if !cmd.Status.Known() {
		return nil, ErrUnknownStatus
	}

	var before Status

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Evaluation, error) {
		current, err := r.lockEvaluation(ctx, tx, id)
		if err != nil {
			return Evaluation{}, err
		}
		before = current.Status

		if !current.Status.CanTransition(cmd.Status) {
			return Evaluation{}, ErrInvalidTransition
		}

		q := fmt.Sprintf(`
			UPDATE evaluations
			SET status = $1,
				current_stage = COALESCE($2, current_stage),
				disqualification_reason = COALESCE($3, disqualification_reason),
				updated_at = now()
			WHERE id = $4
			RETURNING %s`, evaluationColumns)

		args := []any{cmd.Status, cmd.CurrentStage, cmd.DisqualificationReason, id}
		return repository.QueryOne(ctx, tx, q, args, scanEvaluation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, audit.Entry{
		Actor:      cmd.Actor,
		Action:     audit.ActionStatusChange,
		EntityType: "evaluation",
		EntityID:   e.ID,
		EntityName: e.CandidateName,
		Before:     before,
		After:      e.Status,
	})

	r.logger.Info("evaluation status changed",
		"id", e.ID,
		"from", before,
		"to", e.Status,
	)
	return &e, nil
}

func (r *repo) Override(ctx context.Context, id uuid.UUID, cmd OverrideCommand) (*Evaluation, error) {
	if cmd.Reason == "" || cmd.ReasonCategory == "" || cmd.NewStatus == "" {
		return nil, ErrMissingReason
	}
	if !cmd.ReasonCategory.Valid() {
		return nil, ErrInvalidReason
	}
	if !cmd.NewStatus.Known() {
		return nil, ErrUnknownStatus
	}

	var before Status

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Evaluation, error) {
		current, err := r.lockEvaluation(ctx, tx, id)
		if err != nil {
			return Evaluation{}, err
		}
		before = current.Status

		override := Override{
			OriginalStatus: current.Status,
			NewStatus:      cmd.NewStatus,
			Reason:         cmd.Reason,
			ReasonCategory: cmd.ReasonCategory,
			OverriddenBy:   cmd.Actor.ID,
			OverriddenAt:   time.Now().UTC(),
			Comments:       cmd.Comments,
		}

		overrideJSON, err := json.Marshal(override)
		if err != nil {
			return Evaluation{}, fmt.Errorf("marshal override: %w", err)
		}

		q := fmt.Sprintf(`
			UPDATE evaluations
			SET status = $1, manual_override = $2,
				flagged_for_review = true, updated_at = now()
			WHERE id = $3
			RETURNING %s`, evaluationColumns)

		return repository.QueryOne(ctx, tx, q, []any{cmd.NewStatus, overrideJSON, id}, scanEvaluation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, audit.Entry{
		Actor:          cmd.Actor,
		Action:         audit.ActionEvaluationOverride,
		EntityType:     "evaluation",
		EntityID:       e.ID,
		EntityName:     e.CandidateName,
		Before:         before,
		After:          e.ManualOverride,
		Reason:         cmd.Reason,
		ReasonCategory: cmd.ReasonCategory,
	})

	r.logger.Warn("evaluation overridden",
		"id", e.ID,
		"from", before,
		"to", e.Status,
		"category", cmd.ReasonCategory,
		"by", cmd.Actor.ID,
	)
	return &e, nil
}

func (r *repo) AddFeedback(ctx context.Context, id uuid.UUID, cmd AddFeedbackCommand) (*Evaluation, error) {
	if !ValidRound(cmd.Round) {
		return nil, ErrInvalidRound
	}
	if cmd.Recommendation == "" {
		return nil, ErrNoRecommendation
	}
	if !cmd.Recommendation.Valid() {
		return nil, ErrBadRecommendation
	}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Evaluation, error) {
		current, err := r.lockEvaluation(ctx, tx, id)
		if err != nil {
			return Evaluation{}, err
		}

		feedback := append(current.Feedback, Feedback{
			Interviewer:    cmd.Actor.ID,
			Round:          cmd.Round,
			Score:          cmd.Score,
			Comments:       cmd.Comments,
			Strengths:      cmd.Strengths,
			Concerns:       cmd.Concerns,
			Recommendation: cmd.Recommendation,
			InterviewedAt:  time.Now().UTC(),
		})

		feedbackJSON, err := json.Marshal(feedback)
		if err != nil {
			return Evaluation{}, fmt.Errorf("marshal feedback: %w", err)
		}

		q := fmt.Sprintf(`
			UPDATE evaluations
			SET feedback = $1, updated_at = now()
			WHERE id = $2
			RETURNING %s`, evaluationColumns)

		return repository.QueryOne(ctx, tx, q, []any{feedbackJSON, id}, scanEvaluation)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, audit.Entry{
		Actor:      cmd.Actor,
		Action:     audit.ActionFeedbackAdd,
		EntityType: "evaluation",
		EntityID:   e.ID,
		EntityName: e.CandidateName,
		After: map[string]any{
			"round":          cmd.Round,
			"recommendation": cmd.Recommendation,
		},
	})

	r.logger.Info("interview feedback added",
		"id", e.ID,
		"round", cmd.Round,
		"recommendation", cmd.Recommendation,
	)
	return &e, nil
}

func (r *repo) Stats(ctx context.Context) (*Stats, error) {
	byStatus, err := repository.QueryMany(
		ctx, r.db,
		`SELECT status, COUNT(*),
			COALESCE(AVG(overall_score), 0),
			COALESCE(AVG(confidence), 0)
		FROM evaluations
		GROUP BY status
		ORDER BY status`,
		nil,
		func(s repository.Scanner) (StatusStats, error) {
			var stats StatusStats
			err := s.Scan(&stats.Status, &stats.Count, &stats.AvgScore, &stats.AvgConfidence)
			return stats, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("status stats: %w", err)
	}

	var overall OverallStats
	err = r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*),
			COALESCE(AVG(overall_score), 0),
			COALESCE(AVG(confidence), 0),
			COUNT(*) FILTER (WHERE flagged_for_review),
			COUNT(*) FILTER (WHERE manual_override IS NOT NULL)
		FROM evaluations`,
	).Scan(
		&overall.TotalEvaluations,
		&overall.AvgScore,
		&overall.AvgConfidence,
		&overall.FlaggedForReview,
		&overall.WithOverrides,
	)
	if err != nil {
		return nil, fmt.Errorf("overall stats: %w", err)
	}

	return &Stats{ByStatus: byStatus, Overall: overall}, nil
}

func (r *repo) lockEvaluation(ctx context.Context, tx *sql.Tx, id uuid.UUID) (Evaluation, error) {
	q := fmt.Sprintf("SELECT %s FROM evaluations WHERE id = $1 FOR UPDATE", evaluationColumns)
	return repository.QueryOne(ctx, tx, q, []any{id}, scanEvaluation)
}

func marshalJSONFields(fields map[string]any) (map[string][]byte, error) {
	out := make(map[string][]byte, len(fields))
	for name, value := range fields {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", name, err)
		}
		out[name] = raw
	}
	return out, nil
}
