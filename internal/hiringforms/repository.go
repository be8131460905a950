package hiringforms

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/talonhq/talon/pkg/pagination"
	"github.com/talonhq/talon/pkg/query"
	"github.com/talonhq/talon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a hiring form repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "hiringforms"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[HiringForm], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Industry")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count hiring forms: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	forms, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanForm)
	if err != nil {
		return nil, fmt.Errorf("query hiring forms: %w", err)
	}

	result := pagination.NewPageResult(forms, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*HiringForm, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	f, err := repository.QueryOne(ctx, r.db, q, args, scanForm)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &f, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*HiringForm, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	categories, err := json.Marshal(cmd.EvaluationCategories)
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation categories: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO hiring_forms(
			title, industry, requirements, evaluation_categories,
			cutoff_threshold, auto_shortlist_threshold, interview_stages
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING %s`, formColumns)

	args := []any{
		cmd.Title,
		cmd.Industry,
		cmd.Requirements,
		categories,
		cmd.CutoffThreshold,
		cmd.AutoShortlistThreshold,
		cmd.InterviewStages,
	}

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (HiringForm, error) {
		return repository.QueryOne(ctx, tx, q, args, scanForm)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("hiring form created", "id", f.ID, "title", f.Title, "industry", f.Industry)
	return &f, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*HiringForm, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	categories, err := json.Marshal(cmd.EvaluationCategories)
	if err != nil {
		return nil, fmt.Errorf("marshal evaluation categories: %w", err)
	}

	q := fmt.Sprintf(`
		UPDATE hiring_forms
		SET title = $1, industry = $2, requirements = $3,
			evaluation_categories = $4, cutoff_threshold = $5,
			auto_shortlist_threshold = $6, interview_stages = $7,
			active = $8, updated_at = now()
		WHERE id = $9
		RETURNING %s`, formColumns)

	args := []any{
		cmd.Title,
		cmd.Industry,
		cmd.Requirements,
		categories,
		cmd.CutoffThreshold,
		cmd.AutoShortlistThreshold,
		cmd.InterviewStages,
		cmd.Active,
		id,
	}

	f, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (HiringForm, error) {
		return repository.QueryOne(ctx, tx, q, args, scanForm)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("hiring form updated", "id", f.ID, "title", f.Title)
	return &f, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM hiring_forms WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("hiring form deleted", "id", id)
	return nil
}

func (r *repo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE hiring_forms
		SET usage_count = usage_count + 1, last_used_at = now()
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}
