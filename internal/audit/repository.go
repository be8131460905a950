package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/talonhq/talon/pkg/pagination"
	"github.com/talonhq/talon/pkg/query"
	"github.com/talonhq/talon/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an audit repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "audit"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

// Record appends an audit entry. A failed write is logged at error level
// and otherwise swallowed: silent audit loss defeats the compliance
// purpose, but audit persistence must never fail the audited operation.
func (r *repo) Record(ctx context.Context, entry Entry) {
	if err := r.insert(ctx, entry); err != nil {
		r.logger.Error("AUDIT WRITE FAILED",
			"action", entry.Action,
			"entity_type", entry.EntityType,
			"entity_id", entry.EntityID,
			"actor_id", entry.Actor.ID,
			"error", err,
		)
	}
}

func (r *repo) insert(ctx context.Context, entry Entry) error {
	q := `
		INSERT INTO audit_log(
			actor_id, actor_email, actor_role, action,
			entity_type, entity_id, entity_name,
			before, after, reason, reason_category
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	args, err := insertArgs(entry)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

// insertArgs builds the insert parameter list. reason and reason_category
// are NOT NULL columns, so absent values persist as empty strings.
func insertArgs(entry Entry) ([]any, error) {
	before, err := marshalSnapshot(entry.Before)
	if err != nil {
		return nil, fmt.Errorf("marshal before snapshot: %w", err)
	}
	after, err := marshalSnapshot(entry.After)
	if err != nil {
		return nil, fmt.Errorf("marshal after snapshot: %w", err)
	}

	return []any{
		entry.Actor.ID,
		entry.Actor.Email,
		entry.Actor.Role,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.EntityName,
		before,
		after,
		entry.Reason,
		entry.ReasonCategory,
	}, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Record], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "EntityName", "ActorEmail")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count audit records: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	records, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("query audit records: %w", err)
	}

	result := pagination.NewPageResult(records, total, page.Page, page.PageSize)
	return &result, nil
}

func marshalSnapshot(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
