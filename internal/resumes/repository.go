package resumes

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
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

// New creates a resume repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
	q queue.System,
	recorder audit.Recorder,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "resumes"),
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
) (*pagination.PageResult[Resume], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "OriginalName", "SearchText")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count resumes: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	result, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanResume)
	if err != nil {
		return nil, fmt.Errorf("query resumes: %w", err)
	}

	pageResult := pagination.NewPageResult(result, total, page.Page, page.PageSize)
	return &pageResult, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Resume, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	res, err := repository.QueryOne(ctx, r.db, q, args, scanResume)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &res, nil
}

func (r *repo) Upload(ctx context.Context, cmd UploadCommand) (*Resume, error) {
	if cmd.FileName == "" || cmd.OriginalName == "" {
		return nil, ErrMissingFile
	}
	if cmd.RawText == "" {
		return nil, ErrEmptyText
	}

	tags, err := json.Marshal(cmd.Tags)
	if err != nil {
		return nil, fmt.Errorf("marshal tags: %w", err)
	}

	q := fmt.Sprintf(`
		INSERT INTO resumes(
			file_name, original_name, file_size, mime_type, uploaded_by,
			raw_text, processing_status, processing_started_at, tags
		)
		VALUES ($1, $2, $3, $4, $5, $6, 'processing', now(), $7)
		RETURNING %s`, resumeColumns)

	args := []any{
		cmd.FileName,
		cmd.OriginalName,
		cmd.FileSize,
		cmd.MimeType,
		cmd.Actor.ID,
		cmd.RawText,
		tags,
	}

	res, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Resume, error) {
		return repository.QueryOne(ctx, tx, q, args, scanResume)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if _, err := r.queue.Enqueue(ctx, queue.EnqueueCommand{
		Type:      JobTypeParse,
		Payload:   ParseJob{ResumeID: res.ID},
		Priority:  ParsePriority,
		Delay:     ParseDelay,
		EntityKey: res.ID.String(),
	}); err != nil {
		if failErr := r.FailParse(ctx, res.ID, "parse job enqueue failed"); failErr != nil {
			r.logger.Error("mark upload failed", "id", res.ID, "error", failErr)
		}
		return nil, fmt.Errorf("enqueue parse job: %w", err)
	}

	r.recorder.Record(ctx, audit.Entry{
		Actor:      cmd.Actor,
		Action:     audit.ActionResumeUpload,
		EntityType: "resume",
		EntityID:   res.ID,
		EntityName: res.OriginalName,
		After:      res,
	})

	r.logger.Info("resume uploaded", "id", res.ID, "name", res.OriginalName, "size", res.FileSize)
	return &res, nil
}

func (r *repo) ApproveParse(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Resume, error) {
	res, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Resume, error) {
		current, err := r.lockResume(ctx, tx, id)
		if err != nil {
			return Resume{}, err
		}
		if !current.ParseStatus.Reviewable() {
			return Resume{}, ErrNotReviewable
		}
		if current.ParsedContent == nil {
			return Resume{}, ErrNotParsed
		}

		q := fmt.Sprintf(`
			UPDATE resumes
			SET parse_status = 'approved', parsed_by = $1, parsed_at = now(),
				updated_at = now()
			WHERE id = $2
			RETURNING %s`, resumeColumns)

		return repository.QueryOne(ctx, tx, q, []any{cmd.Actor.ID, id}, scanResume)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, audit.Entry{
		Actor:      cmd.Actor,
		Action:     audit.ActionResumeParseApprove,
		EntityType: "resume",
		EntityID:   res.ID,
		EntityName: res.OriginalName,
		After:      res.ParseStatus,
	})

	r.logger.Info("resume parse approved", "id", res.ID, "reviewer", cmd.Actor.ID)
	return &res, nil
}

func (r *repo) EditParse(ctx context.Context, id uuid.UUID, cmd EditParseCommand) (*Resume, error) {
	var before *ParsedContent

	res, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Resume, error) {
		current, err := r.lockResume(ctx, tx, id)
		if err != nil {
			return Resume{}, err
		}
		if !current.ParseStatus.Reviewable() {
			return Resume{}, ErrNotReviewable
		}
		if current.ParsedContent == nil {
			return Resume{}, ErrNotParsed
		}
		before = current.ParsedContent

		edits, err := sectionEdits(*current.ParsedContent, cmd.Content, cmd.Actor.ID, cmd.Reason)
		if err != nil {
			return Resume{}, err
		}
		allEdits := append(current.ParseEdits, edits...)

		content, err := json.Marshal(cmd.Content)
		if err != nil {
			return Resume{}, fmt.Errorf("marshal parsed content: %w", err)
		}
		editsJSON, err := json.Marshal(allEdits)
		if err != nil {
			return Resume{}, fmt.Errorf("marshal parse edits: %w", err)
		}

		q := fmt.Sprintf(`
			UPDATE resumes
			SET parsed_content = $1, parse_edits = $2, parse_status = 'edited',
				parsed_by = $3, parsed_at = now(), updated_at = now()
			WHERE id = $4
			RETURNING %s`, resumeColumns)

		return repository.QueryOne(ctx, tx, q, []any{content, editsJSON, cmd.Actor.ID, id}, scanResume)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, audit.Entry{
		Actor:      cmd.Actor,
		Action:     audit.ActionResumeParseEdit,
		EntityType: "resume",
		EntityID:   res.ID,
		EntityName: res.OriginalName,
		Before:     before,
		After:      res.ParsedContent,
		Reason:     cmd.Reason,
	})

	r.logger.Info("resume parse edited", "id", res.ID, "reviewer", cmd.Actor.ID)
	return &res, nil
}

func (r *repo) RejectParse(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Resume, error) {
	if cmd.Reason == "" {
		return nil, ErrMissingReason
	}
	if cmd.ReasonCategory != "" && !cmd.ReasonCategory.Valid() {
		return nil, ErrInvalidReason
	}

	res, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Resume, error) {
		current, err := r.lockResume(ctx, tx, id)
		if err != nil {
			return Resume{}, err
		}
		if !current.ParseStatus.Reviewable() {
			return Resume{}, ErrNotReviewable
		}

		q := fmt.Sprintf(`
			UPDATE resumes
			SET parse_status = 'rejected', status = 'failed', parsed_by = $1,
				parsed_at = now(), updated_at = now()
			WHERE id = $2
			RETURNING %s`, resumeColumns)

		return repository.QueryOne(ctx, tx, q, []any{cmd.Actor.ID, id}, scanResume)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.recorder.Record(ctx, audit.Entry{
		Actor:          cmd.Actor,
		Action:         audit.ActionResumeParseReject,
		EntityType:     "resume",
		EntityID:       res.ID,
		EntityName:     res.OriginalName,
		After:          res.ParseStatus,
		Reason:         cmd.Reason,
		ReasonCategory: cmd.ReasonCategory,
	})

	r.logger.Info("resume parse rejected", "id", res.ID, "reviewer", cmd.Actor.ID)
	return &res, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM resumes WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("resume deleted", "id", id)
	return nil
}

func (r *repo) CompleteParse(
	ctx context.Context,
	id uuid.UUID,
	content ParsedContent,
	searchText string,
) (*Resume, error) {
	contentJSON, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal parsed content: %w", err)
	}

	q := fmt.Sprintf(`
		UPDATE resumes
		SET parsed_content = $1, search_text = $2,
			processing_status = 'completed', processing_completed_at = now(),
			processing_error = NULL, parse_status = 'pending',
			status = 'parsed', updated_at = now()
		WHERE id = $3
		RETURNING %s`, resumeColumns)

	res, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Resume, error) {
		return repository.QueryOne(ctx, tx, q, []any{contentJSON, searchText, id}, scanResume)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("resume parsed", "id", res.ID, "skills", len(content.Skills))
	return &res, nil
}

func (r *repo) FailParse(ctx context.Context, id uuid.UUID, cause string) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE resumes
		SET processing_status = 'failed', processing_error = $1,
			processing_completed_at = now(), status = 'failed',
			updated_at = now()
		WHERE id = $2`,
		cause, id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Warn("resume parse failed", "id", id, "cause", cause)
	return nil
}

func (r *repo) MarkEvaluating(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE resumes SET status = 'evaluating', updated_at = now() WHERE id = $1",
		id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) LinkEvaluation(ctx context.Context, id, evaluationID uuid.UUID) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		`UPDATE resumes
		SET evaluation_id = $1, status = 'completed', updated_at = now()
		WHERE id = $2`,
		evaluationID, id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) lockResume(ctx context.Context, tx *sql.Tx, id uuid.UUID) (Resume, error) {
	q := fmt.Sprintf("SELECT %s FROM resumes WHERE id = $1 FOR UPDATE", resumeColumns)
	return repository.QueryOne(ctx, tx, q, []any{id}, scanResume)
}

// sectionEdits diffs the four content sections and emits one parse edit
// per section that changed.
func sectionEdits(
	before, after ParsedContent,
	editor uuid.UUID,
	reason string,
) ([]ParseEdit, error) {
	sections := []struct {
		field  string
		before any
		after  any
	}{
		{"skills", before.Skills, after.Skills},
		{"experience", before.Experience, after.Experience},
		{"education", before.Education, after.Education},
		{"projects", before.Projects, after.Projects},
	}

	edits := make([]ParseEdit, 0, len(sections))
	now := time.Now().UTC()

	for _, section := range sections {
		original, err := json.Marshal(section.before)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", section.field, err)
		}
		updated, err := json.Marshal(section.after)
		if err != nil {
			return nil, fmt.Errorf("marshal %s: %w", section.field, err)
		}

		if bytes.Equal(original, updated) {
			continue
		}

		edits = append(edits, ParseEdit{
			Field:         section.field,
			OriginalValue: original,
			NewValue:      updated,
			EditedBy:      editor,
			EditedAt:      now,
			Reason:        reason,
		})
	}

	return edits, nil
}
