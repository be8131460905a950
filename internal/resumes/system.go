package resumes

import (
	"context"

	"github.com/google/uuid"

	"github.com/talonhq/talon/pkg/pagination"
)

// System defines the public contract for resume domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Resume], error)

	Find(ctx context.Context, id uuid.UUID) (*Resume, error)

	// Upload registers an uploaded resume and enqueues its parse job.
	Upload(ctx context.Context, cmd UploadCommand) (*Resume, error)

	// ApproveParse marks parsed content as reviewed and accurate, clearing
	// the resume for evaluation. Valid only from pending or edited.
	ApproveParse(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Resume, error)

	// EditParse replaces parsed content with reviewer corrections,
	// recording a parse edit per changed section.
	EditParse(ctx context.Context, id uuid.UUID, cmd EditParseCommand) (*Resume, error)

	// RejectParse marks parsed content as unusable. A reason is mandatory.
	RejectParse(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Resume, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// Worker-facing operations.

	// CompleteParse stores the parse worker's structured output and moves
	// the resume into human review.
	CompleteParse(ctx context.Context, id uuid.UUID, content ParsedContent, searchText string) (*Resume, error)

	// FailParse records a terminal parse failure.
	FailParse(ctx context.Context, id uuid.UUID, cause string) error

	// MarkEvaluating flags the resume while a scoring job is in flight.
	MarkEvaluating(ctx context.Context, id uuid.UUID) error

	// LinkEvaluation attaches the completed evaluation and finishes the
	// resume lifecycle.
	LinkEvaluation(ctx context.Context, id, evaluationID uuid.UUID) error
}
