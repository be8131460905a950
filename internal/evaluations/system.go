package evaluations

import (
	"context"

	"github.com/google/uuid"

	"github.com/talonhq/talon/pkg/pagination"
)

// System defines the public contract for evaluation domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Evaluation], error)

	Find(ctx context.Context, id uuid.UUID) (*Evaluation, error)

	// Create validates the resume and hiring form, then enqueues an
	// asynchronous scoring job. The resume's parsed content must already
	// be approved.
	Create(ctx context.Context, cmd CreateCommand) error

	// UpdateStatus moves an evaluation along the recruitment pipeline,
	// enforcing the transition table.
	UpdateStatus(ctx context.Context, id uuid.UUID, cmd UpdateStatusCommand) (*Evaluation, error)

	// Override replaces the pipeline status by human decision, bypassing
	// the transition guard. The evaluation is always flagged for review
	// afterward and the override is retained on the record.
	Override(ctx context.Context, id uuid.UUID, cmd OverrideCommand) (*Evaluation, error)

	// AddFeedback appends one interviewer's assessment for a round.
	AddFeedback(ctx context.Context, id uuid.UUID, cmd AddFeedbackCommand) (*Evaluation, error)

	Stats(ctx context.Context) (*Stats, error)

	// Insert stores a completed scoring result. Worker-facing; enforces
	// one evaluation per resume and form pair.
	Insert(ctx context.Context, cmd InsertCommand) (*Evaluation, error)
}
