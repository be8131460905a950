package prompts

import (
	"context"

	"github.com/google/uuid"

	"github.com/talonhq/talon/pkg/pagination"
)

// System defines the public contract for prompt domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Prompt], error)

	Find(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (*Prompt, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Prompt, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*Prompt, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Prompt, error)

	// Resolve returns the effective prompt for an industry: the active
	// industry-scoped prompt with the highest version, falling back to the
	// active default prompt. Returns ErrNotFound when neither exists; the
	// caller decides what to do without a stored prompt.
	Resolve(ctx context.Context, industry string) (*Prompt, error)

	// IncrementUsage bumps the prompt's usage counter and stamps last_used_at.
	// Called by the evaluate worker each time the prompt drives a scoring call.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}
