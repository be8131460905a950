package hiringforms

import (
	"context"

	"github.com/google/uuid"

	"github.com/talonhq/talon/pkg/pagination"
)

// System defines the public contract for hiring form domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[HiringForm], error)

	Find(ctx context.Context, id uuid.UUID) (*HiringForm, error)
	Create(ctx context.Context, cmd CreateCommand) (*HiringForm, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*HiringForm, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementUsage bumps the form's usage counter and stamps last_used_at.
	// Called by the evaluate worker each time the form scores a resume.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}
