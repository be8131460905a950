package audit

import (
	"context"

	"github.com/talonhq/talon/pkg/pagination"
)

// Recorder is the narrow write-side contract consumed by domain systems
// and workers. Record is best-effort: audit persistence failure must never
// fail the operation being audited, so no error is returned; failures are
// logged loudly instead.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}

// System defines the public contract for the audit domain.
type System interface {
	Recorder

	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Record], error)
}
