package requirements

import (
	"context"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/pkg/pagination"
)

// System defines the public contract for requirement domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Requirement], error)

	Find(ctx context.Context, id uuid.UUID) (*Requirement, error)

	// Review applies a human review decision in a single transaction:
	// structured edits, confidence propagation, status resolution, test-case
	// staling, and the audit event.
	Review(ctx context.Context, id uuid.UUID, cmd ReviewCommand) (*Requirement, error)

	// UpdateText replaces the requirement's raw text copy-on-write: the
	// current revision is archived and a freshly re-extracted revision takes
	// over the same logical slot.
	UpdateText(ctx context.Context, id uuid.UUID, cmd UpdateTextCommand) (*Requirement, error)

	// AutoApprove promotes every extracted requirement of a document whose
	// overall confidence meets the threshold.
	AutoApprove(ctx context.Context, docID uuid.UUID, threshold float64) (*AutoApproveResult, error)

	// Audit returns the chronological event history of a requirement.
	Audit(ctx context.Context, id uuid.UUID) (*AuditTrail, error)
}
