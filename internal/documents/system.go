package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/reqsmith/casegen/pkg/pagination"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Text resolves the stored blob and extracts its plain-text content
	// according to the document's content type.
	Text(ctx context.Context, id uuid.UUID) (*Text, error)
}
