package snapshots

import (
	"context"

	"github.com/google/uuid"

	"github.com/verdict-ml/verdict/pkg/pagination"
	"github.com/verdict-ml/verdict/pkg/storage"
)

// System defines the public contract for snapshot operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Snapshot], error)

	Find(ctx context.Context, id uuid.UUID) (*Snapshot, error)
	Create(ctx context.Context) (*Snapshot, error)
	Download(ctx context.Context, id uuid.UUID) (*Snapshot, *storage.DownloadResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
