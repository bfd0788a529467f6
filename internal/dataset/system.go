package dataset

import (
	"context"

	"github.com/google/uuid"

	"github.com/verdict-ml/verdict/pkg/pagination"
)

// System defines the public contract for dataset operations.
// RecordIncorrect satisfies the feedback package's Recorder interface.
type System interface {
	Handler() *Handler

	RecordIncorrect(ctx context.Context, sessionID, text, label string, confidence float64) error

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	Validate(ctx context.Context, id uuid.UUID, cmd ValidateCommand) (*Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Export(ctx context.Context) ([]Entry, error)
}
