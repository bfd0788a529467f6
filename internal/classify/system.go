package classify

import (
	"context"

	"github.com/verdict-ml/verdict/internal/sessions"
)

// System defines the public contract for classification operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	Classify(ctx context.Context, sess *sessions.Session, text string) (*sessions.Record, error)
	ClassifyBatch(ctx context.Context, sess *sessions.Session, texts []string) ([]BatchItem, error)
}
