package feedback

import (
	"context"

	"github.com/verdict-ml/verdict/internal/sessions"
)

// System defines the public contract for feedback operations.
type System interface {
	Handler() *Handler

	Submit(ctx context.Context, sess *sessions.Session, correct bool) (*Receipt, error)
}
