package history

import "github.com/verdict-ml/verdict/internal/sessions"

// System defines the public contract for history viewer operations.
// Every operation requires a loaded model; a session can hold history
// only if classification has been working.
type System interface {
	Handler() *Handler

	View(sess *sessions.Session) (*View, error)
	Toggle(sess *sessions.Session) (bool, error)
	Clear(sess *sessions.Session) (int, error)
	Export(sess *sessions.Session) ([]sessions.Record, error)
}
