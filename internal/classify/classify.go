// Package classify implements the classification workflow: validate
// submitted text, evaluate the loaded model, resolve the display
// label, and append the result to the caller's session history.
package classify

import "github.com/verdict-ml/verdict/internal/sessions"

// BatchItem reports the outcome of a single text within a batch
// request. On success, Record is populated and Error is empty. On
// failure, Error describes the problem and nothing was appended to
// the session for that text.
type BatchItem struct {
	Record *sessions.Record `json:"record,omitempty"`
	Error  string           `json:"error,omitempty"`
}
