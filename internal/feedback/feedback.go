// Package feedback lets users confirm or dispute their most recent
// classification. Disputes annotate the session record and, when the
// retraining dataset is enabled, persist the text for later review.
// Confirmations are acknowledged without being stored anywhere.
package feedback

import "context"

// Receipt acknowledges a feedback submission. Recorded reports whether
// the submission changed any stored state.
type Receipt struct {
	Recorded bool   `json:"recorded"`
	Message  string `json:"message"`
}

// Recorder captures disputed classifications for retraining. A nil
// Recorder disables capture without disabling feedback.
type Recorder interface {
	RecordIncorrect(ctx context.Context, sessionID, text, label string, confidence float64) error
}
