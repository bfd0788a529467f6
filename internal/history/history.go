// Package history renders and manages the session classification
// history: the collapsible viewer, the clear operation, and the full
// CSV export.
package history

import (
	"fmt"

	"github.com/verdict-ml/verdict/internal/sessions"
)

const (
	// VisibleLimit caps how many records the viewer shows.
	VisibleLimit = 10

	// PreviewLength is how many characters of text each viewer row shows.
	PreviewLength = 100

	// ExportFilename is the download name for the CSV export.
	ExportFilename = "classification_history.csv"
)

// Entry is one rendered viewer row.
type Entry struct {
	Label         string  `json:"label"`
	Confidence    float64 `json:"confidence"`
	ConfidencePct string  `json:"confidence_pct"`
	Timestamp     string  `json:"timestamp"`
	Preview       string  `json:"preview"`
	Feedback      string  `json:"feedback,omitempty"`
}

// View is the viewer state returned to the UI. Entries holds at most
// VisibleLimit records, newest first; Count is the full history size.
type View struct {
	ShowHistory bool    `json:"show_history"`
	Count       int     `json:"count"`
	Entries     []Entry `json:"entries"`
}

// NewEntry renders a stored record into a viewer row.
func NewEntry(rec sessions.Record) Entry {
	return Entry{
		Label:         rec.Label,
		Confidence:    rec.Confidence,
		ConfidencePct: fmt.Sprintf("%.1f%%", rec.Confidence*100),
		Timestamp:     rec.Timestamp,
		Preview:       preview(rec.Text),
		Feedback:      rec.Feedback,
	}
}

// preview returns the first PreviewLength characters of text. The
// trailing ellipsis is appended regardless of text length.
func preview(text string) string {
	runes := []rune(text)
	if len(runes) > PreviewLength {
		runes = runes[:PreviewLength]
	}
	return string(runes) + "..."
}
