// Package sessions holds per-browser classification state. Each
// session carries its own history and viewer visibility flag; nothing
// is shared across sessions and nothing survives a process restart.
package sessions

import (
	"sync"
	"time"
)

// TimestampLayout is the display format recorded on classifications.
const TimestampLayout = "2006-01-02 15:04:05"

// FeedbackIncorrect marks a record the user flagged as wrong.
const FeedbackIncorrect = "Incorrect"

// Record is one stored classification result. Confidence is zero when
// the model could not produce a probability.
type Record struct {
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
	Timestamp  string  `json:"timestamp"`
	Feedback   string  `json:"feedback,omitempty"`
}

// Session is one user's classification history and viewer state.
// History grows in insertion order; the viewer starts hidden.
type Session struct {
	id string

	mu          sync.Mutex
	history     []Record
	showHistory bool
	lastSeen    time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		id:       id,
		lastSeen: now,
	}
}

// ID returns the session identifier stored in the browser cookie.
func (s *Session) ID() string {
	return s.id
}

// Append adds a record to the end of the history.
func (s *Session) Append(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, rec)
}

// Records returns a copy of the full history in insertion order.
func (s *Session) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]Record, len(s.history))
	copy(records, s.history)
	return records
}

// Visible returns up to limit of the most recent records, newest
// first.
func (s *Session) Visible(limit int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := min(limit, len(s.history))
	records := make([]Record, 0, n)
	for i := len(s.history) - 1; i >= len(s.history)-n; i-- {
		records = append(records, s.history[i])
	}
	return records
}

// Len returns the number of stored records.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Clear removes all records and returns how many were removed. The
// visibility flag is left alone.
func (s *Session) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.history)
	s.history = nil
	return n
}

// Toggle flips history visibility and returns the new state.
func (s *Session) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.showHistory = !s.showHistory
	return s.showHistory
}

// ShowHistory reports whether the history viewer is expanded.
func (s *Session) ShowHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showHistory
}

// MarkLastIncorrect sets the feedback annotation on the most recent
// record and returns a copy of it.
func (s *Session) MarkLastIncorrect() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.history) == 0 {
		return Record{}, ErrEmptyHistory
	}

	s.history[len(s.history)-1].Feedback = FeedbackIncorrect
	return s.history[len(s.history)-1], nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
