package sessions_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/verdict-ml/verdict/internal/sessions"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newSession(t *testing.T) *sessions.Session {
	t.Helper()
	m := sessions.NewManager(time.Minute, time.Minute, discard())
	return m.Create()
}

func record(text string) sessions.Record {
	return sessions.Record{
		Text:       text,
		Label:      "REAL",
		Confidence: 0.9,
		Timestamp:  "2026-01-15 09:30:00",
	}
}

func TestTimestampLayout(t *testing.T) {
	ts := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

	if got := ts.Format(sessions.TimestampLayout); got != "2026-01-15 09:30:00" {
		t.Errorf("formatted timestamp: got %s, want 2026-01-15 09:30:00", got)
	}
}

func TestAppendAndRecords(t *testing.T) {
	sess := newSession(t)

	sess.Append(record("first"))
	sess.Append(record("second"))

	records := sess.Records()
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}
	if records[0].Text != "first" || records[1].Text != "second" {
		t.Errorf("records out of order: %q, %q", records[0].Text, records[1].Text)
	}
}

func TestRecordsReturnsCopy(t *testing.T) {
	sess := newSession(t)
	sess.Append(record("original"))

	records := sess.Records()
	records[0].Text = "mutated"

	if sess.Records()[0].Text != "original" {
		t.Error("mutating the returned slice should not affect the session")
	}
}

func TestVisible(t *testing.T) {
	sess := newSession(t)
	for i := 1; i <= 12; i++ {
		sess.Append(record(fmt.Sprintf("article %d", i)))
	}

	visible := sess.Visible(10)
	if len(visible) != 10 {
		t.Fatalf("visible: got %d, want 10", len(visible))
	}
	if visible[0].Text != "article 12" {
		t.Errorf("first visible: got %q, want newest", visible[0].Text)
	}
	if visible[9].Text != "article 3" {
		t.Errorf("last visible: got %q, want article 3", visible[9].Text)
	}
}

func TestVisibleFewerThanLimit(t *testing.T) {
	sess := newSession(t)
	sess.Append(record("only"))

	visible := sess.Visible(10)
	if len(visible) != 1 {
		t.Fatalf("visible: got %d, want 1", len(visible))
	}
	if visible[0].Text != "only" {
		t.Errorf("visible text: got %q, want only", visible[0].Text)
	}
}

func TestVisibleEmpty(t *testing.T) {
	sess := newSession(t)

	if got := sess.Visible(10); len(got) != 0 {
		t.Errorf("visible on empty history: got %d records, want 0", len(got))
	}
}

func TestLen(t *testing.T) {
	sess := newSession(t)

	if sess.Len() != 0 {
		t.Errorf("len: got %d, want 0", sess.Len())
	}

	sess.Append(record("one"))
	sess.Append(record("two"))

	if sess.Len() != 2 {
		t.Errorf("len: got %d, want 2", sess.Len())
	}
}

func TestClear(t *testing.T) {
	sess := newSession(t)
	sess.Append(record("one"))
	sess.Append(record("two"))
	sess.Toggle()

	if cleared := sess.Clear(); cleared != 2 {
		t.Errorf("cleared: got %d, want 2", cleared)
	}
	if sess.Len() != 0 {
		t.Errorf("len after clear: got %d, want 0", sess.Len())
	}
	if !sess.ShowHistory() {
		t.Error("clearing history should not collapse the viewer")
	}
}

func TestToggle(t *testing.T) {
	sess := newSession(t)

	if sess.ShowHistory() {
		t.Error("history should start hidden")
	}
	if !sess.Toggle() {
		t.Error("first toggle should show history")
	}
	if sess.Toggle() {
		t.Error("second toggle should hide history")
	}
}

func TestMarkLastIncorrect(t *testing.T) {
	sess := newSession(t)
	sess.Append(record("earlier"))
	sess.Append(record("latest"))

	marked, err := sess.MarkLastIncorrect()
	if err != nil {
		t.Fatalf("MarkLastIncorrect() error = %v", err)
	}

	if marked.Text != "latest" {
		t.Errorf("marked text: got %q, want latest", marked.Text)
	}
	if marked.Feedback != sessions.FeedbackIncorrect {
		t.Errorf("marked feedback: got %q, want %q", marked.Feedback, sessions.FeedbackIncorrect)
	}

	records := sess.Records()
	if records[0].Feedback != "" {
		t.Error("earlier record should be untouched")
	}
	if records[1].Feedback != sessions.FeedbackIncorrect {
		t.Error("latest record should carry the annotation")
	}
}

func TestMarkLastIncorrectEmpty(t *testing.T) {
	sess := newSession(t)

	_, err := sess.MarkLastIncorrect()
	if !errors.Is(err, sessions.ErrEmptyHistory) {
		t.Errorf("error = %v, want ErrEmptyHistory", err)
	}
}
