package dataset_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/verdict-ml/verdict/internal/dataset"
	"github.com/verdict-ml/verdict/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", dataset.ErrNotFound, http.StatusNotFound},
		{"duplicate", dataset.ErrDuplicate, http.StatusConflict},
		{"invalid id", dataset.ErrInvalidID, http.StatusBadRequest},
		{"invalid request", dataset.ErrInvalidRequest, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", dataset.ErrNotFound), http.StatusNotFound},
		{"wrapped duplicate", fmt.Errorf("insert failed: %w", dataset.ErrDuplicate), http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dataset.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"predicted_label": {"FAKE"},
			"session_id":      {"abc-123"},
			"pending":         {"true"},
		}

		f := dataset.FiltersFromQuery(values)

		if f.PredictedLabel == nil || *f.PredictedLabel != "FAKE" {
			t.Errorf("PredictedLabel = %v, want FAKE", f.PredictedLabel)
		}
		if f.SessionID == nil || *f.SessionID != "abc-123" {
			t.Errorf("SessionID = %v, want abc-123", f.SessionID)
		}
		if f.Pending == nil || !*f.Pending {
			t.Errorf("Pending = %v, want true", f.Pending)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := dataset.FiltersFromQuery(url.Values{})

		if f.PredictedLabel != nil {
			t.Errorf("PredictedLabel = %v, want nil", f.PredictedLabel)
		}
		if f.SessionID != nil {
			t.Errorf("SessionID = %v, want nil", f.SessionID)
		}
		if f.Pending != nil {
			t.Errorf("Pending = %v, want nil", f.Pending)
		}
	})

	t.Run("invalid pending ignored", func(t *testing.T) {
		values := url.Values{"pending": {"maybe"}}
		f := dataset.FiltersFromQuery(values)

		if f.Pending != nil {
			t.Errorf("Pending = %v, want nil for invalid bool", f.Pending)
		}
	})

	t.Run("partial params", func(t *testing.T) {
		values := url.Values{"predicted_label": {"REAL"}}

		f := dataset.FiltersFromQuery(values)

		if f.PredictedLabel == nil || *f.PredictedLabel != "REAL" {
			t.Errorf("PredictedLabel = %v, want REAL", f.PredictedLabel)
		}
		if f.SessionID != nil {
			t.Errorf("SessionID = %v, want nil", f.SessionID)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	proj := query.
		NewProjectionMap("public", "dataset_entries", "e").
		Project("predicted_label", "PredictedLabel").
		Project("session_id", "SessionID").
		Project("validated_at", "ValidatedAt")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := dataset.Filters{}
		f.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT e.predicted_label, e.session_id, e.validated_at FROM public.dataset_entries e"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("predicted_label equals filter", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := dataset.Filters{PredictedLabel: ptr("FAKE")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
	})

	t.Run("session_id equals filter", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := dataset.Filters{SessionID: ptr("abc-123")}
		f.Apply(b)
		_, args := b.Build()

		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
	})

	t.Run("pending filters on null validated_at", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := dataset.Filters{Pending: ptr(true)}
		f.Apply(b)
		sql, args := b.Build()

		if !strings.Contains(sql, "e.validated_at IS NULL") {
			t.Errorf("sql = %q, want IS NULL condition", sql)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("pending false is a no-op", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := dataset.Filters{Pending: ptr(false)}
		f.Apply(b)
		sql, _ := b.Build()

		if strings.Contains(sql, "WHERE") {
			t.Errorf("sql = %q, want no WHERE clause", sql)
		}
	})

	t.Run("multiple filters combine with AND", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := dataset.Filters{
			PredictedLabel: ptr("FAKE"),
			SessionID:      ptr("abc-123"),
			Pending:        ptr(true),
		}
		f.Apply(b)
		sql, args := b.Build()

		if len(args) != 2 {
			t.Errorf("args length = %d, want 2", len(args))
		}
		if !strings.Contains(sql, " AND ") {
			t.Errorf("sql = %q, want AND-joined conditions", sql)
		}
	})
}

func TestWriteCSV(t *testing.T) {
	created := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	validated := time.Date(2026, 1, 16, 14, 0, 0, 0, time.UTC)

	reviewed := dataset.Entry{
		ID:             uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		SessionID:      "abc-123",
		Text:           "Miracle cure discovered",
		PredictedLabel: "FAKE",
		Confidence:     0.8,
		CreatedAt:      created,
		ValidatedBy:    ptr("reviewer"),
		ValidatedAt:    &validated,
	}
	pending := dataset.Entry{
		ID:             uuid.MustParse("660e8400-e29b-41d4-a716-446655440000"),
		SessionID:      "def-456",
		Text:           "Markets close higher",
		PredictedLabel: "REAL",
		Confidence:     0.941,
		CreatedAt:      created,
	}

	var sb strings.Builder
	if err := dataset.WriteCSV(&sb, []dataset.Entry{reviewed, pending}); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "id,session_id,text,predicted_label,confidence,created_at,validated_by,validated_at\n" +
		"550e8400-e29b-41d4-a716-446655440000,abc-123,Miracle cure discovered,FAKE,0.8,2026-01-15T09:30:00Z,reviewer,2026-01-16T14:00:00Z\n" +
		"660e8400-e29b-41d4-a716-446655440000,def-456,Markets close higher,REAL,0.941,2026-01-15T09:30:00Z,,\n"
	if sb.String() != want {
		t.Errorf("csv = %q, want %q", sb.String(), want)
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var sb strings.Builder
	if err := dataset.WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "id,session_id,text,predicted_label,confidence,created_at,validated_by,validated_at\n"
	if sb.String() != want {
		t.Errorf("csv = %q, want header only", sb.String())
	}
}
