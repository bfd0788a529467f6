package snapshots_test

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/verdict-ml/verdict/internal/snapshots"
	"github.com/verdict-ml/verdict/pkg/lifecycle"
	"github.com/verdict-ml/verdict/pkg/query"
)

func ptr[T any](v T) *T { return &v }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", snapshots.ErrNotFound, http.StatusNotFound},
		{"duplicate", snapshots.ErrDuplicate, http.StatusConflict},
		{"invalid id", snapshots.ErrInvalidID, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", snapshots.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snapshots.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("name present", func(t *testing.T) {
		f := snapshots.FiltersFromQuery(url.Values{"name": {"dataset-2026"}})

		if f.Name == nil || *f.Name != "dataset-2026" {
			t.Errorf("Name = %v, want dataset-2026", f.Name)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := snapshots.FiltersFromQuery(url.Values{})

		if f.Name != nil {
			t.Errorf("Name = %v, want nil", f.Name)
		}
	})
}

func TestFiltersApply(t *testing.T) {
	proj := query.
		NewProjectionMap("public", "snapshots", "s").
		Project("name", "Name")

	t.Run("no filters produces no WHERE clause", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := snapshots.Filters{}
		f.Apply(b)
		sql, args := b.Build()

		wantSQL := "SELECT s.name FROM public.snapshots s"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("name contains filter", func(t *testing.T) {
		b := query.NewBuilder(proj)
		f := snapshots.Filters{Name: ptr("dataset")}
		f.Apply(b)
		sql, args := b.Build()

		if !strings.Contains(sql, "ILIKE") {
			t.Errorf("sql = %q, want ILIKE condition", sql)
		}
		if len(args) != 1 {
			t.Fatalf("args length = %d, want 1", len(args))
		}
	})
}

func TestSchedulerStart(t *testing.T) {
	t.Run("empty schedule disables scheduled runs", func(t *testing.T) {
		s := snapshots.NewScheduler(nil, "", discard())

		lc := lifecycle.New()
		if err := s.Start(lc); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		lc.Shutdown(time.Second)
	})

	t.Run("whitespace schedule disables scheduled runs", func(t *testing.T) {
		s := snapshots.NewScheduler(nil, "   ", discard())

		lc := lifecycle.New()
		if err := s.Start(lc); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		lc.Shutdown(time.Second)
	})

	t.Run("invalid schedule returns error", func(t *testing.T) {
		s := snapshots.NewScheduler(nil, "not a cron expression", discard())

		lc := lifecycle.New()
		if err := s.Start(lc); err == nil {
			t.Error("Start() error = nil, want parse failure")
		}
		lc.Shutdown(time.Second)
	})

	t.Run("valid schedule registers run loop", func(t *testing.T) {
		s := snapshots.NewScheduler(nil, "0 2 * * *", discard())

		lc := lifecycle.New()
		if err := s.Start(lc); err != nil {
			t.Fatalf("Start() error = %v", err)
		}

		// Shutdown cancels the coordinator context, which stops the
		// loop long before the first tick fires.
		lc.WaitForStartup()
		if err := lc.Shutdown(time.Second); err != nil {
			t.Fatalf("Shutdown() error = %v", err)
		}
	})
}
