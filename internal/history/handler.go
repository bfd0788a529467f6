package history

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/verdict-ml/verdict/internal/sessions"
	"github.com/verdict-ml/verdict/pkg/handlers"
	"github.com/verdict-ml/verdict/pkg/routes"
)

// Handler provides HTTP endpoints for history viewer operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "history"),
	}
}

// Routes returns the route group definition for history endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/history",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.View},
			{Method: "POST", Pattern: "/toggle", Handler: h.Toggle},
			{Method: "DELETE", Pattern: "", Handler: h.Clear},
			{Method: "GET", Pattern: "/export", Handler: h.Export},
		},
	}
}

// View returns the viewer state: visibility flag, total count, and the
// most recent entries.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrNoSession)
		return
	}

	view, err := h.sys.View(sess)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, view)
}

// Toggle flips history visibility and returns the new state.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrNoSession)
		return
	}

	show, err := h.sys.Toggle(sess)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"show_history": show})
}

// Clear removes all history records and reports how many were removed.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrNoSession)
		return
	}

	cleared, err := h.sys.Clear(sess)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]int{"cleared": cleared})
}

// Export streams the full history as a CSV attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrNoSession)
		return
	}

	records, err := h.sys.Export(sess)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ExportFilename))

	if err := WriteCSV(w, records); err != nil {
		h.logger.Error("history export failed", "session", sess.ID(), "error", err)
	}
}
