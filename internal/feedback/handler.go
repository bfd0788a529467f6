package feedback

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/verdict-ml/verdict/internal/sessions"
	"github.com/verdict-ml/verdict/pkg/handlers"
	"github.com/verdict-ml/verdict/pkg/routes"
)

// Handler provides HTTP endpoints for feedback operations.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// SubmitRequest carries the user's verdict on their most recent
// classification. Correct is a pointer so an absent selection is
// distinguishable from an explicit "no".
type SubmitRequest struct {
	Correct *bool `json:"correct"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "feedback"),
	}
}

// Routes returns the route group definition for feedback endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/feedback",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Submit},
		},
	}
}

// Submit records the user's verdict on the most recent classification.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrNoSession)
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoSelection)
		return
	}
	if req.Correct == nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoSelection)
		return
	}

	receipt, err := h.sys.Submit(r.Context(), sess, *req.Correct)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, receipt)
}
