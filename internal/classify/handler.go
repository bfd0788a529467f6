package classify

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/verdict-ml/verdict/internal/sessions"
	"github.com/verdict-ml/verdict/pkg/handlers"
	"github.com/verdict-ml/verdict/pkg/routes"
)

// Handler provides HTTP endpoints for classification operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// ClassifyRequest carries the article text to classify.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// BatchRequest carries multiple article texts to classify in one call.
type BatchRequest struct {
	Texts []string `json:"texts"`
}

// NewHandler creates a Handler with the given system, logger, and
// request body limit.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "classify"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the route group definition for classification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/classify",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Classify},
			{Method: "POST", Pattern: "/batch", Handler: h.Batch},
		},
	}
}

// Classify evaluates a single text and appends the result to the
// caller's session history.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrNoSession)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	rec, err := h.sys.Classify(r.Context(), sess, req.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, rec)
}

// Batch evaluates multiple texts, appending each success to the
// caller's session history in submission order.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessions.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, ErrNoSession)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	items, err := h.sys.ClassifyBatch(r.Context(), sess, req.Texts)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}
