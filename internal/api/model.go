package api

import (
	"log/slog"
	"net/http"

	"github.com/verdict-ml/verdict/internal/classifier"
	"github.com/verdict-ml/verdict/internal/config"
	"github.com/verdict-ml/verdict/pkg/formatting"
	"github.com/verdict-ml/verdict/pkg/handlers"
	"github.com/verdict-ml/verdict/pkg/routes"
)

type modelHandler struct {
	runtime          *Runtime
	version          string
	datasetEnabled   bool
	snapshotsEnabled bool
	logger           *slog.Logger
}

type modelResponse struct {
	classifier.Info
	ArtifactSizeHuman string `json:"artifact_size_human"`
}

type healthResponse struct {
	Status           string `json:"status"`
	Version          string `json:"version"`
	ModelLoaded      bool   `json:"model_loaded"`
	ModelError       string `json:"model_error,omitempty"`
	DatasetEnabled   bool   `json:"dataset_enabled"`
	SnapshotsEnabled bool   `json:"snapshots_enabled"`
}

func newModelHandler(runtime *Runtime, cfg *config.Config) *modelHandler {
	return &modelHandler{
		runtime:          runtime,
		version:          cfg.Version,
		datasetEnabled:   cfg.Dataset.Enabled,
		snapshotsEnabled: cfg.Snapshots.Enabled,
		logger:           runtime.Logger.With("handler", "model"),
	}
}

func (h *modelHandler) routes() []routes.Group {
	return []routes.Group{
		{
			Prefix: "/model",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.info},
			},
		},
		{
			Prefix: "/health",
			Routes: []routes.Route{
				{Method: "GET", Pattern: "", Handler: h.health},
			},
		},
	}
}

func (h *modelHandler) info(w http.ResponseWriter, r *http.Request) {
	info, err := h.runtime.Loader.Info()
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusServiceUnavailable, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, modelResponse{
		Info:              info,
		ArtifactSizeHuman: formatting.FormatBytes(info.ArtifactSize, 1),
	})
}

// health always answers 200; a missing model degrades the status field
// rather than the endpoint.
func (h *modelHandler) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:           "ok",
		Version:          h.version,
		ModelLoaded:      true,
		DatasetEnabled:   h.datasetEnabled,
		SnapshotsEnabled: h.snapshotsEnabled,
	}

	if _, err := h.runtime.Loader.Load(); err != nil {
		resp.Status = "degraded"
		resp.ModelLoaded = false
		resp.ModelError = err.Error()
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
