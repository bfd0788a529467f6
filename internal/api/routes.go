package api

import (
	"net/http"

	"github.com/verdict-ml/verdict/internal/config"
	"github.com/verdict-ml/verdict/pkg/openapi"
	"github.com/verdict-ml/verdict/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	groups := []routes.Group{
		domain.Classify.Handler(cfg.API.MaxBodySizeBytes()).Routes(),
		domain.History.Handler().Routes(),
		domain.Feedback.Handler().Routes(),
	}
	groups = append(groups, newModelHandler(runtime, cfg).routes()...)

	if domain.Dataset != nil {
		groups = append(groups, domain.Dataset.Handler().Routes())
	}
	if domain.Snapshots != nil {
		groups = append(groups, domain.Snapshots.Handler().Routes())
	}

	routes.Register(mux, groups...)

	specBytes, err := openapi.MarshalJSON(buildSpec(cfg, domain))
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
