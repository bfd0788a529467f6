// Package api assembles the API module: domain systems, route
// registration, session resolution, and the OpenAPI document.
package api

import (
	"net/http"

	"github.com/verdict-ml/verdict/internal/artifacts"
	"github.com/verdict-ml/verdict/internal/config"
	"github.com/verdict-ml/verdict/internal/infrastructure"
	"github.com/verdict-ml/verdict/internal/sessions"
	"github.com/verdict-ml/verdict/internal/snapshots"
	"github.com/verdict-ml/verdict/pkg/middleware"
	"github.com/verdict-ml/verdict/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware,
// and registers the domain lifecycle hooks (loader warmup, artifact staging,
// snapshot schedule) with the infrastructure coordinator.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	if cfg.Artifacts.Enabled && runtime.Storage != nil {
		fetcher := artifacts.NewFetcher(
			runtime.Storage,
			runtime.Loader,
			cfg.Artifacts.Key,
			cfg.Model.Path,
			runtime.Logger,
		)
		fetcher.Start(runtime.Lifecycle)
	} else {
		runtime.Loader.Start(runtime.Lifecycle)
	}

	if domain.Snapshots != nil {
		scheduler := snapshots.NewScheduler(
			domain.Snapshots,
			cfg.Snapshots.Schedule,
			runtime.Logger,
		)
		if err := scheduler.Start(runtime.Lifecycle); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(sessions.Middleware(runtime.Sessions, cfg.Sessions.CookieName))

	return m, nil
}
