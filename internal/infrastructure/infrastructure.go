// Package infrastructure provides core service initialization for application startup.
// It assembles the dependencies domain systems require: lifecycle coordination,
// logging, the model loader, the session manager, and the optional database and
// blob storage backends.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/verdict-ml/verdict/internal/classifier"
	"github.com/verdict-ml/verdict/internal/config"
	"github.com/verdict-ml/verdict/internal/sessions"
	"github.com/verdict-ml/verdict/pkg/database"
	"github.com/verdict-ml/verdict/pkg/lifecycle"
	"github.com/verdict-ml/verdict/pkg/storage"
)

// Infrastructure holds the core systems required by the domain modules.
// Database and Storage are nil unless an enabled feature requires them;
// Loader and Sessions are always present.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Loader    *classifier.Loader
	Sessions  *sessions.Manager
	Database  database.System
	Storage   storage.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Loader:    classifier.NewLoader(cfg.Model.Path, logger),
		Sessions: sessions.NewManager(
			cfg.Sessions.TTLDuration(),
			cfg.Sessions.SweepIntervalDuration(),
			logger,
		),
	}

	if cfg.DatabaseRequired() {
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
	}

	if cfg.StorageRequired() {
		store, err := storage.New(&cfg.Storage, logger)
		if err != nil {
			return nil, fmt.Errorf("storage init failed: %w", err)
		}
		infra.Storage = store
	}

	return infra, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Loader warmup is not registered here; the server wires it either directly
// or behind the artifact fetcher so staging always precedes the first load.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
	}
	if i.Storage != nil {
		if err := i.Storage.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("storage start failed: %w", err)
		}
	}

	i.Sessions.Start(i.Lifecycle)
	return nil
}
