// Package artifacts stages the model artifact from blob storage onto
// the local model path at startup, covering deployments whose images
// ship without a baked-in model.
package artifacts

import (
	"context"
	"log/slog"
	"os"

	"github.com/verdict-ml/verdict/internal/classifier"
	"github.com/verdict-ml/verdict/pkg/lifecycle"
	"github.com/verdict-ml/verdict/pkg/storage"
)

// Fetcher downloads the artifact blob when the local path is absent,
// then warms the loader cache. Staging and warmup share one startup
// hook; the loader must not cache a missing-artifact outcome while the
// download is still in flight.
type Fetcher struct {
	storage storage.System
	loader  *classifier.Loader
	key     string
	dest    string
	logger  *slog.Logger
}

// NewFetcher creates a Fetcher that stages the blob at key onto dest.
func NewFetcher(
	store storage.System,
	loader *classifier.Loader,
	key, dest string,
	logger *slog.Logger,
) *Fetcher {
	return &Fetcher{
		storage: store,
		loader:  loader,
		key:     key,
		dest:    dest,
		logger:  logger.With("system", "artifacts"),
	}
}

// Start registers the stage-then-warm startup hook.
func (f *Fetcher) Start(lc *lifecycle.Coordinator) {
	lc.OnStartup(func() {
		f.stage(lc.Context())

		if _, err := f.loader.Load(); err != nil {
			f.logger.Warn("classification disabled", "error", err)
		}
	})
}

func (f *Fetcher) stage(ctx context.Context) {
	if _, err := os.Stat(f.dest); err == nil {
		f.logger.Info("artifact already present", "path", f.dest)
		return
	}

	size, err := f.storage.Fetch(ctx, f.key, f.dest)
	if err != nil {
		f.logger.Warn("artifact fetch failed", "key", f.key, "error", err)
		return
	}

	f.logger.Info("artifact staged", "key", f.key, "path", f.dest, "size_bytes", size)
}
