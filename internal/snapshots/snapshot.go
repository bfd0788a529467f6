// Package snapshots implements point-in-time exports of the retraining
// dataset. Each snapshot serializes the full dataset to CSV, uploads
// it to blob storage, and records its metadata in PostgreSQL. Snapshots
// run on a cron schedule or on demand.
package snapshots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/verdict-ml/verdict/internal/dataset"
)

// Snapshot is the metadata for one stored dataset export.
type Snapshot struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	StorageKey string    `json:"storage_key"`
	SizeBytes  int64     `json:"size_bytes"`
	EntryCount int       `json:"entry_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Source provides the entries a snapshot serializes.
type Source interface {
	Export(ctx context.Context) ([]dataset.Entry, error)
}
