package snapshots

import (
	"net/url"

	"github.com/verdict-ml/verdict/pkg/query"
	"github.com/verdict-ml/verdict/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "snapshots", "s").
	Project("id", "ID").
	Project("name", "Name").
	Project("storage_key", "StorageKey").
	Project("size_bytes", "SizeBytes").
	Project("entry_count", "EntryCount").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for snapshot queries.
// Nil fields are ignored. Name uses case-insensitive contains matching.
type Filters struct {
	Name *string `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if name := values.Get("name"); name != "" {
		f.Name = &name
	}

	return f
}

func scanSnapshot(s repository.Scanner) (Snapshot, error) {
	var snap Snapshot
	err := s.Scan(
		&snap.ID,
		&snap.Name,
		&snap.StorageKey,
		&snap.SizeBytes,
		&snap.EntryCount,
		&snap.CreatedAt,
	)
	return snap, err
}
