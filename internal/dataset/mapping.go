package dataset

import (
	"net/url"
	"strconv"

	"github.com/verdict-ml/verdict/pkg/query"
	"github.com/verdict-ml/verdict/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "dataset_entries", "e").
	Project("id", "ID").
	Project("session_id", "SessionID").
	Project("text", "Text").
	Project("predicted_label", "PredictedLabel").
	Project("confidence", "Confidence").
	Project("created_at", "CreatedAt").
	Project("validated_by", "ValidatedBy").
	Project("validated_at", "ValidatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for dataset queries.
// Nil fields are ignored. Pending selects entries awaiting validation.
type Filters struct {
	PredictedLabel *string `json:"predicted_label,omitempty"`
	SessionID      *string `json:"session_id,omitempty"`
	Pending        *bool   `json:"pending,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.
		WhereEquals("PredictedLabel", f.PredictedLabel).
		WhereEquals("SessionID", f.SessionID)

	if f.Pending != nil && *f.Pending {
		b.WhereNullable("ValidatedAt", nil)
	}

	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if label := values.Get("predicted_label"); label != "" {
		f.PredictedLabel = &label
	}

	if sid := values.Get("session_id"); sid != "" {
		f.SessionID = &sid
	}

	if p := values.Get("pending"); p != "" {
		if v, err := strconv.ParseBool(p); err == nil {
			f.Pending = &v
		}
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.SessionID,
		&e.Text,
		&e.PredictedLabel,
		&e.Confidence,
		&e.CreatedAt,
		&e.ValidatedBy,
		&e.ValidatedAt,
	)
	return e, err
}
