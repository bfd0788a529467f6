package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// ExportFilename is the download name for the dataset CSV export.
const ExportFilename = "retraining_dataset.csv"

var csvHeader = []string{
	"id", "session_id", "text", "predicted_label", "confidence",
	"created_at", "validated_by", "validated_at",
}

// WriteCSV serializes entries to CSV with a fixed header row. The same
// serialization backs the download endpoint and snapshot payloads.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range entries {
		validatedBy := ""
		if e.ValidatedBy != nil {
			validatedBy = *e.ValidatedBy
		}

		validatedAt := ""
		if e.ValidatedAt != nil {
			validatedAt = e.ValidatedAt.UTC().Format(time.RFC3339)
		}

		row := []string{
			e.ID.String(),
			e.SessionID,
			e.Text,
			e.PredictedLabel,
			strconv.FormatFloat(e.Confidence, 'f', -1, 64),
			e.CreatedAt.UTC().Format(time.RFC3339),
			validatedBy,
			validatedAt,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
