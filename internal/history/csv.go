package history

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/verdict-ml/verdict/internal/sessions"
)

var csvHeader = []string{"text", "label", "confidence", "timestamp", "feedback"}

// WriteCSV serializes records to CSV in insertion order with a fixed
// header row.
func WriteCSV(w io.Writer, records []sessions.Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			rec.Text,
			rec.Label,
			strconv.FormatFloat(rec.Confidence, 'f', -1, 64),
			rec.Timestamp,
			rec.Feedback,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
