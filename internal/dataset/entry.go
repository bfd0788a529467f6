// Package dataset implements the retraining dataset domain: disputed
// classifications captured from user feedback, persisted to PostgreSQL
// for review, validation, and export to the training pipeline.
package dataset

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one captured dispute: the text a user said was classified
// incorrectly, along with what the model predicted. ValidatedBy and
// ValidatedAt are nil until a reviewer confirms the entry.
type Entry struct {
	ID             uuid.UUID  `json:"id"`
	SessionID      string     `json:"session_id"`
	Text           string     `json:"text"`
	PredictedLabel string     `json:"predicted_label"`
	Confidence     float64    `json:"confidence"`
	CreatedAt      time.Time  `json:"created_at"`
	ValidatedBy    *string    `json:"validated_by"`
	ValidatedAt    *time.Time `json:"validated_at"`
}

// ValidateCommand carries the reviewer identity for validation.
type ValidateCommand struct {
	ValidatedBy string `json:"validated_by"`
}
