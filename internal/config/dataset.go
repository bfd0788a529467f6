package config

import (
	"os"
	"strconv"
)

const EnvDatasetEnabled = "VERDICT_DATASET_ENABLED"

// DatasetConfig toggles the PostgreSQL-backed retraining dataset.
// When disabled, negative feedback only annotates session history.
type DatasetConfig struct {
	Enabled bool `toml:"enabled"`
}

// Finalize applies environment variable overrides.
func (c *DatasetConfig) Finalize() error {
	c.loadEnv()
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *DatasetConfig) Merge(overlay *DatasetConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
}

func (c *DatasetConfig) loadEnv() {
	if v := os.Getenv(EnvDatasetEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
}
