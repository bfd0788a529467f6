package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvSnapshotsEnabled  = "VERDICT_SNAPSHOTS_ENABLED"
	EnvSnapshotsSchedule = "VERDICT_SNAPSHOTS_SCHEDULE"
	EnvSnapshotsPrefix   = "VERDICT_SNAPSHOTS_PREFIX"
)

// SnapshotsConfig controls scheduled dataset exports to blob storage.
// Schedule is a standard five-field cron expression; an empty schedule
// leaves only on-demand snapshots.
type SnapshotsConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"`
	Prefix   string `toml:"prefix"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SnapshotsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *SnapshotsConfig) Merge(overlay *SnapshotsConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Schedule != "" {
		c.Schedule = overlay.Schedule
	}
	if overlay.Prefix != "" {
		c.Prefix = overlay.Prefix
	}
}

func (c *SnapshotsConfig) loadDefaults() {
	if c.Schedule == "" {
		c.Schedule = "0 2 * * *"
	}
	if c.Prefix == "" {
		c.Prefix = "snapshots"
	}
}

func (c *SnapshotsConfig) loadEnv() {
	if v := os.Getenv(EnvSnapshotsEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvSnapshotsSchedule); v != "" {
		c.Schedule = v
	}
	if v := os.Getenv(EnvSnapshotsPrefix); v != "" {
		c.Prefix = v
	}
}

func (c *SnapshotsConfig) validate() error {
	if c.Enabled && c.Prefix == "" {
		return fmt.Errorf("prefix required when enabled")
	}
	return nil
}
