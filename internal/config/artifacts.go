package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	EnvArtifactsEnabled = "VERDICT_ARTIFACTS_ENABLED"
	EnvArtifactsKey     = "VERDICT_ARTIFACTS_KEY"
)

// ArtifactsConfig toggles fetching the model artifact from blob storage
// when it is absent from the local model path at startup.
type ArtifactsConfig struct {
	Enabled bool   `toml:"enabled"`
	Key     string `toml:"key"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ArtifactsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ArtifactsConfig) Merge(overlay *ArtifactsConfig) {
	if overlay.Enabled {
		c.Enabled = true
	}
	if overlay.Key != "" {
		c.Key = overlay.Key
	}
}

func (c *ArtifactsConfig) loadDefaults() {
	if c.Key == "" {
		c.Key = "models/model.json"
	}
}

func (c *ArtifactsConfig) loadEnv() {
	if v := os.Getenv(EnvArtifactsEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvArtifactsKey); v != "" {
		c.Key = v
	}
}

func (c *ArtifactsConfig) validate() error {
	if c.Enabled && c.Key == "" {
		return fmt.Errorf("key required when enabled")
	}
	return nil
}
