package config

import (
	"fmt"
	"os"
)

const EnvModelPath = "VERDICT_MODEL_PATH"

// ModelConfig locates the serialized classifier artifact on local disk.
type ModelConfig struct {
	Path string `toml:"path"`
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ModelConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ModelConfig) Merge(overlay *ModelConfig) {
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
}

func (c *ModelConfig) loadDefaults() {
	if c.Path == "" {
		c.Path = "artifacts/model.json"
	}
}

func (c *ModelConfig) loadEnv() {
	if v := os.Getenv(EnvModelPath); v != "" {
		c.Path = v
	}
}

func (c *ModelConfig) validate() error {
	if c.Path == "" {
		return fmt.Errorf("path required")
	}
	return nil
}
