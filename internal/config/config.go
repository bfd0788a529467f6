package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/verdict-ml/verdict/pkg/database"
	"github.com/verdict-ml/verdict/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvVerdictEnv             = "VERDICT_ENV"
	EnvVerdictShutdownTimeout = "VERDICT_SHUTDOWN_TIMEOUT"
	EnvVerdictVersion         = "VERDICT_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "VERDICT_DB_HOST",
	Port:            "VERDICT_DB_PORT",
	Name:            "VERDICT_DB_NAME",
	User:            "VERDICT_DB_USER",
	Password:        "VERDICT_DB_PASSWORD",
	SSLMode:         "VERDICT_DB_SSL_MODE",
	MaxOpenConns:    "VERDICT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "VERDICT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "VERDICT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "VERDICT_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "VERDICT_STORAGE_CONTAINER_NAME",
	ConnectionString: "VERDICT_STORAGE_CONNECTION_STRING",
	AccountURL:       "VERDICT_STORAGE_ACCOUNT_URL",
	MaxRetries:       "VERDICT_STORAGE_MAX_RETRIES",
}

// Config is the root configuration for the Verdict service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Model           ModelConfig     `toml:"model"`
	Sessions        SessionsConfig  `toml:"sessions"`
	Dataset         DatasetConfig   `toml:"dataset"`
	Artifacts       ArtifactsConfig `toml:"artifacts"`
	Snapshots       SnapshotsConfig `toml:"snapshots"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the VERDICT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvVerdictEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// DatabaseRequired reports whether any enabled feature needs PostgreSQL.
func (c *Config) DatabaseRequired() bool {
	return c.Dataset.Enabled || c.Snapshots.Enabled
}

// StorageRequired reports whether any enabled feature needs blob storage.
func (c *Config) StorageRequired() bool {
	return c.Artifacts.Enabled || c.Snapshots.Enabled
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Model.Merge(&overlay.Model)
	c.Sessions.Merge(&overlay.Sessions)
	c.Dataset.Merge(&overlay.Dataset)
	c.Artifacts.Merge(&overlay.Artifacts)
	c.Snapshots.Merge(&overlay.Snapshots)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Model.Finalize(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if err := c.Sessions.Finalize(); err != nil {
		return fmt.Errorf("sessions: %w", err)
	}
	if err := c.Dataset.Finalize(); err != nil {
		return fmt.Errorf("dataset: %w", err)
	}
	if err := c.Artifacts.Finalize(); err != nil {
		return fmt.Errorf("artifacts: %w", err)
	}
	if err := c.Snapshots.Finalize(); err != nil {
		return fmt.Errorf("snapshots: %w", err)
	}

	// Database and storage are validated only when an enabled feature
	// depends on them; a classifier-only deployment needs neither.
	if c.DatabaseRequired() {
		if err := c.Database.Finalize(databaseEnv); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if c.StorageRequired() {
		if err := c.Storage.Finalize(storageEnv); err != nil {
			return fmt.Errorf("storage: %w", err)
		}
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvVerdictShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvVerdictVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvVerdictEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
