package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvSessionsCookieName    = "VERDICT_SESSIONS_COOKIE_NAME"
	EnvSessionsTTL           = "VERDICT_SESSIONS_TTL"
	EnvSessionsSweepInterval = "VERDICT_SESSIONS_SWEEP_INTERVAL"
)

// SessionsConfig controls browser session cookies and idle expiry.
type SessionsConfig struct {
	CookieName    string `toml:"cookie_name"`
	TTL           string `toml:"ttl"`
	SweepInterval string `toml:"sweep_interval"`
}

// TTLDuration returns TTL as a time.Duration.
func (c *SessionsConfig) TTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.TTL)
	return d
}

// SweepIntervalDuration returns SweepInterval as a time.Duration.
func (c *SessionsConfig) SweepIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.SweepInterval)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *SessionsConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *SessionsConfig) Merge(overlay *SessionsConfig) {
	if overlay.CookieName != "" {
		c.CookieName = overlay.CookieName
	}
	if overlay.TTL != "" {
		c.TTL = overlay.TTL
	}
	if overlay.SweepInterval != "" {
		c.SweepInterval = overlay.SweepInterval
	}
}

func (c *SessionsConfig) loadDefaults() {
	if c.CookieName == "" {
		c.CookieName = "verdict_session"
	}
	if c.TTL == "" {
		c.TTL = "30m"
	}
	if c.SweepInterval == "" {
		c.SweepInterval = "5m"
	}
}

func (c *SessionsConfig) loadEnv() {
	if v := os.Getenv(EnvSessionsCookieName); v != "" {
		c.CookieName = v
	}
	if v := os.Getenv(EnvSessionsTTL); v != "" {
		c.TTL = v
	}
	if v := os.Getenv(EnvSessionsSweepInterval); v != "" {
		c.SweepInterval = v
	}
}

func (c *SessionsConfig) validate() error {
	if _, err := time.ParseDuration(c.TTL); err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}
	if _, err := time.ParseDuration(c.SweepInterval); err != nil {
		return fmt.Errorf("invalid sweep_interval: %w", err)
	}
	return nil
}
