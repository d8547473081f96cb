package database

import (
	"fmt"
	"os"
	"time"
)

// Env maps environment variable names for database configuration.
type Env struct {
	URL         string
	Name        string
	ConnTimeout string
}

// Config contains MongoDB connection configuration. An empty URL disables the
// database entirely.
type Config struct {
	URL         string `toml:"url"`
	Name        string `toml:"name"`
	ConnTimeout string `toml:"conn_timeout"`
}

// Enabled reports whether a connection string is configured.
func (c *Config) Enabled() bool {
	return c.URL != ""
}

// ConnTimeoutDuration parses and returns the connection timeout as a time.Duration.
func (c *Config) ConnTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ConnTimeout)
	return d
}

// Finalize applies defaults, loads environment overrides, and validates the database configuration.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.URL != "" {
		c.URL = overlay.URL
	}
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.ConnTimeout != "" {
		c.ConnTimeout = overlay.ConnTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.Name == "" {
		c.Name = "app"
	}
	if c.ConnTimeout == "" {
		c.ConnTimeout = "10s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.URL != "" {
		if v := os.Getenv(env.URL); v != "" {
			c.URL = v
		}
	}
	if env.Name != "" {
		if v := os.Getenv(env.Name); v != "" {
			c.Name = v
		}
	}
	if env.ConnTimeout != "" {
		if v := os.Getenv(env.ConnTimeout); v != "" {
			c.ConnTimeout = v
		}
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.ConnTimeout)
	if err != nil {
		return fmt.Errorf("invalid conn_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("conn_timeout must be positive")
	}
	return nil
}
