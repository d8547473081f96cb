// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/route-shell/pkg/database"
	"github.com/JaimeStill/route-shell/pkg/logging"
	"github.com/JaimeStill/route-shell/pkg/middleware"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"
)

// Config represents the root service configuration.
type Config struct {
	Server    ServerConfig               `toml:"server"`
	Database  database.Config            `toml:"database"`
	Logging   logging.Config             `toml:"logging"`
	AccessLog middleware.AccessLogConfig `toml:"access_log"`
	Security  middleware.SecurityConfig  `toml:"security"`
	CORS      middleware.CORSConfig      `toml:"cors"`
	Body      middleware.BodyConfig      `toml:"body"`
	Cookies   middleware.CookieConfig    `toml:"cookies"`
	Static    middleware.StaticConfig    `toml:"static"`
	Routes    RoutesConfig               `toml:"routes"`
}

// Env returns the active overlay environment name.
func (c *Config) Env() string {
	return os.Getenv(EnvServiceEnv)
}

// Load reads the base configuration file, applies any environment-specific
// overlay, then finalizes the result. A missing base file is not an error:
// the service runs on defaults and environment variables alone.
func Load() (*Config, error) {
	cfg, err := load(BaseConfigFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.AccessLog.Finalize(accessLogEnv); err != nil {
		return fmt.Errorf("access_log: %w", err)
	}
	if err := c.Security.Finalize(securityEnv); err != nil {
		return fmt.Errorf("security: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Body.Finalize(bodyEnv); err != nil {
		return fmt.Errorf("body: %w", err)
	}
	if err := c.Cookies.Finalize(cookieEnv); err != nil {
		return fmt.Errorf("cookies: %w", err)
	}
	if err := c.Static.Finalize(staticEnv); err != nil {
		return fmt.Errorf("static: %w", err)
	}
	if err := c.Routes.Finalize(); err != nil {
		return fmt.Errorf("routes: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Logging.Merge(&overlay.Logging)
	c.AccessLog.Merge(&overlay.AccessLog)
	c.Security.Merge(&overlay.Security)
	c.CORS.Merge(&overlay.CORS)
	c.Body.Merge(&overlay.Body)
	c.Cookies.Merge(&overlay.Cookies)
	c.Static.Merge(&overlay.Static)
	c.Routes.Merge(overlay.Routes)
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
	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
