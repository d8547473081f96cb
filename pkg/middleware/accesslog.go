package middleware

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gorilla/handlers"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

// AccessLogEnv maps environment variable names for access log configuration.
type AccessLogEnv struct {
	Dir          string
	File         string
	RotationTime string
}

// AccessLogConfig controls the rotating access log.
type AccessLogConfig struct {
	Dir          string `toml:"dir"`
	File         string `toml:"file"`
	RotationTime string `toml:"rotation_time"`
}

// RotationTimeDuration parses and returns the rotation period.
func (c *AccessLogConfig) RotationTimeDuration() time.Duration {
	d, _ := time.ParseDuration(c.RotationTime)
	return d
}

// Path returns the path of the stable link to the current log file.
func (c *AccessLogConfig) Path() string {
	return filepath.Join(c.Dir, c.File)
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *AccessLogConfig) Finalize(env *AccessLogEnv) error {
	if c.Dir == "" {
		c.Dir = "logs"
	}
	if c.File == "" {
		c.File = "access.log"
	}
	if c.RotationTime == "" {
		c.RotationTime = "24h"
	}

	if env != nil {
		if v := os.Getenv(env.Dir); env.Dir != "" && v != "" {
			c.Dir = v
		}
		if v := os.Getenv(env.File); env.File != "" && v != "" {
			c.File = v
		}
		if v := os.Getenv(env.RotationTime); env.RotationTime != "" && v != "" {
			c.RotationTime = v
		}
	}

	d, err := time.ParseDuration(c.RotationTime)
	if err != nil {
		return fmt.Errorf("invalid rotation_time: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("rotation_time must be positive")
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *AccessLogConfig) Merge(overlay *AccessLogConfig) {
	if overlay.Dir != "" {
		c.Dir = overlay.Dir
	}
	if overlay.File != "" {
		c.File = overlay.File
	}
	if overlay.RotationTime != "" {
		c.RotationTime = overlay.RotationTime
	}
}

// AccessLogWriter is an append-only, time-rotated log file.
//
// Write never returns an error: failed writes are reported on the application
// logger, at most once per minute, so request handling is never affected.
// Rotated files are kept indefinitely.
type AccessLogWriter struct {
	rl        *rotatelogs.RotateLogs
	logger    *slog.Logger
	lastError atomic.Int64
}

// NewAccessLogWriter creates the log directory and a writer rotating on the
// configured period. Rotated files are named <file>.YYYYMMDD; <file> links to
// the current one.
func NewAccessLogWriter(cfg *AccessLogConfig, logger *slog.Logger) (*AccessLogWriter, error) {
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create access log dir: %w", err)
	}

	rl, err := rotatelogs.New(
		cfg.Path()+".%Y%m%d",
		rotatelogs.WithLinkName(cfg.Path()),
		rotatelogs.WithRotationTime(cfg.RotationTimeDuration()),
		rotatelogs.WithMaxAge(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("open access log: %w", err)
	}

	return &AccessLogWriter{
		rl:     rl,
		logger: logger,
	}, nil
}

// Write appends p to the current log file.
func (a *AccessLogWriter) Write(p []byte) (int, error) {
	if _, err := a.rl.Write(p); err != nil {
		now := time.Now().Unix()
		last := a.lastError.Load()
		if now-last >= 60 && a.lastError.CompareAndSwap(last, now) {
			a.logger.Error("access log write failed", "error", err)
		}
	}
	return len(p), nil
}

// CurrentFileName returns the file currently being written, or "" before the
// first write.
func (a *AccessLogWriter) CurrentFileName() string {
	return a.rl.CurrentFileName()
}

// Close closes the current log file.
func (a *AccessLogWriter) Close() error {
	return a.rl.Close()
}

// AccessLog returns middleware that writes one Apache combined format line per
// request to out once the response is complete. Each line is emitted with a
// single Write call.
func AccessLog(out io.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return handlers.CombinedLoggingHandler(out, next)
	}
}
