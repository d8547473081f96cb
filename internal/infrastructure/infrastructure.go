// Package infrastructure provides core service initialization for application startup.
// It assembles the shared systems (logging, database, access log) that modules require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/route-shell/internal/config"
	"github.com/JaimeStill/route-shell/pkg/database"
	"github.com/JaimeStill/route-shell/pkg/lifecycle"
	"github.com/JaimeStill/route-shell/pkg/logging"
	"github.com/JaimeStill/route-shell/pkg/middleware"
)

// Infrastructure holds the core systems shared by the pipeline and modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	AccessLog *middleware.AccessLogWriter
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
// The database never causes an error here: an unreachable or misconfigured
// database leaves the service running without it.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	accessLog, err := middleware.NewAccessLogWriter(&cfg.AccessLog, logger)
	if err != nil {
		return nil, fmt.Errorf("access log init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  database.New(&cfg.Database, logger),
		AccessLog: accessLog,
	}, nil
}

// Start registers every system with the lifecycle coordinator. It does not
// wait for the database.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}

	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		if err := i.AccessLog.Close(); err != nil {
			i.Logger.Error("access log close failed", "error", err)
		}
	})
	return nil
}
