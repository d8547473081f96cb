package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/route-shell/internal/config"
	"github.com/JaimeStill/route-shell/internal/infrastructure"
	"github.com/JaimeStill/route-shell/internal/routes"
	"github.com/JaimeStill/route-shell/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra *infrastructure.Infrastructure
	http  server.System
}

// NewServer creates and initializes the service with all subsystems.
// An unknown module id or conflicting prefix in the route registry fails here.
func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	deps := &routes.Deps{
		Logger:   infra.Logger,
		Database: infra.Database,
		Ready:    infra.Lifecycle,
	}
	if err := routes.Mount(router, cfg.Routes, buildCatalog(), deps); err != nil {
		// Nothing is started yet: the database client is created in Start,
		// so the access log file is the only open resource.
		infra.AccessLog.Close()
		return nil, fmt.Errorf("assemble routes: %w", err)
	}

	handler := buildMiddleware(infra, cfg).Apply(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"modules", len(router.Modules()),
	)

	return &Server{
		infra: infra,
		http:  server.New(&cfg.Server, handler, infra.Logger),
	}, nil
}

// Start begins all subsystems. It returns once the listener is bound; the
// database connects in the background.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		s.infra.Lifecycle.Shutdown(5 * time.Second)
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Debug("all subsystems ready")
	}()

	return nil
}

// Addr returns the bound listen address.
func (s *Server) Addr() string {
	return s.http.Addr()
}

// Shutdown gracefully stops all subsystems within timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}

func (s *Server) logger() *slog.Logger {
	return s.infra.Logger
}
