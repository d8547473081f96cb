package main

import (
	"github.com/JaimeStill/route-shell/internal/config"
	"github.com/JaimeStill/route-shell/internal/infrastructure"
	"github.com/JaimeStill/route-shell/pkg/middleware"
)

// buildMiddleware creates the request pipeline. Requests are processed in a
// fixed order: request id, security headers, body decoding, cookies, CORS,
// static assets. The access log does nothing on the way in and records the
// finished response, so it wraps every stage and also captures responses a
// stage short-circuits, such as a rejected body.
func buildMiddleware(infra *infrastructure.Infrastructure, cfg *config.Config) middleware.System {
	middlewareSys := middleware.New()
	middlewareSys.Use(middleware.AccessLog(infra.AccessLog))
	middlewareSys.Use(middleware.RequestID())
	middlewareSys.Use(middleware.Security(&cfg.Security))
	middlewareSys.Use(middleware.Body(&cfg.Body, infra.Logger))
	middlewareSys.Use(middleware.Cookies(&cfg.Cookies))
	middlewareSys.Use(middleware.CORS(&cfg.CORS))
	middlewareSys.Use(middleware.Static(&cfg.Static))
	return middlewareSys
}
