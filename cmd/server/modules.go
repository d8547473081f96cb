package main

import (
	"net/http"

	"github.com/JaimeStill/route-shell/internal/echo"
	"github.com/JaimeStill/route-shell/internal/index"
	"github.com/JaimeStill/route-shell/internal/infrastructure"
	"github.com/JaimeStill/route-shell/internal/routes"
	"github.com/JaimeStill/route-shell/internal/status"
	"github.com/JaimeStill/route-shell/pkg/module"
)

// buildCatalog lists every module the route registry may reference.
func buildCatalog() *routes.Catalog {
	catalog := routes.NewCatalog()
	catalog.Register("index", index.New)
	catalog.Register("echo", echo.New)
	catalog.Register("status", status.New)
	return catalog
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
