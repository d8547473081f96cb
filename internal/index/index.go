// Package index serves the service root.
package index

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JaimeStill/route-shell/internal/routes"
	"github.com/JaimeStill/route-shell/pkg/handlers"
	"github.com/JaimeStill/route-shell/pkg/middleware"
)

// Message is the body returned by the index route.
type Message struct {
	Message string `json:"message"`
}

// Handler serves the index module routes.
type Handler struct {
	logger *slog.Logger
}

// New is the catalog factory for the index module.
func New(deps *routes.Deps) (http.Handler, error) {
	h := &Handler{logger: deps.Logger.With("module", "index")}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Get("/", h.Index)
	return r, nil
}

// Index answers the service root with a fixed liveness message.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.logger.Debug("index page opened", "request_id", middleware.RequestIDFrom(r.Context()))
	handlers.RespondJSON(w, http.StatusOK, Message{Message: "It's working!"})
}
