// Package status reports process readiness and database availability.
package status

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JaimeStill/route-shell/internal/routes"
	"github.com/JaimeStill/route-shell/pkg/database"
	"github.com/JaimeStill/route-shell/pkg/handlers"
	"github.com/JaimeStill/route-shell/pkg/lifecycle"
)

// Report is the status payload.
type Report struct {
	Ready    bool   `json:"ready"`
	Database string `json:"database"`
}

// Handler serves the status module routes.
type Handler struct {
	db    database.System
	ready lifecycle.ReadinessChecker
}

// New is the catalog factory for the status module. It requires a database
// system and a readiness checker in deps.
func New(deps *routes.Deps) (http.Handler, error) {
	if deps.Database == nil {
		return nil, errors.New("status module requires a database system")
	}
	if deps.Ready == nil {
		return nil, errors.New("status module requires a readiness checker")
	}

	h := &Handler{db: deps.Database, ready: deps.Ready}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.GetHead)
	r.Get("/", h.Status)
	return r, nil
}

// Status reports readiness and the database connection state.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Report{
		Ready:    h.ready.Ready(),
		Database: h.db.State().String(),
	})
}
