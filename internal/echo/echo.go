// Package echo reflects decoded request data back to the caller.
package echo

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JaimeStill/route-shell/internal/routes"
	"github.com/JaimeStill/route-shell/pkg/handlers"
	"github.com/JaimeStill/route-shell/pkg/middleware"
)

// ErrNoBody is returned when a POST carries no decodable body.
var ErrNoBody = errors.New("request body required")

// Response reports what the pipeline decoded for the request.
type Response struct {
	Body          any               `json:"body,omitempty"`
	Form          url.Values        `json:"form,omitempty"`
	Cookies       map[string]string `json:"cookies"`
	SignedCookies map[string]string `json:"signed_cookies"`
}

// Handler serves the echo module routes.
type Handler struct {
	logger *slog.Logger
}

// New is the catalog factory for the echo module.
func New(deps *routes.Deps) (http.Handler, error) {
	h := &Handler{logger: deps.Logger.With("module", "echo")}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Post("/", h.Echo)
	r.Get("/cookies", h.Cookies)
	return r, nil
}

// Echo returns the decoded JSON or form body along with parsed cookies.
func (h *Handler) Echo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, hasBody := middleware.BodyFrom(ctx)
	form, hasForm := middleware.FormFrom(ctx)

	if !hasBody && !hasForm {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrNoBody)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Body:          body,
		Form:          form,
		Cookies:       middleware.CookiesFrom(ctx),
		SignedCookies: middleware.SignedCookiesFrom(ctx),
	})
}

// Cookies returns the plain and signed cookies parsed from the request.
func (h *Handler) Cookies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	handlers.RespondJSON(w, http.StatusOK, Response{
		Cookies:       middleware.CookiesFrom(ctx),
		SignedCookies: middleware.SignedCookiesFrom(ctx),
	})
}
