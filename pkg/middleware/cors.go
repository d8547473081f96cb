package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORS returns middleware applying the configured cross-origin policy.
//
// The policy is evaluated on every request. With an empty allowlist every
// origin receives permissive headers. With a non-empty allowlist only listed
// origins do; other origins get no Access-Control-Allow-* headers and the
// request continues unchanged, leaving enforcement to the browser.
//
// Preflight requests from permitted origins are answered with 204 and do not
// reach later handlers.
func CORS(cfg *CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ",")
	headers := strings.Join(cfg.AllowedHeaders, ",")
	exposed := strings.Join(cfg.ExposedHeaders, ",")
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowOrigin := cfg.allowOrigin(origin)

			h := w.Header()
			if len(cfg.Origins) > 0 || cfg.Credentials() {
				h.Add("Vary", "Origin")
			}

			if allowOrigin == "" {
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Origin", allowOrigin)
			if cfg.Credentials() {
				h.Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method != http.MethodOptions || r.Header.Get("Access-Control-Request-Method") == "" {
				if exposed != "" {
					h.Set("Access-Control-Expose-Headers", exposed)
				}
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Methods", methods)
			if headers != "" {
				h.Set("Access-Control-Allow-Headers", headers)
			} else if requested := r.Header.Get("Access-Control-Request-Headers"); requested != "" {
				h.Set("Access-Control-Allow-Headers", requested)
				h.Add("Vary", "Access-Control-Request-Headers")
			}
			if cfg.MaxAge > 0 {
				h.Set("Access-Control-Max-Age", maxAge)
			}

			h.Set("Content-Length", "0")
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or ""
// when the origin is denied.
func (c *CORSConfig) allowOrigin(origin string) string {
	if len(c.Origins) == 0 {
		if c.Credentials() && origin != "" {
			return origin
		}
		return "*"
	}
	if origin != "" && slices.Contains(c.Origins, origin) {
		return origin
	}
	return ""
}
