package middleware

import (
	"net/http"
	"os"
	"strconv"

	"github.com/unrolled/secure"
)

// DefaultContentSecurityPolicy is applied when SecurityConfig.ContentSecurityPolicy is empty.
const DefaultContentSecurityPolicy = "default-src 'self';base-uri 'self';font-src 'self' https: data:;" +
	"form-action 'self';frame-ancestors 'self';img-src 'self' data:;object-src 'none';" +
	"script-src 'self';script-src-attr 'none';style-src 'self' https: 'unsafe-inline';" +
	"upgrade-insecure-requests"

// SecurityEnv maps environment variable names for security header configuration.
type SecurityEnv struct {
	ContentSecurityPolicy string
	HSTSMaxAge            string
}

// SecurityConfig controls the security headers added to every response.
type SecurityConfig struct {
	ContentSecurityPolicy string `toml:"content_security_policy"`
	// HSTSMaxAge is the Strict-Transport-Security max-age in seconds.
	// The header is only sent on HTTPS requests.
	HSTSMaxAge int64 `toml:"hsts_max_age"`
}

// Finalize applies defaults and loads environment overrides.
func (c *SecurityConfig) Finalize(env *SecurityEnv) error {
	if c.ContentSecurityPolicy == "" {
		c.ContentSecurityPolicy = DefaultContentSecurityPolicy
	}
	if c.HSTSMaxAge == 0 {
		c.HSTSMaxAge = 15552000
	}
	if env == nil {
		return nil
	}
	if v := os.Getenv(env.ContentSecurityPolicy); env.ContentSecurityPolicy != "" && v != "" {
		c.ContentSecurityPolicy = v
	}
	if v := os.Getenv(env.HSTSMaxAge); env.HSTSMaxAge != "" && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.HSTSMaxAge = n
		}
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *SecurityConfig) Merge(overlay *SecurityConfig) {
	if overlay.ContentSecurityPolicy != "" {
		c.ContentSecurityPolicy = overlay.ContentSecurityPolicy
	}
	if overlay.HSTSMaxAge != 0 {
		c.HSTSMaxAge = overlay.HSTSMaxAge
	}
}

// Security returns middleware that adds conservative security headers to every
// response before any later stage runs.
func Security(cfg *SecurityConfig) func(http.Handler) http.Handler {
	s := secure.New(secure.Options{
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		BrowserXssFilter:      true,
		CustomBrowserXssValue: "0",
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: cfg.ContentSecurityPolicy,
		STSSeconds:            cfg.HSTSMaxAge,
		STSIncludeSubdomains:  true,
	})

	return func(next http.Handler) http.Handler {
		return s.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Cross-Origin-Opener-Policy", "same-origin")
			h.Set("Cross-Origin-Resource-Policy", "same-origin")
			h.Set("Origin-Agent-Cluster", "?1")
			h.Set("X-DNS-Prefetch-Control", "off")
			h.Set("X-Download-Options", "noopen")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
			next.ServeHTTP(w, r)
		}))
	}
}
