package middleware

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/gorilla/securecookie"
)

// CookieEnv maps environment variable names for cookie configuration.
type CookieEnv struct {
	Secret string
}

// CookieConfig controls cookie parsing.
type CookieConfig struct {
	// Secret enables signed cookie verification when non-empty.
	Secret string `toml:"secret"`
}

// Finalize loads environment overrides.
func (c *CookieConfig) Finalize(env *CookieEnv) error {
	if env != nil && env.Secret != "" {
		if v := os.Getenv(env.Secret); v != "" {
			c.Secret = v
		}
	}
	return nil
}

// Merge applies non-zero values from the overlay configuration.
func (c *CookieConfig) Merge(overlay *CookieConfig) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
}

// NewCookieCodec returns the codec used to sign and verify cookie values.
// It returns nil when secret is empty.
func NewCookieCodec(secret string) *securecookie.SecureCookie {
	if secret == "" {
		return nil
	}
	return securecookie.New([]byte(secret), nil)
}

// Cookies returns middleware that parses the Cookie header into a map exposed
// through CookiesFrom. Percent-encoded values are decoded. An absent or
// malformed header yields an empty map.
//
// When a secret is configured, cookies carrying a valid signature are moved
// into the map exposed through SignedCookiesFrom. Cookies with an invalid
// signature stay in the plain map as raw values.
func Cookies(cfg *CookieConfig) func(http.Handler) http.Handler {
	codec := NewCookieCodec(cfg.Secret)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			plain := make(map[string]string)
			signed := make(map[string]string)

			for _, c := range r.Cookies() {
				if _, seen := plain[c.Name]; seen {
					continue
				}
				if _, seen := signed[c.Name]; seen {
					continue
				}

				if codec != nil {
					var value string
					if err := codec.Decode(c.Name, c.Value, &value); err == nil {
						signed[c.Name] = value
						continue
					}
				}
				plain[c.Name] = decodeCookieValue(c.Value)
			}

			ctx := context.WithValue(r.Context(), cookiesKey, plain)
			ctx = context.WithValue(ctx, signedCookiesKey, signed)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func decodeCookieValue(v string) string {
	if !strings.Contains(v, "%") {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
