package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/route-shell/pkg/middleware"
)

func TestSecurity_Headers(t *testing.T) {
	cfg := &middleware.SecurityConfig{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	middleware.Security(cfg)(okHandler()).ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	want := map[string]string{
		"X-Content-Type-Options":            "nosniff",
		"X-Frame-Options":                   "DENY",
		"X-Xss-Protection":                  "0",
		"Referrer-Policy":                   "no-referrer",
		"Content-Security-Policy":           middleware.DefaultContentSecurityPolicy,
		"Cross-Origin-Opener-Policy":        "same-origin",
		"Cross-Origin-Resource-Policy":      "same-origin",
		"Origin-Agent-Cluster":              "?1",
		"X-Dns-Prefetch-Control":            "off",
		"X-Download-Options":                "noopen",
		"X-Permitted-Cross-Domain-Policies": "none",
	}

	for header, value := range want {
		if got := resp.Header.Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}

	if got := resp.Header.Get("Strict-Transport-Security"); got != "" {
		t.Errorf("Strict-Transport-Security = %q on plain HTTP, want empty", got)
	}
}

func TestSecurity_HeadersOnErrorResponses(t *testing.T) {
	cfg := &middleware.SecurityConfig{}
	cfg.Finalize(nil)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	w := httptest.NewRecorder()

	middleware.Security(cfg)(http.NotFoundHandler()).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want %q", got, "nosniff")
	}
}

func TestSecurity_CustomPolicy(t *testing.T) {
	cfg := &middleware.SecurityConfig{ContentSecurityPolicy: "default-src 'none'"}
	cfg.Finalize(nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	middleware.Security(cfg)(okHandler()).ServeHTTP(w, req)

	if got := w.Header().Get("Content-Security-Policy"); got != "default-src 'none'" {
		t.Errorf("Content-Security-Policy = %q", got)
	}
}
