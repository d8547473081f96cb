package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JaimeStill/route-shell/pkg/middleware"
)

func staticDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestStatic(t *testing.T) {
	dir := staticDir(t, map[string]string{
		"robots.txt":        "User-agent: *",
		"css/site.css":      "body{}",
		"docs/index.html":   "<h1>docs</h1>",
		".env":              "SECRET=1",
		"empty/placeholder": "",
	})

	cfg := &middleware.StaticConfig{Dir: dir}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("next"))
	})
	wrapped := middleware.Static(cfg)(next)

	tests := []struct {
		name     string
		method   string
		path     string
		wantBody string
		wantType string
	}{
		{"text file", http.MethodGet, "/robots.txt", "User-agent: *", "text/plain; charset=utf-8"},
		{"nested css", http.MethodGet, "/css/site.css", "body{}", "text/css; charset=utf-8"},
		{"directory index", http.MethodGet, "/docs/", "<h1>docs</h1>", "text/html; charset=utf-8"},
		{"directory index without slash", http.MethodGet, "/docs", "<h1>docs</h1>", "text/html; charset=utf-8"},
		{"head request", http.MethodHead, "/robots.txt", "", "text/plain; charset=utf-8"},
		{"missing file", http.MethodGet, "/missing.txt", "next", ""},
		{"directory without index", http.MethodGet, "/empty", "next", ""},
		{"root without index", http.MethodGet, "/", "next", ""},
		{"dotfile", http.MethodGet, "/.env", "next", ""},
		{"traversal", http.MethodGet, "/../../etc/passwd", "next", ""},
		{"post", http.MethodPost, "/robots.txt", "next", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.wantBody {
				t.Errorf("body = %q, want %q", string(body), tt.wantBody)
			}

			if tt.wantType != "" {
				if resp.StatusCode != http.StatusOK {
					t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
				}
				if got := resp.Header.Get("Content-Type"); got != tt.wantType {
					t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
				}
			}
		})
	}
}

func TestStatic_MissingDirectory(t *testing.T) {
	cfg := &middleware.StaticConfig{Dir: filepath.Join(t.TempDir(), "nope")}
	cfg.Finalize(nil)

	req := httptest.NewRequest(http.MethodGet, "/robots.txt", nil)
	w := httptest.NewRecorder()

	middleware.Static(cfg)(okHandler()).ServeHTTP(w, req)

	if !strings.Contains(w.Body.String(), "handler") {
		t.Error("request should fall through when the public dir is missing")
	}
}
