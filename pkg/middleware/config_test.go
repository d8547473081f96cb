package middleware_test

import (
	"testing"

	"github.com/JaimeStill/route-shell/pkg/middleware"
)

func TestCORSConfig_Finalize_Defaults(t *testing.T) {
	cfg := &middleware.CORSConfig{}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if len(cfg.Origins) != 0 {
		t.Errorf("Origins = %v, want empty allowlist", cfg.Origins)
	}
	if len(cfg.AllowedMethods) == 0 {
		t.Error("AllowedMethods should have defaults")
	}
	if cfg.MaxAge != 3600 {
		t.Errorf("MaxAge = %d, want 3600", cfg.MaxAge)
	}
}

func TestCORSConfig_Finalize_EnvOverrides(t *testing.T) {
	t.Setenv("TEST_CORS_ORIGINS", "http://localhost:3000, http://localhost:8080,")
	t.Setenv("TEST_CORS_METHODS", "GET, POST")
	t.Setenv("TEST_CORS_CREDENTIALS", "true")
	t.Setenv("TEST_CORS_MAX_AGE", "7200")

	cfg := &middleware.CORSConfig{}
	env := &middleware.CORSEnv{
		Origins:          "TEST_CORS_ORIGINS",
		AllowedMethods:   "TEST_CORS_METHODS",
		AllowCredentials: "TEST_CORS_CREDENTIALS",
		MaxAge:           "TEST_CORS_MAX_AGE",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if len(cfg.Origins) != 2 || cfg.Origins[1] != "http://localhost:8080" {
		t.Errorf("Origins = %v", cfg.Origins)
	}
	if len(cfg.AllowedMethods) != 2 {
		t.Errorf("AllowedMethods length = %d, want 2", len(cfg.AllowedMethods))
	}
	if !cfg.Credentials() {
		t.Error("AllowCredentials should be true from env")
	}
	if cfg.MaxAge != 7200 {
		t.Errorf("MaxAge = %d, want 7200", cfg.MaxAge)
	}
}

func TestCORSConfig_Merge(t *testing.T) {
	base := middleware.CORSConfig{
		Origins:        []string{"http://a.com"},
		AllowedMethods: []string{"GET"},
		MaxAge:         100,
	}

	base.Merge(&middleware.CORSConfig{
		Origins: []string{"http://b.com", "http://c.com"},
	})

	if len(base.Origins) != 2 {
		t.Errorf("Origins = %v, want overlay origins", base.Origins)
	}
	if len(base.AllowedMethods) != 1 {
		t.Errorf("AllowedMethods = %v, want base methods kept", base.AllowedMethods)
	}
	if base.MaxAge != 100 {
		t.Errorf("MaxAge = %d, want 100", base.MaxAge)
	}
}

func TestCORSConfig_Merge_Credentials(t *testing.T) {
	enabled, disabled := true, false

	tests := []struct {
		name    string
		base    *bool
		overlay *bool
		want    bool
	}{
		{name: "overlay unset keeps base", base: &enabled, overlay: nil, want: true},
		{name: "overlay disables", base: &enabled, overlay: &disabled, want: false},
		{name: "overlay enables", base: nil, overlay: &enabled, want: true},
		{name: "both unset", base: nil, overlay: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := middleware.CORSConfig{AllowCredentials: tt.base}
			base.Merge(&middleware.CORSConfig{AllowCredentials: tt.overlay})

			if got := base.Credentials(); got != tt.want {
				t.Errorf("Credentials() = %v, want %v", got, tt.want)
			}
		})
	}
}
