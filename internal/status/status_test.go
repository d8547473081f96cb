package status_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/route-shell/internal/routes"
	"github.com/JaimeStill/route-shell/internal/status"
	"github.com/JaimeStill/route-shell/pkg/database"
	"github.com/JaimeStill/route-shell/pkg/lifecycle"
)

func TestStatus_Disabled(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	lc := lifecycle.New()
	lc.WaitForStartup()

	h, err := status.New(&routes.Deps{
		Logger:   logger,
		Database: database.New(&database.Config{}, logger),
		Ready:    lc,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	want := `{"ready":true,"database":"disabled"}`
	if got := rec.Body.String(); got != want {
		t.Errorf("body = %s, want %s", got, want)
	}
}

func TestStatus_MissingDeps(t *testing.T) {
	if _, err := status.New(&routes.Deps{Logger: slog.New(slog.DiscardHandler)}); err == nil {
		t.Fatal("expected error without database and readiness deps")
	}
}
