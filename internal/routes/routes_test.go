package routes_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/route-shell/internal/config"
	"github.com/JaimeStill/route-shell/internal/routes"
	"github.com/JaimeStill/route-shell/pkg/module"
)

func textFactory(body string, calls *int) routes.Factory {
	return func(deps *routes.Deps) (http.Handler, error) {
		if calls != nil {
			*calls++
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body + ":" + r.URL.Path))
		}), nil
	}
}

func testDeps() *routes.Deps {
	return &routes.Deps{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestCatalog(t *testing.T) {
	c := routes.NewCatalog()
	c.Register("b", textFactory("b", nil))
	c.Register("a", textFactory("a", nil))

	if _, ok := c.Get("a"); !ok {
		t.Error("Get(a) not found")
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) should not be found")
	}
	if got := c.List(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("List() = %v, want [a b]", got)
	}
}

func TestAssemble_UnknownModule(t *testing.T) {
	calls := 0
	c := routes.NewCatalog()
	c.Register("index", textFactory("index", &calls))

	entries := config.RoutesConfig{
		{Prefix: "/", Module: "index"},
		{Prefix: "/api", Module: "missing"},
	}

	_, err := routes.Assemble(entries, c, testDeps())
	if !errors.Is(err, routes.ErrUnknownModule) {
		t.Fatalf("Assemble() error = %v, want ErrUnknownModule", err)
	}
	if calls != 0 {
		t.Errorf("factory ran %d times before resolution failed", calls)
	}
}

func TestAssemble_DuplicatePrefix(t *testing.T) {
	c := routes.NewCatalog()
	c.Register("index", textFactory("index", nil))

	entries := config.RoutesConfig{
		{Prefix: "/api", Module: "index"},
		{Prefix: "/api", Module: "index"},
	}

	_, err := routes.Assemble(entries, c, testDeps())
	if !errors.Is(err, module.ErrDuplicatePrefix) {
		t.Fatalf("Assemble() error = %v, want ErrDuplicatePrefix", err)
	}
}

func TestAssemble_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	c := routes.NewCatalog()
	c.Register("bad", func(*routes.Deps) (http.Handler, error) { return nil, boom })

	_, err := routes.Assemble(config.RoutesConfig{{Prefix: "/", Module: "bad"}}, c, testDeps())
	if !errors.Is(err, boom) {
		t.Fatalf("Assemble() error = %v, want wrapped factory error", err)
	}
}

func TestMount_Dispatch(t *testing.T) {
	c := routes.NewCatalog()
	c.Register("root", textFactory("root", nil))
	c.Register("api", textFactory("api", nil))

	entries := config.RoutesConfig{
		{Prefix: "/", Module: "root"},
		{Prefix: "/api", Module: "api"},
	}

	router := module.NewRouter()
	if err := routes.Mount(router, entries, c, testDeps()); err != nil {
		t.Fatalf("Mount() error = %v", err)
	}

	tests := []struct {
		path string
		want string
	}{
		{"/", "root:/"},
		{"/other", "root:/other"},
		{"/api", "api:/"},
		{"/api/users", "api:/users"},
		{"/apix", "root:/apix"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}
