package module

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// ErrDuplicatePrefix is returned when two modules are mounted at the same prefix.
var ErrDuplicatePrefix = errors.New("duplicate module prefix")

// Router dispatches requests to native handlers and mounted modules.
//
// Native handlers registered with HandleNative are matched first using
// http.ServeMux patterns. Remaining requests go to the module with the longest
// prefix that matches the path; "/" acts as the catch-all. Requests matching
// neither receive 404.
type Router struct {
	native  *http.ServeMux
	modules []*Module
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{
		native: http.NewServeMux(),
	}
}

// HandleNative registers a handler on the native mux using a ServeMux pattern.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount adds a module to the router. Mounting two modules at the same prefix
// returns ErrDuplicatePrefix.
func (r *Router) Mount(m *Module) error {
	for _, existing := range r.modules {
		if existing.prefix == m.prefix {
			return fmt.Errorf("%w: %s", ErrDuplicatePrefix, m.prefix)
		}
	}

	m.build()
	r.modules = append(r.modules, m)
	slices.SortStableFunc(r.modules, func(a, b *Module) int {
		return len(b.prefix) - len(a.prefix)
	})
	return nil
}

// Modules returns the mounted modules ordered from most to least specific prefix.
func (r *Router) Modules() []*Module {
	return slices.Clone(r.modules)
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = normalize(req)

	if _, pattern := r.native.Handler(req); pattern != "" {
		r.native.ServeHTTP(w, req)
		return
	}

	for _, m := range r.modules {
		if m.Matches(req.URL.Path) {
			m.Serve(w, req)
			return
		}
	}

	http.NotFound(w, req)
}

func normalize(r *http.Request) *http.Request {
	path := r.URL.Path
	if len(path) <= 1 || !strings.HasSuffix(path, "/") {
		return r
	}

	r2 := new(http.Request)
	*r2 = *r
	u := *r.URL
	u.Path = strings.TrimRight(path, "/")
	if u.Path == "" {
		u.Path = "/"
	}
	u.RawPath = ""
	r2.URL = &u
	return r2
}
