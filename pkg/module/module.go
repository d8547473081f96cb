// Package module provides prefix-mounted HTTP modules and the router that
// dispatches between them.
//
// A Module owns every request whose path falls under its prefix. The prefix is
// stripped before the module's handler runs, so module handlers are written
// against their own root ("/").
package module

import (
	"fmt"
	"net/http"
	"strings"
)

// Module is an http.Handler mounted at a URL prefix with its own middleware.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware []func(http.Handler) http.Handler
	chain      http.Handler
}

// New creates a module mounted at prefix. It panics if the prefix is invalid;
// prefixes are validated at configuration time, so an invalid prefix here is a
// programming error.
func New(prefix string, handler http.Handler) *Module {
	if err := ValidatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// ValidatePrefix reports whether prefix can be used to mount a module.
// A prefix must start with "/" and must not end with "/" unless it is the root.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix is empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if len(prefix) > 1 && strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("module prefix %q must not end with /", prefix)
	}
	if strings.Contains(prefix, "//") {
		return fmt.Errorf("module prefix %q contains an empty segment", prefix)
	}
	return nil
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware that runs only for requests dispatched to this module.
// Middleware registered first runs first. Use is a setup call: it must not run
// concurrently with requests.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
	if m.chain != nil {
		m.build()
	}
}

// Handler returns the module handler wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Matches reports whether path falls under the module prefix.
// Matching is done on whole path segments: "/api" matches "/api" and
// "/api/users" but not "/apix".
func (m *Module) Matches(path string) bool {
	if m.prefix == "/" {
		return true
	}
	return path == m.prefix || strings.HasPrefix(path, m.prefix+"/")
}

// Serve strips the module prefix from the request path and invokes the module handler.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	h := m.chain
	if h == nil {
		h = m.Handler()
	}
	h.ServeHTTP(w, m.strip(r))
}

// build wraps the handler in its middleware once; Router.Mount calls it.
func (m *Module) build() {
	m.chain = m.Handler()
}

func (m *Module) strip(r *http.Request) *http.Request {
	if m.prefix == "/" {
		return r
	}

	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r2 := new(http.Request)
	*r2 = *r
	u := *r.URL
	u.Path = path
	u.RawPath = ""
	r2.URL = &u
	return r2
}
