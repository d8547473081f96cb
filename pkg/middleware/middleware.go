// Package middleware provides the HTTP middleware used to build the request
// pipeline and a System that composes them in a fixed order.
package middleware

import "net/http"

// System composes middleware around a handler.
type System interface {
	Use(mw func(http.Handler) http.Handler)
	Apply(handler http.Handler) http.Handler
}

type system struct {
	stack []func(http.Handler) http.Handler
}

// New creates an empty middleware System.
func New() System {
	return &system{}
}

// Use appends mw to the stack. Middleware registered first is outermost and
// therefore runs first on every request.
func (s *system) Use(mw func(http.Handler) http.Handler) {
	s.stack = append(s.stack, mw)
}

// Apply wraps handler with every registered middleware.
func (s *system) Apply(handler http.Handler) http.Handler {
	for i := len(s.stack) - 1; i >= 0; i-- {
		handler = s.stack[i](handler)
	}
	return handler
}
