// Package routes resolves the route registry against the module catalog and
// produces the modules mounted by the server router.
package routes

import (
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/JaimeStill/route-shell/pkg/database"
	"github.com/JaimeStill/route-shell/pkg/lifecycle"
)

// Deps are the shared systems handed to every module factory.
type Deps struct {
	Logger   *slog.Logger
	Database database.System
	Ready    lifecycle.ReadinessChecker
}

// Factory builds the handler for a module. The handler is written against the
// module root; the router strips the mount prefix.
type Factory func(deps *Deps) (http.Handler, error)

// Catalog maps module ids to factories.
type Catalog struct {
	factories map[string]Factory
	mu        sync.RWMutex
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		factories: make(map[string]Factory),
	}
}

// Register adds or replaces the factory for id.
func (c *Catalog) Register(id string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[id] = factory
}

// Get returns the factory registered for id and whether it exists.
func (c *Catalog) Get(id string) (Factory, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	factory, exists := c.factories[id]
	return factory, exists
}

// List returns the registered ids in sorted order.
func (c *Catalog) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]string, 0, len(c.factories))
	for id := range c.factories {
		result = append(result, id)
	}
	slices.Sort(result)
	return result
}
