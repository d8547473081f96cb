package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/JaimeStill/route-shell/pkg/module"
)

// EnvRoutes overrides the route registry as a comma separated list of
// prefix=module pairs, e.g. "/=index,/echo=echo".
const EnvRoutes = "APP_ROUTES"

// RouteEntry binds a URL prefix to a module id from the module catalog.
type RouteEntry struct {
	Prefix string `toml:"prefix"`
	Module string `toml:"module"`
}

// RoutesConfig is the route registry. Order is preserved but does not affect
// dispatch: the longest matching prefix always wins.
type RoutesConfig []RouteEntry

// DefaultRoutes mounts the index module at the root.
func DefaultRoutes() RoutesConfig {
	return RoutesConfig{{Prefix: "/", Module: "index"}}
}

// Finalize applies defaults, loads environment overrides, and validates the registry.
func (c *RoutesConfig) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

// Merge replaces the registry when the overlay declares any routes.
func (c *RoutesConfig) Merge(overlay RoutesConfig) {
	if len(overlay) > 0 {
		*c = append(RoutesConfig(nil), overlay...)
	}
}

func (c *RoutesConfig) loadDefaults() {
	if len(*c) == 0 {
		*c = DefaultRoutes()
	}
}

func (c *RoutesConfig) loadEnv() error {
	v := os.Getenv(EnvRoutes)
	if v == "" {
		return nil
	}

	routes, err := ParseRoutes(v)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvRoutes, err)
	}
	*c = routes
	return nil
}

func (c *RoutesConfig) validate() error {
	seen := make(map[string]struct{}, len(*c))
	for _, e := range *c {
		if err := module.ValidatePrefix(e.Prefix); err != nil {
			return err
		}
		if e.Module == "" {
			return fmt.Errorf("route %s: module required", e.Prefix)
		}
		if _, ok := seen[e.Prefix]; ok {
			return fmt.Errorf("route %s: %w", e.Prefix, module.ErrDuplicatePrefix)
		}
		seen[e.Prefix] = struct{}{}
	}
	return nil
}

// ParseRoutes parses a "prefix=module,prefix=module" list.
func ParseRoutes(s string) (RoutesConfig, error) {
	var routes RoutesConfig
	for item := range strings.SplitSeq(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		prefix, id, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("invalid route %q: expected prefix=module", item)
		}
		routes = append(routes, RouteEntry{
			Prefix: strings.TrimSpace(prefix),
			Module: strings.TrimSpace(id),
		})
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("no routes in %q", s)
	}
	return routes, nil
}
