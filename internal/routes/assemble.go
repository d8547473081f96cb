package routes

import (
	"errors"
	"fmt"

	"github.com/JaimeStill/route-shell/internal/config"
	"github.com/JaimeStill/route-shell/pkg/module"
)

// ErrUnknownModule is returned when a registry entry names a module id that is
// not in the catalog.
var ErrUnknownModule = errors.New("unknown module")

// Assemble resolves every registry entry to a module. Every id is resolved
// before any factory runs, so an unknown id fails without building anything.
func Assemble(entries config.RoutesConfig, catalog *Catalog, deps *Deps) ([]*module.Module, error) {
	factories := make([]Factory, len(entries))
	seen := make(map[string]struct{}, len(entries))

	for i, e := range entries {
		if err := module.ValidatePrefix(e.Prefix); err != nil {
			return nil, err
		}
		if _, ok := seen[e.Prefix]; ok {
			return nil, fmt.Errorf("route %s: %w", e.Prefix, module.ErrDuplicatePrefix)
		}
		seen[e.Prefix] = struct{}{}

		factory, ok := catalog.Get(e.Module)
		if !ok {
			return nil, fmt.Errorf("route %s: %w %q", e.Prefix, ErrUnknownModule, e.Module)
		}
		factories[i] = factory
	}

	modules := make([]*module.Module, 0, len(entries))
	for i, e := range entries {
		handler, err := factories[i](deps)
		if err != nil {
			return nil, fmt.Errorf("route %s: build module %q: %w", e.Prefix, e.Module, err)
		}
		modules = append(modules, module.New(e.Prefix, handler))
	}

	return modules, nil
}

// Mount assembles the registry and mounts every module on router.
func Mount(router *module.Router, entries config.RoutesConfig, catalog *Catalog, deps *Deps) error {
	modules, err := Assemble(entries, catalog, deps)
	if err != nil {
		return err
	}
	for _, m := range modules {
		if err := router.Mount(m); err != nil {
			return err
		}
	}
	return nil
}
