package wayland

import (
	"fmt"

	"github.com/rajveermalviya/go-wayland/wayland/client"
)

// Global is one advertised compositor global.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Registry is wl_registry. It keeps the first global advertised for each
// interface.
type Registry struct {
	registry *client.Registry
	globals  map[string]Global
}

// Registry creates the registry and waits for the initial burst of globals.
func (c *Conn) Registry() (*Registry, error) {
	reg, err := c.display.GetRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to get registry: %w", err)
	}
	r := &Registry{registry: reg, globals: make(map[string]Global)}
	reg.SetGlobalHandler(func(e client.RegistryGlobalEvent) {
		if _, ok := r.globals[e.Interface]; !ok {
			r.globals[e.Interface] = Global{Name: e.Name, Interface: e.Interface, Version: e.Version}
		}
	})
	reg.SetGlobalRemoveHandler(func(e client.RegistryGlobalRemoveEvent) {
		for iface, g := range r.globals {
			if g.Name == e.Name {
				delete(r.globals, iface)
			}
		}
	})
	if err := c.Roundtrip(); err != nil {
		return nil, err
	}
	return r, nil
}

// ID returns the wl_registry object id.
func (r *Registry) ID() uint32 {
	return r.registry.ID()
}

// Lookup returns the global advertised for iface.
func (r *Registry) Lookup(iface string) (Global, bool) {
	g, ok := r.globals[iface]
	return g, ok
}

// Bind binds the global advertised for iface at the highest version in
// [minVersion, maxVersion] the compositor supports, creating its proxy with
// newProxy. A global that is absent or too old yields ErrMissingGlobal and
// allocates nothing.
func Bind[P client.Proxy](r *Registry, iface string, minVersion, maxVersion uint32, newProxy func(*client.Context) P) (P, uint32, error) {
	var zero P
	g, ok := r.globals[iface]
	if !ok {
		return zero, 0, fmt.Errorf("%w: %s", ErrMissingGlobal, iface)
	}
	if g.Version < minVersion {
		return zero, 0, fmt.Errorf("%w: %s version %d, need at least %d", ErrMissingGlobal, iface, g.Version, minVersion)
	}

	version := min(g.Version, maxVersion)
	p := newProxy(r.registry.Context())
	if err := r.registry.Bind(g.Name, iface, version, p); err != nil {
		return zero, 0, fmt.Errorf("failed to bind %s: %w", iface, err)
	}
	return p, version, nil
}
