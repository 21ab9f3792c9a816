package backend

import (
	"slices"
)

// Factory produces a Backend instance for a registered identifier.
type Factory func() Backend

// Registry is an immutable mapping from backend identifier to factory.
//
// It is constructed once at startup and passed by reference into the
// manifest resolver and the build system; there is no runtime mutation API.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds a registry from the given factories. The map is copied,
// so callers cannot mutate the registry afterwards.
func NewRegistry(factories map[string]Factory) *Registry {
	copied := make(map[string]Factory, len(factories))
	for name, factory := range factories {
		copied[name] = factory
	}
	return &Registry{factories: copied}
}

// DefaultRegistry returns the registry of backends shipped with PyBuilder.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string]Factory{
		"setuptools.build_meta": func() Backend { return pypaBuild{} },
		"flit_core.buildapi":    func() Backend { return flit{} },
		"hatchling.build":       func() Backend { return hatchling{} },
	})
}

// Lookup instantiates the backend registered under name. The second return
// value is false when no backend is registered for name; callers must treat
// that as "recognized manifest, unsupported backend", not as an error.
func (r *Registry) Lookup(name string) (Backend, bool) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, false
	}
	return factory(), true
}

// Names returns the registered backend identifiers in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
