package registry

import (
	"path/filepath"
	"strings"

	"github.com/schemagen-labs/schemagen/pkg/provider"
)

// Hook resolves a dependency reference that a freshly loaded module declares.
type Hook interface {
	Resolve(dep provider.Dependency, requiredBy *Module) (*Module, error)
}

// Registry is the authoritative set of modules loaded in one run. It is used
// from a single goroutine: sibling loads mutate it sequentially and later
// dependency resolutions read what earlier loads registered.
type Registry struct {
	modules []*Module
	byKey   map[string]*Module
	byPath  map[string]*Module
	hook    Hook
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byKey:  make(map[string]*Module),
		byPath: make(map[string]*Module),
	}
}

// Register adds m unless its identity or origin path is already present.
// It returns the module now held for that identity and whether m was new.
func (r *Registry) Register(m *Module) (*Module, bool) {
	if existing, ok := r.byKey[m.Identity.Key()]; ok {
		r.byPath[pathKey(m.Path)] = existing
		return existing, false
	}
	if existing, ok := r.byPath[pathKey(m.Path)]; ok && m.Path != "" {
		return existing, false
	}

	r.modules = append(r.modules, m)
	r.byKey[m.Identity.Key()] = m
	if m.Path != "" {
		r.byPath[pathKey(m.Path)] = m
	}
	return m, true
}

// Lookup returns the module registered under id.
func (r *Registry) Lookup(id Identity) (*Module, bool) {
	m, ok := r.byKey[id.Key()]
	return m, ok
}

// LookupPath returns the module loaded from path.
func (r *Registry) LookupPath(path string) (*Module, bool) {
	m, ok := r.byPath[pathKey(path)]
	return m, ok
}

// FindByName returns the first registered module named name (case-insensitive)
// whose version satisfies constraint. Modules with unparseable versions only
// match an empty constraint.
func (r *Registry) FindByName(name, constraint string) (*Module, bool) {
	for _, m := range r.modules {
		if !strings.EqualFold(m.Identity.Name, name) {
			continue
		}
		ok, err := Satisfies(m.Identity.Version, constraint)
		if err != nil || !ok {
			continue
		}
		return m, true
	}
	return nil, false
}

// Modules returns the registered modules in registration order.
func (r *Registry) Modules() []*Module {
	out := make([]*Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.modules)
}

// Attach installs h as the resolution hook. Only one hook may be held at a
// time; the returned release func detaches it and is safe to call repeatedly.
func (r *Registry) Attach(h Hook) (func(), error) {
	if r.hook != nil {
		return nil, ErrHookHeld
	}
	r.hook = h

	released := false
	return func() {
		if released {
			return
		}
		released = true
		if r.hook == h {
			r.hook = nil
		}
	}, nil
}

// Hook returns the attached resolution hook, or nil once released.
func (r *Registry) Hook() Hook {
	return r.hook
}

func pathKey(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Clean(path)
}
