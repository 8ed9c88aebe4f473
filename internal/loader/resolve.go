package loader

import (
	"fmt"
	"path/filepath"

	"github.com/schemagen-labs/schemagen/internal/registry"
	"github.com/schemagen-labs/schemagen/pkg/provider"
)

// resolver is the registry hook held by a Loader. It tries, in order, the
// modules already registered, the primary's dependency manifest, and a
// sibling file named after the dependency.
type resolver struct {
	l *Loader
}

// Resolve implements registry.Hook. It returns (nil, nil) when no source
// knows the dependency.
func (r *resolver) Resolve(dep provider.Dependency, requiredBy *registry.Module) (*registry.Module, error) {
	l := r.l

	if m, ok := l.reg.FindByName(dep.Name, dep.Version); ok {
		return m, nil
	}

	if entry, ok := l.manifest.Find(dep.Name, dep.Version); ok {
		return r.loadCandidate(dep, l.manifest.ResolvePath(entry))
	}

	dir := l.dir
	if requiredBy != nil && requiredBy.Path != "" {
		dir = filepath.Dir(requiredBy.Path)
	}
	if dir == "" {
		return nil, nil
	}
	path := filepath.Join(dir, dep.Name+l.ext)
	if _, err := l.fs.Stat(path); err != nil {
		return nil, nil
	}
	return r.loadCandidate(dep, path)
}

// loadCandidate loads path and checks that the module it yields satisfies dep.
func (r *resolver) loadCandidate(dep provider.Dependency, path string) (*registry.Module, error) {
	m, err := r.l.load(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	ok, err := registry.Satisfies(m.Identity.Version, dep.Version)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%s has version %s", path, m.Identity.Version)
	}
	return m, nil
}
