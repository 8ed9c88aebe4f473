package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/schemagen-labs/schemagen/internal/manifest"
	"github.com/schemagen-labs/schemagen/internal/registry"
	"github.com/schemagen-labs/schemagen/pkg/provider"
)

// DefaultExtension is the file extension of provider modules.
const DefaultExtension = ".so"

// UnresolvedDependency is a dependency reference no source could satisfy.
type UnresolvedDependency struct {
	RequiredBy string
	Dependency provider.Dependency
	Reason     string
}

func (u UnresolvedDependency) String() string {
	return fmt.Sprintf("%s requires %s: %s", u.RequiredBy, u.Dependency, u.Reason)
}

// Loader loads modules into a registry.
type Loader struct {
	reg    *registry.Registry
	fs     afero.Fs
	opener Opener
	ext    string
	log    *logrus.Logger

	release  func()
	primary  *registry.Module
	dir      string
	manifest *manifest.DependencyManifest

	siblingErrors []*registry.PartialLoadError
	unresolved    []UnresolvedDependency
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs sets the filesystem used for existence checks, directory listing,
// and manifest reads.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) { l.fs = fs }
}

// WithOpener sets the module opener.
func WithOpener(o Opener) Option {
	return func(l *Loader) { l.opener = o }
}

// WithExtension sets the module file extension, e.g. ".so".
func WithExtension(ext string) Option {
	return func(l *Loader) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		l.ext = ext
	}
}

// WithLogger sets the logger for recoverable failures.
func WithLogger(log *logrus.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// New returns a Loader that holds reg's resolution hook until Close.
func New(reg *registry.Registry, opts ...Option) (*Loader, error) {
	l := &Loader{
		reg:    reg,
		fs:     afero.NewOsFs(),
		opener: PluginOpener{},
		ext:    DefaultExtension,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.log == nil {
		l.log = logrus.New()
	}
	if l.ext == "" {
		l.ext = DefaultExtension
	}

	release, err := reg.Attach(&resolver{l: l})
	if err != nil {
		return nil, fmt.Errorf("attaching resolver: %w", err)
	}
	l.release = release
	return l, nil
}

// Close releases the resolution hook. It is safe to call more than once.
func (l *Loader) Close() error {
	if l.release != nil {
		l.release()
	}
	return nil
}

// LoadPrimary loads the module at path together with its dependencies.
func (l *Loader) LoadPrimary(path string) (*registry.Module, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path %s: %w", path, err)
	}

	info, err := l.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &ModuleNotFoundError{Path: abs}
		}
		return nil, &LoadError{Path: abs, Err: err}
	}
	if info.IsDir() {
		return nil, &LoadError{Path: abs, Err: errors.New("path is a directory")}
	}

	l.dir = filepath.Dir(abs)
	m, err := manifest.LoadFor(l.fs, abs)
	if err != nil {
		l.log.Warnf("Ignoring dependency manifest: %v", err)
	}
	l.manifest = m

	mod, err := l.load(abs)
	if err != nil {
		return nil, &LoadError{Path: abs, Err: err}
	}
	l.primary = mod
	return mod, nil
}

// LoadSiblings loads every module file in dir that is not yet registered,
// in name order. Failures are recorded and skipped. It returns the modules
// that were newly loaded.
func (l *Loader) LoadSiblings(dir string) []*registry.Module {
	entries, err := afero.ReadDir(l.fs, dir)
	if err != nil {
		l.log.Debugf("Failed to read sibling directory %s: %v", dir, err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if !e.Mode().IsRegular() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), l.ext) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var loaded []*registry.Module
	for _, name := range names {
		path := filepath.Join(dir, name)
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if _, ok := l.reg.LookupPath(path); ok {
			continue
		}

		before := l.reg.Len()
		m, err := l.load(path)
		if err != nil {
			perr := &registry.PartialLoadError{Path: path, Err: err}
			l.siblingErrors = append(l.siblingErrors, perr)
			l.log.Debugf("Skipping sibling module %s: %v", path, err)
			continue
		}
		if l.reg.Len() > before {
			loaded = append(loaded, m)
		}
	}
	return loaded
}

// Modules returns every registered module in registration order.
func (l *Loader) Modules() []*registry.Module {
	return l.reg.Modules()
}

// Primary returns the primary module, or nil before LoadPrimary succeeds.
func (l *Loader) Primary() *registry.Module {
	return l.primary
}

// Dir returns the primary module's directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Extension returns the module file extension.
func (l *Loader) Extension() string {
	return l.ext
}

// SiblingErrors returns the recorded sibling load failures.
func (l *Loader) SiblingErrors() []*registry.PartialLoadError {
	return l.siblingErrors
}

// Unresolved returns the dependency references that could not be resolved.
func (l *Loader) Unresolved() []UnresolvedDependency {
	return l.unresolved
}

// load opens path and registers the module. When the identity or path is
// already registered the existing module is returned and nothing is opened
// or resolved again.
func (l *Loader) load(path string) (*registry.Module, error) {
	if m, ok := l.reg.LookupPath(path); ok {
		return m, nil
	}

	info, enumerate, err := l.open(path)
	if err != nil {
		return nil, err
	}

	id := registry.Identity{Name: info.Name, Version: info.Version}
	m, added := l.reg.Register(registry.NewModule(id, path, info.Dependencies, enumerate))
	if !added {
		l.log.Debugf("Module %s at %s already loaded from %s", id, path, m.Path)
		return m, nil
	}
	l.log.Debugf("Loaded module %s from %s", id, path)

	l.resolveDependencies(m)
	return m, nil
}

// open opens path and reads its exports. Module init code and ModuleInfo
// funcs run here, so a panic is returned as an error.
func (l *Loader) open(path string) (info provider.ModuleInfo, enumerate registry.EnumerateFunc, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("module panicked while loading: %v", r)
		}
	}()

	syms, err := l.opener.Open(path)
	if err != nil {
		return info, nil, err
	}
	if info, err = moduleInfo(syms, path); err != nil {
		return info, nil, err
	}
	enumerate, err = typeEnumerator(syms)
	return info, enumerate, err
}

// resolveDependencies resolves each declared dependency of m through the
// registry's hook. Modules are registered before their dependencies are
// resolved, so cycles terminate at the registry.
func (l *Loader) resolveDependencies(m *registry.Module) {
	hook := l.reg.Hook()
	for _, dep := range m.Dependencies {
		if hook == nil {
			l.unresolve(m, dep, "no resolver attached")
			continue
		}
		resolved, err := hook.Resolve(dep, m)
		switch {
		case err != nil:
			l.unresolve(m, dep, err.Error())
		case resolved == nil:
			l.unresolve(m, dep, "not found")
		}
	}
}

func (l *Loader) unresolve(m *registry.Module, dep provider.Dependency, reason string) {
	u := UnresolvedDependency{RequiredBy: m.Identity.String(), Dependency: dep, Reason: reason}
	l.unresolved = append(l.unresolved, u)
	l.log.Debugf("Unresolved dependency: %s", u)
}
