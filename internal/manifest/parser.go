package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/schemagen-labs/schemagen/internal/registry"
)

// ErrInvalid is wrapped by Load when a manifest fails schema validation.
var ErrInvalid = errors.New("invalid dependency manifest")

// PathFor returns the dependency manifest path for a primary module path.
func PathFor(modulePath string) string {
	dir := filepath.Dir(modulePath)
	stem := strings.TrimSuffix(filepath.Base(modulePath), filepath.Ext(modulePath))
	return filepath.Join(dir, stem+FileSuffix)
}

// LoadFor reads the dependency manifest next to modulePath. It returns
// (nil, nil) when no manifest exists.
func LoadFor(fs afero.Fs, modulePath string) (*DependencyManifest, error) {
	path := PathFor(modulePath)
	if _, err := fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("checking manifest %s: %w", path, err)
	}
	return Load(fs, path)
}

// Load reads, validates, and parses a dependency manifest.
func Load(fs afero.Fs, path string) (*DependencyManifest, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	issues, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", path, err)
	}
	if len(issues) > 0 {
		return nil, &InvalidError{File: path, Issues: issues}
	}

	m, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// Parse unmarshals manifest YAML without validating it.
func Parse(data []byte, path string) (*DependencyManifest, error) {
	var m DependencyManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// Find returns the first entry named name (case-insensitive) whose version
// satisfies constraint. Entries without a version satisfy any constraint.
func (m *DependencyManifest) Find(name, constraint string) (*ModuleEntry, bool) {
	if m == nil {
		return nil, false
	}
	for i := range m.Modules {
		e := &m.Modules[i]
		if !strings.EqualFold(e.Name, name) {
			continue
		}
		if e.Version != "" {
			ok, err := registry.Satisfies(e.Version, constraint)
			if err != nil || !ok {
				continue
			}
		}
		return e, true
	}
	return nil, false
}

// ResolvePath returns the absolute path of an entry.
func (m *DependencyManifest) ResolvePath(e *ModuleEntry) string {
	if filepath.IsAbs(e.Path) {
		return filepath.Clean(e.Path)
	}
	return filepath.Join(m.Dir, filepath.FromSlash(e.Path))
}
