package provider

import (
	"reflect"

	"github.com/schemagen-labs/schemagen/pkg/schema"
)

// Exported symbol names looked up in every provider module.
const (
	TypesSymbol  = "SchemaGenTypes"
	ModuleSymbol = "SchemaGenModule"
)

// TypesFunc is the signature of the TypesSymbol export. Returning a non-nil
// error together with a non-empty list reports a partial enumeration: the
// returned types are still scanned.
type TypesFunc = func() ([]reflect.Type, error)

// Factory is the capability a provider type implements. CreateSource receives
// the free-form arguments given after "--" on the command line.
type Factory[S schema.Source] interface {
	CreateSource(args []string) (S, error)
}

// Initializer is implemented by providers that need setup after their zero
// value is allocated.
type Initializer interface {
	Init() error
}

// ModuleInfo identifies a module and the modules it needs at runtime.
type ModuleInfo struct {
	Name         string       `yaml:"name"`
	Version      string       `yaml:"version"`
	Dependencies []Dependency `yaml:"dependencies,omitempty"`
}

// Dependency references another module by name and semver constraint.
// An empty Version accepts any version.
type Dependency struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version,omitempty"`
}

// String renders the dependency as name or name@constraint.
func (d Dependency) String() string {
	if d.Version == "" {
		return d.Name
	}
	return d.Name + "@" + d.Version
}
