package registry

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/schemagen-labs/schemagen/pkg/provider"
)

// Identity names a module. Names compare case-insensitively; versions compare
// exactly.
type Identity struct {
	Name    string
	Version string
}

// Key returns the registry key for the identity.
func (id Identity) Key() string {
	return strings.ToLower(id.Name) + "@" + id.Version
}

func (id Identity) String() string {
	return id.Name + " " + id.Version
}

// EnumerateFunc lists the types a module exposes.
type EnumerateFunc func() ([]reflect.Type, error)

// Module is one loaded provider module. Its type list is enumerated lazily,
// once, and may be partial.
type Module struct {
	Identity     Identity
	Path         string // absolute origin path
	Dependencies []provider.Dependency

	enumerate  EnumerateFunc
	enumerated bool
	types      []reflect.Type
	typeErr    error
}

// NewModule returns a module whose types are listed by enumerate.
func NewModule(id Identity, path string, deps []provider.Dependency, enumerate EnumerateFunc) *Module {
	return &Module{
		Identity:     id,
		Path:         path,
		Dependencies: deps,
		enumerate:    enumerate,
	}
}

// Types returns the loadable types of the module. A non-nil error is a
// *PartialLoadError; the returned types are still usable.
func (m *Module) Types() ([]reflect.Type, error) {
	if !m.enumerated {
		m.enumerated = true
		m.types, m.typeErr = m.safeEnumerate()
	}
	return m.types, m.typeErr
}

// TypeErrors returns the distinct messages of the enumeration failure, if any.
func (m *Module) TypeErrors() []string {
	_, err := m.Types()
	if err == nil {
		return nil
	}

	var causes []error
	if ple, ok := err.(*PartialLoadError); ok && ple.Err != nil {
		err = ple.Err
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		causes = joined.Unwrap()
	} else {
		causes = []error{err}
	}

	seen := make(map[string]bool)
	var msgs []string
	for _, c := range causes {
		if c == nil {
			continue
		}
		msg := c.Error()
		key := strings.ToLower(msg)
		if seen[key] {
			continue
		}
		seen[key] = true
		msgs = append(msgs, msg)
	}
	if len(msgs) == 0 {
		msgs = []string{"unknown type load error"}
	}
	return msgs
}

func (m *Module) safeEnumerate() (types []reflect.Type, err error) {
	if m.enumerate == nil {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			types = nil
			err = &PartialLoadError{
				Module: m.Identity.Name,
				Path:   m.Path,
				Err:    fmt.Errorf("type enumeration panicked: %v", r),
			}
		}
	}()

	all, enumErr := m.enumerate()
	for _, t := range all {
		if t != nil {
			types = append(types, t)
		}
	}
	if enumErr != nil {
		err = &PartialLoadError{Module: m.Identity.Name, Path: m.Path, Err: enumErr}
	}
	return types, err
}
