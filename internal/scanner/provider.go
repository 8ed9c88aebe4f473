package scanner

import (
	"reflect"
	"strings"

	"github.com/schemagen-labs/schemagen/internal/registry"
)

// Form tells which CreateSource signature a provider implements.
type Form int

const (
	// FormFactory is CreateSource(args []string) (S, error).
	FormFactory Form = iota
	// FormLegacy is CreateSource(args []string) S.
	FormLegacy
)

func (f Form) String() string {
	if f == FormLegacy {
		return "legacy"
	}
	return "factory"
}

// Provider is a discovered provider type and the source type it creates.
type Provider struct {
	Module *registry.Module
	Type   reflect.Type // provider type, never a pointer
	Target reflect.Type // CreateSource result type as declared
	Form   Form
}

// Name returns the provider's simple type name.
func (p Provider) Name() string {
	return elem(p.Type).Name()
}

// QualifiedName returns the provider's package-qualified type name.
func (p Provider) QualifiedName() string {
	return QualifiedName(p.Type)
}

// TargetName returns the simple name of the source type.
func (p Provider) TargetName() string {
	return elem(p.Target).Name()
}

// TargetQualifiedName returns the package-qualified name of the source type.
func (p Provider) TargetQualifiedName() string {
	return QualifiedName(p.Target)
}

// Key identifies a provider independent of the module it was found in.
func (p Provider) Key() string {
	return p.QualifiedName() + "|" + p.TargetQualifiedName()
}

// String renders the provider as "<provider> -> <target>".
func (p Provider) String() string {
	return p.QualifiedName() + " -> " + p.TargetQualifiedName()
}

// QualifiedName returns PkgPath.Name for t, looking through pointers.
func QualifiedName(t reflect.Type) string {
	t = elem(t)
	if t.PkgPath() == "" {
		return t.Name()
	}
	return t.PkgPath() + "." + t.Name()
}

func elem(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// less orders providers by target then provider name, case-insensitive first
// and ordinal to break ties.
func less(a, b Provider) bool {
	at, bt := a.TargetQualifiedName(), b.TargetQualifiedName()
	if lt, lb := strings.ToLower(at), strings.ToLower(bt); lt != lb {
		return lt < lb
	}
	ap, bp := a.QualifiedName(), b.QualifiedName()
	if lp, lq := strings.ToLower(ap), strings.ToLower(bp); lp != lq {
		return lp < lq
	}
	if at != bt {
		return at < bt
	}
	return ap < bp
}
