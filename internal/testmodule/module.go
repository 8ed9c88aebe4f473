package testmodule

import (
	"reflect"

	"github.com/schemagen-labs/schemagen/internal/registry"
)

// TypeOf returns the reflect.Type of T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Module returns a module at path that enumerates types.
func Module(name, path string, types ...reflect.Type) *registry.Module {
	return PartialModule(name, path, nil, types...)
}

// PartialModule returns a module whose enumeration yields types and err.
func PartialModule(name, path string, err error, types ...reflect.Type) *registry.Module {
	id := registry.Identity{Name: name, Version: "1.0.0"}
	return registry.NewModule(id, path, nil, func() ([]reflect.Type, error) {
		return types, err
	})
}

// AllTypes lists every type declared in this package, providers and
// non-providers alike.
func AllTypes() []reflect.Type {
	return []reflect.Type{
		TypeOf[BlogContext](),
		TypeOf[BlogContextFactory](),
		TypeOf[ShopDbContext](),
		TypeOf[ShopFactory](),
		TypeOf[FailingContext](),
		TypeOf[FailingFactory](),
		TypeOf[PanickingContext](),
		TypeOf[PanickingFactory](),
		TypeOf[NilContext](),
		TypeOf[NilFactory](),
		TypeOf[InitContext](),
		TypeOf[InitFactory](),
		TypeOf[BrokenInitFactory](),
		TypeOf[Plain](),
		TypeOf[NotSourceFactory](),
		TypeOf[WrongArgsFactory](),
		TypeOf[Helper](),
	}
}
