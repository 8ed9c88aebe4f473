// Package provider is the plugin ABI between schemagen and provider modules.
//
// A provider module is a Go plugin built with -buildmode=plugin that exports
// a type list under the TypesSymbol name and, optionally, module metadata
// under the ModuleSymbol name:
//
//	var SchemaGenModule = provider.ModuleInfo{
//		Name:    "blog-data",
//		Version: "1.4.0",
//		Dependencies: []provider.Dependency{
//			{Name: "blog-entities", Version: "^1.0"},
//		},
//	}
//
//	func SchemaGenTypes() ([]reflect.Type, error) {
//		return []reflect.Type{reflect.TypeOf(BlogContextFactory{})}, nil
//	}
//
// Types in the list become providers when they implement Factory for a type
// that implements schema.Source.
package provider
