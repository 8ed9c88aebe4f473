// Package build compiles a Go project into a provider module with
// "go build -buildmode=plugin" and reports where the module was written.
//
// Output layout:
//
//	<project>/bin/<configuration>/<tfm>/<name>.so
//
// where name is the last element of the project's module path and tfm is a
// GOOS_GOARCH pair.
package build
