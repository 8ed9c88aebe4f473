package pipeline

import (
	"errors"

	"github.com/schemagen-labs/schemagen/internal/build"
	"github.com/schemagen-labs/schemagen/internal/extract"
	"github.com/schemagen-labs/schemagen/internal/loader"
	"github.com/schemagen-labs/schemagen/internal/selector"
)

// ErrNoInput is returned when neither a module nor a project was given.
var ErrNoInput = errors.New("specify --assembly <path> or --project <dir>")

// Guidance returns a hint for the user about how to fix err, or "".
func Guidance(err error) string {
	var (
		notFound    *loader.ModuleNotFoundError
		loadErr     *loader.LoadError
		buildErr    *build.InvocationError
		noContext   *selector.ContextNotFoundError
		instantiate *extract.InstantiationError
		invoke      *extract.InvocationError
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoInput):
		return "Pass a built provider module with --assembly, or a Go project with --project."
	case errors.As(err, &notFound):
		return "Check the --assembly path, or build the module first with --project."
	case errors.As(err, &loadErr):
		return "Rebuild the module with -buildmode=plugin using the same Go version and dependency versions as schemagen."
	case errors.As(err, &buildErr):
		return "Fix the build errors above, or pass a prebuilt module with --assembly."
	case errors.Is(err, selector.ErrNoProviders):
		return "Add a type with a CreateSource(args []string) (S, error) method, where S implements schema.Source,\n" +
			"and list it in the module's SchemaGenTypes export. Use --debug to print discovery diagnostics."
	case errors.As(err, &noContext):
		return "Use --list-contexts to see available contexts."
	case errors.As(err, &instantiate):
		return "The provider could not be constructed. Check its Init method."
	case errors.As(err, &invoke):
		return "The provider failed to create its source. Pass provider arguments after '--'."
	}
	return ""
}
