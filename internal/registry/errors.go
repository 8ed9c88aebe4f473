package registry

import (
	"errors"
	"fmt"
)

// ErrHookHeld is returned by Attach when a resolution hook is already attached.
var ErrHookHeld = errors.New("a resolution hook is already attached")

// PartialLoadError records a recoverable failure: a sibling module that could
// not be loaded, or a module whose types only partially enumerated. It is
// reported as a diagnostic and never aborts a run.
type PartialLoadError struct {
	Module string // module name, empty when the module never loaded
	Path   string
	Err    error
}

func (e *PartialLoadError) Error() string {
	name := e.Module
	if name == "" {
		name = e.Path
	}
	return fmt.Sprintf("partial load of %s: %v", name, e.Err)
}

func (e *PartialLoadError) Unwrap() error {
	return e.Err
}
