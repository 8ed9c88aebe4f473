package build

import (
	"fmt"
	"strings"
)

// InvocationError is returned when the project cannot be built or the build
// produced no module.
type InvocationError struct {
	Project string
	Err     error
	Output  string // captured compiler stderr, may be empty
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("building %s: %v", e.Project, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
