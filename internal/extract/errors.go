package extract

import "fmt"

// InstantiationError is returned when a provider cannot be constructed.
type InstantiationError struct {
	Provider string
	Err      error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("creating provider %s: %v", e.Provider, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// InvocationError is returned when a provider's CreateSource fails.
type InvocationError struct {
	Provider string
	Err      error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("invoking %s.CreateSource: %v", e.Provider, e.Err)
}

func (e *InvocationError) Unwrap() error {
	return e.Err
}
