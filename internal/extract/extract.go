package extract

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/schemagen-labs/schemagen/internal/scanner"
	"github.com/schemagen-labs/schemagen/pkg/provider"
	"github.com/schemagen-labs/schemagen/pkg/schema"
)

// Extract constructs p and calls CreateSource with args. The returned source
// is never nil when err is nil.
func Extract(p scanner.Provider, args []string) (schema.Source, error) {
	recv, err := instantiate(p)
	if err != nil {
		return nil, &InstantiationError{Provider: p.QualifiedName(), Err: err}
	}
	src, err := invoke(p, recv, args)
	if err != nil {
		return nil, &InvocationError{Provider: p.QualifiedName(), Err: err}
	}
	return src, nil
}

// instantiate allocates a zero provider and runs its Init hook, if any.
func instantiate(p scanner.Provider) (recv reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	if p.Type == nil {
		return reflect.Value{}, errors.New("provider has no type")
	}
	recv = reflect.New(p.Type)
	if initializer, ok := recv.Interface().(provider.Initializer); ok {
		if err := initializer.Init(); err != nil {
			return reflect.Value{}, err
		}
	}
	return recv, nil
}

func invoke(p scanner.Provider, recv reflect.Value, args []string) (src schema.Source, err error) {
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()

	method := recv.MethodByName(scanner.MethodName)
	if !method.IsValid() {
		return nil, fmt.Errorf("%s has no %s method", p.Name(), scanner.MethodName)
	}
	if args == nil {
		args = []string{}
	}

	out := method.Call([]reflect.Value{reflect.ValueOf(args)})
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	if len(out) == 0 {
		return nil, errors.New("no result")
	}

	result := out[0]
	if isNil(result) {
		return nil, errors.New("returned a nil source")
	}
	src, ok := result.Interface().(schema.Source)
	if !ok {
		return nil, fmt.Errorf("result type %s does not implement schema.Source", result.Type())
	}
	return src, nil
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return !v.IsValid()
}
