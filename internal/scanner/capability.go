package scanner

import (
	"reflect"

	"github.com/schemagen-labs/schemagen/pkg/schema"
)

// MethodName is the factory method every provider implements.
const MethodName = "CreateSource"

var (
	argsType   = reflect.TypeOf([]string(nil))
	errorType  = reflect.TypeOf((*error)(nil)).Elem()
	sourceType = reflect.TypeOf((*schema.Source)(nil)).Elem()
)

// inspection is the outcome of checking one type.
type inspection struct {
	candidate bool // has a method named CreateSource
	provider  bool
	base      reflect.Type
	target    reflect.Type
	form      Form
}

// inspect checks whether t is a provider. Nil, unnamed, and interface types
// are never candidates.
func inspect(t reflect.Type) inspection {
	if t == nil {
		return inspection{}
	}
	base := elem(t)
	if base.Kind() == reflect.Interface || base.Name() == "" {
		return inspection{}
	}

	method, ok := reflect.PointerTo(base).MethodByName(MethodName)
	if !ok {
		return inspection{}
	}
	res := inspection{candidate: true, base: base}

	mt := method.Type // receiver is In(0)
	if mt.IsVariadic() || mt.NumIn() != 2 || mt.In(1) != argsType {
		return res
	}

	switch {
	case mt.NumOut() == 2 && mt.Out(1) == errorType:
		res.form = FormFactory
	case mt.NumOut() == 1:
		res.form = FormLegacy
	default:
		return res
	}

	target := mt.Out(0)
	if !target.Implements(sourceType) || elem(target).Name() == "" {
		return res
	}
	res.target = target
	res.provider = true
	return res
}
