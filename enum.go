package treeconf

import (
	"fmt"
	"reflect"
	"strings"
)

// EnumOf builds a serializer for an enum-like type from its declared
// constant names. Decoding is case-insensitive against the declared names;
// encoding writes the name exactly as declared.
//
//	type Color int
//	const (
//	    Red Color = iota
//	    Green
//	    Blue
//	)
//	RegisterEnum(reg, map[string]Color{"RED": Red, "GREEN": Green, "BLUE": Blue})
func EnumOf[E comparable](values map[string]E) Serializer {
	byName := make(map[string]enumConstant[E], len(values))
	byValue := make(map[E]string, len(values))
	for name, v := range values {
		byName[strings.ToUpper(name)] = enumConstant[E]{name: name, value: v}
		byValue[v] = name
	}
	return &enumSerializer[E]{byName: byName, byValue: byValue}
}

// RegisterEnum registers an EnumOf serializer for E's exact type.
func RegisterEnum[E comparable](r *SerializerRegistry, values map[string]E) {
	RegisterFor[E](r, EnumOf(values))
}

type enumConstant[E comparable] struct {
	name  string
	value E
}

type enumSerializer[E comparable] struct {
	byName  map[string]enumConstant[E]
	byValue map[E]string
}

func (e *enumSerializer[E]) Deserialize(t reflect.Type, node Node) (any, error) {
	raw := node.Value()
	if raw == nil {
		return nil, NewMissingValueError(t)
	}
	s, ok := asString(raw)
	if !ok {
		return nil, NewInvalidValueError(t, raw, nil)
	}
	c, ok := e.byName[strings.ToUpper(s)]
	if !ok {
		return nil, NewInvalidEnumError(t, s)
	}
	return convertScalar(reflect.ValueOf(c.value), t)
}

func (e *enumSerializer[E]) Serialize(t reflect.Type, value any, node Node) error {
	rv := reflect.ValueOf(value)
	et := TypeOf[E]()
	if rv.Type() != et {
		if !rv.Type().ConvertibleTo(et) {
			return NewInvalidValueError(t, value, nil)
		}
		rv = rv.Convert(et)
	}
	name, ok := e.byValue[rv.Interface().(E)]
	if !ok {
		return NewInvalidEnumError(t, fmt.Sprintf("%v", rv.Interface()))
	}
	node.SetValue(name)
	return nil
}
