package treeconf

import "reflect"

// stringSerializer passes string values straight through, coercing numeric
// and boolean raw values to their text form.
type stringSerializer struct{}

func (stringSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	raw := node.Value()
	if raw == nil {
		return nil, nil
	}
	s, ok := asString(raw)
	if !ok {
		return nil, NewInvalidValueError(t, raw, nil)
	}
	return convertScalar(reflect.ValueOf(s), t)
}

func (stringSerializer) Serialize(t reflect.Type, value any, node Node) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.String {
		node.SetValue(rv.String())
		return nil
	}
	s, ok := asString(value)
	if !ok {
		return NewInvalidValueError(t, value, nil)
	}
	node.SetValue(s)
	return nil
}

type boolSerializer struct{}

func (boolSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	raw := node.Value()
	if raw == nil {
		return nil, nil
	}
	b, ok := asBool(raw)
	if !ok {
		return nil, NewInvalidValueError(t, raw, nil)
	}
	return convertScalar(reflect.ValueOf(b), t)
}

func (boolSerializer) Serialize(t reflect.Type, value any, node Node) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Bool {
		return NewInvalidValueError(t, value, nil)
	}
	node.SetValue(rv.Bool())
	return nil
}

// numericSerializer covers the whole numeric family. The declared kind
// decides the width: reads for narrower integer kinds truncate rather than
// fail, matching the usual configuration-format semantics.
type numericSerializer struct{}

func (numericSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	raw := node.Value()
	if raw == nil {
		return nil, nil
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		i, ok := asInt64(raw)
		if !ok {
			return nil, NewInvalidValueError(t, raw, nil)
		}
		return convertScalar(reflect.ValueOf(i), t)
	case reflect.Float32, reflect.Float64:
		f, ok := asFloat64(raw)
		if !ok {
			return nil, NewInvalidValueError(t, raw, nil)
		}
		return convertScalar(reflect.ValueOf(f), t)
	default:
		return nil, NewInvalidValueError(t, raw, nil)
	}
}

func (numericSerializer) Serialize(t reflect.Type, value any, node Node) error {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		node.SetValue(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		node.SetValue(rv.Uint())
	case reflect.Float32, reflect.Float64:
		node.SetValue(rv.Float())
	default:
		return NewInvalidValueError(t, value, nil)
	}
	return nil
}

// convertScalar adapts a decoded value to the declared type, so one
// serializer instance serves named variants of the base kinds too.
func convertScalar(v reflect.Value, t reflect.Type) (any, error) {
	if v.Type() == t {
		return v.Interface(), nil
	}
	if !v.Type().ConvertibleTo(t) {
		return nil, NewInvalidValueError(t, v.Interface(), nil)
	}
	return v.Convert(t).Interface(), nil
}
