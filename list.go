package treeconf

import "reflect"

// listSerializer converts slice-typed fields. The element type comes from
// the declared slice shape; element conversion delegates to the element
// type's own serializer.
type listSerializer struct{}

func (listSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	elem := t.Elem()
	ser := node.Options().Serializers().Resolve(elem)
	if ser == nil {
		return nil, NewNoSerializerError(elem)
	}

	if node.HasListChildren() {
		children := node.ListChildren()
		out := reflect.MakeSlice(t, 0, len(children))
		for _, child := range children {
			v, err := ser.Deserialize(elem, child)
			if err != nil {
				return nil, err
			}
			out = reflect.Append(out, elementValue(v, elem))
		}
		return out.Interface(), nil
	}

	// A bare scalar where a list was declared decodes as a singleton.
	if node.Value() != nil {
		v, err := ser.Deserialize(elem, node)
		if err != nil {
			return nil, err
		}
		out := reflect.MakeSlice(t, 0, 1)
		return reflect.Append(out, elementValue(v, elem)).Interface(), nil
	}

	return reflect.MakeSlice(t, 0, 0).Interface(), nil
}

func (listSerializer) Serialize(t reflect.Type, value any, node Node) error {
	elem := t.Elem()
	ser := node.Options().Serializers().Resolve(elem)
	if ser == nil {
		return NewNoSerializerError(elem)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return NewInvalidValueError(t, value, nil)
	}

	// Drop whatever the node held so output mirrors the source exactly;
	// an empty slice stays an empty list on the wire, not a null.
	node.SetValue([]any{})
	for i := 0; i < rv.Len(); i++ {
		if err := ser.Serialize(elem, rv.Index(i).Interface(), node.AppendChild()); err != nil {
			return err
		}
	}
	return nil
}

// elementValue adapts a decoded element to the declared element type; a nil
// decode becomes the element's zero value.
func elementValue(v any, elem reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(elem)
	}
	rv := reflect.ValueOf(v)
	if rv.Type() != elem && rv.Type().ConvertibleTo(elem) {
		rv = rv.Convert(elem)
	}
	return rv
}
