package treeconf

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"regexp"

	"github.com/google/uuid"
)

// Serializers for leaf types with a canonical textual grammar. Each one
// requires a present string on deserialize and wraps the underlying parse
// failure on malformed input.

type uuidSerializer struct{}

func (uuidSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	s, err := requireString(t, node)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, NewInvalidValueError(t, s, err)
	}
	return id, nil
}

func (uuidSerializer) Serialize(t reflect.Type, value any, node Node) error {
	id, ok := value.(uuid.UUID)
	if !ok {
		return NewInvalidValueError(t, value, nil)
	}
	node.SetValue(id.String())
	return nil
}

type urlSerializer struct{}

func (urlSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	s, err := requireString(t, node)
	if err != nil {
		return nil, err
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, NewInvalidValueError(t, s, err)
	}
	if t.Kind() == reflect.Pointer {
		return u, nil
	}
	return *u, nil
}

func (urlSerializer) Serialize(t reflect.Type, value any, node Node) error {
	switch u := value.(type) {
	case *url.URL:
		node.SetValue(u.String())
	case url.URL:
		node.SetValue(u.String())
	default:
		return NewInvalidValueError(t, value, nil)
	}
	return nil
}

type patternSerializer struct{}

func (patternSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	s, err := requireString(t, node)
	if err != nil {
		return nil, err
	}
	re, err := regexp.Compile(s)
	if err != nil {
		return nil, NewInvalidValueError(t, s, err)
	}
	return re, nil
}

func (patternSerializer) Serialize(t reflect.Type, value any, node Node) error {
	re, ok := value.(*regexp.Regexp)
	if !ok || re == nil {
		return NewInvalidValueError(t, value, nil)
	}
	node.SetValue(re.String())
	return nil
}

// textSerializer handles any type implementing both encoding.TextMarshaler
// and encoding.TextUnmarshaler, keeping such values scalar on the wire.
// time.Time is the common case.
type textSerializer struct{}

func (textSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	s, err := requireString(t, node)
	if err != nil {
		return nil, err
	}
	ptr := t.Kind() == reflect.Pointer
	base := t
	if ptr {
		base = t.Elem()
	}
	out := reflect.New(base)
	um, ok := out.Interface().(encoding.TextUnmarshaler)
	if !ok {
		return nil, NewInvalidValueError(t, s, nil)
	}
	if err := um.UnmarshalText([]byte(s)); err != nil {
		return nil, NewInvalidValueError(t, s, err)
	}
	if ptr {
		return out.Interface(), nil
	}
	return out.Elem().Interface(), nil
}

func (textSerializer) Serialize(t reflect.Type, value any, node Node) error {
	m, ok := value.(encoding.TextMarshaler)
	if !ok {
		// Pointer-receiver marshalers need an addressable copy.
		rv := reflect.ValueOf(value)
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		if m, ok = p.Interface().(encoding.TextMarshaler); !ok {
			return NewInvalidValueError(t, value, nil)
		}
	}
	text, err := m.MarshalText()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidValue, t, err)
	}
	node.SetValue(string(text))
	return nil
}

var (
	textMarshalerType   = TypeOf[encoding.TextMarshaler]()
	textUnmarshalerType = TypeOf[encoding.TextUnmarshaler]()
)

func isTextRepresentable(t reflect.Type) bool {
	marshals := SupertypeOf(textMarshalerType)
	unmarshals := SupertypeOf(textUnmarshalerType)
	if t.Kind() == reflect.Pointer {
		return t.Implements(textMarshalerType) && t.Implements(textUnmarshalerType)
	}
	return marshals(t) && unmarshals(t)
}

func requireString(t reflect.Type, node Node) (string, error) {
	raw := node.Value()
	if raw == nil {
		return "", NewMissingValueError(t)
	}
	s, ok := asString(raw)
	if !ok {
		return "", NewInvalidValueError(t, raw, nil)
	}
	return s, nil
}
