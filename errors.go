package treeconf

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// Resolution errors
	ErrNoSerializer = errors.New("no serializer found for type")
	ErrUnknownType  = errors.New("unknown type tag")

	// Value errors
	ErrNoValue         = errors.New("no value present")
	ErrInvalidValue    = errors.New("malformed value")
	ErrInvalidEnum     = errors.New("invalid enum constant")
	ErrNoDiscriminator = errors.New("no configured type")

	// Mapping errors
	ErrInvalidTarget = errors.New("invalid mapping target")
	ErrFieldAccess   = errors.New("field access failed")

	// Registration errors
	ErrDuplicateTag = errors.New("type tag already registered")
)

func NewNoSerializerError(t reflect.Type) error {
	return fmt.Errorf("%w: %s", ErrNoSerializer, t)
}

func NewNoFieldSerializerError(fieldName string, t reflect.Type) error {
	return fmt.Errorf("%w: field '%s' of type %s", ErrNoSerializer, fieldName, t)
}

func NewMissingValueError(t reflect.Type) error {
	return fmt.Errorf("%w: a value of type %s is required", ErrNoValue, t)
}

func NewInvalidValueError(t reflect.Type, input any, cause error) error {
	if cause != nil {
		return fmt.Errorf("%w: cannot decode %v as %s: %w", ErrInvalidValue, input, t, cause)
	}
	return fmt.Errorf("%w: cannot decode %v as %s", ErrInvalidValue, input, t)
}

func NewInvalidEnumError(t reflect.Type, input string) error {
	return fmt.Errorf("%w: expected a value of enum %s, got %q", ErrInvalidEnum, t, input)
}

func NewInvalidTargetError(t reflect.Type, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidTarget, t, reason)
}

func NewFieldAccessError(fieldName string, t reflect.Type, reason string) error {
	return fmt.Errorf("%w: field '%s' of type %s: %s", ErrFieldAccess, fieldName, t, reason)
}

// IsResolutionError returns true if the error indicates a missing serializer
// or an unresolvable polymorphic type tag.
func IsResolutionError(err error) bool {
	return errors.Is(err, ErrNoSerializer) ||
		errors.Is(err, ErrUnknownType) ||
		errors.Is(err, ErrNoDiscriminator)
}

// IsValueError returns true if the error indicates absent or malformed data
// in the tree.
func IsValueError(err error) bool {
	return errors.Is(err, ErrNoValue) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrInvalidEnum)
}

// IsMappingError returns true if the error indicates a problem with the
// mapped type itself rather than the data in the tree.
func IsMappingError(err error) bool {
	return errors.Is(err, ErrInvalidTarget) ||
		errors.Is(err, ErrFieldAccess)
}
