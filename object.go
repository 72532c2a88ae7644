package treeconf

import (
	"fmt"
	"reflect"
	"sync"
)

// ClassKey is the reserved wire key naming the concrete type of a
// polymorphic value. It is written only for fields whose declared type is an
// interface; concretely declared fields never carry it.
const ClassKey = "__class__"

// TypeRegistry maps stable string tags to concrete Go types for polymorphic
// fields. Tags are data: resolving them through an explicit table instead of
// runtime type names keeps untrusted configuration from naming arbitrary
// types.
type TypeRegistry struct {
	mu     sync.RWMutex
	byTag  map[string]reflect.Type
	byType map[reflect.Type]string
}

// NewTypeRegistry creates an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byTag:  make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// Register binds a tag to the concrete type of prototype. Registering a
// pointer prototype (&Shape{}) makes polymorphic decoding produce pointers;
// a value prototype produces values. Duplicate tags or types are rejected.
func (tr *TypeRegistry) Register(tag string, prototype any) error {
	if tag == "" {
		return fmt.Errorf("%w: empty tag", ErrDuplicateTag)
	}
	t := reflect.TypeOf(prototype)
	if t == nil || !isObjectShaped(t) || t.Kind() == reflect.Interface {
		return NewInvalidTargetError(t, "prototype must be a struct or pointer to struct")
	}
	tr.mu.Lock()
	defer tr.mu.Unlock()
	if existing, ok := tr.byTag[tag]; ok {
		return fmt.Errorf("%w: %q is bound to %s", ErrDuplicateTag, tag, existing)
	}
	if existing, ok := tr.byType[t]; ok {
		return fmt.Errorf("%w: %s is bound to %q", ErrDuplicateTag, t, existing)
	}
	tr.byTag[tag] = t
	tr.byType[t] = tag
	return nil
}

// Lookup resolves a tag to its registered concrete type.
func (tr *TypeRegistry) Lookup(tag string) (reflect.Type, bool) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	t, ok := tr.byTag[tag]
	return t, ok
}

// TagFor returns the tag registered for t, trying the pointer and element
// forms as well so values and pointers of one type share a tag.
func (tr *TypeRegistry) TagFor(t reflect.Type) (string, bool) {
	tr.mu.RLock()
	defer tr.mu.RUnlock()
	if tag, ok := tr.byType[t]; ok {
		return tag, true
	}
	if t.Kind() == reflect.Pointer {
		if tag, ok := tr.byType[t.Elem()]; ok {
			return tag, true
		}
	} else if tag, ok := tr.byType[reflect.PointerTo(t)]; ok {
		return tag, true
	}
	return "", false
}

var defaultTypes = sync.OnceValue(NewTypeRegistry)

// DefaultTypes returns the shared type registry used by DefaultOptions.
func DefaultTypes() *TypeRegistry {
	return defaultTypes()
}

// objectSerializer maps struct-shaped fields through their object mappers
// and handles polymorphic (interface-declared) fields via the ClassKey
// discriminator.
type objectSerializer struct{}

func (objectSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	// A node nulled out by a previous serialize round holds no object;
	// decoding it as none lets nil pointer and interface fields round trip.
	if !node.HasMapChildren() && node.Value() == nil {
		return nil, nil
	}
	concrete, err := instantiableType(t, node)
	if err != nil {
		return nil, err
	}
	structType := concrete
	wantPointer := concrete.Kind() == reflect.Pointer
	if wantPointer {
		structType = concrete.Elem()
	}
	mapper, err := MapperFor(structType)
	if err != nil {
		return nil, err
	}
	bound, err := mapper.BindToNew()
	if err != nil {
		return nil, err
	}
	if err := bound.Populate(node); err != nil {
		return nil, err
	}
	if wantPointer {
		return bound.Instance(), nil
	}
	return reflect.ValueOf(bound.Instance()).Elem().Interface(), nil
}

func (objectSerializer) Serialize(t reflect.Type, value any, node Node) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
		node.SetValue(nil)
		return nil
	}
	runtimeType := rv.Type()

	if t.Kind() == reflect.Interface {
		tag, ok := node.Options().Types().TagFor(runtimeType)
		if !ok {
			return fmt.Errorf("%w: no tag registered for %s", ErrUnknownType, runtimeType)
		}
		node.Child(ClassKey).SetValue(tag)
	}

	structType := runtimeType
	instance := value
	if runtimeType.Kind() == reflect.Pointer {
		structType = runtimeType.Elem()
	} else {
		// Serialization reads fields by index, which needs an
		// addressable copy.
		p := reflect.New(structType)
		p.Elem().Set(rv)
		instance = p.Interface()
	}

	mapper, err := MapperFor(structType)
	if err != nil {
		return err
	}
	bound, err := mapper.Bind(instance)
	if err != nil {
		return err
	}
	return bound.Serialize(node)
}

// instantiableType decides which concrete type a node decodes into. An
// interface-declared type requires the ClassKey discriminator; a concrete
// declared type is used directly and never consults it.
func instantiableType(t reflect.Type, node Node) (reflect.Type, error) {
	if t.Kind() != reflect.Interface {
		return t, nil
	}
	raw := node.Child(ClassKey).Value()
	tag, ok := asString(raw)
	if raw == nil || !ok {
		return nil, fmt.Errorf("%w: no %s key for instances of %s", ErrNoDiscriminator, ClassKey, t)
	}
	concrete, ok := node.Options().Types().Lookup(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return concrete, nil
}
