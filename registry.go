package treeconf

import (
	"net/url"
	"reflect"
	"regexp"
	"sync"

	"github.com/google/uuid"
)

// SerializerRegistry resolves serializers for field types. Exact-type
// registrations take precedence over predicate registrations, and a child
// registry is consulted before the parent it was created from.
type SerializerRegistry struct {
	mu         sync.RWMutex
	parent     *SerializerRegistry
	exact      map[reflect.Type]Serializer
	predicates []registryPredicate
}

type registryPredicate struct {
	match      func(reflect.Type) bool
	serializer Serializer
}

// NewSerializerRegistry creates an empty registry that falls back to parent
// for types it does not know. A nil parent creates a standalone registry.
func NewSerializerRegistry(parent *SerializerRegistry) *SerializerRegistry {
	return &SerializerRegistry{
		parent: parent,
		exact:  make(map[reflect.Type]Serializer),
	}
}

// Register binds a serializer to one exact type.
func (r *SerializerRegistry) Register(t reflect.Type, s Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.exact[t] = s
}

// RegisterPredicate binds a serializer to every type the predicate accepts.
// Predicates are tried in registration order, after exact matches.
func (r *SerializerRegistry) RegisterPredicate(match func(reflect.Type) bool, s Serializer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predicates = append(r.predicates, registryPredicate{match: match, serializer: s})
}

// RegisterSupertype binds a serializer to every type assignable to base.
func (r *SerializerRegistry) RegisterSupertype(base reflect.Type, s Serializer) {
	r.RegisterPredicate(SupertypeOf(base), s)
}

// Resolve returns the serializer for the given type, or nil if none is
// registered here or in any parent registry.
func (r *SerializerRegistry) Resolve(t reflect.Type) Serializer {
	r.mu.RLock()
	if s, ok := r.exact[t]; ok {
		r.mu.RUnlock()
		return s
	}
	for _, p := range r.predicates {
		if p.match(t) {
			r.mu.RUnlock()
			return p.serializer
		}
	}
	r.mu.RUnlock()
	if r.parent != nil {
		return r.parent.Resolve(t)
	}
	return nil
}

// RegisterFor binds a serializer to the exact type T.
func RegisterFor[T any](r *SerializerRegistry, s Serializer) {
	r.Register(TypeOf[T](), s)
}

var defaultSerializers = sync.OnceValue(func() *SerializerRegistry {
	r := NewSerializerRegistry(nil)

	RegisterFor[string](r, stringSerializer{})
	RegisterFor[bool](r, boolSerializer{})

	num := numericSerializer{}
	for _, t := range []reflect.Type{
		TypeOf[int](), TypeOf[int8](), TypeOf[int16](), TypeOf[int32](), TypeOf[int64](),
		TypeOf[uint](), TypeOf[uint8](), TypeOf[uint16](), TypeOf[uint32](), TypeOf[uint64](),
		TypeOf[float32](), TypeOf[float64](),
	} {
		r.Register(t, num)
	}

	RegisterFor[uuid.UUID](r, uuidSerializer{})
	RegisterFor[url.URL](r, urlSerializer{})
	RegisterFor[*url.URL](r, urlSerializer{})
	RegisterFor[*regexp.Regexp](r, patternSerializer{})

	// Text-representable types (time.Time and friends) come before the
	// generic object serializer so they stay scalars on the wire.
	r.RegisterPredicate(isTextRepresentable, textSerializer{})

	r.RegisterPredicate(isListShaped, listSerializer{})
	r.RegisterPredicate(isMapShaped, mapSerializer{})
	r.RegisterPredicate(isObjectShaped, objectSerializer{})

	return r
})

// DefaultSerializers returns the shared registry holding the built-in
// serializer set. Callers wanting custom registrations should create a child
// with NewSerializerRegistry(DefaultSerializers()) rather than mutate it.
func DefaultSerializers() *SerializerRegistry {
	return defaultSerializers()
}

func isListShaped(t reflect.Type) bool {
	return t.Kind() == reflect.Slice
}

func isMapShaped(t reflect.Type) bool {
	return t.Kind() == reflect.Map && t.Key().Kind() != reflect.Interface
}

func isObjectShaped(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Struct, reflect.Interface:
		return true
	case reflect.Pointer:
		return t.Elem().Kind() == reflect.Struct
	default:
		return false
	}
}
