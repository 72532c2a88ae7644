package treeconf

import (
	"reflect"
	"sync"
)

// The shared mapper table. Field tables are immutable once built, so mappers
// are safe to share; the table guarantees one mapper per struct type under
// concurrent lookups.
var (
	mappersMu sync.RWMutex
	mappers   = make(map[reflect.Type]*ObjectMapper)
)

// MapperFor returns the shared mapper for the given struct type, building
// and caching it on first use. Construction failures are not cached.
func MapperFor(t reflect.Type) (*ObjectMapper, error) {
	mappersMu.RLock()
	m := mappers[t]
	mappersMu.RUnlock()
	if m != nil {
		return m, nil
	}

	built, err := NewObjectMapper(t)
	if err != nil {
		return nil, err
	}

	mappersMu.Lock()
	defer mappersMu.Unlock()
	if existing, ok := mappers[t]; ok {
		return existing, nil
	}
	mappers[t] = built
	return built, nil
}

// MapperOf returns the shared mapper for the struct type T.
func MapperOf[T any]() (*ObjectMapper, error) {
	return MapperFor(TypeOf[T]())
}

// Bind binds the shared mapper for instance's type to instance, which must
// be a non-nil pointer to a struct.
func Bind(instance any) (*BoundInstance, error) {
	rv := reflect.ValueOf(instance)
	if !rv.IsValid() || rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, NewInvalidTargetError(reflect.TypeOf(instance), "instance must be a non-nil pointer to a struct")
	}
	m, err := MapperFor(rv.Elem().Type())
	if err != nil {
		return nil, err
	}
	return m.Bind(instance)
}
