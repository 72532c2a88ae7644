package treeconf

import "reflect"

// SupertypeOf returns a predicate matching every type assignable to base.
// For an interface base the predicate also accepts types whose pointer form
// implements the interface, so value-declared fields still match serializers
// registered against pointer-receiver interfaces.
func SupertypeOf(base reflect.Type) func(reflect.Type) bool {
	return func(t reflect.Type) bool {
		if base.Kind() == reflect.Interface {
			if t.Implements(base) {
				return true
			}
			return t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(base)
		}
		return t.AssignableTo(base)
	}
}

// TypeOf is a convenience for obtaining the reflect.Type of T without an
// instance, interface types included.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
