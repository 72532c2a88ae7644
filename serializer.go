package treeconf

import "reflect"

// Serializer converts between tree nodes and typed values in both
// directions. Implementations are stateless and shared; the resolved type is
// passed on every call so one serializer can cover a family of types (all
// numeric kinds, every slice shape, and so on).
type Serializer interface {
	// Deserialize reads a value of the given type from the node. A nil
	// result with a nil error means the node held nothing usable; the
	// caller decides whether that clears the target or triggers
	// default copy-back.
	Deserialize(t reflect.Type, node Node) (any, error)

	// Serialize writes the value into the node, replacing its previous
	// content.
	Serialize(t reflect.Type, value any, node Node) error
}
