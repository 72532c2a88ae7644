// Package treeconf converts between hierarchical configuration trees and
// strongly-typed Go structs using simple struct tags, with a pluggable,
// type-directed serializer mechanism.
//
// A configuration tree is made of nodes: a node holds a scalar, an ordered
// list of nodes, an ordered string-keyed map of nodes, or nothing yet (a
// virtual node that materializes on first write). Object mappers discover
// tagged fields on a struct once per type, then move data between a live
// instance and a tree in either direction.
//
// # Quick start
//
// Tag the fields you want mapped:
//
//	type Server struct {
//	    Host    string        `conf:""`
//	    Port    int           `conf:"listen-port" comment:"TCP port to bind"`
//	    Tags    []string      `conf:"tags"`
//	    Limits  map[string]int `conf:"limits"`
//	}
//
// Populate from a tree, change the instance, write it back:
//
//	root := treeconf.NewNode(nil)
//	bound, err := treeconf.Bind(&Server{})
//	if err != nil { ... }
//	if err := bound.Populate(root); err != nil { ... }
//
//	srv := bound.Instance().(*Server)
//	srv.Port = 8080
//	if err := bound.Serialize(root); err != nil { ... }
//
// # Serializers
//
// The default registry covers strings, booleans, the numeric family,
// uuid.UUID, url.URL, *regexp.Regexp, any type implementing
// encoding.TextMarshaler/TextUnmarshaler (time.Time included), slices, maps,
// and nested structs. Enum-like types register their constant names with
// RegisterEnum; anything else can be registered against an exact type or a
// type predicate on a child registry:
//
//	reg := treeconf.NewSerializerRegistry(treeconf.DefaultSerializers())
//	treeconf.RegisterEnum(reg, map[string]Color{"RED": Red, "GREEN": Green})
//	opts, err := treeconf.NewOptions(treeconf.WithSerializers(reg))
//
// # Polymorphic fields
//
// A field declared with an interface type round-trips through the reserved
// "__class__" key, which holds a registered type tag rather than a Go type
// name. Register every concrete variant up front:
//
//	treeconf.DefaultTypes().Register("shapes/circle", &Circle{})
//
// Fields declared with a concrete type never emit the key.
//
// # Defaults
//
// With copy-defaults enabled (see WithCopyDefaults), populating from a tree
// that has no value for a field leaves the field's current value in place
// and writes that value back into the tree, so generated configuration
// files show their defaults.
//
// Limitations: mapped type graphs must not be cyclic — a self-referential
// record graph recurses until the stack is exhausted. Concurrent populate or
// serialize calls over overlapping subtrees are unsupported; keep one writer
// per subtree.
package treeconf
