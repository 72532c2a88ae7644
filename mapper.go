package treeconf

import (
	"fmt"
	"reflect"

	"github.com/hengadev/errsx"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	// TagName marks a struct field as mapped. The tag value is the wire
	// path; an empty value maps the field under its own name.
	//
	//	type Server struct {
	//	    Host string `conf:""`
	//	    Port int    `conf:"listen-port" comment:"TCP port to bind"`
	//	}
	TagName = "conf"

	// CommentTag carries an optional comment attached to the field's node
	// on serialization, for comment-capable tree formats.
	CommentTag = "comment"
)

// fieldData is one entry of a mapper's field table: where the field lives in
// the struct, its declared type, and its optional comment.
type fieldData struct {
	name    string
	index   []int
	typ     reflect.Type
	comment string
}

// ObjectMapper holds the cached field table for one struct type and converts
// instances of that type to and from tree nodes. Mappers are built once per
// type and shared; use MapperFor rather than building ad hoc.
type ObjectMapper struct {
	target  reflect.Type
	fields  *orderedmap.OrderedMap[string, *fieldData]
	factory func() any
}

// NewObjectMapper builds a mapper for the given struct type. Interface and
// other non-struct types are rejected: mappers only work with concrete
// types. All tagged fields are validated eagerly, so a mapper that builds
// successfully will not fail on field access later.
func NewObjectMapper(t reflect.Type) (*ObjectMapper, error) {
	if t == nil {
		return nil, NewInvalidTargetError(t, "nil type")
	}
	if t.Kind() == reflect.Interface {
		return nil, NewInvalidTargetError(t, "object mappers only work with concrete struct types")
	}
	if t.Kind() != reflect.Struct {
		return nil, NewInvalidTargetError(t, "target must be a struct type")
	}

	m := &ObjectMapper{
		target: t,
		fields: orderedmap.New[string, *fieldData](),
	}
	var errs errsx.Map
	collectFields(m.fields, t, nil, &errs)
	if !errs.IsEmpty() {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTarget, t, errs.AsError())
	}
	m.factory = func() any { return reflect.New(t).Interface() }
	return m, nil
}

// collectFields walks a struct type and its embedded structs, outermost
// first, recording each tagged field under its wire path. A path already
// claimed by an outer field is never overwritten by an embedded one, so
// redeclaring a field shadows the embedded declaration.
func collectFields(table *orderedmap.OrderedMap[string, *fieldData], t reflect.Type, index []int, errs *errsx.Map) {
	var embedded []int
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		path, tagged := f.Tag.Lookup(TagName)
		if !tagged {
			if f.Anonymous && f.Type.Kind() == reflect.Struct {
				embedded = append(embedded, i)
			}
			continue
		}
		if f.PkgPath != "" {
			errs.Set(fmt.Sprintf("field '%s'", f.Name), "unexported fields cannot be mapped")
			continue
		}
		if path == "" {
			path = f.Name
		}
		if _, exists := table.Get(path); exists {
			continue
		}
		fieldIndex := make([]int, 0, len(index)+1)
		fieldIndex = append(append(fieldIndex, index...), i)
		table.Set(path, &fieldData{
			name:    f.Name,
			index:   fieldIndex,
			typ:     f.Type,
			comment: f.Tag.Get(CommentTag),
		})
	}
	for _, i := range embedded {
		childIndex := make([]int, 0, len(index)+1)
		childIndex = append(append(childIndex, index...), i)
		collectFields(table, t.Field(i).Type, childIndex, errs)
	}
}

// MappedType returns the struct type this mapper works with.
func (m *ObjectMapper) MappedType() reflect.Type { return m.target }

// CanCreateInstances reports whether BindToNew can construct fresh
// instances. Mappers built by NewObjectMapper always can; the capability
// exists for mappers wired up with a custom factory.
func (m *ObjectMapper) CanCreateInstances() bool { return m.factory != nil }

// Bind pairs this mapper with an existing instance, which must be a non-nil
// pointer to the mapped struct type.
func (m *ObjectMapper) Bind(instance any) (*BoundInstance, error) {
	if instance == nil {
		return nil, NewInvalidTargetError(m.target, "cannot bind to a nil instance")
	}
	rv := reflect.ValueOf(instance)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return nil, NewInvalidTargetError(m.target, "instance must be a non-nil pointer to a struct")
	}
	elem := rv.Elem()
	if elem.Type() != m.target {
		return nil, NewInvalidTargetError(m.target, fmt.Sprintf("instance is %s", elem.Type()))
	}
	return &BoundInstance{mapper: m, instance: instance, value: elem}, nil
}

// BindToNew pairs this mapper with a freshly constructed instance.
func (m *ObjectMapper) BindToNew() (*BoundInstance, error) {
	if m.factory == nil {
		return nil, NewInvalidTargetError(m.target, "no constructor available")
	}
	return m.Bind(m.factory())
}

// BoundInstance is a mapper paired with one live instance for the duration
// of a populate or serialize call. Bound instances are cheap and transient;
// bind fresh for each operation.
type BoundInstance struct {
	mapper   *ObjectMapper
	instance any
	value    reflect.Value
}

// Instance returns the bound instance as the pointer it was bound with.
func (b *BoundInstance) Instance() any { return b.instance }

// Populate deserializes the source node's children into the bound
// instance's mapped fields, in field-table order. Fields already written
// stay written when a later field fails; there is no rollback.
func (b *BoundInstance) Populate(source Node) error {
	for pair := b.mapper.fields.Oldest(); pair != nil; pair = pair.Next() {
		node := source.Child(pair.Key)
		fv := b.value.FieldByIndex(pair.Value.index)
		if err := pair.Value.deserializeInto(fv, node); err != nil {
			return err
		}
	}
	// Populating always leaves a concrete object behind, even when the
	// source held nothing at all.
	if source.IsVirtual() {
		source.SetValue(map[string]any{})
	}
	return nil
}

// Serialize writes the bound instance's mapped fields into the target node,
// in field-table order. No rollback on partial failure.
func (b *BoundInstance) Serialize(target Node) error {
	for pair := b.mapper.fields.Oldest(); pair != nil; pair = pair.Next() {
		node := target.Child(pair.Key)
		if err := pair.Value.serializeFrom(b.value.FieldByIndex(pair.Value.index), node); err != nil {
			return err
		}
	}
	return nil
}

func (fd *fieldData) deserializeInto(fv reflect.Value, node Node) error {
	ser := node.Options().Serializers().Resolve(fd.typ)
	if ser == nil {
		return NewNoFieldSerializerError(fd.name, fd.typ)
	}
	var decoded any
	if !node.IsVirtual() {
		var err error
		decoded, err = ser.Deserialize(fd.typ, node)
		if err != nil {
			return fmt.Errorf("field '%s': %w", fd.name, err)
		}
	}
	if decoded == nil {
		if node.Options().CopyDefaults() {
			// Nothing loaded: surface the in-memory default in the
			// tree instead of clearing the field.
			if !fv.IsZero() {
				return fd.serializeFrom(fv, node)
			}
			return nil
		}
		fv.Set(reflect.Zero(fd.typ))
		return nil
	}
	dv := reflect.ValueOf(decoded)
	if dv.Type() != fd.typ {
		if !dv.Type().ConvertibleTo(fd.typ) {
			return NewFieldAccessError(fd.name, fd.typ, fmt.Sprintf("cannot assign decoded %s", dv.Type()))
		}
		dv = dv.Convert(fd.typ)
	}
	fv.Set(dv)
	return nil
}

func (fd *fieldData) serializeFrom(fv reflect.Value, node Node) error {
	if isNilValue(fv) {
		node.SetValue(nil)
	} else {
		ser := node.Options().Serializers().Resolve(fd.typ)
		if ser == nil {
			return NewNoFieldSerializerError(fd.name, fd.typ)
		}
		if err := ser.Serialize(fd.typ, fv.Interface(), node); err != nil {
			return fmt.Errorf("field '%s': %w", fd.name, err)
		}
	}
	if cn, ok := node.(CommentedNode); ok && fd.comment != "" {
		cn.SetCommentIfAbsent(fd.comment)
	}
	return nil
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map:
		return v.IsNil()
	default:
		return false
	}
}
