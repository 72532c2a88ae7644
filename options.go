package treeconf

import "fmt"

// Options carries the per-tree settings every node inherits from its root:
// the serializer registry, the polymorphic type registry, and whether
// populating copies in-memory defaults back into the tree.
type Options struct {
	serializers  *SerializerRegistry
	types        *TypeRegistry
	copyDefaults bool
}

// Option configures an Options value.
type Option func(*Options) error

// WithSerializers sets the serializer registry used to resolve field types.
func WithSerializers(reg *SerializerRegistry) Option {
	return func(o *Options) error {
		if reg == nil {
			return fmt.Errorf("serializer registry must not be nil")
		}
		o.serializers = reg
		return nil
	}
}

// WithTypes sets the type registry used to resolve polymorphic type tags.
func WithTypes(types *TypeRegistry) Option {
	return func(o *Options) error {
		if types == nil {
			return fmt.Errorf("type registry must not be nil")
		}
		o.types = types
		return nil
	}
}

// WithCopyDefaults controls whether Populate writes a field's current value
// back into the tree when the tree holds nothing for it. Defaults to false.
func WithCopyDefaults(copy bool) Option {
	return func(o *Options) error {
		o.copyDefaults = copy
		return nil
	}
}

// NewOptions builds an Options value starting from the package defaults.
func NewOptions(options ...Option) (*Options, error) {
	opts := DefaultOptions()
	for i, opt := range options {
		if err := opt(opts); err != nil {
			return nil, fmt.Errorf("invalid option %d: %w", i+1, err)
		}
	}
	return opts, nil
}

// DefaultOptions returns options using the default serializer set, the
// shared type registry, and copy-defaults disabled.
func DefaultOptions() *Options {
	return &Options{
		serializers: DefaultSerializers(),
		types:       DefaultTypes(),
	}
}

// Serializers returns the serializer registry.
func (o *Options) Serializers() *SerializerRegistry { return o.serializers }

// Types returns the polymorphic type registry.
func (o *Options) Types() *TypeRegistry { return o.types }

// CopyDefaults reports whether defaults are copied back on populate.
func (o *Options) CopyDefaults() bool { return o.copyDefaults }
