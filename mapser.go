package treeconf

import (
	"reflect"
	"sort"
)

// mapSerializer converts map-typed fields. Keys travel through a throwaway
// node so that any key type with a serializer gains a wire representation;
// children are addressed by that encoded key, not by the key's identity.
type mapSerializer struct{}

func (mapSerializer) Deserialize(t reflect.Type, node Node) (any, error) {
	keyType, valType := t.Key(), t.Elem()
	keySer := node.Options().Serializers().Resolve(keyType)
	if keySer == nil {
		return nil, NewNoSerializerError(keyType)
	}
	valSer := node.Options().Serializers().Resolve(valType)
	if valSer == nil {
		return nil, NewNoSerializerError(valType)
	}

	out := reflect.MakeMap(t)
	if !node.HasMapChildren() {
		return out.Interface(), nil
	}
	for _, entry := range node.MapChildren() {
		keyNode := NewNode(node.Options())
		keyNode.SetValue(entry.Key)
		k, err := keySer.Deserialize(keyType, keyNode)
		if err != nil {
			return nil, err
		}
		v, err := valSer.Deserialize(valType, entry.Node)
		if err != nil {
			return nil, err
		}
		// Entries that decode to nothing are dropped rather than mapped
		// to zero values.
		if k == nil || v == nil {
			continue
		}
		out.SetMapIndex(elementValue(k, keyType), elementValue(v, valType))
	}
	return out.Interface(), nil
}

func (mapSerializer) Serialize(t reflect.Type, value any, node Node) error {
	keyType, valType := t.Key(), t.Elem()
	keySer := node.Options().Serializers().Resolve(keyType)
	if keySer == nil {
		return NewNoSerializerError(keyType)
	}
	valSer := node.Options().Serializers().Resolve(valType)
	if valSer == nil {
		return NewNoSerializerError(valType)
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return NewInvalidValueError(t, value, nil)
	}

	// Encode every key up front so entries can be written in a stable
	// order; Go map iteration gives none.
	type wireEntry struct {
		wireKey string
		key     reflect.Value
	}
	entries := make([]wireEntry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		keyNode := NewNode(node.Options())
		if err := keySer.Serialize(keyType, iter.Key().Interface(), keyNode); err != nil {
			return err
		}
		wire, ok := asString(keyNode.Value())
		if !ok {
			return NewInvalidValueError(keyType, iter.Key().Interface(), nil)
		}
		entries = append(entries, wireEntry{wireKey: wire, key: iter.Key()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].wireKey < entries[j].wireKey })

	node.SetValue(map[string]any{})
	for _, entry := range entries {
		child := node.Child(entry.wireKey)
		if err := valSer.Serialize(valType, rv.MapIndex(entry.key).Interface(), child); err != nil {
			return err
		}
	}
	return nil
}
