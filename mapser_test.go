package treeconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapSerializerDeserialize(t *testing.T) {
	ser := mapSerializer{}

	t.Run("map children decode through key and value serializers", func(t *testing.T) {
		node := NewNode(nil)
		node.Child("a").SetValue(1)
		node.Child("b").SetValue(2)

		got, err := ser.Deserialize(TypeOf[map[string]int](), node)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 1, "b": 2}, got)
	})

	t.Run("non-string key types decode through their serializer", func(t *testing.T) {
		node := NewNode(nil)
		node.Child("1").SetValue("one")
		node.Child("2").SetValue("two")

		got, err := ser.Deserialize(TypeOf[map[int]string](), node)
		require.NoError(t, err)
		assert.Equal(t, map[int]string{1: "one", 2: "two"}, got)
	})

	t.Run("entries that decode to nothing are skipped", func(t *testing.T) {
		node := NewNode(nil)
		node.Child("keep").SetValue("v")
		node.Child("drop").SetValue(nil)

		got, err := ser.Deserialize(TypeOf[map[string]string](), node)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"keep": "v"}, got)
	})

	t.Run("scalar node decodes to empty map", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue("scalar")

		got, err := ser.Deserialize(TypeOf[map[string]int](), node)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMapSerializerSerialize(t *testing.T) {
	ser := mapSerializer{}

	t.Run("entries are keyed by encoded key in stable order", func(t *testing.T) {
		node := NewNode(nil)
		require.NoError(t, ser.Serialize(TypeOf[map[string]int](), map[string]int{"b": 2, "a": 1}, node))

		entries := node.MapChildren()
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].Key)
		assert.Equal(t, int64(1), entries[0].Node.Value())
		assert.Equal(t, "b", entries[1].Key)
		assert.Equal(t, int64(2), entries[1].Node.Value())
	})

	t.Run("stale children are cleared", func(t *testing.T) {
		node := NewNode(nil)
		node.Child("stale").SetValue(true)

		require.NoError(t, ser.Serialize(TypeOf[map[string]int](), map[string]int{"fresh": 1}, node))
		entries := node.MapChildren()
		require.Len(t, entries, 1)
		assert.Equal(t, "fresh", entries[0].Key)
	})

	t.Run("empty map stays a map on the wire", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue("old")
		require.NoError(t, ser.Serialize(TypeOf[map[string]int](), map[string]int{}, node))
		assert.True(t, node.HasMapChildren())
		assert.Empty(t, node.MapChildren())
	})

	t.Run("round trip preserves wire order", func(t *testing.T) {
		node := NewNode(nil)
		require.NoError(t, ser.Serialize(TypeOf[map[string]int](), map[string]int{"a": 1, "b": 2}, node))

		got, err := ser.Deserialize(TypeOf[map[string]int](), node)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 1, "b": 2}, got)

		entries := node.MapChildren()
		require.Len(t, entries, 2)
		assert.Equal(t, "a", entries[0].Key)
		assert.Equal(t, "b", entries[1].Key)
	})
}
