package treeconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSerializerDeserialize(t *testing.T) {
	ser := listSerializer{}

	t.Run("list children decode in order", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue([]any{3, 1, 2})

		got, err := ser.Deserialize(TypeOf[[]int](), node)
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 2}, got)
	})

	t.Run("bare scalar coerces to singleton", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue(5)

		got, err := ser.Deserialize(TypeOf[[]int](), node)
		require.NoError(t, err)
		assert.Equal(t, []int{5}, got)
	})

	t.Run("empty node decodes to empty list", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue(nil)

		got, err := ser.Deserialize(TypeOf[[]string](), node)
		require.NoError(t, err)
		assert.Equal(t, []string{}, got)
	})

	t.Run("missing element serializer fails", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue([]any{1})
		_, err := ser.Deserialize(TypeOf[[]chan int](), node)
		assert.ErrorIs(t, err, ErrNoSerializer)
	})
}

func TestListSerializerSerialize(t *testing.T) {
	ser := listSerializer{}

	t.Run("output mirrors input order and cardinality", func(t *testing.T) {
		node := NewNode(nil)
		require.NoError(t, ser.Serialize(TypeOf[[]string](), []string{"c", "a", "b"}, node))

		children := node.ListChildren()
		require.Len(t, children, 3)
		assert.Equal(t, "c", children[0].Value())
		assert.Equal(t, "a", children[1].Value())
		assert.Equal(t, "b", children[2].Value())
	})

	t.Run("existing children are cleared first", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue([]any{"stale", "stale", "stale", "stale"})

		require.NoError(t, ser.Serialize(TypeOf[[]int](), []int{1}, node))
		children := node.ListChildren()
		require.Len(t, children, 1)
		assert.Equal(t, int64(1), children[0].Value())
	})

	t.Run("empty list stays a list on the wire", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue("old")
		require.NoError(t, ser.Serialize(TypeOf[[]int](), []int{}, node))
		assert.True(t, node.HasListChildren())
		assert.Empty(t, node.ListChildren())
		assert.Equal(t, []any{}, node.Value())
	})

	t.Run("nested lists recurse", func(t *testing.T) {
		node := NewNode(nil)
		require.NoError(t, ser.Serialize(TypeOf[[][]int](), [][]int{{1, 2}, {3}}, node))

		got, err := ser.Deserialize(TypeOf[[][]int](), node)
		require.NoError(t, err)
		assert.Equal(t, [][]int{{1, 2}, {3}}, got)
	})
}
