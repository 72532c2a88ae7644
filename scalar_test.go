package treeconf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSerializer(t *testing.T) {
	ser := stringSerializer{}

	t.Run("round trip", func(t *testing.T) {
		node := NewNode(nil)
		require.NoError(t, ser.Serialize(TypeOf[string](), "hello", node))
		got, err := ser.Deserialize(TypeOf[string](), node)
		require.NoError(t, err)
		assert.Equal(t, "hello", got)
	})

	t.Run("numeric raw value coerces", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue(42)
		got, err := ser.Deserialize(TypeOf[string](), node)
		require.NoError(t, err)
		assert.Equal(t, "42", got)
	})

	t.Run("absent value decodes to nothing", func(t *testing.T) {
		node := NewNode(nil)
		got, err := ser.Deserialize(TypeOf[string](), node)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestBoolSerializer(t *testing.T) {
	ser := boolSerializer{}
	node := NewNode(nil)
	node.SetValue("yes")

	got, err := ser.Deserialize(TypeOf[bool](), node)
	require.NoError(t, err)
	assert.Equal(t, true, got)

	node.SetValue("maybe")
	_, err = ser.Deserialize(TypeOf[bool](), node)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestNumericSerializer(t *testing.T) {
	ser := numericSerializer{}

	t.Run("declared kind decides the width", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue(300)

		got, err := ser.Deserialize(TypeOf[int](), node)
		require.NoError(t, err)
		assert.Equal(t, 300, got)

		got, err = ser.Deserialize(TypeOf[int64](), node)
		require.NoError(t, err)
		assert.Equal(t, int64(300), got)
	})

	t.Run("narrow kinds truncate instead of failing", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue(300)

		got, err := ser.Deserialize(TypeOf[int8](), node)
		require.NoError(t, err)
		assert.Equal(t, int8(44), got) // 300 mod 256

		got, err = ser.Deserialize(TypeOf[int16](), node)
		require.NoError(t, err)
		assert.Equal(t, int16(300), got)
	})

	t.Run("floats", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue("2.5")

		got, err := ser.Deserialize(TypeOf[float64](), node)
		require.NoError(t, err)
		assert.Equal(t, 2.5, got)

		got, err = ser.Deserialize(TypeOf[float32](), node)
		require.NoError(t, err)
		assert.Equal(t, float32(2.5), got)
	})

	t.Run("malformed literal fails", func(t *testing.T) {
		node := NewNode(nil)
		node.SetValue("not-a-number")
		_, err := ser.Deserialize(TypeOf[int](), node)
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("serialize stores the widened value", func(t *testing.T) {
		node := NewNode(nil)
		require.NoError(t, ser.Serialize(TypeOf[int8](), int8(7), node))
		assert.Equal(t, int64(7), node.Value())
	})
}
