package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeIdNames(t *testing.T) {
	assert.Equal(t, "void", TypeId_Void.String())
	assert.Equal(t, "i32", TypeId_I32.String())
	assert.Equal(t, "uptr", TypeId_UIntPtr.String())
	assert.Equal(t, "mask16", TypeId_Mask16.String())
	assert.Equal(t, "f32x4", Vector(TypeId_F32, 4).String())
	assert.Equal(t, "u8x16", Vector(TypeId_U8, 16).String())
	assert.Equal(t, "unknown", TypeId(0xFF).String())
	assert.Equal(t, "unknown", TypeId(0x10000).String())
}

func TestVector(t *testing.T) {
	v := Vector(TypeId_I64, 2)

	assert.True(t, v.IsVector())
	assert.True(t, v.IsInteger())
	assert.Equal(t, TypeId_I64, v.Base())
	assert.Equal(t, 16, v.Size())

	assert.False(t, Vector(TypeId_Void, 4).IsValid())
	assert.False(t, Vector(TypeId_F32, 1000).IsValid())
	assert.False(t, Vector(v, 2).IsValid())
}

func TestParseTypeId(t *testing.T) {
	id, err := ParseTypeId("f64x2")
	require.NoError(t, err)
	assert.Equal(t, Vector(TypeId_F64, 2), id)

	id, err = ParseTypeId("mmx64")
	require.NoError(t, err)
	assert.Equal(t, TypeId_Mmx64, id)

	_, err = ParseTypeId("i128")
	assert.ErrorIs(t, err, ErrUnknownType)
}
