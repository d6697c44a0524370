package types

import (
	"fmt"

	"fortio.org/safecast"
)

// Identifies the type of a value manipulated by machine code: scalars, masks, mmx and vectors.
//
// The lower 8 bits hold the base (scalar) type, the next 8 bits the number of vector lanes.
// A lane count of 0 or 1 denotes a scalar.
type TypeId uint32

const (
	TypeId_Void TypeId = iota
	TypeId_IntPtr
	TypeId_UIntPtr
	TypeId_I8
	TypeId_U8
	TypeId_I16
	TypeId_U16
	TypeId_I32
	TypeId_U32
	TypeId_I64
	TypeId_U64
	TypeId_F32
	TypeId_F64
	TypeId_F80
	TypeId_Mask8
	TypeId_Mask16
	TypeId_Mask32
	TypeId_Mask64
	TypeId_Mmx32
	TypeId_Mmx64

	// Number of base types
	TOTAL_BASE_TYPES
)

const (
	baseBits = 8
	baseMask = (1 << baseBits) - 1
	// Maximum number of lanes a vector type can have
	MaxLanes = 64
)

var baseNames = [TOTAL_BASE_TYPES]string{
	TypeId_Void:    "void",
	TypeId_IntPtr:  "iptr",
	TypeId_UIntPtr: "uptr",
	TypeId_I8:      "i8",
	TypeId_U8:      "u8",
	TypeId_I16:     "i16",
	TypeId_U16:     "u16",
	TypeId_I32:     "i32",
	TypeId_U32:     "u32",
	TypeId_I64:     "i64",
	TypeId_U64:     "u64",
	TypeId_F32:     "f32",
	TypeId_F64:     "f64",
	TypeId_F80:     "f80",
	TypeId_Mask8:   "mask8",
	TypeId_Mask16:  "mask16",
	TypeId_Mask32:  "mask32",
	TypeId_Mask64:  "mask64",
	TypeId_Mmx32:   "mmx32",
	TypeId_Mmx64:   "mmx64",
}

// Returns the vector type of the given number of lanes of a base type. Returns an invalid type if
// the base is not a valid lane type or the lane count is out of range
func Vector(base TypeId, lanes int) TypeId {
	n, err := safecast.Conv[uint8](lanes)

	if err != nil || n > MaxLanes || !base.IsValid() || base.IsVector() || base == TypeId_Void {
		return TypeId(baseMask)
	}

	return TypeId(uint32(n)<<baseBits) | base
}

// Returns the scalar base of the type
func (t TypeId) Base() TypeId {
	return t & baseMask
}

// Returns the number of lanes of the type, 1 for scalars
func (t TypeId) Lanes() int {
	if lanes := int(t >> baseBits); lanes > 1 {
		return lanes
	}

	return 1
}

func (t TypeId) IsVector() bool {
	return t.Lanes() > 1
}

// Checks whether the type id denotes a known type
func (t TypeId) IsValid() bool {
	return t.Base() < TOTAL_BASE_TYPES && t>>(2*baseBits) == 0 && int(t>>baseBits) <= MaxLanes
}

func (t TypeId) IsInteger() bool {
	base := t.Base()
	return base >= TypeId_IntPtr && base <= TypeId_U64
}

func (t TypeId) IsSigned() bool {
	switch t.Base() {
	case TypeId_IntPtr, TypeId_I8, TypeId_I16, TypeId_I32, TypeId_I64:
		return true
	}

	return false
}

// Returns the size in bytes of the type. Pointer sized types return 0 since their size depends
// on the architecture
func (t TypeId) Size() int {
	var base int

	switch t.Base() {
	case TypeId_I8, TypeId_U8, TypeId_Mask8:
		base = 1
	case TypeId_I16, TypeId_U16, TypeId_Mask16:
		base = 2
	case TypeId_I32, TypeId_U32, TypeId_F32, TypeId_Mask32, TypeId_Mmx32:
		base = 4
	case TypeId_I64, TypeId_U64, TypeId_F64, TypeId_Mask64, TypeId_Mmx64:
		base = 8
	case TypeId_F80:
		base = 10
	}

	return base * t.Lanes()
}

// Returns the canonical name of the type, "unknown" for invalid ids
func (t TypeId) String() string {
	if t == TypeId_Void {
		return "void"
	}

	if !t.IsValid() {
		return "unknown"
	}

	name := baseNames[t.Base()]

	if t.IsVector() {
		return fmt.Sprintf("%vx%v", name, t.Lanes())
	}

	return name
}

// Returns the type id given its canonical name
func ParseTypeId(name string) (TypeId, error) {
	for i, baseName := range baseNames {
		if baseName == name {
			return TypeId(i), nil
		}

		var lanes int
		if n, err := fmt.Sscanf(name, baseName+"x%d", &lanes); err == nil && n == 1 && fmt.Sprintf("%vx%v", baseName, lanes) == name {
			if vector := Vector(TypeId(i), lanes); vector.IsValid() {
				return vector, nil
			}
		}
	}

	return TypeId_Void, fmt.Errorf("%w: '%v'", ErrUnknownType, name)
}
