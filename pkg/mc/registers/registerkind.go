package registers

import "fmt"

// Identifies the kind (type) of a register. Together with an id it fully describes a register reference
type RegisterKind uint

const (
	// 8 bit general purpose registers, low byte (al, cl, ...)
	RegisterKind_GP8Lo RegisterKind = iota
	// 8 bit general purpose registers, high byte (ah, ch, ...)
	RegisterKind_GP8Hi
	// 16 bit general purpose registers
	RegisterKind_GP16
	// 32 bit general purpose registers
	RegisterKind_GP32
	// 64 bit general purpose registers
	RegisterKind_GP64
	// 128 bit vector registers
	RegisterKind_Vec128
	// 256 bit vector registers
	RegisterKind_Vec256
	// CPU state registers (program counter, stack pointer, ...)
	RegisterKind_State

	// Number of register kinds
	TOTAL_REGISTER_KINDS
)

var registerKindNames = [TOTAL_REGISTER_KINDS]string{
	RegisterKind_GP8Lo:  "gp8lo",
	RegisterKind_GP8Hi:  "gp8hi",
	RegisterKind_GP16:   "gp16",
	RegisterKind_GP32:   "gp32",
	RegisterKind_GP64:   "gp64",
	RegisterKind_Vec128: "vec128",
	RegisterKind_Vec256: "vec256",
	RegisterKind_State:  "state",
}

func (k RegisterKind) String() string {
	if k < TOTAL_REGISTER_KINDS {
		return registerKindNames[k]
	}

	return fmt.Sprintf("kind%d", uint(k))
}

// Returns the size in bytes of registers of this kind, 0 if unknown
func (k RegisterKind) Size() int {
	switch k {
	case RegisterKind_GP8Lo, RegisterKind_GP8Hi:
		return 1
	case RegisterKind_GP16:
		return 2
	case RegisterKind_GP32, RegisterKind_State:
		return 4
	case RegisterKind_GP64:
		return 8
	case RegisterKind_Vec128:
		return 16
	case RegisterKind_Vec256:
		return 32
	}

	return 0
}

// Returns the register kind given its name
func ParseRegisterKind(name string) (RegisterKind, error) {
	for kind, kindName := range registerKindNames {
		if kindName == name {
			return RegisterKind(kind), nil
		}
	}

	return 0, fmt.Errorf("%w: '%v'", ErrUnknownRegisterKind, name)
}

// First id used by virtual registers. Ids below are physical register indices within a register class
const VirtIdMin uint32 = 256

// Checks whether a register id refers to a virtual register
func IsVirtId(id uint32) bool {
	return id >= VirtIdMin
}

// Returns the index of a virtual register within the virtual register table
func VirtIndex(id uint32) uint32 {
	return id - VirtIdMin
}

// Returns the register id of the virtual register with the given index
func VirtId(index uint32) uint32 {
	return index + VirtIdMin
}
