package registers

import (
	"github.com/Manu343726/mclog/pkg/mc/types"
	"github.com/Manu343726/mclog/pkg/utils"
)

type RegisterDescriptor struct {
	// Register class
	Class *RegisterClassDescriptor

	// Index within the register class
	Index int

	// Custom name for the register instead of the default RegisterNamePrefix + Index + RegisterNameSuffix name
	CustomName string

	// Register description (for documentation/debugging)
	Description string
}

// Returns the register name
func (d *RegisterDescriptor) Name() string {
	if len(d.CustomName) > 0 {
		return d.CustomName
	} else {
		return d.Class.DefaultRegisterName(d.Index)
	}
}

func (d *RegisterDescriptor) String() string {
	return d.Name()
}

// Returns the value type of the register
func (d *RegisterDescriptor) ValueType() types.TypeId {
	return d.Class.ValueType
}

// Creates multiple consecutive indexed registers
func MakeRegisters(count int) []*RegisterDescriptor {
	return utils.Iota(count, func(i int) *RegisterDescriptor {
		return &RegisterDescriptor{
			Index: i,
		}
	})
}

// Creates count consecutive registers where the first ones take the given custom names and
// the rest use the default class naming
func NamedRegisters(count int, names ...string) []*RegisterDescriptor {
	registers := MakeRegisters(count)

	for i, name := range names {
		if i < count {
			registers[i].CustomName = name
		}
	}

	return registers
}
