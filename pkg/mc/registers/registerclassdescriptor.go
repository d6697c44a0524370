package registers

import (
	"errors"
	"fmt"

	"github.com/Manu343726/mclog/pkg/mc/types"
	"github.com/Manu343726/mclog/pkg/utils"
)

type RegisterClassDescriptor struct {
	Kind               RegisterKind
	Description        string
	ValueType          types.TypeId
	RegisterNamePrefix string
	RegisterNameSuffix string

	registers []*RegisterDescriptor
}

// Returns the number of registers in the class
func (d *RegisterClassDescriptor) TotalRegisters() int {
	return len(d.registers)
}

// Returns the set of all registers in the class
func (d *RegisterClassDescriptor) AllRegisters() []*RegisterDescriptor {
	return d.registers
}

var ErrUnknownRegister = errors.New("unknown register")
var ErrUnknownRegisterKind = errors.New("unknown register kind")

// Returns a register of the class given its index
func (d *RegisterClassDescriptor) Register(index int) (*RegisterDescriptor, error) {
	if index >= 0 && index < len(d.registers) {
		return d.registers[index], nil
	} else {
		return nil, utils.MakeError(ErrUnknownRegister, "register with index '%v' not found in register class, '%v' class has only %v registers", index, d.Kind, d.TotalRegisters())
	}
}

// Returns the name used to refer to a register of the class in case the register didn't specify a custom one
func (d *RegisterClassDescriptor) DefaultRegisterName(index int) string {
	return d.RegisterNamePrefix + fmt.Sprint(index) + d.RegisterNameSuffix
}

// Initializes a register class descriptor with the given registers. Register indices are assigned
// in the given order
func NewRegisterClassDescriptor(descriptor *RegisterClassDescriptor, registers []*RegisterDescriptor) *RegisterClassDescriptor {
	for i, register := range registers {
		register.Class = descriptor
		register.Index = i
	}

	descriptor.registers = registers
	return descriptor
}
