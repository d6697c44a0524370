package registers

import (
	"fmt"

	"github.com/Manu343726/mclog/pkg/utils"
)

// Register file of an architecture: one register class per supported register kind
type RegisterClassesDescriptor struct {
	classes map[RegisterKind]*RegisterClassDescriptor
}

// Returns the descriptor of a register class, if the architecture supports that kind
func (d *RegisterClassesDescriptor) Class(kind RegisterKind) (*RegisterClassDescriptor, bool) {
	class, ok := d.classes[kind]
	return class, ok
}

// Returns all the register classes sorted by kind
func (d *RegisterClassesDescriptor) AllClasses() []*RegisterClassDescriptor {
	return utils.Map(utils.SortedKeys(d.classes), func(kind RegisterKind) *RegisterClassDescriptor {
		return d.classes[kind]
	})
}

// Returns a register given its kind and index
func (d *RegisterClassesDescriptor) Register(kind RegisterKind, index int) (*RegisterDescriptor, error) {
	class, ok := d.Class(kind)

	if !ok {
		return nil, utils.MakeError(ErrUnknownRegister, "no %v registers in this register file", kind)
	}

	return class.Register(index)
}

// Returns a register given its name
func (d *RegisterClassesDescriptor) RegisterByName(name string) (*RegisterDescriptor, error) {
	for _, class := range d.AllClasses() {
		for _, register := range class.AllRegisters() {
			if register.Name() == name {
				return register, nil
			}
		}
	}

	return nil, utils.MakeError(ErrUnknownRegister, "'%v'", name)
}

// Initializes a register classes descriptor with all the given register class descriptors
func NewRegisterClassesDescriptor(classes []*RegisterClassDescriptor) RegisterClassesDescriptor {
	classMap := utils.GenMap(classes, func(class *RegisterClassDescriptor) RegisterKind {
		return class.Kind
	})

	if len(classMap) != len(classes) {
		panic(fmt.Sprintf("duplicated register class entries in register classes descriptor (%v classes, %v distinct kinds)", len(classes), len(classMap)))
	}

	return RegisterClassesDescriptor{
		classes: classMap,
	}
}
