package instructions

import (
	"github.com/Manu343726/mclog/pkg/mc/registers"
)

// Represents the kind of operand (Register, immediate, etc)
type OperandKind uint

const (
	OperandKind_None OperandKind = iota
	OperandKind_Register
	OperandKind_Immediate
	OperandKind_Memory
	OperandKind_Label
)

func (o OperandKind) String() string {
	switch o {
	case OperandKind_None:
		return "None"
	case OperandKind_Register:
		return "Register"
	case OperandKind_Immediate:
		return "Immediate"
	case OperandKind_Memory:
		return "Memory"
	case OperandKind_Label:
		return "Label"
	}

	return "Invalid"
}

// Register reference. Ids at or above registers.VirtIdMin refer to virtual registers
type Reg struct {
	Kind registers.RegisterKind
	Id   uint32
}

func (r Reg) IsVirtual() bool {
	return registers.IsVirtId(r.Id)
}

// Memory operand: [BaseLabel | Base + Index << Shift + Offset], Size bytes wide (0 if unspecified)
type Mem struct {
	Base      *Reg
	BaseLabel *uint32
	Index     *Reg
	Shift     uint8
	Offset    int64
	Size      int
}

// Checks whether the memory operand has neither base nor index, i.e. it is an absolute address
func (m *Mem) IsAbsolute() bool {
	return m.Base == nil && m.BaseLabel == nil && m.Index == nil
}

// Stores an instruction operand
type Operand struct {
	kind  OperandKind
	reg   Reg
	imm   int64
	mem   Mem
	label uint32
}

// Returns the kind of operand this value refers to
func (o *Operand) Kind() OperandKind {
	return o.kind
}

func (o *Operand) Reg() Reg {
	if o.kind == OperandKind_Register {
		return o.reg
	}

	panic("operand is not a register")
}

func (o *Operand) Imm() int64 {
	if o.kind == OperandKind_Immediate {
		return o.imm
	}

	panic("operand is not an immediate")
}

func (o *Operand) Mem() Mem {
	if o.kind == OperandKind_Memory {
		return o.mem
	}

	panic("operand is not a memory operand")
}

func (o *Operand) Label() uint32 {
	if o.kind == OperandKind_Label {
		return o.label
	}

	panic("operand is not a label")
}

// Returns a register operand
func RegOperand(kind registers.RegisterKind, id uint32) Operand {
	return Operand{
		kind: OperandKind_Register,
		reg:  Reg{Kind: kind, Id: id},
	}
}

// Returns an immediate operand
func ImmOperand(value int64) Operand {
	return Operand{
		kind: OperandKind_Immediate,
		imm:  value,
	}
}

// Returns a memory operand
func MemOperand(mem Mem) Operand {
	return Operand{
		kind: OperandKind_Memory,
		mem:  mem,
	}
}

// Returns a label operand
func LabelOperand(id uint32) Operand {
	return Operand{
		kind:  OperandKind_Label,
		label: id,
	}
}
