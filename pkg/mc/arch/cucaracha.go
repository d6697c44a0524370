package arch

import (
	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/Manu343726/mclog/pkg/mc/types"
)

// Cucaracha instruction ids
const (
	// No-Operation
	CucarachaInst_Nop instructions.InstId = iota + 1
	// Copy 16 most significant bits of immediate value into register
	CucarachaInst_MovImm16H
	// Copy 16 least significant bits of immediate value into register
	CucarachaInst_MovImm16L
	// Copy value of one register into another
	CucarachaInst_Mov
	// Load value from memory into register
	CucarachaInst_Ld
	// Save value of register into memory
	CucarachaInst_St
	// Add values of two registers, save result into third
	CucarachaInst_Add
	// Substract values of two registers, save result into third
	CucarachaInst_Sub
	// Multiply values of two registers, save result into third
	CucarachaInst_Mul
	// Divide values of two registers, save result into third
	CucarachaInst_Div
	// Compute register value modulo other register value, save result into third
	CucarachaInst_Mod
	// Jump to the address stored in a register
	CucarachaInst_Jmp
)

func cucarachaDescriptor() *Descriptor {
	return &Descriptor{
		Id:          Arch_Cucaracha,
		Description: "Cucaracha toy CPU",
		PointerSize: 4,
		Registers: registers.NewRegisterClassesDescriptor([]*registers.RegisterClassDescriptor{
			registers.NewRegisterClassDescriptor(&registers.RegisterClassDescriptor{
				Kind:        registers.RegisterKind_State,
				Description: "CPU state registers",
				ValueType:   types.TypeId_I32,
			}, registers.NamedRegisters(4, "pc", "sp", "cpsr", "lr")),
			registers.NewRegisterClassDescriptor(&registers.RegisterClassDescriptor{
				Kind:               registers.RegisterKind_GP32,
				Description:        "General purpose word-sized 32 bit integer registers",
				ValueType:          types.TypeId_I32,
				RegisterNamePrefix: "r",
			}, registers.MakeRegisters(10)),
		}),
		OpCodes: instructions.NewOpCodesDescriptor(map[instructions.InstId]string{
			CucarachaInst_Nop:       "NOP",
			CucarachaInst_MovImm16H: "MOVIMM16H",
			CucarachaInst_MovImm16L: "MOVIMM16L",
			CucarachaInst_Mov:       "MOV",
			CucarachaInst_Ld:        "LD",
			CucarachaInst_St:        "ST",
			CucarachaInst_Add:       "ADD",
			CucarachaInst_Sub:       "SUB",
			CucarachaInst_Mul:       "MUL",
			CucarachaInst_Div:       "DIV",
			CucarachaInst_Mod:       "MOD",
			CucarachaInst_Jmp:       "JMP",
		}),
		ImmediatePrefix: "#",
		MemorySyntax:    MemorySyntax_Plain,
	}
}
