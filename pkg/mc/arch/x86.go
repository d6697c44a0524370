package arch

import (
	"fmt"

	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/Manu343726/mclog/pkg/mc/types"
)

// x86 instruction ids, shared by Arch_X86 and Arch_X64
const (
	X86Inst_Nop instructions.InstId = iota + 1
	X86Inst_Mov
	X86Inst_Movzx
	X86Inst_Lea
	X86Inst_Push
	X86Inst_Pop
	X86Inst_Add
	X86Inst_Sub
	X86Inst_Imul
	X86Inst_And
	X86Inst_Or
	X86Inst_Xor
	X86Inst_Shl
	X86Inst_Shr
	X86Inst_Cmp
	X86Inst_Test
	X86Inst_Jmp
	X86Inst_Je
	X86Inst_Jne
	X86Inst_Call
	X86Inst_Ret
	X86Inst_Movsb
	X86Inst_Cmpxchg
	X86Inst_Movaps
	X86Inst_Movdqa
	X86Inst_Paddd
	X86Inst_Pshufd
	X86Inst_Shufps
	X86Inst_Cmpps
	X86Inst_Roundps
	X86Inst_Vaddps
)

var x86OpCodes = instructions.NewOpCodesDescriptor(map[instructions.InstId]string{
	X86Inst_Nop:     "nop",
	X86Inst_Mov:     "mov",
	X86Inst_Movzx:   "movzx",
	X86Inst_Lea:     "lea",
	X86Inst_Push:    "push",
	X86Inst_Pop:     "pop",
	X86Inst_Add:     "add",
	X86Inst_Sub:     "sub",
	X86Inst_Imul:    "imul",
	X86Inst_And:     "and",
	X86Inst_Or:      "or",
	X86Inst_Xor:     "xor",
	X86Inst_Shl:     "shl",
	X86Inst_Shr:     "shr",
	X86Inst_Cmp:     "cmp",
	X86Inst_Test:    "test",
	X86Inst_Jmp:     "jmp",
	X86Inst_Je:      "je",
	X86Inst_Jne:     "jne",
	X86Inst_Call:    "call",
	X86Inst_Ret:     "ret",
	X86Inst_Movsb:   "movsb",
	X86Inst_Cmpxchg: "cmpxchg",
	X86Inst_Movaps:  "movaps",
	X86Inst_Movdqa:  "movdqa",
	X86Inst_Paddd:   "paddd",
	X86Inst_Pshufd:  "pshufd",
	X86Inst_Shufps:  "shufps",
	X86Inst_Cmpps:   "cmpps",
	X86Inst_Roundps: "roundps",
	X86Inst_Vaddps:  "vaddps",
})

func gpClass(kind registers.RegisterKind, valueType types.TypeId, prefix string, suffix string, regs []*registers.RegisterDescriptor) *registers.RegisterClassDescriptor {
	return registers.NewRegisterClassDescriptor(&registers.RegisterClassDescriptor{
		Kind:               kind,
		Description:        fmt.Sprintf("%v bit general purpose registers", kind.Size()*8),
		ValueType:          valueType,
		RegisterNamePrefix: prefix,
		RegisterNameSuffix: suffix,
	}, regs)
}

func vecClass(kind registers.RegisterKind, prefix string, count int) *registers.RegisterClassDescriptor {
	return registers.NewRegisterClassDescriptor(&registers.RegisterClassDescriptor{
		Kind:               kind,
		Description:        fmt.Sprintf("%v bit vector registers", kind.Size()*8),
		ValueType:          types.Vector(types.TypeId_F32, kind.Size()/4),
		RegisterNamePrefix: prefix,
	}, registers.MakeRegisters(count))
}

func x86Descriptor() *Descriptor {
	return &Descriptor{
		Id:          Arch_X86,
		Description: "32 bit x86",
		PointerSize: 4,
		Registers: registers.NewRegisterClassesDescriptor([]*registers.RegisterClassDescriptor{
			gpClass(registers.RegisterKind_GP8Lo, types.TypeId_I8, "", "", registers.NamedRegisters(4, "al", "cl", "dl", "bl")),
			gpClass(registers.RegisterKind_GP8Hi, types.TypeId_I8, "", "", registers.NamedRegisters(4, "ah", "ch", "dh", "bh")),
			gpClass(registers.RegisterKind_GP16, types.TypeId_I16, "", "", registers.NamedRegisters(8, "ax", "cx", "dx", "bx", "sp", "bp", "si", "di")),
			gpClass(registers.RegisterKind_GP32, types.TypeId_I32, "", "", registers.NamedRegisters(8, "eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi")),
			vecClass(registers.RegisterKind_Vec128, "xmm", 8),
			vecClass(registers.RegisterKind_Vec256, "ymm", 8),
		}),
		OpCodes:          x86OpCodes,
		MemorySyntax:     MemorySyntax_Intel,
		OptionPrefixes:   true,
		ExplainImmediate: explainX86Immediate,
	}
}

func x64Descriptor() *Descriptor {
	return &Descriptor{
		Id:          Arch_X64,
		Description: "64 bit x86 (AMD64)",
		PointerSize: 8,
		Registers: registers.NewRegisterClassesDescriptor([]*registers.RegisterClassDescriptor{
			gpClass(registers.RegisterKind_GP8Lo, types.TypeId_I8, "r", "b", registers.NamedRegisters(16, "al", "cl", "dl", "bl", "spl", "bpl", "sil", "dil")),
			gpClass(registers.RegisterKind_GP8Hi, types.TypeId_I8, "", "", registers.NamedRegisters(4, "ah", "ch", "dh", "bh")),
			gpClass(registers.RegisterKind_GP16, types.TypeId_I16, "r", "w", registers.NamedRegisters(16, "ax", "cx", "dx", "bx", "sp", "bp", "si", "di")),
			gpClass(registers.RegisterKind_GP32, types.TypeId_I32, "r", "d", registers.NamedRegisters(16, "eax", "ecx", "edx", "ebx", "esp", "ebp", "esi", "edi")),
			gpClass(registers.RegisterKind_GP64, types.TypeId_I64, "r", "", registers.NamedRegisters(16, "rax", "rcx", "rdx", "rbx", "rsp", "rbp", "rsi", "rdi")),
			vecClass(registers.RegisterKind_Vec128, "xmm", 16),
			vecClass(registers.RegisterKind_Vec256, "ymm", 16),
		}),
		OpCodes:          x86OpCodes,
		MemorySyntax:     MemorySyntax_Intel,
		OptionPrefixes:   true,
		ExplainImmediate: explainX86Immediate,
	}
}

var cmpPredicates = [8]string{"eq", "lt", "le", "unord", "neq", "nlt", "nle", "ord"}
var roundingModes = [4]string{"near", "down", "up", "trunc"}

func explainX86Immediate(id instructions.InstId, value int64) (string, bool) {
	if value < 0 || value > 0xFF {
		return "", false
	}

	switch id {
	case X86Inst_Pshufd, X86Inst_Shufps:
		// four 2-bit lane selectors, highest lane first
		return fmt.Sprintf("%d|%d|%d|%d", (value>>6)&3, (value>>4)&3, (value>>2)&3, value&3), true
	case X86Inst_Cmpps:
		if value < int64(len(cmpPredicates)) {
			return cmpPredicates[value], true
		}
	case X86Inst_Roundps:
		explanation := roundingModes[value&3]
		if value&4 != 0 {
			explanation = "current"
		}
		if value&8 != 0 {
			explanation += "|inexact"
		}
		return explanation, true
	}

	return "", false
}
