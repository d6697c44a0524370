package arch

import (
	"testing"

	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterNames(t *testing.T) {
	x64, err := Lookup(Arch_X64)
	require.NoError(t, err)

	cases := []struct {
		kind registers.RegisterKind
		id   uint32
		name string
	}{
		{registers.RegisterKind_GP64, 0, "rax"},
		{registers.RegisterKind_GP64, 13, "r13"},
		{registers.RegisterKind_GP32, 8, "r8d"},
		{registers.RegisterKind_GP16, 15, "r15w"},
		{registers.RegisterKind_GP8Lo, 6, "sil"},
		{registers.RegisterKind_GP8Lo, 9, "r9b"},
		{registers.RegisterKind_GP8Hi, 3, "bh"},
		{registers.RegisterKind_Vec256, 12, "ymm12"},
	}

	for _, c := range cases {
		name, ok := x64.RegisterName(c.kind, c.id)
		assert.True(t, ok, "%v:%v", c.kind, c.id)
		assert.Equal(t, c.name, name)
	}

	x86, err := Lookup(Arch_X86)
	require.NoError(t, err)

	_, ok := x86.RegisterName(registers.RegisterKind_GP64, 0)
	assert.False(t, ok, "x86 has no 64 bit registers")
	_, ok = x86.RegisterName(registers.RegisterKind_GP32, 8)
	assert.False(t, ok)
	_, ok = x86.RegisterName(registers.RegisterKind_GP32, registers.VirtId(0))
	assert.False(t, ok, "virtual ids never name physical registers")
}

func TestCucarachaConventions(t *testing.T) {
	d, err := Lookup(Arch_Cucaracha)
	require.NoError(t, err)

	name, ok := d.RegisterName(registers.RegisterKind_State, 3)
	assert.True(t, ok)
	assert.Equal(t, "lr", name)

	name, ok = d.RegisterName(registers.RegisterKind_GP32, 7)
	assert.True(t, ok)
	assert.Equal(t, "r7", name)

	mnemonic, ok := d.Mnemonic(CucarachaInst_MovImm16L)
	assert.True(t, ok)
	assert.Equal(t, "MOVIMM16L", mnemonic)
	assert.Equal(t, "#", d.ImmediatePrefix)
}

func TestLookup(t *testing.T) {
	_, err := Lookup(Arch_Unknown)
	assert.ErrorIs(t, err, ErrUnknownArch)

	id, err := ParseArchId("X64")
	require.NoError(t, err)
	assert.Equal(t, Arch_X64, id)

	_, err = ParseArchId("arm64")
	assert.ErrorIs(t, err, ErrUnknownArch)

	assert.Len(t, All(), 3)
	assert.Equal(t, Arch_X86, All()[0].Id)
}

func TestExplainX86Immediate(t *testing.T) {
	explanation, ok := explainX86Immediate(X86Inst_Pshufd, 0x1B)
	assert.True(t, ok)
	assert.Equal(t, "0|1|2|3", explanation)

	explanation, ok = explainX86Immediate(X86Inst_Cmpps, 4)
	assert.True(t, ok)
	assert.Equal(t, "neq", explanation)

	explanation, ok = explainX86Immediate(X86Inst_Roundps, 0x9)
	assert.True(t, ok)
	assert.Equal(t, "down|inexact", explanation)

	_, ok = explainX86Immediate(X86Inst_Mov, 1)
	assert.False(t, ok)
	_, ok = explainX86Immediate(X86Inst_Pshufd, 300)
	assert.False(t, ok)
}

func TestDocumentation(t *testing.T) {
	d, err := Lookup(Arch_Cucaracha)
	require.NoError(t, err)

	doc := d.Documentation(0)
	assert.Contains(t, doc, "cucaracha: Cucaracha toy CPU")
	assert.Contains(t, doc, " - state (i32, CPU state registers): pc sp cpsr lr")
	assert.Contains(t, doc, " - [  3] MOVIMM16L")
}
