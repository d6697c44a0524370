package emitter

import (
	"strings"
	"testing"

	"github.com/Manu343726/mclog/pkg/logging"
	"github.com/Manu343726/mclog/pkg/mc/arch"
	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/Manu343726/mclog/pkg/mc/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCodeHolderUnknownArch(t *testing.T) {
	_, err := NewCodeHolder(arch.Arch_Unknown)
	assert.ErrorIs(t, err, arch.ErrUnknownArch)
}

func TestLabels(t *testing.T) {
	code, err := NewCodeHolder(arch.Arch_X64)
	require.NoError(t, err)

	anonymous := code.NewLabel()
	main, err := code.NewNamedLabel("main")
	require.NoError(t, err)
	loop, err := code.NewLocalLabel(main, "loop")
	require.NoError(t, err)

	assert.Equal(t, uint32(0), anonymous)
	assert.Equal(t, uint32(1), main)
	assert.Equal(t, uint32(2), loop)
	assert.Equal(t, 3, code.LabelCount())

	_, err = code.NewNamedLabel("main")
	assert.ErrorIs(t, err, ErrDuplicateLabel)

	// the same local name is fine under another parent
	other, err := code.NewNamedLabel("other")
	require.NoError(t, err)
	_, err = code.NewLocalLabel(other, "loop")
	assert.NoError(t, err)

	_, err = code.NewLocalLabel(99, "x")
	assert.ErrorIs(t, err, ErrUnknownLabel)

	entry, ok := code.LabelByName("main")
	require.True(t, ok)
	assert.Equal(t, main, entry.Id)

	ids := []uint32{}
	for _, label := range code.Labels() {
		ids = append(ids, label.Id)
	}
	assert.Equal(t, []uint32{0, 1, 2, 3, 4}, ids)

	info, ok := code.LabelInfo(loop)
	require.True(t, ok)
	assert.Equal(t, logging.LabelInfo{Name: "loop", ParentId: main, HasParent: true}, info)

	_, ok = code.LabelInfo(42)
	assert.False(t, ok)
}

func TestBindLabel(t *testing.T) {
	code, err := NewCodeHolder(arch.Arch_X64)
	require.NoError(t, err)

	label := code.NewLabel()

	require.NoError(t, code.BindLabel(label, 16))
	assert.ErrorIs(t, code.BindLabel(label, 32), ErrLabelAlreadyBound)
	assert.ErrorIs(t, code.BindLabel(7, 0), ErrUnknownLabel)

	entry, _ := code.Label(label)
	assert.True(t, entry.Bound)
	assert.Equal(t, 16, entry.Offset)
}

func TestVirtRegs(t *testing.T) {
	code, err := NewCodeHolder(arch.Arch_X64)
	require.NoError(t, err)

	first := code.NewVirtReg(registers.RegisterKind_GP64, types.TypeId_I64, "")
	second := code.NewVirtReg(registers.RegisterKind_Vec128, types.Vector(types.TypeId_F32, 4), "acc")

	assert.Equal(t, registers.VirtId(0), first)
	assert.Equal(t, registers.VirtId(1), second)
	assert.Equal(t, 2, code.VirtRegCount())

	require.NoError(t, code.AssignPhys(second, 3))
	assert.ErrorIs(t, code.AssignPhys(registers.VirtId(9), 0), ErrUnknownVirtReg)
	assert.ErrorIs(t, code.AssignPhys(0, 0), ErrUnknownVirtReg)

	info, ok := code.VirtRegInfo(second)
	require.True(t, ok)
	assert.Equal(t, logging.VirtRegInfo{
		Name:    "acc",
		Kind:    registers.RegisterKind_Vec128,
		TypeId:  types.Vector(types.TypeId_F32, 4),
		PhysId:  3,
		HasPhys: true,
	}, info)
}

func TestAssemblerLogsEverything(t *testing.T) {
	code, err := NewCodeHolder(arch.Arch_X64)
	require.NoError(t, err)

	sink := &logging.BufferSink{}
	logger := logging.New(sink)
	logger.SetIndentation(logging.IndentationType_Code, 2)

	a := NewAssembler(code, logger)

	entry, err := code.NewNamedLabel("entry")
	require.NoError(t, err)
	counter := code.NewVirtReg(registers.RegisterKind_GP32, types.TypeId_I32, "")

	require.NoError(t, a.Bind(entry))
	a.Comment("zero the counter")
	require.NoError(t, a.Emit(
		instructions.NewInstruction(arch.X86Inst_Xor, instructions.RegOperand(registers.RegisterKind_GP32, counter), instructions.RegOperand(registers.RegisterKind_GP32, counter)),
		Encoding{Bytes: []byte{0x31, 0xC0}},
	))
	require.NoError(t, a.Align(4))
	require.NoError(t, a.Emit(instructions.NewInstruction(arch.X86Inst_Ret), Encoding{Bytes: []byte{0xC3}, Comment: "done"}))
	require.NoError(t, a.Embed([]byte{0xDE, 0xAD}))

	assert.Equal(t, []byte{0x31, 0xC0, 0, 0, 0xC3, 0xDE, 0xAD}, a.Bytes())
	assert.Equal(t, 7, a.Offset())
	assert.NoError(t, a.LogErr())

	lines := strings.Split(sink.String(), "\n")
	assert.Equal(t, []string{
		"entry:",
		"; zero the counter",
		"  xor %0, %0",
		"  align 4 (code)",
		"  ret" + strings.Repeat(" ", logging.MaxInstLineSize-len("  ret")) + "; done",
		"db DEAD",
		"",
	}, lines)
}

func TestAssemblerWithoutLogger(t *testing.T) {
	code, err := NewCodeHolder(arch.Arch_Cucaracha)
	require.NoError(t, err)

	a := NewAssembler(code, nil)
	label := code.NewLabel()

	require.NoError(t, a.Bind(label))
	require.NoError(t, a.Emit(instructions.NewInstruction(arch.CucarachaInst_Nop), Encoding{Bytes: []byte{0, 0, 0, 0}}))
	a.Comment("ignored")

	assert.Equal(t, 4, a.Offset())
	assert.Nil(t, a.Logger())
}

func TestAssemblerKeepsEmittingWhenLoggingFails(t *testing.T) {
	code, err := NewCodeHolder(arch.Arch_X64)
	require.NoError(t, err)

	sink := &logging.BufferSink{Limit: 2}
	a := NewAssembler(code, logging.New(sink))
	label := code.NewLabel()

	require.NoError(t, a.Emit(instructions.NewInstruction(arch.X86Inst_Nop), Encoding{Bytes: []byte{0x90}}))
	assert.ErrorIs(t, a.LogErr(), logging.ErrOutOfMemory)
	assert.Equal(t, 1, a.Offset())

	a.ResetLogErr()
	require.NoError(t, a.Bind(label))
	assert.ErrorIs(t, a.LogErr(), logging.ErrOutOfMemory)

	entry, ok := code.Label(label)
	require.True(t, ok)
	assert.True(t, entry.Bound)
	assert.Equal(t, 1, entry.Offset)

	require.NoError(t, a.Align(4))
	require.NoError(t, a.Embed([]byte{0xCC}))
	a.Comment("still going")

	assert.Equal(t, []byte{0x90, 0, 0, 0, 0xCC}, a.Bytes())
	assert.Empty(t, sink.String())
	assert.ErrorIs(t, a.Bind(label), ErrLabelAlreadyBound)
}

func TestAssemblerRejectsInvalidInput(t *testing.T) {
	code, err := NewCodeHolder(arch.Arch_X64)
	require.NoError(t, err)

	a := NewAssembler(code, logging.New(nil))

	assert.ErrorIs(t, a.Align(3), ErrInvalidAlignment)
	assert.ErrorIs(t, a.Emit(instructions.NewInstruction(arch.X86Inst_Nop), Encoding{Bytes: []byte{0x90}, ImmSize: 2}), ErrInvalidEncoding)
	assert.ErrorIs(t, a.Emit(instructions.NewInstruction(arch.X86Inst_Nop, make([]instructions.Operand, 7)...), Encoding{}), ErrInvalidEncoding)
	assert.Zero(t, a.Offset())
}
