package logging

import (
	"strings"
	"testing"

	"github.com/Manu343726/mclog/pkg/mc/arch"
	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movEaxImm() *InstLine {
	return &InstLine{
		Inst: instructions.BaseInst{Id: arch.X86Inst_Mov},
		Operands: []instructions.Operand{
			instructions.RegOperand(registers.RegisterKind_GP32, 0),
			instructions.ImmOperand(42),
		},
		Binary:  []byte{0xB8, 0x2A, 0x00, 0x00, 0x00},
		ImmSize: 4,
	}
}

func TestLogInstructionWithoutMachineCode(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)

	require.NoError(t, logger.LogInstruction(nil, arch.Arch_X86, movEaxImm()))

	assert.Equal(t, "mov eax, 42\n", sink.String())
}

func TestLogInstructionMachineCodeColumn(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)
	logger.AddFlags(FormatFlag_MachineCode)

	require.NoError(t, logger.LogInstruction(nil, arch.Arch_X86, movEaxImm()))

	line := sink.String()
	assert.Equal(t, MaxInstLineSize, strings.Index(line, "; B82A000000"))
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestLogInstructionCommentColumns(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)

	line := movEaxImm()
	line.Comment = "answer"

	require.NoError(t, logger.LogInstruction(nil, arch.Arch_X86, line))
	assert.Equal(t, MaxInstLineSize, strings.Index(sink.String(), "; answer"))

	sink.Clear()
	logger.AddFlags(FormatFlag_MachineCode)

	require.NoError(t, logger.LogInstruction(nil, arch.Arch_X86, line))
	assert.Equal(t, MaxInstLineSize, strings.Index(sink.String(), "; B8"))
	assert.Equal(t, CommentColumn, strings.Index(sink.String(), "| answer"))
}

func TestLogInstructionInvalidSizes(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)
	logger.AddFlags(FormatFlag_MachineCode)

	line := movEaxImm()
	line.DispSize = 4

	assert.ErrorIs(t, logger.LogInstruction(nil, arch.Arch_X86, line), ErrInvalidArgument)
	assert.Zero(t, sink.Len())
}

func TestIndentation(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)
	emitter := newFakeEmitter()

	logger.SetIndentation(IndentationType_Label, 2)
	logger.SetIndentation(IndentationType_Comment, 4)

	require.NoError(t, logger.LogLabel(emitter, 1, ""))
	require.NoError(t, logger.LogInstruction(emitter, arch.Arch_X86, movEaxImm()))
	require.NoError(t, logger.LogComment("done"))

	assert.Equal(t, "  loop:\nmov eax, 42\n    ; done\n", sink.String())

	logger.ResetIndentation(IndentationType_Label)
	logger.SetIndentation(IndentationType_Code, 3)
	sink.Clear()

	require.NoError(t, logger.LogLabel(emitter, 1, ""))
	require.NoError(t, logger.LogInstruction(emitter, arch.Arch_X86, movEaxImm()))

	assert.Equal(t, "loop:\n   mov eax, 42\n", sink.String())
}

func TestLogLabelComment(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)

	require.NoError(t, logger.LogLabel(newFakeEmitter(), 2, "inner"))

	assert.Equal(t, "loop.body:"+strings.Repeat(" ", MaxInstLineSize-len("loop.body:"))+"; inner\n", sink.String())
}

func TestLogAlign(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)
	logger.SetIndentation(IndentationType_Code, 2)

	require.NoError(t, logger.LogAlign(AlignMode_Code, 16))
	require.NoError(t, logger.LogAlign(AlignMode_Data, 8))

	assert.Equal(t, "  align 16 (code)\n  align 8 (data)\n", sink.String())
}
