package logging

import (
	"fmt"
	"strings"

	"github.com/Manu343726/mclog/pkg/internal/layout"
	"github.com/Manu343726/mclog/pkg/mc/arch"
	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/utils"
)

const (
	MaxInstLineSize = layout.MaxInstLineSize
	MaxBinarySize   = layout.MaxBinarySize
	CommentColumn   = layout.CommentColumn
)

// One emitted instruction together with its encoding
type InstLine struct {
	Inst     instructions.BaseInst
	Operands []instructions.Operand
	// Encoded bytes, only dumped with FormatFlag_MachineCode
	Binary []byte
	// Number of displacement bytes inside Binary, masked as ".." in the dump
	DispSize int
	// Number of immediate bytes at the end of Binary
	ImmSize int
	Comment string
}

// Writes the indentation of the given type
func (l *Logger) indent(sb *strings.Builder, t IndentationType) {
	sb.WriteString(strings.Repeat(" ", int(l.Indentation(t))))
}

// Composes and logs one instruction line
func (l *Logger) LogInstruction(emitter Emitter, archId arch.ArchId, line *InstLine) error {
	var text strings.Builder
	l.indent(&text, IndentationType_Code)

	if err := FormatInstruction(&text, l.Flags(), emitter, archId, line.Inst, line.Operands); err != nil {
		return err
	}

	composed := layout.Line{
		Text:    text.String(),
		Comment: line.Comment,
	}

	if l.HasFlag(FormatFlag_MachineCode) {
		composed.Binary = line.Binary
		composed.DispSize = line.DispSize
		composed.ImmSize = line.ImmSize
	}

	return l.logLine(&composed)
}

// Logs a label definition line ("<label>:")
func (l *Logger) LogLabel(emitter Emitter, labelId uint32, comment string) error {
	var text strings.Builder
	l.indent(&text, IndentationType_Label)

	if err := FormatLabel(&text, l.Flags(), emitter, labelId); err != nil {
		return err
	}

	text.WriteString(":")

	return l.logLine(&layout.Line{Text: text.String(), Comment: comment})
}

// What kind of padding an align directive inserts
type AlignMode uint

const (
	AlignMode_Code AlignMode = iota
	AlignMode_Data
)

func (m AlignMode) String() string {
	if m == AlignMode_Data {
		return "data"
	}

	return "code"
}

// Appends the textual form of an align directive ("align 16 (code)")
func FormatAlign(sb *strings.Builder, mode AlignMode, alignment uint32) {
	fmt.Fprintf(sb, "align %d (%v)", alignment, mode)
}

// Logs an align directive at code indentation
func (l *Logger) LogAlign(mode AlignMode, alignment uint32) error {
	var text strings.Builder
	l.indent(&text, IndentationType_Code)
	FormatAlign(&text, mode, alignment)

	return l.logLine(&layout.Line{Text: text.String()})
}

// Logs a standalone comment line
func (l *Logger) LogComment(comment string) error {
	var text strings.Builder
	l.indent(&text, IndentationType_Comment)
	text.WriteString("; ")
	text.WriteString(comment)

	return l.logLine(&layout.Line{Text: text.String()})
}

func (l *Logger) logLine(line *layout.Line) error {
	var sb strings.Builder

	if err := layout.Format(&sb, line); err != nil {
		return utils.MakeError(ErrInvalidArgument, "%v", err)
	}

	return l.Log(sb.String())
}
