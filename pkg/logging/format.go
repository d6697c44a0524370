package logging

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Manu343726/mclog/pkg/mc/arch"
	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/Manu343726/mclog/pkg/mc/types"
	"github.com/Manu343726/mclog/pkg/utils"
)

// Local labels deeper than this are written without their remaining ancestors
const maxLabelDepth = 32

var memorySizeKeywords = map[int]string{
	1:  "byte",
	2:  "word",
	4:  "dword",
	8:  "qword",
	10: "tword",
	16: "xmmword",
	32: "ymmword",
	64: "zmmword",
}

var instOptionPrefixes = []struct {
	option instructions.InstOptions
	prefix string
}{
	{instructions.InstOption_Lock, "lock "},
	{instructions.InstOption_Rep, "rep "},
	{instructions.InstOption_Repne, "repne "},
	{instructions.InstOption_Short, "short "},
	{instructions.InstOption_Long, "long "},
	{instructions.InstOption_Vex, "{vex} "},
	{instructions.InstOption_Evex, "{evex} "},
}

func lookupArch(archId arch.ArchId) *arch.Descriptor {
	d, err := arch.Lookup(archId)
	if err != nil {
		return nil
	}

	return d
}

// Appends the textual name of a register.
//
// Physical registers are named by the architecture register file. Virtual registers are named
// after their physical assignment or their name if the emitter knows them, "%<index>" otherwise.
// With FormatFlag_RegCasts a virtual register used as a kind different from the one it was
// created with gets a "@<kind>" suffix.
func FormatRegister(sb *strings.Builder, flags FormatFlags, emitter Emitter, archId arch.ArchId, kind registers.RegisterKind, id uint32) error {
	formatRegister(sb, flags, emitter, lookupArch(archId), kind, id)
	return nil
}

func formatRegister(sb *strings.Builder, flags FormatFlags, emitter Emitter, d *arch.Descriptor, kind registers.RegisterKind, id uint32) {
	if !registers.IsVirtId(id) {
		if d != nil {
			if name, ok := d.RegisterName(kind, id); ok {
				sb.WriteString(name)
				return
			}
		}

		fmt.Fprintf(sb, "<Reg-%v>?%d", kind, id)
		return
	}

	if emitter != nil {
		if info, ok := emitter.VirtRegInfo(id); ok {
			name := ""

			if info.HasPhys && d != nil {
				name, _ = d.RegisterName(kind, info.PhysId)
			}

			if name == "" {
				name = info.Name
			}

			if name == "" {
				name = "%" + strconv.FormatUint(uint64(registers.VirtIndex(id)), 10)
			}

			sb.WriteString(name)

			if flags&FormatFlag_RegCasts != 0 && info.Kind != kind {
				sb.WriteString("@")
				sb.WriteString(kind.String())
			}

			return
		}
	}

	fmt.Fprintf(sb, "%%%d", registers.VirtIndex(id))
}

// Appends the textual name of a label: its name (prefixed by its parents for local labels),
// "L<id>" for anonymous labels or when there's no emitter, "<InvalidLabel:<id>>" if the emitter
// does not know the label
func FormatLabel(sb *strings.Builder, flags FormatFlags, emitter Emitter, labelId uint32) error {
	formatLabel(sb, emitter, labelId, maxLabelDepth)
	return nil
}

func formatLabel(sb *strings.Builder, emitter Emitter, labelId uint32, depth int) {
	if emitter == nil {
		fmt.Fprintf(sb, "L%d", labelId)
		return
	}

	info, ok := emitter.LabelInfo(labelId)
	if !ok {
		fmt.Fprintf(sb, "<InvalidLabel:%d>", labelId)
		return
	}

	if info.Name == "" {
		fmt.Fprintf(sb, "L%d", labelId)
		return
	}

	if info.HasParent && depth > 0 {
		formatLabel(sb, emitter, info.ParentId, depth-1)
		sb.WriteString(".")
	}

	sb.WriteString(info.Name)
}

// Appends the textual form of an operand
func FormatOperand(sb *strings.Builder, flags FormatFlags, emitter Emitter, archId arch.ArchId, op instructions.Operand) error {
	var staging strings.Builder

	if err := formatOperand(&staging, flags, emitter, lookupArch(archId), instructions.InstId_None, &op); err != nil {
		return err
	}

	sb.WriteString(staging.String())
	return nil
}

func formatOperand(sb *strings.Builder, flags FormatFlags, emitter Emitter, d *arch.Descriptor, instId instructions.InstId, op *instructions.Operand) error {
	switch op.Kind() {
	case instructions.OperandKind_Register:
		reg := op.Reg()
		formatRegister(sb, flags, emitter, d, reg.Kind, reg.Id)
	case instructions.OperandKind_Immediate:
		formatImmediate(sb, flags, d, instId, op.Imm())
	case instructions.OperandKind_Memory:
		mem := op.Mem()
		formatMemory(sb, flags, emitter, d, &mem)
	case instructions.OperandKind_Label:
		formatLabel(sb, emitter, op.Label(), maxLabelDepth)
	case instructions.OperandKind_None:
		sb.WriteString("<None>")
	default:
		return utils.MakeError(ErrInvalidArgument, "unknown operand kind %v", op.Kind())
	}

	return nil
}

func formatImmediate(sb *strings.Builder, flags FormatFlags, d *arch.Descriptor, instId instructions.InstId, value int64) {
	hex := flags&FormatFlag_HexImms != 0

	if d != nil {
		sb.WriteString(d.ImmediatePrefix)
	}

	if hex {
		sb.WriteString(utils.FormatIntHex(value))
	} else {
		sb.WriteString(strconv.FormatInt(value, 10))
	}

	if flags&FormatFlag_ExplainImms == 0 {
		return
	}

	explanation, ok := "", false
	if d != nil && d.ExplainImmediate != nil {
		explanation, ok = d.ExplainImmediate(instId, value)
	}

	if !ok {
		explanation = explainImmediate(value, hex)
	}

	sb.WriteString(" {")
	sb.WriteString(explanation)
	sb.WriteString("}")
}

// Generic explanation: the value in the other base, plus the character if it's printable ASCII
func explainImmediate(value int64, hex bool) string {
	var explanation string

	if hex {
		explanation = strconv.FormatInt(value, 10)
	} else {
		explanation = utils.FormatIntHex(value)
	}

	if value >= 0x20 && value < 0x7F {
		explanation += " " + strconv.QuoteRune(rune(value))
	}

	return explanation
}

func formatOffset(sb *strings.Builder, flags FormatFlags, magnitude uint64) {
	if flags&FormatFlag_HexOffsets != 0 {
		sb.WriteString("0x")
		sb.WriteString(strconv.FormatUint(magnitude, 16))
	} else {
		sb.WriteString(strconv.FormatUint(magnitude, 10))
	}
}

func formatMemory(sb *strings.Builder, flags FormatFlags, emitter Emitter, d *arch.Descriptor, mem *instructions.Mem) {
	if d == nil || d.MemorySyntax == arch.MemorySyntax_Intel {
		if keyword, ok := memorySizeKeywords[mem.Size]; ok {
			sb.WriteString(keyword)
			sb.WriteString(" ptr ")
		}
	}

	sb.WriteString("[")

	hasBase := true
	switch {
	case mem.BaseLabel != nil:
		formatLabel(sb, emitter, *mem.BaseLabel, maxLabelDepth)
	case mem.Base != nil:
		formatRegister(sb, flags, emitter, d, mem.Base.Kind, mem.Base.Id)
	default:
		hasBase = false
	}

	if mem.Index != nil {
		if hasBase {
			sb.WriteString("+")
		}

		formatRegister(sb, flags, emitter, d, mem.Index.Kind, mem.Index.Id)

		if mem.Shift != 0 {
			fmt.Fprintf(sb, "*%d", 1<<mem.Shift)
		}
	}

	switch {
	case mem.IsAbsolute():
		formatOffset(sb, flags, uint64(mem.Offset))
	case mem.Offset < 0:
		sb.WriteString("-")
		formatOffset(sb, flags, uint64(-mem.Offset))
	case mem.Offset > 0:
		sb.WriteString("+")
		formatOffset(sb, flags, uint64(mem.Offset))
	}

	sb.WriteString("]")
}

// Appends the textual form of an instruction: option prefixes (on architectures that spell them
// out), the mnemonic (or "[InstId=#<id>]" if the architecture does not know it) and the operands
// separated by ", ". The builder is left untouched on error
func FormatInstruction(sb *strings.Builder, flags FormatFlags, emitter Emitter, archId arch.ArchId, inst instructions.BaseInst, operands []instructions.Operand) error {
	if len(operands) > instructions.MaxOperands {
		return utils.MakeError(ErrInvalidArgument, "instruction has %v operands, at most %v are supported", len(operands), instructions.MaxOperands)
	}

	d := lookupArch(archId)

	var staging strings.Builder

	if d != nil && d.OptionPrefixes {
		for _, entry := range instOptionPrefixes {
			if inst.Options.Has(entry.option) {
				staging.WriteString(entry.prefix)
			}
		}
	}

	mnemonic, ok := "", false
	if d != nil {
		mnemonic, ok = d.Mnemonic(inst.Id)
	}

	if ok {
		staging.WriteString(mnemonic)
	} else {
		fmt.Fprintf(&staging, "[InstId=#%d]", inst.Id)
	}

	written := 0
	for i := range operands {
		if operands[i].Kind() == instructions.OperandKind_None {
			continue
		}

		if written == 0 {
			staging.WriteString(" ")
		} else {
			staging.WriteString(", ")
		}

		if err := formatOperand(&staging, flags, emitter, d, inst.Id, &operands[i]); err != nil {
			return err
		}

		written++
	}

	sb.WriteString(staging.String())
	return nil
}

// Appends the name of a value type, "unknown" for invalid type ids
func FormatTypeId(sb *strings.Builder, typeId types.TypeId) error {
	sb.WriteString(typeId.String())
	return nil
}
