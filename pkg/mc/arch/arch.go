package arch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/Manu343726/mclog/pkg/utils"
)

// Identifies an instruction set
type ArchId uint32

const (
	Arch_Unknown ArchId = iota
	Arch_X86
	Arch_X64
	Arch_Cucaracha

	// Number of architecture ids
	TOTAL_ARCHS
)

func (a ArchId) String() string {
	switch a {
	case Arch_X86:
		return "x86"
	case Arch_X64:
		return "x64"
	case Arch_Cucaracha:
		return "cucaracha"
	}

	return "unknown"
}

var ErrUnknownArch = errors.New("unknown architecture")

// Returns the architecture id given its name
func ParseArchId(name string) (ArchId, error) {
	for id := Arch_X86; id < TOTAL_ARCHS; id++ {
		if strings.EqualFold(id.String(), name) {
			return id, nil
		}
	}

	return Arch_Unknown, utils.MakeError(ErrUnknownArch, "'%v'", name)
}

// How memory operands are written
type MemorySyntax uint

const (
	// size ptr [base+index*scale+disp]
	MemorySyntax_Intel MemorySyntax = iota
	// [base+disp], no size keyword
	MemorySyntax_Plain
)

// Returns a short human readable explanation of an immediate operand of the given instruction, if there's any
type ImmExplainer func(id instructions.InstId, value int64) (string, bool)

// Contains all the naming and width conventions of an architecture
type Descriptor struct {
	Id          ArchId
	Description string
	// Size in bytes of a pointer
	PointerSize int
	// Register file
	Registers registers.RegisterClassesDescriptor
	// Instruction table
	OpCodes instructions.OpCodesDescriptor
	// Text written in front of immediate operands
	ImmediatePrefix string
	MemorySyntax    MemorySyntax
	// Whether instruction options are written as mnemonic prefixes
	OptionPrefixes bool
	// Instruction specific immediate explanations, may be nil
	ExplainImmediate ImmExplainer
}

// Returns the name of a physical register
func (d *Descriptor) RegisterName(kind registers.RegisterKind, id uint32) (string, bool) {
	if registers.IsVirtId(id) {
		return "", false
	}

	reg, err := d.Registers.Register(kind, int(id))
	if err != nil {
		return "", false
	}

	return reg.Name(), true
}

// Returns the mnemonic of an instruction
func (d *Descriptor) Mnemonic(id instructions.InstId) (string, bool) {
	return d.OpCodes.Mnemonic(id)
}

// Dumps the register file and instruction table as one multiline string
func (d *Descriptor) Documentation(leftpad int) string {
	leftpadStr := strings.Repeat(" ", leftpad)

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%v%v: %v\n", leftpadStr, d.Id, d.Description))
	builder.WriteString(fmt.Sprintf("%vpointer size (bytes): %v\n", leftpadStr, d.PointerSize))
	builder.WriteString(fmt.Sprintf("%vtotal instructions: %v\n\n", leftpadStr, d.OpCodes.TotalOpCodes()))

	builder.WriteString(leftpadStr)
	builder.WriteString("Registers:\n\n")

	for _, class := range d.Registers.AllClasses() {
		builder.WriteString(fmt.Sprintf("%v - %v (%v, %v): ", leftpadStr, class.Kind, class.ValueType, class.Description))
		builder.WriteString(utils.FormatSlice(class.AllRegisters(), " "))
		builder.WriteString("\n")
	}

	builder.WriteString("\n")
	builder.WriteString(leftpadStr)
	builder.WriteString("Instructions:\n\n")

	for _, id := range d.OpCodes.AllInstIds() {
		mnemonic, _ := d.OpCodes.Mnemonic(id)
		builder.WriteString(fmt.Sprintf("%v - [%3d] %v\n", leftpadStr, id, mnemonic))
	}

	return builder.String()
}

var descriptors = map[ArchId]*Descriptor{
	Arch_X86:       x86Descriptor(),
	Arch_X64:       x64Descriptor(),
	Arch_Cucaracha: cucarachaDescriptor(),
}

// Returns the descriptor of an architecture
func Lookup(id ArchId) (*Descriptor, error) {
	if d, ok := descriptors[id]; ok {
		return d, nil
	}

	return nil, utils.MakeError(ErrUnknownArch, "no descriptor for architecture id %d", uint32(id))
}

// Returns the descriptors of all supported architectures, sorted by id
func All() []*Descriptor {
	return utils.Map(utils.SortedKeys(descriptors), func(id ArchId) *Descriptor { return descriptors[id] })
}
