package logging

import (
	"math"
	"strings"

	"fortio.org/safecast"
	"github.com/Manu343726/mclog/pkg/utils"
)

// Independent display toggles consulted by the formatters
type FormatFlags uint32

const (
	FormatFlag_None FormatFlags = 0
	// Show also binary form of each logged instruction
	FormatFlag_MachineCode FormatFlags = 1 << (iota - 1)
	// Show a text explanation of some immediate values
	FormatFlag_ExplainImms
	// Use hexadecimal notation of immediate values
	FormatFlag_HexImms
	// Use hexadecimal notation of address offsets
	FormatFlag_HexOffsets
	// Show casts between virtual register types
	FormatFlag_RegCasts
	// Show positions associated with nodes
	FormatFlag_Positions
	// Annotate nodes that are lowered by passes
	FormatFlag_Annotations
	// Show an additional output from passes
	FormatFlag_DebugPasses
	// Show an additional output from the register allocator
	FormatFlag_DebugRA
)

var formatFlagNames = []struct {
	flag FormatFlags
	name string
}{
	{FormatFlag_MachineCode, "MachineCode"},
	{FormatFlag_ExplainImms, "ExplainImms"},
	{FormatFlag_HexImms, "HexImms"},
	{FormatFlag_HexOffsets, "HexOffsets"},
	{FormatFlag_RegCasts, "RegCasts"},
	{FormatFlag_Positions, "Positions"},
	{FormatFlag_Annotations, "Annotations"},
	{FormatFlag_DebugPasses, "DebugPasses"},
	{FormatFlag_DebugRA, "DebugRA"},
}

func (f FormatFlags) String() string {
	names := make([]string, 0, len(formatFlagNames))

	for _, entry := range formatFlagNames {
		if f&entry.flag != 0 {
			names = append(names, entry.name)
		}
	}

	if len(names) == 0 {
		return "None"
	}

	return strings.Join(names, "|")
}

// Returns the flag with the given name (case insensitive)
func ParseFormatFlag(name string) (FormatFlags, error) {
	for _, entry := range formatFlagNames {
		if strings.EqualFold(entry.name, name) {
			return entry.flag, nil
		}
	}

	return FormatFlag_None, utils.MakeError(ErrInvalidArgument, "unknown format flag '%v'", name)
}

// Selects which indentation width applies to a line
type IndentationType uint32

const (
	// Indentation used for instructions and directives
	IndentationType_Code IndentationType = iota
	// Indentation used for labels and function nodes
	IndentationType_Label
	// Indentation used for comments (not inline comments)
	IndentationType_Comment
	IndentationType_Reserved

	TOTAL_INDENTATION_TYPES
)

// Formatting options: a flags bitset plus one indentation width per indentation type.
//
// The zero value has no flags and zero indentation everywhere. Indexing with an indentation type
// outside of [0, TOTAL_INDENTATION_TYPES) is a programming error and panics.
type FormatOptions struct {
	flags       FormatFlags
	indentation [TOTAL_INDENTATION_TYPES]uint8
}

func (o *FormatOptions) Reset() {
	*o = FormatOptions{}
}

func (o FormatOptions) Flags() FormatFlags {
	return o.flags
}

// Checks whether any of the given flags is set
func (o FormatOptions) HasFlag(flag FormatFlags) bool {
	return o.flags&flag != 0
}

func (o *FormatOptions) SetFlags(flags FormatFlags) {
	o.flags = flags
}

func (o *FormatOptions) AddFlags(flags FormatFlags) {
	o.flags |= flags
}

func (o *FormatOptions) ClearFlags(flags FormatFlags) {
	o.flags &^= flags
}

func (o FormatOptions) Indentation(t IndentationType) uint32 {
	return uint32(o.indentation[t])
}

// Sets the indentation width of the given type. Widths above 255 saturate
func (o *FormatOptions) SetIndentation(t IndentationType, n uint32) {
	width, err := safecast.Conv[uint8](n)
	if err != nil {
		width = math.MaxUint8
	}

	o.indentation[t] = width
}

func (o *FormatOptions) ResetIndentation(t IndentationType) {
	o.indentation[t] = 0
}
