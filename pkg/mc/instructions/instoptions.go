package instructions

import "strings"

// Instruction options (prefixes and encoding hints) attached to an instruction by the emitter
type InstOptions uint32

const (
	InstOption_None InstOptions = 0
	// Lock prefix
	InstOption_Lock InstOptions = 1 << (iota - 1)
	// Rep prefix
	InstOption_Rep
	// Repne prefix
	InstOption_Repne
	// Force short jump encoding
	InstOption_Short
	// Force long jump encoding
	InstOption_Long
	// Force VEX encoding
	InstOption_Vex
	// Force EVEX encoding
	InstOption_Evex
)

var instOptionNames = []struct {
	option InstOptions
	name   string
}{
	{InstOption_Lock, "lock"},
	{InstOption_Rep, "rep"},
	{InstOption_Repne, "repne"},
	{InstOption_Short, "short"},
	{InstOption_Long, "long"},
	{InstOption_Vex, "vex"},
	{InstOption_Evex, "evex"},
}

func (o InstOptions) Has(option InstOptions) bool {
	return o&option != 0
}

func (o InstOptions) String() string {
	names := make([]string, 0, len(instOptionNames))

	for _, entry := range instOptionNames {
		if o.Has(entry.option) {
			names = append(names, entry.name)
		}
	}

	if len(names) == 0 {
		return "none"
	}

	return strings.Join(names, "|")
}

// Returns the option with the given name, InstOption_None if there's no such option
func ParseInstOption(name string) InstOptions {
	for _, entry := range instOptionNames {
		if entry.name == name {
			return entry.option
		}
	}

	return InstOption_None
}
