package instructions

// Maximum number of operands an instruction can have
const MaxOperands = 6

// Instruction id plus the options it was emitted with
type BaseInst struct {
	Id      InstId
	Options InstOptions
}

// Stores an instruction and its operands as handed over by the emitter
type Instruction struct {
	BaseInst
	Operands []Operand
}

func NewInstruction(id InstId, operands ...Operand) *Instruction {
	return &Instruction{
		BaseInst: BaseInst{Id: id},
		Operands: operands,
	}
}

// Returns a copy of the instruction with the given options added
func (i Instruction) WithOptions(options InstOptions) *Instruction {
	i.Options |= options
	return &i
}
