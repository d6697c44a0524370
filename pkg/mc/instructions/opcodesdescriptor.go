package instructions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Manu343726/mclog/pkg/utils"
)

// Identifies an instruction within the instruction table of an architecture. Zero is reserved for "no instruction"
type InstId uint32

const InstId_None InstId = 0

var ErrInvalidOpCode error = errors.New("invalid instruction opcode")

// Returns information about the instructions implemented by an architecture
type OpCodesDescriptor struct {
	mnemonics       map[InstId]string
	mnemonicsToInst map[string]InstId
}

// Number of instructions implemented
func (d *OpCodesDescriptor) TotalOpCodes() int {
	return len(d.mnemonics)
}

// Returns all instruction ids in ascending order
func (d *OpCodesDescriptor) AllInstIds() []InstId {
	return utils.SortedKeys(d.mnemonics)
}

// Returns the mnemonic string representation of the instruction
func (d *OpCodesDescriptor) Mnemonic(id InstId) (string, bool) {
	mnemonic, ok := d.mnemonics[id]
	return mnemonic, ok
}

// Returns the instruction id corresponding to the given mnemonic. Mnemonics are matched case insensitively
func (d *OpCodesDescriptor) ParseInstId(mnemonic string) (InstId, error) {
	if id, hasOpCode := d.mnemonicsToInst[strings.ToLower(mnemonic)]; hasOpCode {
		return id, nil
	} else {
		return InstId_None, utils.MakeError(ErrInvalidOpCode, "'%v'", mnemonic)
	}
}

// Initializes an opcodes descriptor with all the instructions in the given id -> mnemonic map
func NewOpCodesDescriptor(mnemonics map[InstId]string) OpCodesDescriptor {
	if _, hasNone := mnemonics[InstId_None]; hasNone {
		panic("instruction id 0 is reserved, start the instruction table at 1")
	}

	lowered := make(map[InstId]string, len(mnemonics))
	for id, mnemonic := range mnemonics {
		lowered[id] = strings.ToLower(mnemonic)
	}

	d := OpCodesDescriptor{
		mnemonics:       mnemonics,
		mnemonicsToInst: utils.InvertedMap(lowered),
	}

	if len(d.mnemonicsToInst) != d.TotalOpCodes() {
		panic(fmt.Sprintf("duplicated mnemonics in instruction table (%v instructions, %v distinct mnemonics)", d.TotalOpCodes(), len(d.mnemonicsToInst)))
	}

	return d
}
