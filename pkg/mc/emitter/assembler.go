package emitter

import (
	"github.com/Manu343726/mclog/pkg/logging"
	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/utils"
)

// Encoded form of an instruction. The assembler does not encode by itself, the encoder hands the
// bytes over together with the instruction
type Encoding struct {
	Bytes []byte
	// Number of displacement bytes inside Bytes
	DispSize int
	// Number of immediate bytes at the end of Bytes
	ImmSize int
	// Inline comment written next to the instruction
	Comment string
}

// Appends encoded instructions to a code buffer and logs every emitted item if it has a logger.
// Logging failures never fail an emit operation, the last one is kept in LogErr
type Assembler struct {
	code   *CodeHolder
	logger *logging.Logger
	buffer []byte
	logErr error
}

// Returns an assembler emitting into the given code holder. The logger may be nil
func NewAssembler(code *CodeHolder, logger *logging.Logger) *Assembler {
	return &Assembler{
		code:   code,
		logger: logger,
	}
}

func (a *Assembler) Code() *CodeHolder {
	return a.code
}

func (a *Assembler) Logger() *logging.Logger {
	return a.logger
}

func (a *Assembler) SetLogger(logger *logging.Logger) {
	a.logger = logger
}

// Returns the last error reported by the logger, nil if every log call succeeded
func (a *Assembler) LogErr() error {
	return a.logErr
}

// Clears the recorded logging error
func (a *Assembler) ResetLogErr() {
	a.logErr = nil
}

// Runs a log call if there's a logger, recording its failure instead of returning it
func (a *Assembler) log(fn func(logger *logging.Logger) error) {
	if a.logger == nil {
		return
	}

	if err := fn(a.logger); err != nil {
		a.logErr = err
	}
}

// Current offset in the code buffer
func (a *Assembler) Offset() int {
	return len(a.buffer)
}

func (a *Assembler) Bytes() []byte {
	return a.buffer
}

// Binds the label to the current offset
func (a *Assembler) Bind(label uint32) error {
	if err := a.code.BindLabel(label, a.Offset()); err != nil {
		return err
	}

	a.log(func(logger *logging.Logger) error {
		return logger.LogLabel(a.code, label, "")
	})

	return nil
}

// Appends an encoded instruction
func (a *Assembler) Emit(inst *instructions.Instruction, encoding Encoding) error {
	if len(inst.Operands) > instructions.MaxOperands {
		return utils.MakeError(ErrInvalidEncoding, "instruction has %v operands, at most %v are supported", len(inst.Operands), instructions.MaxOperands)
	}

	if encoding.DispSize < 0 || encoding.ImmSize < 0 || encoding.DispSize+encoding.ImmSize > len(encoding.Bytes) {
		return utils.MakeError(ErrInvalidEncoding, "%v displacement and %v immediate bytes do not fit in %v bytes", encoding.DispSize, encoding.ImmSize, len(encoding.Bytes))
	}

	a.buffer = append(a.buffer, encoding.Bytes...)

	a.log(func(logger *logging.Logger) error {
		return logger.LogInstruction(a.code, a.code.Arch(), &logging.InstLine{
			Inst:     inst.BaseInst,
			Operands: inst.Operands,
			Binary:   encoding.Bytes,
			DispSize: encoding.DispSize,
			ImmSize:  encoding.ImmSize,
			Comment:  encoding.Comment,
		})
	})

	return nil
}

// Appends raw data
func (a *Assembler) Embed(data []byte) error {
	a.buffer = append(a.buffer, data...)

	a.log(func(logger *logging.Logger) error {
		return logger.LogBinary(data)
	})

	return nil
}

// Pads the code buffer with zeros up to the next multiple of alignment, which must be a power of two
func (a *Assembler) Align(alignment int) error {
	if alignment <= 0 || alignment&(alignment-1) != 0 {
		return utils.MakeError(ErrInvalidAlignment, "%v is not a power of two", alignment)
	}

	padding := (alignment - a.Offset()%alignment) % alignment
	a.buffer = append(a.buffer, make([]byte, padding)...)

	a.log(func(logger *logging.Logger) error {
		return logger.LogAlign(logging.AlignMode_Code, uint32(alignment))
	})

	return nil
}

// Logs a standalone comment. Comments never reach the code buffer
func (a *Assembler) Comment(text string) {
	a.log(func(logger *logging.Logger) error {
		return logger.LogComment(text)
	})
}
