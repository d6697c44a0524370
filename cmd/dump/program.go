package dump

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Manu343726/mclog/pkg/builder"
	"github.com/Manu343726/mclog/pkg/mc/arch"
	"github.com/Manu343726/mclog/pkg/mc/emitter"
	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/mc/registers"
	"github.com/Manu343726/mclog/pkg/mc/types"
	"github.com/Manu343726/mclog/pkg/utils"
	"gopkg.in/yaml.v3"
)

var ErrInvalidProgram = errors.New("invalid program description")
var ErrUnsupportedFormat = errors.New("unsupported program description format")

// Description of a program to render: the code holder contents plus the node sequence
type Program struct {
	Arch   string      `yaml:"arch" toml:"arch"`
	Labels []LabelSpec `yaml:"labels" toml:"labels"`
	VRegs  []VRegSpec  `yaml:"vregs" toml:"vregs"`
	Nodes  []NodeSpec  `yaml:"nodes" toml:"nodes"`
}

// Label definition. Labels without name are anonymous and referenced as "L<id>"
type LabelSpec struct {
	Name   string `yaml:"name" toml:"name"`
	Parent string `yaml:"parent" toml:"parent"`
}

// Virtual register definition. Virtual registers are referenced as "%<name>" or "%<index>"
type VRegSpec struct {
	Name string `yaml:"name" toml:"name"`
	Kind string `yaml:"kind" toml:"kind"`
	Type string `yaml:"type" toml:"type"`
	// Index of the physical register assigned to it, if any
	Phys *uint32 `yaml:"phys" toml:"phys"`
}

// Instruction operand, exactly one of the fields must be set.
//
// Registers are written by name ("eax") or as virtual register references ("%counter"), optionally
// followed by "@<kind>" to use the register as another kind ("%counter@gp64").
type OperandSpec struct {
	Reg   string   `yaml:"reg" toml:"reg"`
	Imm   *int64   `yaml:"imm" toml:"imm"`
	Mem   *MemSpec `yaml:"mem" toml:"mem"`
	Label string   `yaml:"label" toml:"label"`
}

type MemSpec struct {
	Base   string `yaml:"base" toml:"base"`
	Label  string `yaml:"label" toml:"label"`
	Index  string `yaml:"index" toml:"index"`
	Shift  uint8  `yaml:"shift" toml:"shift"`
	Offset int64  `yaml:"offset" toml:"offset"`
	Size   int    `yaml:"size" toml:"size"`
}

// Node of the program. The kind of node is given by the key that is set: inst, label, align,
// embed, func, ret, sentinel or user. A node with none of them and a comment is a comment node,
// otherwise the comment is written next to the node
type NodeSpec struct {
	Inst     string        `yaml:"inst" toml:"inst"`
	Options  []string      `yaml:"options" toml:"options"`
	Operands []OperandSpec `yaml:"operands" toml:"operands"`
	Bytes    string        `yaml:"bytes" toml:"bytes"`
	DispSize int           `yaml:"disp_size" toml:"disp_size"`
	ImmSize  int           `yaml:"imm_size" toml:"imm_size"`

	Label string `yaml:"label" toml:"label"`

	Align uint32 `yaml:"align" toml:"align"`
	Mode  string `yaml:"mode" toml:"mode"`

	Embed string `yaml:"embed" toml:"embed"`

	Func    string   `yaml:"func" toml:"func"`
	Args    []string `yaml:"args" toml:"args"`
	Returns string   `yaml:"returns" toml:"returns"`

	Ret      bool    `yaml:"ret" toml:"ret"`
	Sentinel bool    `yaml:"sentinel" toml:"sentinel"`
	User     *uint32 `yaml:"user" toml:"user"`

	Comment    string `yaml:"comment" toml:"comment"`
	Position   uint32 `yaml:"position" toml:"position"`
	Annotation string `yaml:"annotation" toml:"annotation"`
}

// Parses a program description. The format is "yaml" or "toml"
func ParseProgram(data []byte, format string) (*Program, error) {
	program := &Program{}

	switch format {
	case "yaml":
		if err := yaml.Unmarshal(data, program); err != nil {
			return nil, utils.MakeError(ErrInvalidProgram, "%v", err)
		}
	case "toml":
		if _, err := toml.Decode(string(data), program); err != nil {
			return nil, utils.MakeError(ErrInvalidProgram, "%v", err)
		}
	default:
		return nil, utils.MakeError(ErrUnsupportedFormat, "'%v'", format)
	}

	return program, nil
}

// Returns the description format of a file given its extension
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	}

	return "", utils.MakeError(ErrUnsupportedFormat, "cannot tell the format of '%v'", path)
}

// Reads and parses a program description file
func LoadProgram(path string) (*Program, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return ParseProgram(data, format)
}

type programBuilder struct {
	arch   *arch.Descriptor
	code   *emitter.CodeHolder
	labels map[string]uint32
	vregs  map[string]uint32
}

// Creates the code holder and the node sequence the program describes
func (p *Program) Build() (*builder.Builder, error) {
	archId, err := arch.ParseArchId(p.Arch)
	if err != nil {
		return nil, err
	}

	descriptor, err := arch.Lookup(archId)
	if err != nil {
		return nil, err
	}

	code, err := emitter.NewCodeHolder(archId)
	if err != nil {
		return nil, err
	}

	b := &programBuilder{
		arch:   descriptor,
		code:   code,
		labels: make(map[string]uint32),
		vregs:  make(map[string]uint32),
	}

	if err := b.defineLabels(p.Labels); err != nil {
		return nil, err
	}

	if err := b.defineVRegs(p.VRegs); err != nil {
		return nil, err
	}

	result := builder.NewBuilder(code)

	for i := range p.Nodes {
		node, err := b.node(&p.Nodes[i])
		if err != nil {
			return nil, utils.MakeError(ErrInvalidProgram, "node %v: %v", i, err)
		}

		base := node.Base()
		base.Position = p.Nodes[i].Position
		base.Annotation = p.Nodes[i].Annotation

		if node.Type() != builder.NodeType_Comment {
			base.InlineComment = p.Nodes[i].Comment
		}

		result.Add(node)
	}

	return result, nil
}

// Returns the encoded bytes of all the instructions of the program, in order
func (p *Program) Encoding() ([]byte, error) {
	var encoding []byte

	for i, node := range p.Nodes {
		if node.Inst == "" {
			continue
		}

		bytes, err := decodeHex(node.Bytes)
		if err != nil {
			return nil, utils.MakeError(ErrInvalidProgram, "node %v: %v", i, err)
		}

		encoding = append(encoding, bytes...)
	}

	return encoding, nil
}

func (b *programBuilder) defineLabels(labels []LabelSpec) error {
	for _, label := range labels {
		if label.Name == "" {
			b.code.NewLabel()
			continue
		}

		if label.Parent == "" {
			id, err := b.code.NewNamedLabel(label.Name)
			if err != nil {
				return err
			}

			b.labels[label.Name] = id
			continue
		}

		parent, err := b.label(label.Parent)
		if err != nil {
			return err
		}

		id, err := b.code.NewLocalLabel(parent, label.Name)
		if err != nil {
			return err
		}

		b.labels[label.Parent+"."+label.Name] = id
	}

	return nil
}

func (b *programBuilder) defineVRegs(vregs []VRegSpec) error {
	for i, vreg := range vregs {
		kind, err := registers.ParseRegisterKind(vreg.Kind)
		if err != nil {
			return utils.MakeError(ErrInvalidProgram, "virtual register %v: %v", i, err)
		}

		typeId := types.TypeId_Void
		if vreg.Type != "" {
			if typeId, err = types.ParseTypeId(vreg.Type); err != nil {
				return utils.MakeError(ErrInvalidProgram, "virtual register %v: %v", i, err)
			}
		}

		id := b.code.NewVirtReg(kind, typeId, vreg.Name)

		if vreg.Phys != nil {
			if err := b.code.AssignPhys(id, *vreg.Phys); err != nil {
				return err
			}
		}

		if vreg.Name != "" {
			b.vregs[vreg.Name] = id
		}
	}

	return nil
}

func (b *programBuilder) label(ref string) (uint32, error) {
	if id, ok := b.labels[ref]; ok {
		return id, nil
	}

	if index, isAnonymous := strings.CutPrefix(ref, "L"); isAnonymous {
		if id, err := strconv.ParseUint(index, 10, 32); err == nil {
			if _, exists := b.code.Label(uint32(id)); exists {
				return uint32(id), nil
			}
		}
	}

	return 0, utils.MakeError(ErrInvalidProgram, "unknown label '%v'", ref)
}

func (b *programBuilder) reg(ref string) (instructions.Reg, error) {
	name, cast, hasCast := strings.Cut(ref, "@")

	var reg instructions.Reg

	if virtual, isVirtual := strings.CutPrefix(name, "%"); isVirtual {
		id, ok := b.vregs[virtual]

		if !ok {
			index, err := strconv.ParseUint(virtual, 10, 32)
			if err != nil {
				return reg, utils.MakeError(ErrInvalidProgram, "unknown virtual register '%v'", ref)
			}

			id = registers.VirtId(uint32(index))
		}

		vreg, ok := b.code.VirtReg(id)
		if !ok {
			return reg, utils.MakeError(ErrInvalidProgram, "unknown virtual register '%v'", ref)
		}

		reg = instructions.Reg{Kind: vreg.Kind, Id: id}
	} else {
		physical, err := b.arch.Registers.RegisterByName(name)
		if err != nil {
			return reg, utils.MakeError(ErrInvalidProgram, "%v", err)
		}

		reg = instructions.Reg{Kind: physical.Class.Kind, Id: uint32(physical.Index)}
	}

	if hasCast {
		kind, err := registers.ParseRegisterKind(cast)
		if err != nil {
			return reg, utils.MakeError(ErrInvalidProgram, "%v", err)
		}

		reg.Kind = kind
	}

	return reg, nil
}

func (b *programBuilder) operand(spec *OperandSpec) (instructions.Operand, error) {
	switch {
	case spec.Reg != "":
		reg, err := b.reg(spec.Reg)
		if err != nil {
			return instructions.Operand{}, err
		}

		return instructions.RegOperand(reg.Kind, reg.Id), nil
	case spec.Imm != nil:
		return instructions.ImmOperand(*spec.Imm), nil
	case spec.Mem != nil:
		return b.memory(spec.Mem)
	case spec.Label != "":
		id, err := b.label(spec.Label)
		if err != nil {
			return instructions.Operand{}, err
		}

		return instructions.LabelOperand(id), nil
	}

	return instructions.Operand{}, utils.MakeError(ErrInvalidProgram, "empty operand")
}

func (b *programBuilder) memory(spec *MemSpec) (instructions.Operand, error) {
	mem := instructions.Mem{
		Shift:  spec.Shift,
		Offset: spec.Offset,
		Size:   spec.Size,
	}

	if spec.Label != "" {
		id, err := b.label(spec.Label)
		if err != nil {
			return instructions.Operand{}, err
		}

		mem.BaseLabel = &id
	} else if spec.Base != "" {
		base, err := b.reg(spec.Base)
		if err != nil {
			return instructions.Operand{}, err
		}

		mem.Base = &base
	}

	if spec.Index != "" {
		index, err := b.reg(spec.Index)
		if err != nil {
			return instructions.Operand{}, err
		}

		mem.Index = &index
	}

	return instructions.MemOperand(mem), nil
}

func (b *programBuilder) operands(specs []OperandSpec) ([]instructions.Operand, error) {
	operands := make([]instructions.Operand, 0, len(specs))

	for i := range specs {
		operand, err := b.operand(&specs[i])
		if err != nil {
			return nil, err
		}

		operands = append(operands, operand)
	}

	return operands, nil
}

func (b *programBuilder) node(spec *NodeSpec) (builder.Node, error) {
	switch {
	case spec.Inst != "":
		return b.inst(spec)
	case spec.Label != "":
		id, err := b.label(spec.Label)
		if err != nil {
			return nil, err
		}

		return &builder.LabelNode{LabelId: id}, nil
	case spec.Align != 0:
		mode := builder.AlignMode_Code
		switch spec.Mode {
		case "", "code":
		case "data":
			mode = builder.AlignMode_Data
		default:
			return nil, utils.MakeError(ErrInvalidProgram, "unknown align mode '%v'", spec.Mode)
		}

		return &builder.AlignNode{Mode: mode, Alignment: spec.Align}, nil
	case spec.Embed != "":
		data, err := decodeHex(spec.Embed)
		if err != nil {
			return nil, err
		}

		return &builder.EmbedDataNode{Data: data}, nil
	case spec.Func != "":
		return b.function(spec)
	case spec.Ret:
		operands, err := b.operands(spec.Operands)
		if err != nil {
			return nil, err
		}

		return &builder.FuncRetNode{Operands: operands}, nil
	case spec.Sentinel:
		return &builder.SentinelNode{}, nil
	case spec.User != nil:
		return &builder.UserNode{UserType: *spec.User}, nil
	case spec.Comment != "":
		return &builder.CommentNode{Text: spec.Comment}, nil
	}

	return nil, utils.MakeError(ErrInvalidProgram, "node has no kind")
}

func (b *programBuilder) inst(spec *NodeSpec) (builder.Node, error) {
	id, err := b.arch.OpCodes.ParseInstId(spec.Inst)
	if err != nil {
		return nil, err
	}

	operands, err := b.operands(spec.Operands)
	if err != nil {
		return nil, err
	}

	inst := instructions.NewInstruction(id, operands...)

	for _, name := range spec.Options {
		option := instructions.ParseInstOption(name)
		if option == instructions.InstOption_None {
			return nil, utils.MakeError(ErrInvalidProgram, "unknown instruction option '%v'", name)
		}

		inst = inst.WithOptions(option)
	}

	binary, err := decodeHex(spec.Bytes)
	if err != nil {
		return nil, err
	}

	return &builder.InstNode{
		Inst:     *inst,
		Binary:   binary,
		DispSize: spec.DispSize,
		ImmSize:  spec.ImmSize,
	}, nil
}

func (b *programBuilder) function(spec *NodeSpec) (builder.Node, error) {
	label, err := b.label(spec.Func)
	if err != nil {
		return nil, err
	}

	args := make([]types.TypeId, 0, len(spec.Args))
	for _, arg := range spec.Args {
		typeId, err := types.ParseTypeId(arg)
		if err != nil {
			return nil, err
		}

		args = append(args, typeId)
	}

	ret := types.TypeId_Void
	if spec.Returns != "" {
		if ret, err = types.ParseTypeId(spec.Returns); err != nil {
			return nil, err
		}
	}

	return &builder.FuncNode{LabelId: label, Args: args, Ret: ret}, nil
}

func decodeHex(text string) ([]byte, error) {
	data, err := hex.DecodeString(strings.Join(strings.Fields(text), ""))
	if err != nil {
		return nil, utils.MakeError(ErrInvalidProgram, "bad hex bytes '%v': %v", text, err)
	}

	return data, nil
}
