package builder

import (
	"strings"

	"github.com/Manu343726/mclog/pkg/internal/layout"
	"github.com/Manu343726/mclog/pkg/logging"
	"github.com/Manu343726/mclog/pkg/mc/emitter"
	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/mc/types"
	"github.com/Manu343726/mclog/pkg/utils"
)

// Records code as a sequence of nodes instead of emitting it right away, so passes can inspect and
// rewrite it before it is serialized
type Builder struct {
	code  *emitter.CodeHolder
	nodes []Node
}

func NewBuilder(code *emitter.CodeHolder) *Builder {
	return &Builder{code: code}
}

func (b *Builder) Code() *emitter.CodeHolder {
	return b.code
}

func (b *Builder) Nodes() []Node {
	return b.nodes
}

// Appends a node and returns it
func (b *Builder) Add(node Node) Node {
	b.nodes = append(b.nodes, node)
	return node
}

func (b *Builder) Inst(inst *instructions.Instruction) *InstNode {
	node := &InstNode{Inst: *inst}
	b.Add(node)
	return node
}

func (b *Builder) Label(labelId uint32) *LabelNode {
	node := &LabelNode{LabelId: labelId}
	b.Add(node)
	return node
}

func (b *Builder) Align(mode AlignMode, alignment uint32) *AlignNode {
	node := &AlignNode{Mode: mode, Alignment: alignment}
	b.Add(node)
	return node
}

func (b *Builder) Embed(data []byte) *EmbedDataNode {
	node := &EmbedDataNode{Data: data}
	b.Add(node)
	return node
}

func (b *Builder) Comment(text string) *CommentNode {
	node := &CommentNode{Text: text}
	b.Add(node)
	return node
}

func (b *Builder) Func(labelId uint32, ret types.TypeId, args ...types.TypeId) *FuncNode {
	node := &FuncNode{LabelId: labelId, Args: args, Ret: ret}
	b.Add(node)
	return node
}

func (b *Builder) Ret(operands ...instructions.Operand) *FuncRetNode {
	node := &FuncRetNode{Operands: operands}
	b.Add(node)
	return node
}

func (b *Builder) Sentinel() *SentinelNode {
	node := &SentinelNode{}
	b.Add(node)
	return node
}

func indentationOf(node Node) logging.IndentationType {
	switch node.Type() {
	case NodeType_Label, NodeType_Func:
		return logging.IndentationType_Label
	case NodeType_Comment:
		return logging.IndentationType_Comment
	}

	return logging.IndentationType_Code
}

// Writes one line per node to the logger, stopping at the first failure
func (b *Builder) Dump(logger *logging.Logger) error {
	for _, node := range b.nodes {
		if err := b.dumpNode(logger, node); err != nil {
			return err
		}
	}

	return nil
}

func (b *Builder) dumpNode(logger *logging.Logger, node Node) error {
	var text strings.Builder
	text.WriteString(strings.Repeat(" ", int(logger.Indentation(indentationOf(node)))))

	if err := FormatNode(&text, logger.Flags(), b.code, b.code.Arch(), node); err != nil {
		return err
	}

	line := layout.Line{
		Text:    text.String(),
		Comment: node.Base().InlineComment,
	}

	if inst, isInst := node.(*InstNode); isInst && logger.HasFlag(logging.FormatFlag_MachineCode) {
		line.Binary = inst.Binary
		line.DispSize = inst.DispSize
		line.ImmSize = inst.ImmSize
	}

	var sb strings.Builder
	if err := layout.Format(&sb, &line); err != nil {
		return utils.MakeError(logging.ErrInvalidArgument, "node %v: %v", node.Type(), err)
	}

	return logger.Log(sb.String())
}
