package builder

import (
	"github.com/Manu343726/mclog/pkg/logging"
	"github.com/Manu343726/mclog/pkg/mc/instructions"
	"github.com/Manu343726/mclog/pkg/mc/types"
)

// Represents the kind of node stored in a builder
type NodeType uint

const (
	NodeType_None NodeType = iota
	NodeType_Inst
	NodeType_Label
	NodeType_Align
	NodeType_EmbedData
	NodeType_Comment
	NodeType_Sentinel
	NodeType_Func
	NodeType_FuncRet

	// Node types at or above this one are defined by users
	NodeType_User NodeType = 32
)

func (t NodeType) String() string {
	switch t {
	case NodeType_None:
		return "none"
	case NodeType_Inst:
		return "inst"
	case NodeType_Label:
		return "label"
	case NodeType_Align:
		return "align"
	case NodeType_EmbedData:
		return "embed"
	case NodeType_Comment:
		return "comment"
	case NodeType_Sentinel:
		return "sentinel"
	case NodeType_Func:
		return "func"
	case NodeType_FuncRet:
		return "ret"
	}

	if t >= NodeType_User {
		return "user"
	}

	return "unknown"
}

// Data shared by all nodes
type NodeBase struct {
	// Position of the node in the source it was generated from
	Position uint32
	// Note left by the pass that created or lowered the node
	Annotation string
	// Comment written next to the node
	InlineComment string
}

func (n *NodeBase) Base() *NodeBase {
	return n
}

type Node interface {
	Type() NodeType
	Base() *NodeBase
}

// Instruction, optionally with its encoding
type InstNode struct {
	NodeBase
	Inst instructions.Instruction
	// Encoded bytes, may be empty
	Binary   []byte
	DispSize int
	ImmSize  int
}

func (*InstNode) Type() NodeType { return NodeType_Inst }

// Label bound at this point of the code
type LabelNode struct {
	NodeBase
	LabelId uint32
}

func (*LabelNode) Type() NodeType { return NodeType_Label }

// What kind of padding an align node inserts
type AlignMode = logging.AlignMode

const (
	AlignMode_Code = logging.AlignMode_Code
	AlignMode_Data = logging.AlignMode_Data
)

type AlignNode struct {
	NodeBase
	Mode      AlignMode
	Alignment uint32
}

func (*AlignNode) Type() NodeType { return NodeType_Align }

// Raw data embedded in the code
type EmbedDataNode struct {
	NodeBase
	Data []byte
}

func (*EmbedDataNode) Type() NodeType { return NodeType_EmbedData }

type CommentNode struct {
	NodeBase
	Text string
}

func (*CommentNode) Type() NodeType { return NodeType_Comment }

// Marks the end of a function body
type SentinelNode struct {
	NodeBase
}

func (*SentinelNode) Type() NodeType { return NodeType_Sentinel }

// Function entry: the label it is bound to plus its signature
type FuncNode struct {
	NodeBase
	LabelId uint32
	Args    []types.TypeId
	Ret     types.TypeId
}

func (*FuncNode) Type() NodeType { return NodeType_Func }

// Function return with the returned values
type FuncRetNode struct {
	NodeBase
	Operands []instructions.Operand
}

func (*FuncRetNode) Type() NodeType { return NodeType_FuncRet }

// Node with user defined semantics, rendered as an opaque marker
type UserNode struct {
	NodeBase
	UserType uint32
}

func (*UserNode) Type() NodeType { return NodeType_User }
