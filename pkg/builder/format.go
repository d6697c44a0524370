package builder

import (
	"fmt"
	"strings"

	"github.com/Manu343726/mclog/pkg/logging"
	"github.com/Manu343726/mclog/pkg/mc/arch"
	"github.com/Manu343726/mclog/pkg/utils"
)

// Appends the textual form of a node. With FormatFlag_Positions the node position is written first
// as "<%05d> ", with FormatFlag_Annotations a non empty annotation is appended as " ; <annotation>".
// The builder is left untouched on error
func FormatNode(sb *strings.Builder, flags logging.FormatFlags, emitter logging.Emitter, archId arch.ArchId, node Node) error {
	var staging strings.Builder
	base := node.Base()

	if flags&logging.FormatFlag_Positions != 0 {
		fmt.Fprintf(&staging, "<%05d> ", base.Position)
	}

	if err := formatNodeBody(&staging, flags, emitter, archId, node); err != nil {
		return err
	}

	if flags&logging.FormatFlag_Annotations != 0 && base.Annotation != "" {
		staging.WriteString(" ; ")
		staging.WriteString(base.Annotation)
	}

	sb.WriteString(staging.String())
	return nil
}

func formatNodeBody(sb *strings.Builder, flags logging.FormatFlags, emitter logging.Emitter, archId arch.ArchId, node Node) error {
	switch n := node.(type) {
	case *InstNode:
		return logging.FormatInstruction(sb, flags, emitter, archId, n.Inst.BaseInst, n.Inst.Operands)
	case *LabelNode:
		if err := logging.FormatLabel(sb, flags, emitter, n.LabelId); err != nil {
			return err
		}

		sb.WriteString(":")
	case *AlignNode:
		logging.FormatAlign(sb, n.Mode, n.Alignment)
	case *EmbedDataNode:
		fmt.Fprintf(sb, "embed.data %d", len(n.Data))
	case *CommentNode:
		sb.WriteString("; ")
		sb.WriteString(n.Text)
	case *SentinelNode:
		sb.WriteString("[end]")
	case *FuncNode:
		return formatFunc(sb, flags, emitter, n)
	case *FuncRetNode:
		sb.WriteString("[ret]")

		for i := range n.Operands {
			if i == 0 {
				sb.WriteString(" ")
			} else {
				sb.WriteString(", ")
			}

			if err := logging.FormatOperand(sb, flags, emitter, archId, n.Operands[i]); err != nil {
				return err
			}
		}
	case *UserNode:
		fmt.Fprintf(sb, "[UserNode:%d]", n.UserType)
	default:
		return utils.MakeError(ErrUnknownNode, "node type %v", node.Type())
	}

	return nil
}

func formatFunc(sb *strings.Builder, flags logging.FormatFlags, emitter logging.Emitter, n *FuncNode) error {
	if err := logging.FormatLabel(sb, flags, emitter, n.LabelId); err != nil {
		return err
	}

	sb.WriteString(": func(")

	for i, arg := range n.Args {
		if i > 0 {
			sb.WriteString(", ")
		}

		if err := logging.FormatTypeId(sb, arg); err != nil {
			return err
		}
	}

	sb.WriteString(") -> ")
	return logging.FormatTypeId(sb, n.Ret)
}
