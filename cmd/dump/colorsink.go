package dump

import (
	"strings"

	"github.com/Manu343726/mclog/pkg/logging"
	"github.com/fatih/color"
)

var (
	colorLabel    = color.New(color.FgBlue, color.Bold)
	colorMnemonic = color.New(color.FgYellow, color.Bold)
	colorPosition = color.New(color.FgCyan)
	colorComment  = color.New(color.FgHiBlack)
)

// Sink highlighting listings before forwarding them to another sink
type ColorSink struct {
	Out logging.Sink
}

func (s *ColorSink) Accept(p []byte) error {
	return s.Out.Accept([]byte(Colorize(string(p))))
}

// Highlights labels, mnemonics, node positions and comments of a listing
func Colorize(text string) string {
	var sb strings.Builder

	for _, line := range strings.SplitAfter(text, "\n") {
		body, hasNewline := strings.CutSuffix(line, "\n")
		sb.WriteString(colorizeLine(body))

		if hasNewline {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func isDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}

func colorizeLine(line string) string {
	code, comment := line, ""
	if i := strings.Index(line, "; "); i >= 0 {
		code, comment = line[:i], line[i:]
	}

	trimmed := strings.TrimLeft(code, " ")

	var sb strings.Builder
	sb.WriteString(code[:len(code)-len(trimmed)])

	if rest, found := strings.CutPrefix(trimmed, "<"); found {
		if position, after, ok := strings.Cut(rest, "> "); ok && isDigits(position) {
			sb.WriteString(colorPosition.Sprint("<" + position + ">"))
			sb.WriteString(" ")
			trimmed = after
		}
	}

	body := strings.TrimRight(trimmed, " ")
	padding := trimmed[len(body):]

	switch {
	case body == "":
	case strings.HasSuffix(body, ":") || strings.Contains(body, ": func("):
		sb.WriteString(colorLabel.Sprint(body))
	default:
		mnemonic, operands, hasOperands := strings.Cut(body, " ")
		sb.WriteString(colorMnemonic.Sprint(mnemonic))

		if hasOperands {
			sb.WriteString(" ")
			sb.WriteString(operands)
		}
	}

	sb.WriteString(padding)

	if comment != "" {
		sb.WriteString(colorComment.Sprint(comment))
	}

	return sb.String()
}
