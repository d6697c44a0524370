// Package layout composes fixed-column diagnostic lines: the instruction text, an optional hex dump
// of its machine code and an optional trailing comment.
package layout

import (
	"errors"
	"strings"

	"github.com/Manu343726/mclog/pkg/utils"
)

const (
	// Column where the machine code dump (or the comment if there's no dump) starts
	MaxInstLineSize = 44
	// Width of the machine code dump column
	MaxBinarySize = 26
	// Column where the comment starts when a machine code dump is present
	CommentColumn = MaxInstLineSize + len(separator) + MaxBinarySize

	separator        = "; "
	commentSeparator = "| "

	// Dumps wider than MaxBinarySize keep this many hex characters followed by the truncation marker
	truncatedBinarySize = 24
	truncationMarker    = "~"
)

var ErrInvalidLayout = errors.New("invalid line layout")

// One line to compose
type Line struct {
	// Already indented text of the line
	Text string
	// Encoded bytes of the instruction, nil if no dump must be shown
	Binary []byte
	// Number of displacement bytes, rendered as ".." pairs
	DispSize int
	// Number of immediate bytes at the end of Binary
	ImmSize int
	// Inline comment, empty if none
	Comment string
}

// Appends the composed line, terminated with a newline, to the builder. The builder is left
// untouched on error
func Format(sb *strings.Builder, line *Line) error {
	if line.DispSize < 0 || line.ImmSize < 0 || line.DispSize+line.ImmSize > len(line.Binary) {
		return utils.MakeError(ErrInvalidLayout, "%v displacement and %v immediate bytes do not fit in %v bytes of machine code", line.DispSize, line.ImmSize, len(line.Binary))
	}

	text := line.Text
	hasBinary := len(line.Binary) > 0

	if hasBinary || line.Comment != "" {
		text = padTo(text, MaxInstLineSize) + separator

		if hasBinary {
			text += FormatBinary(line.Binary, line.DispSize, line.ImmSize)

			if line.Comment != "" {
				text = padTo(text, CommentColumn) + commentSeparator + line.Comment
			}
		} else {
			text += line.Comment
		}
	}

	sb.WriteString(text)
	sb.WriteByte('\n')
	return nil
}

// Renders machine code as uppercase hex, with displacement bytes masked as "..". Dumps wider than
// MaxBinarySize are cut and marked with a trailing "~"
func FormatBinary(binary []byte, dispSize, immSize int) string {
	var sb strings.Builder

	head := len(binary) - dispSize - immSize
	utils.AppendHex(&sb, binary[:head])
	sb.WriteString(strings.Repeat("..", dispSize))
	utils.AppendHex(&sb, binary[head+dispSize:])

	dump := sb.String()
	if len(dump) > MaxBinarySize {
		return dump[:truncatedBinarySize] + truncationMarker
	}

	return dump
}

func padTo(s string, column int) string {
	if utils.DisplayWidth(s) < column {
		return utils.PadRight(s, column)
	}

	return s + " "
}
