package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

const hexDigits = "0123456789ABCDEF"

// Formats a signed value in lowercase hex with a 0x prefix, keeping the sign in front ("-0x10")
func FormatIntHex(value int64) string {
	if value < 0 {
		// two's complement negation also covers math.MinInt64
		return "-0x" + strconv.FormatUint(uint64(-value), 16)
	}

	return "0x" + strconv.FormatUint(uint64(value), 16)
}

// Appends two uppercase hex characters per byte, without separators
func AppendHex(builder *strings.Builder, data []byte) {
	for _, b := range data {
		builder.WriteByte(hexDigits[b>>4])
		builder.WriteByte(hexDigits[b&0xF])
	}
}

// Returns the number of terminal columns the string takes
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Pads the string with spaces up to the given display width. Strings already wider are returned as is
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Returns an string containing all formatted sequence items separated by a given separator
func FormatSlice[T any](input []T, separator string) string {
	var builder strings.Builder

	for i, value := range input {
		builder.WriteString(fmt.Sprint(value))

		if i < len(input)-1 {
			builder.WriteString(separator)
		}
	}

	return builder.String()
}
