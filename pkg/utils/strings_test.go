package utils

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatIntHex(t *testing.T) {
	assert.Equal(t, "0xff", FormatIntHex(255))
	assert.Equal(t, "0x0", FormatIntHex(0))
	assert.Equal(t, "-0x10", FormatIntHex(-16))
	assert.Equal(t, "-0x8000000000000000", FormatIntHex(math.MinInt64))
}

func TestAppendHex(t *testing.T) {
	var builder strings.Builder
	AppendHex(&builder, []byte{0x00, 0xAB, 0x0f, 0xff})
	assert.Equal(t, "00AB0FFF", builder.String())
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "mov   ", PadRight("mov", 6))
	assert.Equal(t, "movzx", PadRight("movzx", 3))
	assert.Equal(t, 4, DisplayWidth("日本"))
	assert.Equal(t, "日本  ", PadRight("日本", 6))
}

func TestMakeError(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := MakeError(sentinel, "value %v out of range [%v, %v]", 7, 0, 4)

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "sentinel: value 7 out of range [0, 4]", err.Error())
}

func TestSortedKeys(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SortedKeys(map[string]int{"c": 3, "a": 1, "b": 2}))
	assert.Equal(t, map[int]string{1: "a"}, InvertedMap(map[string]int{"a": 1}))
}
