package logging

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferSinkConcatenatesInOrder(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)

	require.NoError(t, logger.Log("mov eax, 1\n"))
	require.NoError(t, logger.Log(""))
	require.NoError(t, logger.LogBytes([]byte("ret\nleftover"), 4))
	require.NoError(t, logger.Logf("%v:%d\n", "L", 3))

	assert.Equal(t, "mov eax, 1\nret\nL:3\n", sink.String())
	assert.Equal(t, len("mov eax, 1\nret\nL:3\n"), sink.Len())
}

func TestBufferSinkClear(t *testing.T) {
	sink := &BufferSink{}
	require.NoError(t, sink.Accept([]byte("abc")))

	sink.Clear()
	assert.Equal(t, 0, sink.Len())
	assert.Empty(t, sink.Bytes())

	require.NoError(t, sink.Accept([]byte("d")))
	assert.Equal(t, "d", sink.String())
}

func TestBufferSinkLimit(t *testing.T) {
	sink := &BufferSink{Limit: 8}
	logger := New(sink)

	require.NoError(t, logger.Log("12345"))

	err := logger.Log("6789")
	assert.ErrorIs(t, err, ErrOutOfMemory)
	assert.Equal(t, "12345", sink.String(), "a failed append must not leave partial content")

	require.NoError(t, logger.Log("678"))
	assert.Equal(t, "12345678", sink.String())
}

func TestLogBytesNulTerminated(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)

	require.NoError(t, logger.LogBytes([]byte("abc\x00def"), SizeMax))
	require.NoError(t, logger.LogBytes([]byte("ghi"), SizeMax))

	assert.Equal(t, "abcghi", sink.String())
}

func TestLogBytesOutOfRange(t *testing.T) {
	logger := New(&BufferSink{})

	assert.ErrorIs(t, logger.LogBytes([]byte("abc"), 4), ErrInvalidArgument)
	assert.ErrorIs(t, logger.LogBytes([]byte("abc"), -1), ErrInvalidArgument)
}

func TestLogfMatchesSprintf(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)

	format := "%s %d %x %5.2f %q\n"
	args := []any{"label", -42, 255, 3.14159, "x"}

	require.NoError(t, logger.Logf(format, args...))
	assert.Equal(t, fmt.Sprintf(format, args...), sink.String())

	sink.Clear()
	require.NoError(t, logger.Logv(format, args))
	assert.Equal(t, fmt.Sprintf(format, args...), sink.String())
}

func TestLogfTruncatesAtStagingSize(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)

	long := strings.Repeat("0123456789", 200)
	require.NoError(t, logger.Logf("%s", long))

	assert.Equal(t, MaxStagingSize, sink.Len())
	assert.Equal(t, long[:MaxStagingSize], sink.String())
}

func TestLogBinary(t *testing.T) {
	sink := &BufferSink{}
	logger := New(sink)

	data := make([]byte, 20)
	for i := range data {
		data[i] = byte(0xF0 + i)
	}

	require.NoError(t, logger.LogBinary(data))

	assert.Equal(t,
		"db F0F1F2F3F4F5F6F7F8F9FAFBFCFDFEFF\n"+
			"db 00010203\n",
		sink.String())
}

func TestLogBinaryEmpty(t *testing.T) {
	calls := 0
	logger := New(SinkFunc(func(p []byte) error {
		calls++
		return nil
	}))

	require.NoError(t, logger.LogBinary(nil))
	assert.Zero(t, calls)
}

func TestLogBinaryStopsAtFirstFailure(t *testing.T) {
	calls := 0
	failure := errors.New("disk full")
	logger := New(SinkFunc(func(p []byte) error {
		calls++
		return failure
	}))

	assert.ErrorIs(t, logger.LogBinary(make([]byte, 40)), failure)
	assert.Equal(t, 1, calls)
}

func TestSinkFailurePropagates(t *testing.T) {
	failure := errors.New("rejected")
	logger := New(SinkFunc(func(p []byte) error { return failure }))

	assert.ErrorIs(t, logger.Log("x"), failure)
	assert.ErrorIs(t, logger.Logf("%d", 1), failure)
	assert.ErrorIs(t, logger.LogComment("x"), failure)
}

func TestFileSink(t *testing.T) {
	var out bytes.Buffer
	sink := NewFileSink(&out)
	logger := New(sink)

	require.NoError(t, logger.Log("one\n"))
	require.NoError(t, logger.Logf("%v\n", "two"))

	assert.Equal(t, "one\ntwo\n", out.String())
	assert.Same(t, &out, sink.File())
}

func TestFileSinkWithoutFileSucceeds(t *testing.T) {
	var nilFile *os.File
	var nilBuffer *bytes.Buffer
	var nilFailing *failingWriter

	for _, sink := range []*FileSink{NewFileSink(nil), NewFileSink(nilFile), NewFileSink(nilBuffer), NewFileSink(nilFailing), {}} {
		logger := New(sink)

		assert.Nil(t, sink.File())
		assert.NoError(t, logger.Log("discarded"))
		assert.NoError(t, logger.LogBinary([]byte{1, 2, 3}))
	}
}

type failingWriter struct {
	written int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	return w.written, errors.New("broken pipe")
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	return len(p) / 2, nil
}

func TestFileSinkWriteErrors(t *testing.T) {
	assert.ErrorIs(t, New(NewFileSink(&failingWriter{})).Log("abc"), ErrSinkWrite)
	assert.ErrorIs(t, New(NewFileSink(shortWriter{})).Log("abcd"), ErrSinkWrite)
}

func TestFileSinkSetFile(t *testing.T) {
	var first, second bytes.Buffer
	sink := NewFileSink(&first)
	logger := New(sink)

	require.NoError(t, logger.Log("a"))
	sink.SetFile(&second)
	require.NoError(t, logger.Log("b"))
	sink.SetFile(nil)
	require.NoError(t, logger.Log("c"))
	sink.SetFile((*bytes.Buffer)(nil))
	assert.Nil(t, sink.File())
	require.NoError(t, logger.Log("d"))

	assert.Equal(t, "a", first.String())
	assert.Equal(t, "b", second.String())
}

func TestNilSinkDiscards(t *testing.T) {
	logger := New(nil)

	assert.IsType(t, NopSink{}, logger.Sink())
	assert.NoError(t, logger.Log("x"))
}

func TestSlogSink(t *testing.T) {
	var out bytes.Buffer
	sink := &SlogSink{
		Logger: slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Level:  slog.LevelDebug,
	}

	require.NoError(t, New(sink).Log("mov eax, 1\n"))

	assert.Contains(t, out.String(), `level=DEBUG msg="mov eax, 1"`)
	assert.NoError(t, (&SlogSink{}).Accept([]byte("ignored")))
}

func TestFormatOptions(t *testing.T) {
	var options FormatOptions

	assert.Equal(t, FormatFlag_None, options.Flags())
	for i := range TOTAL_INDENTATION_TYPES {
		assert.Zero(t, options.Indentation(i))
	}

	options.SetFlags(FormatFlag_HexImms | FormatFlag_MachineCode)
	options.AddFlags(FormatFlag_Positions)
	options.ClearFlags(FormatFlag_MachineCode)

	assert.True(t, options.HasFlag(FormatFlag_HexImms))
	assert.True(t, options.HasFlag(FormatFlag_Positions))
	assert.False(t, options.HasFlag(FormatFlag_MachineCode))
	assert.Equal(t, "HexImms|Positions", options.Flags().String())

	options.SetIndentation(IndentationType_Label, 4)
	options.SetIndentation(IndentationType_Code, 1000)

	assert.Equal(t, uint32(4), options.Indentation(IndentationType_Label))
	assert.Equal(t, uint32(math.MaxUint8), options.Indentation(IndentationType_Code))

	options.ResetIndentation(IndentationType_Label)
	assert.Zero(t, options.Indentation(IndentationType_Label))

	options.Reset()
	if diff := cmp.Diff(FormatOptions{}, options, cmp.AllowUnexported(FormatOptions{})); diff != "" {
		t.Errorf("options not reset (-want +got):\n%s", diff)
	}
}

func TestIndentationOutOfRangePanics(t *testing.T) {
	var options FormatOptions

	assert.Panics(t, func() { options.SetIndentation(TOTAL_INDENTATION_TYPES, 1) })
}

func TestParseFormatFlag(t *testing.T) {
	flag, err := ParseFormatFlag("hexoffsets")
	require.NoError(t, err)
	assert.Equal(t, FormatFlag_HexOffsets, flag)

	_, err = ParseFormatFlag("bogus")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Equal(t, "None", FormatFlag_None.String())
}

func TestLoggerOptionsAreShared(t *testing.T) {
	logger := New(&BufferSink{})

	logger.AddFlags(FormatFlag_ExplainImms)
	logger.Options().AddFlags(FormatFlag_RegCasts)
	logger.SetIndentation(IndentationType_Comment, 2)

	assert.Equal(t, FormatFlag_ExplainImms|FormatFlag_RegCasts, logger.Flags())
	assert.Equal(t, uint32(2), logger.Options().Indentation(IndentationType_Comment))
}
