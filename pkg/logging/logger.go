package logging

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/Manu343726/mclog/pkg/utils"
)

// Destination of formatted diagnostic text.
//
// Accept must either take all the bytes and return nil, or report an error. It is the only
// primitive sinks implement; everything else is built by Logger on top of it.
type Sink interface {
	Accept(p []byte) error
}

// Adapts a function into a Sink
type SinkFunc func(p []byte) error

func (f SinkFunc) Accept(p []byte) error {
	return f(p)
}

// Size argument of LogBytes meaning "the data is NUL terminated"
const SizeMax = math.MaxInt

// Capacity of the staging buffer Logf and Logv render into. Longer output is truncated to this many bytes
const MaxStagingSize = 1024

// Bytes per line written by LogBinary
const binaryBytesPerLine = 16

// Delivers diagnostics to a Sink and owns the formatting options used by the domain formatters.
//
// A Logger is meant to be driven by a single emission pipeline; it does no locking.
type Logger struct {
	sink    Sink
	options FormatOptions
}

// Returns a logger writing to the given sink. A nil sink discards everything
func New(sink Sink) *Logger {
	if sink == nil {
		sink = NopSink{}
	}

	return &Logger{sink: sink}
}

func (l *Logger) Sink() Sink {
	return l.sink
}

func (l *Logger) Options() *FormatOptions {
	return &l.options
}

func (l *Logger) Flags() FormatFlags {
	return l.options.Flags()
}

func (l *Logger) HasFlag(flag FormatFlags) bool {
	return l.options.HasFlag(flag)
}

func (l *Logger) SetFlags(flags FormatFlags) {
	l.options.SetFlags(flags)
}

func (l *Logger) AddFlags(flags FormatFlags) {
	l.options.AddFlags(flags)
}

func (l *Logger) ClearFlags(flags FormatFlags) {
	l.options.ClearFlags(flags)
}

func (l *Logger) Indentation(t IndentationType) uint32 {
	return l.options.Indentation(t)
}

func (l *Logger) SetIndentation(t IndentationType, n uint32) {
	l.options.SetIndentation(t, n)
}

func (l *Logger) ResetIndentation(t IndentationType) {
	l.options.ResetIndentation(t)
}

// Logs a string
func (l *Logger) Log(s string) error {
	return l.sink.Accept([]byte(s))
}

// Logs the first size bytes of data. With size == SizeMax the data is treated as NUL terminated
// (all of it is logged if there's no NUL byte)
func (l *Logger) LogBytes(data []byte, size int) error {
	if size == SizeMax {
		if end := bytes.IndexByte(data, 0); end >= 0 {
			return l.sink.Accept(data[:end])
		}

		return l.sink.Accept(data)
	}

	if size < 0 || size > len(data) {
		return utils.MakeError(ErrInvalidArgument, "size %v out of range, data has %v bytes", size, len(data))
	}

	return l.sink.Accept(data[:size])
}

// Formats the message with fmt verbs and logs it. See Logv
func (l *Logger) Logf(format string, args ...any) error {
	return l.Logv(format, args)
}

// Formats the message with fmt verbs into a staging buffer of MaxStagingSize bytes and logs it.
// Output that does not fit is truncated at exactly MaxStagingSize bytes
func (l *Logger) Logv(format string, args []any) error {
	staging := stagingBuffer{data: make([]byte, 0, MaxStagingSize)}

	// stagingBuffer never fails, Fprintf errors only come from the writer
	_, _ = fmt.Fprintf(&staging, format, args...)

	return l.sink.Accept(staging.data)
}

// Logs raw bytes as hex, 16 bytes per "db" line
func (l *Logger) LogBinary(data []byte) error {
	for len(data) > 0 {
		n := min(len(data), binaryBytesPerLine)

		var line strings.Builder
		line.Grow(len("db ") + 2*binaryBytesPerLine + 1)
		line.WriteString("db ")
		utils.AppendHex(&line, data[:n])
		line.WriteByte('\n')

		if err := l.Log(line.String()); err != nil {
			return err
		}

		data = data[n:]
	}

	return nil
}

// Fixed capacity writer. Writes past the capacity are silently cut
type stagingBuffer struct {
	data []byte
}

func (b *stagingBuffer) Write(p []byte) (int, error) {
	if room := cap(b.data) - len(b.data); len(p) > room {
		b.data = append(b.data, p[:room]...)
	} else {
		b.data = append(b.data, p...)
	}

	return len(p), nil
}
