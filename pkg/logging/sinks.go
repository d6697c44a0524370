package logging

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/Manu343726/mclog/pkg/utils"
)

// Sink writing to an externally owned stream. The sink never opens, closes or flushes the stream.
//
// With no stream (nil) every Accept succeeds without doing any I/O, which disables the output
// without touching the logging call sites.
type FileSink struct {
	file io.Writer
}

func NewFileSink(file io.Writer) *FileSink {
	s := &FileSink{}
	s.SetFile(file)
	return s
}

// Returns the output stream or nil if the sink has none
func (s *FileSink) File() io.Writer {
	return s.file
}

// Sets the output stream. Passing nil, or a typed nil such as a nil *os.File or *bytes.Buffer,
// disables the output from now on
func (s *FileSink) SetFile(file io.Writer) {
	if isNilWriter(file) {
		file = nil
	}

	s.file = file
}

func isNilWriter(w io.Writer) bool {
	if w == nil {
		return true
	}

	switch v := reflect.ValueOf(w); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}

	return false
}

func (s *FileSink) Accept(p []byte) error {
	if s.file == nil {
		return nil
	}

	n, err := s.file.Write(p)

	if err != nil {
		return utils.MakeError(ErrSinkWrite, "wrote %v of %v bytes: %v", n, len(p), err)
	}

	if n != len(p) {
		return utils.MakeError(ErrSinkWrite, "short write, wrote %v of %v bytes", n, len(p))
	}

	return nil
}

// Sink that stores everything in an owned in-memory buffer.
//
// The buffer is the exact concatenation of all the accepted byte spans in call order.
type BufferSink struct {
	content []byte

	// Maximum number of bytes the buffer may hold, 0 means unlimited. Accept calls that would grow
	// the buffer past the limit fail with ErrOutOfMemory and append nothing
	Limit int
}

func (s *BufferSink) Accept(p []byte) error {
	if s.Limit > 0 && len(s.content)+len(p) > s.Limit {
		return utils.MakeError(ErrOutOfMemory, "buffer sink holds %v bytes, cannot append %v more (limit %v)", len(s.content), len(p), s.Limit)
	}

	s.content = append(s.content, p...)
	return nil
}

// Returns a read-only view of the accumulated content. The view is invalidated by the next Accept or Clear
func (s *BufferSink) Bytes() []byte {
	return s.content[:len(s.content):len(s.content)]
}

func (s *BufferSink) String() string {
	return string(s.content)
}

func (s *BufferSink) Len() int {
	return len(s.content)
}

// Discards the accumulated content, keeping the allocated capacity
func (s *BufferSink) Clear() {
	s.content = s.content[:0]
}

// Sink discarding everything. Used when logging is disabled
type NopSink struct{}

func (NopSink) Accept(p []byte) error {
	return nil
}

// Sink forwarding each accepted span as one slog record (trailing newline removed)
type SlogSink struct {
	Logger *slog.Logger
	Level  slog.Level
}

func (s *SlogSink) Accept(p []byte) error {
	if s.Logger == nil {
		return nil
	}

	s.Logger.Log(context.Background(), s.Level, strings.TrimSuffix(string(p), "\n"))
	return nil
}
