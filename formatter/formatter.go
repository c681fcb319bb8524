package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/athome/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it directly to the writer
	FormatTo(entry *core.Entry, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// TimestampFormat is the Go time layout used when an entry carries
	// no pre-rendered Timestamp
	TimestampFormat string
	// Color wraps level names in ANSI color sequences (text only)
	Color bool
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

// GetBuffer returns an empty buffer from the shared pool
func GetBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// PutBuffer returns buf to the shared pool
func PutBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// formatWith renders entry through fn into a fresh slice
func formatWith(entry *core.Entry, fn func(*core.Entry, *bytes.Buffer)) []byte {
	buf := GetBuffer()
	defer PutBuffer(buf)

	fn(entry, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result
}

func writeWith(entry *core.Entry, w io.Writer, fn func(*core.Entry, *bytes.Buffer)) error {
	buf := GetBuffer()
	fn(entry, buf)

	// one Write per line keeps concurrent lines whole
	_, err := w.Write(buf.Bytes())
	PutBuffer(buf)
	return err
}
