package formatter

import (
	"bytes"
	"sync"

	"github.com/philipp01105/foldersync/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

const (
	// DefaultMessageFormat renders "<time> - <logger> - <level> - <message>".
	DefaultMessageFormat = "{time} - {name} - {level} - {message}"
	// DefaultTimestampFormat renders YYYY-MM-DD HH:MM:SS.
	DefaultTimestampFormat = "2006-01-02 15:04:05"
)

// Config holds common formatter configuration
type Config struct {
	// MessageFormat is the line template (empty for DefaultMessageFormat).
	// Recognized placeholders: {time}, {name}, {level}, {message}, {caller}.
	MessageFormat string
	// TimestampFormat is a time.Layout string (empty for DefaultTimestampFormat)
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
