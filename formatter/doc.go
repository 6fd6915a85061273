// Package formatter defines how log entries are serialized into lines of
// text.
//
// A TextFormatter is built from a message template and a time layout. The
// template is compiled once into literal and placeholder segments, so the
// write path is a walk over a short slice. The default template produces
//
//	2026-10-19 14:03:07 - folder_sync.scanner - INFO - scan complete
//
// Formatters are stateless after construction and may be shared by any
// number of handlers. They implement both Formatter, which returns a
// []byte, and BufferFormatter, which formats into a handler-owned buffer.
// Handlers check for BufferFormatter at construction time and prefer it.
//
// Buffers larger than 64 KiB are not returned to the pool to prevent
// a single large log line from permanently inflating memory usage.
package formatter
