// Package consolehandler provides the console sink, which writes formatted
// log entries to any io.Writer (default: os.Stdout).
//
// Writes are synchronous. When uncontended the handler formats into its own
// buffer under TryLock; parallel callers format into pooled buffers outside
// the lock and only serialize the final Write. Closing the handler never
// closes the underlying writer, so stdout stays usable for the rest of the
// process.
package consolehandler
