// Package handler provides the Handler interface that every log sink
// implements, plus the MultiHandler fan-out used to hold a configured sink
// set.
//
// All handlers in this module are synchronous: Handle formats and writes
// before returning, serializing writes to a given sink internally so that
// callers may log from any goroutine without taking a lock.
//
// Each handler carries its own Threshold and drops entries below it inside
// Handle, so a MultiHandler dispatch can reach the console but not the
// file, or the reverse.
//
// Built-in handlers:
//
//   - consolehandler writes formatted entries to an io.Writer (default: stdout).
//   - filehandler appends to a file, creating parent directories on
//     construction and encoding text (UTF-8 by default).
//
// Handlers track processed, filtered, and failed counts via the Stats
// type, which the metrics package exports.
package handler
