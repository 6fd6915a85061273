package handler

import (
	"errors"

	"github.com/philipp01105/foldersync/core"
)

// Handler defines the interface for log handlers (sinks)
type Handler interface {
	// Handle processes a log entry. The entry must not be retained after
	// Handle returns.
	Handle(entry *core.Entry) error

	// Enabled reports whether the handler accepts entries at level
	Enabled(level core.Level) bool

	// Close flushes and releases resources
	Close() error
}

// StatsProvider is implemented by handlers that track write statistics
type StatsProvider interface {
	Stats() Snapshot
}

// Threshold implements Enabled for handlers with a minimum severity.
type Threshold struct {
	level core.Level
}

// NewThreshold creates a threshold that accepts level and above
func NewThreshold(level core.Level) Threshold {
	return Threshold{level: level}
}

// Enabled reports whether level meets the threshold
func (t Threshold) Enabled(level core.Level) bool {
	return level >= t.level
}

// Level returns the minimum accepted severity
func (t Threshold) Level() core.Level {
	return t.level
}

// ErrClosed is returned by Handle after the handler has been closed
var ErrClosed = errors.New("handler: closed")
