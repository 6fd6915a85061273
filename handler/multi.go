package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/foldersync/core"
)

// MultiHandler sends log entries to multiple handlers. Each child applies
// its own threshold inside Handle, so a single entry may be written by only
// some of them.
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a new multi-handler. Nil handlers are skipped.
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{handlers: make([]Handler, 0, len(handlers))}
	for _, h := range handlers {
		if h != nil {
			m.handlers = append(m.handlers, h)
		}
	}
	return m
}

// Handle processes a log entry by sending it to every handler.
// A failing child does not stop delivery to the others.
func (m *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for _, h := range m.handlers {
		err = multierr.Append(err, h.Handle(entry))
	}
	return err
}

// Enabled reports whether any child accepts level
func (m *MultiHandler) Enabled(level core.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(level) {
			return true
		}
	}
	return false
}

// Handlers returns a copy of the child handlers in attach order
func (m *MultiHandler) Handlers() []Handler {
	out := make([]Handler, len(m.handlers))
	copy(out, m.handlers)
	return out
}

// Len returns the number of child handlers
func (m *MultiHandler) Len() int {
	return len(m.handlers)
}

// Close closes all handlers, combining their errors
func (m *MultiHandler) Close() error {
	var err error
	for _, h := range m.handlers {
		err = multierr.Append(err, h.Close())
	}
	return err
}
