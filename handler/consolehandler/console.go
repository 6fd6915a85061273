package consolehandler

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/foldersync/core"
	"github.com/philipp01105/foldersync/formatter"
	"github.com/philipp01105/foldersync/handler"
)

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout). The handler never closes it.
	Writer io.Writer
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Level is the minimum severity written (default: DebugLevel)
	Level core.Level
	// ConcurrentWriter indicates the Writer supports concurrent Write calls.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
}

// ConsoleHandler writes formatted entries to a stream. Under no contention
// it formats into a handler-owned buffer; parallel callers format into
// pooled buffers outside the lock and serialize only the write.
type ConsoleHandler struct {
	handler.Threshold
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	concurrentSafe  bool // true if writer is safe for concurrent Write calls
	stats           *handler.Stats
	mu              sync.Mutex // protects syncBuf and writer
	syncBuf         bytes.Buffer
	parBufPool      sync.Pool
	closed          chan struct{}
	closeOnce       sync.Once
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	applyConsoleDefaults(&cfg)

	h := &ConsoleHandler{
		Threshold:      handler.NewThreshold(cfg.Level),
		writer:         cfg.Writer,
		formatter:      cfg.Formatter,
		concurrentSafe: cfg.ConcurrentWriter || isConcurrentSafeWriter(cfg.Writer),
		stats:          handler.NewStats("console"),
		closed:         make(chan struct{}),
	}

	// Cache BufferFormatter for the handler-owned buffer path
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.syncBuf.Grow(256)
		h.parBufPool = sync.Pool{
			New: func() interface{} {
				b := new(bytes.Buffer)
				b.Grow(256)
				return b
			},
		}
	}

	return h
}

// Handle formats and writes an entry synchronously.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if !h.Enabled(entry.Level) {
		h.stats.IncrementFiltered()
		return nil
	}
	select {
	case <-h.closed:
		return handler.ErrClosed
	default:
	}

	err := h.write(entry)
	h.stats.Record(err)
	return err
}

func (h *ConsoleHandler) write(entry *core.Entry) error {
	if h.bufferFormatter != nil {
		if h.mu.TryLock() {
			h.syncBuf.Reset()
			h.bufferFormatter.FormatEntry(entry, &h.syncBuf)
			_, err := h.writer.Write(h.syncBuf.Bytes())
			h.mu.Unlock()
			return err
		}

		// Parallel fallback: format in pool buffer outside lock, then
		// write under mu (or directly for concurrent-safe writers).
		buf := h.parBufPool.Get().(*bytes.Buffer)
		buf.Reset()
		h.bufferFormatter.FormatEntry(entry, buf)
		err := h.writeLocked(buf.Bytes())
		h.parBufPool.Put(buf)
		return err
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	return h.writeLocked(data)
}

func (h *ConsoleHandler) writeLocked(p []byte) error {
	if h.concurrentSafe {
		_, err := h.writer.Write(p)
		return err
	}
	h.mu.Lock()
	_, err := h.writer.Write(p)
	h.mu.Unlock()
	return err
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close detaches the handler. The underlying writer is left open.
func (h *ConsoleHandler) Close() error {
	h.closeOnce.Do(func() { close(h.closed) })
	return nil
}
