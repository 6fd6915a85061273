package filehandler

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/philipp01105/foldersync/core"
	"github.com/philipp01105/foldersync/formatter"
	"github.com/philipp01105/foldersync/handler"
)

// FileConfig holds configuration for file handler
type FileConfig struct {
	// Filename is the path to the log file
	Filename string
	// Formatter to use (default: TextFormatter)
	Formatter formatter.Formatter
	// Level is the minimum severity written (default: DebugLevel)
	Level core.Level
	// Encoding of the text written to disk (default: UTF-8). Ill-formed
	// UTF-8 in messages is replaced with U+FFFD.
	Encoding encoding.Encoding
	// FileMode for a newly created log file (default: 0644)
	FileMode os.FileMode
	// DirMode for newly created parent directories (default: 0755)
	DirMode os.FileMode
}

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *FileConfig) {
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
	if cfg.Encoding == nil {
		cfg.Encoding = unicode.UTF8
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = 0644
	}
	if cfg.DirMode == 0 {
		cfg.DirMode = 0755
	}
}

// FileHandler appends formatted entries to a file. Every entry is written
// straight to the file descriptor, so a record is on disk as soon as
// Handle returns.
type FileHandler struct {
	handler.Threshold
	filename        string
	file            *os.File
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	encoder         *encoding.Encoder
	stats           *handler.Stats
	mu              sync.Mutex // protects file, syncBuf and encoder
	syncBuf         bytes.Buffer
}

// NewFileHandler creates the parent directories of cfg.Filename if needed,
// opens the file for appending (creating it if absent) and returns the
// handler. Filesystem errors are returned wrapped; no file is left open on
// failure.
func NewFileHandler(cfg FileConfig) (*FileHandler, error) {
	if cfg.Filename == "" {
		return nil, errors.New("filehandler: filename is required")
	}
	applyFileDefaults(&cfg)

	dir := filepath.Dir(cfg.Filename)
	if err := os.MkdirAll(dir, cfg.DirMode); err != nil {
		return nil, fmt.Errorf("filehandler: create log directory %q: %w", dir, err)
	}

	file, err := os.OpenFile(cfg.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, cfg.FileMode)
	if err != nil {
		return nil, fmt.Errorf("filehandler: open log file: %w", err)
	}

	h := &FileHandler{
		Threshold: handler.NewThreshold(cfg.Level),
		filename:  cfg.Filename,
		file:      file,
		formatter: cfg.Formatter,
		encoder:   cfg.Encoding.NewEncoder(),
		stats:     handler.NewStats("file"),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.syncBuf.Grow(256)
	}
	return h, nil
}

// Filename returns the path the handler writes to
func (h *FileHandler) Filename() string {
	return h.filename
}

// Handle formats, encodes and appends an entry.
func (h *FileHandler) Handle(entry *core.Entry) error {
	if !h.Enabled(entry.Level) {
		h.stats.IncrementFiltered()
		return nil
	}

	err := h.write(entry)
	h.stats.Record(err)
	return err
}

func (h *FileHandler) write(entry *core.Entry) error {
	var data []byte
	if h.bufferFormatter == nil {
		var err error
		if data, err = h.formatter.Format(entry); err != nil {
			return err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return handler.ErrClosed
	}

	if h.bufferFormatter != nil {
		h.syncBuf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.syncBuf)
		data = h.syncBuf.Bytes()
	}

	encoded, err := h.encoder.Bytes(data)
	if err != nil {
		return fmt.Errorf("filehandler: encode entry: %w", err)
	}
	_, err = h.file.Write(encoded)
	return err
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Sync commits the file's contents to stable storage
func (h *FileHandler) Sync() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}
	return h.file.Sync()
}

// Close syncs and closes the underlying file. It is safe to call more than
// once; later calls return nil.
func (h *FileHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.file == nil {
		return nil
	}

	file := h.file
	h.file = nil

	syncErr := file.Sync()
	if closeErr := file.Close(); closeErr != nil {
		return closeErr
	}
	return syncErr
}
