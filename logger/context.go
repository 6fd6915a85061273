package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"

	"github.com/philipp01105/foldersync/core"
	"github.com/philipp01105/foldersync/formatter"
	"github.com/philipp01105/foldersync/handler"
	"github.com/philipp01105/foldersync/handler/consolehandler"
	"github.com/philipp01105/foldersync/handler/filehandler"
)

// RootNamespace is the name of the root logger. Every logger handed out by
// a Context is named RootNamespace or RootNamespace + "." + name.
const RootNamespace = "folder_sync"

// Config describes one configuration of a Context. The zero value is the
// default configuration: INFO to stdout, no file.
type Config struct {
	// Level name, case-insensitive (default INFO). Unknown names mean INFO.
	Level string
	// File enables the file sink when non-empty. Missing parent
	// directories are created.
	File string
	// MessageFormat overrides formatter.DefaultMessageFormat
	MessageFormat string
	// TimeFormat overrides formatter.DefaultTimestampFormat
	TimeFormat string
	// Console is the console sink's stream (default os.Stdout)
	Console io.Writer
	// IncludeCaller captures file:line for the {caller} placeholder
	IncludeCaller bool
}

// sinkSet is one published configuration. It is never mutated after
// being stored in a Context.
type sinkSet struct {
	level         core.Level
	includeCaller bool
	sinks         *handler.MultiHandler
}

// transition builds the sink set for cfg. prev is returned as retired so
// the caller can release it once next is published. On error nothing is
// retired and every sink built so far has been closed.
func transition(prev *sinkSet, cfg Config) (next, retired *sinkSet, err error) {
	level := core.ParseLevel(cfg.Level)
	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}

	f := formatter.NewTextFormatter(formatter.Config{
		MessageFormat:   cfg.MessageFormat,
		TimestampFormat: cfg.TimeFormat,
	})

	sinks := []handler.Handler{
		consolehandler.NewConsoleHandler(consolehandler.ConsoleConfig{
			Writer:    console,
			Formatter: f,
			Level:     level,
		}),
	}

	if cfg.File != "" {
		fh, err := filehandler.NewFileHandler(filehandler.FileConfig{
			Filename:  cfg.File,
			Formatter: f,
			Level:     level,
		})
		if err != nil {
			closeErr := handler.NewMultiHandler(sinks...).Close()
			return nil, nil, multierr.Append(fmt.Errorf("logger: configure file sink: %w", err), closeErr)
		}
		sinks = append(sinks, fh)
	}

	next = &sinkSet{
		level:         level,
		includeCaller: cfg.IncludeCaller,
		sinks:         handler.NewMultiHandler(sinks...),
	}
	return next, prev, nil
}

// Context owns the sink set shared by every Logger it hands out. Create one
// per process with NewContext and pass it to the components that log, or
// use the package-level default (see Configure and GetLogger).
//
// A Context starts unconfigured: loggers may be obtained and used, but
// their records are dropped until Configure succeeds.
type Context struct {
	mu    sync.Mutex // serializes Configure and Close
	state atomic.Pointer[sinkSet]
	root  *Logger
}

// NewContext creates an unconfigured logging context
func NewContext() *Context {
	c := &Context{}
	c.root = &Logger{ctx: c, name: RootNamespace}
	return c
}

// Configure replaces the context's sinks with a console sink and, when
// cfg.File is set, a file sink, both filtering at cfg.Level. Sinks from a
// previous call are closed after the new ones are live, so repeated calls
// never duplicate output.
//
// If the file sink cannot be created the error is returned and the
// previous configuration, if any, stays in effect.
func (c *Context) Configure(cfg Config) (*Logger, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, retired, err := transition(c.state.Load(), cfg)
	if err != nil {
		return nil, err
	}

	c.state.Store(next)
	if retired != nil {
		// close errors of retired sinks are not fatal to the new configuration
		_ = retired.sinks.Close()
	}
	return c.root, nil
}

// Root returns the root logger
func (c *Context) Root() *Logger {
	return c.root
}

// Logger returns the logger named RootNamespace + "." + name. It attaches
// nothing and never fails. An empty name returns the root logger.
func (c *Context) Logger(name string) *Logger {
	if name == "" {
		return c.root
	}
	return &Logger{ctx: c, name: RootNamespace + "." + name}
}

// Configured reports whether Configure has succeeded since the context was
// created or last closed.
func (c *Context) Configured() bool {
	return c.state.Load() != nil
}

// Level returns the configured threshold, or InfoLevel when unconfigured.
func (c *Context) Level() core.Level {
	if s := c.state.Load(); s != nil {
		return s.level
	}
	return core.InfoLevel
}

// Handlers returns the currently attached sinks in attach order
func (c *Context) Handlers() []handler.Handler {
	if s := c.state.Load(); s != nil {
		return s.sinks.Handlers()
	}
	return nil
}

// Sync flushes every sink that supports it
func (c *Context) Sync() error {
	var err error
	for _, h := range c.Handlers() {
		if s, ok := h.(interface{ Sync() error }); ok {
			err = multierr.Append(err, s.Sync())
		}
	}
	return err
}

// Close releases all sinks, closing log files, and returns the context to
// the unconfigured state. Calling Close on an unconfigured context is a
// no-op.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.state.Swap(nil)
	if prev == nil {
		return nil
	}
	return prev.sinks.Close()
}

// emit writes one record through s. The entry is pooled.
func (s *sinkSet) emit(name string, level core.Level, msg string, caller core.CallerInfo) {
	entry := core.GetEntry(level, name, msg)
	entry.Caller = caller

	// Write failures are counted in each handler's Stats; logging never
	// fails the caller.
	_ = s.sinks.Handle(entry)

	core.PutEntry(entry)
}
