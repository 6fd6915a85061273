package logger

import (
	"fmt"

	"github.com/philipp01105/foldersync/core"
	"github.com/philipp01105/foldersync/handler"
)

// callerSkip is the runtime.Caller depth from GetCaller inside log to the
// user's call site: GetCaller, log, the level method, the caller.
const callerSkip = 3

// Logger is a named handle onto a Context. It holds no sinks or threshold
// of its own; every call reads the context's current configuration, so
// loggers obtained before Configure start writing once it succeeds.
//
// Loggers are safe for concurrent use.
type Logger struct {
	ctx  *Context
	name string
}

// Name returns the dot-separated logger name
func (l *Logger) Name() string {
	return l.name
}

// Context returns the context the logger reads its sinks from
func (l *Logger) Context() *Context {
	return l.ctx
}

// Level returns the effective threshold. Before Configure it reports
// InfoLevel, though nothing is written.
func (l *Logger) Level() core.Level {
	return l.ctx.Level()
}

// Enabled reports whether a record at level would be written
func (l *Logger) Enabled(level core.Level) bool {
	s := l.ctx.state.Load()
	return s != nil && level >= s.level
}

// Handlers returns the sinks attached to this logger. Only the root logger
// owns sinks; child loggers return nil and reach the root's sinks by
// propagation.
func (l *Logger) Handlers() []handler.Handler {
	if l != l.ctx.root {
		return nil
	}
	return l.ctx.Handlers()
}

// log is the internal logging method
func (l *Logger) log(level core.Level, msg string) {
	s := l.ctx.state.Load()
	if s == nil || level < s.level {
		return
	}

	var caller core.CallerInfo
	if s.includeCaller {
		caller = core.GetCaller(callerSkip)
	}
	s.emit(l.name, level, msg, caller)
}

// Log logs a message at the specified level
func (l *Logger) Log(level core.Level, msg string) {
	l.log(level, msg)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string) {
	l.log(core.DebugLevel, msg)
}

// Info logs an info message
func (l *Logger) Info(msg string) {
	l.log(core.InfoLevel, msg)
}

// Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.log(core.WarningLevel, msg)
}

// Warn is an alias for Warning
func (l *Logger) Warn(msg string) {
	l.log(core.WarningLevel, msg)
}

// Error logs an error message
func (l *Logger) Error(msg string) {
	l.log(core.ErrorLevel, msg)
}

// Critical logs a critical message. Unlike Fatal in other loggers it does
// not exit the process.
func (l *Logger) Critical(msg string) {
	l.log(core.CriticalLevel, msg)
}

// Logf logs a formatted message at the specified level
func (l *Logger) Logf(level core.Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}
	l.log(level, fmt.Sprintf(format, args...))
}

// Debugf logs a debug message with formatting
func (l *Logger) Debugf(format string, args ...interface{}) {
	if !l.Enabled(core.DebugLevel) {
		return
	}
	l.log(core.DebugLevel, fmt.Sprintf(format, args...))
}

// Infof logs an info message with formatting
func (l *Logger) Infof(format string, args ...interface{}) {
	if !l.Enabled(core.InfoLevel) {
		return
	}
	l.log(core.InfoLevel, fmt.Sprintf(format, args...))
}

// Warningf logs a warning message with formatting
func (l *Logger) Warningf(format string, args ...interface{}) {
	if !l.Enabled(core.WarningLevel) {
		return
	}
	l.log(core.WarningLevel, fmt.Sprintf(format, args...))
}

// Errorf logs an error message with formatting
func (l *Logger) Errorf(format string, args ...interface{}) {
	if !l.Enabled(core.ErrorLevel) {
		return
	}
	l.log(core.ErrorLevel, fmt.Sprintf(format, args...))
}

// Criticalf logs a critical message with formatting
func (l *Logger) Criticalf(format string, args ...interface{}) {
	if !l.Enabled(core.CriticalLevel) {
		return
	}
	l.log(core.CriticalLevel, fmt.Sprintf(format, args...))
}

// Close releases the sinks of the logger's context. It affects every
// logger sharing that context.
func (l *Logger) Close() error {
	return l.ctx.Close()
}
