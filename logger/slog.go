package logger

import (
	"context"
	"log/slog"
	"runtime"
	"strings"

	"github.com/philipp01105/foldersync/core"
)

// SlogHandler adapts a Logger to log/slog, so libraries that log through
// slog end up in the same sinks. Attributes are appended to the message as
// key=value text.
type SlogHandler struct {
	logger *Logger
	attrs  string // pre-rendered WithAttrs output
	group  string
}

// NewSlogHandler creates a slog.Handler that writes through l
func NewSlogHandler(l *Logger) *SlogHandler {
	return &SlogHandler{logger: l}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return s.logger.Enabled(slogLevelToCore(level))
}

// Handle renders the record and passes it to the wrapped logger.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	var b strings.Builder
	b.WriteString(record.Message)
	b.WriteString(s.attrs)
	record.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, s.group, a)
		return true
	})

	s.logger.emitFrom(s.logger.name, slogLevelToCore(record.Level), b.String(), callerFromPC(record.PC))
	return nil
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(s.attrs)
	for _, a := range attrs {
		appendAttr(&b, s.group, a)
	}
	return &SlogHandler{logger: s.logger, attrs: b.String(), group: s.group}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	group := name
	if s.group != "" {
		group = s.group + "." + name
	}
	return &SlogHandler{logger: s.logger, attrs: s.attrs, group: group}
}

// slogLevelToCore converts a slog.Level to a core.Level. Levels four steps
// above Error, the slog convention for a custom fatal level, map to
// CriticalLevel.
func slogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError+4:
		return core.CriticalLevel
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarningLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}

// appendAttr flattens a, prefixing keys with group
func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		prefix := key
		if prefix == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, prefix, ga)
		}
		return
	}
	appendKV(b, key, a.Value.String())
}

func callerFromPC(pc uintptr) core.CallerInfo {
	if pc == 0 {
		return core.CallerInfo{}
	}
	frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
	return core.NewCallerInfo(frame.File, frame.Line)
}
