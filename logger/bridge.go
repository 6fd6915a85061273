package logger

import (
	"strconv"
	"strings"

	"github.com/philipp01105/foldersync/core"
)

// emitFrom writes a record that originated in another logging API. The
// caller is supplied by that API rather than captured here.
func (l *Logger) emitFrom(name string, level core.Level, msg string, caller core.CallerInfo) {
	s := l.ctx.state.Load()
	if s == nil || level < s.level {
		return
	}
	if !s.includeCaller {
		caller = core.CallerInfo{}
	}
	s.emit(name, level, msg, caller)
}

// subName joins a bridged logger name under l's name
func (l *Logger) subName(name string) string {
	if name == "" {
		return l.name
	}
	return l.name + "." + name
}

// appendKV renders " key=value", quoting values that would be ambiguous in
// a plain text line.
func appendKV(b *strings.Builder, key, value string) {
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	if value == "" || strings.ContainsAny(value, " =\"\n\t") {
		b.WriteString(strconv.Quote(value))
		return
	}
	b.WriteString(value)
}
