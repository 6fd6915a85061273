package logger

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/foldersync/core"
)

// zapCore routes go.uber.org/zap entries through a Logger. Fields are
// rendered as key=value text after the message; zap logger names are
// nested under the Logger's name.
type zapCore struct {
	logger *Logger
	fields []zapcore.Field
}

// NewZapCore creates a zapcore.Core that writes through l. Use it with
// zap.New to hand a *zap.Logger to dependencies that require one.
func NewZapCore(l *Logger) zapcore.Core {
	return &zapCore{logger: l}
}

func (c *zapCore) Enabled(level zapcore.Level) bool {
	return c.logger.Enabled(zapLevelToCore(level))
}

func (c *zapCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &zapCore{logger: c.logger, fields: merged}
}

func (c *zapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *zapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	msg := ent.Message
	if len(c.fields)+len(fields) > 0 {
		enc := zapcore.NewMapObjectEncoder()
		for _, f := range c.fields {
			f.AddTo(enc)
		}
		for _, f := range fields {
			f.AddTo(enc)
		}
		msg = renderZapFields(msg, enc.Fields)
	}

	var caller core.CallerInfo
	if ent.Caller.Defined {
		caller = core.NewCallerInfo(ent.Caller.File, ent.Caller.Line)
	}

	c.logger.emitFrom(c.logger.subName(ent.LoggerName), zapLevelToCore(ent.Level), msg, caller)
	return nil
}

func (c *zapCore) Sync() error {
	return c.logger.ctx.Sync()
}

// renderZapFields appends encoded fields in key order
func renderZapFields(msg string, fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(msg)
	for _, k := range keys {
		appendKV(&b, k, fmt.Sprint(fields[k]))
	}
	return b.String()
}

// zapLevelToCore converts a zapcore.Level to a core.Level.
func zapLevelToCore(level zapcore.Level) core.Level {
	switch {
	case level >= zapcore.DPanicLevel:
		return core.CriticalLevel
	case level >= zapcore.ErrorLevel:
		return core.ErrorLevel
	case level >= zapcore.WarnLevel:
		return core.WarningLevel
	case level >= zapcore.InfoLevel:
		return core.InfoLevel
	default:
		return core.DebugLevel
	}
}
