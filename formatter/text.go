package formatter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/philipp01105/foldersync/core"
)

type segmentKind uint8

const (
	literalSegment segmentKind = iota
	timeSegment
	nameSegment
	levelSegment
	messageSegment
	callerSegment
)

var placeholders = map[string]segmentKind{
	"time":    timeSegment,
	"name":    nameSegment,
	"level":   levelSegment,
	"message": messageSegment,
	"caller":  callerSegment,
}

type segment struct {
	kind segmentKind
	text string
}

// TextFormatter formats log entries as one line of text following a
// message template. The template is compiled once; formatting walks the
// pre-split segments without re-parsing.
type TextFormatter struct {
	Config
	segments []segment
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.MessageFormat == "" {
		cfg.MessageFormat = DefaultMessageFormat
	}
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTimestampFormat
	}
	return &TextFormatter{
		Config:   cfg,
		segments: compile(cfg.MessageFormat),
	}
}

// compile splits a template into literal and placeholder segments. Braces
// that do not enclose a known placeholder are kept as literal text.
func compile(tmpl string) []segment {
	var segs []segment
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{kind: literalSegment, text: lit.String()})
			lit.Reset()
		}
	}

	for len(tmpl) > 0 {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			lit.WriteString(tmpl)
			break
		}
		lit.WriteString(tmpl[:open])
		tmpl = tmpl[open:]

		end := strings.IndexByte(tmpl, '}')
		if end < 0 {
			lit.WriteString(tmpl)
			break
		}
		kind, ok := placeholders[tmpl[1:end]]
		if !ok {
			// a stray brace; a placeholder may still start after it
			lit.WriteByte('{')
			tmpl = tmpl[1:]
			continue
		}
		flush()
		segs = append(segs, segment{kind: kind})
		tmpl = tmpl[end+1:]
	}
	flush()
	return segs
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEntry(entry, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatEntry formats an entry as text into the given buffer (implements BufferFormatter).
func (f *TextFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	for _, s := range f.segments {
		switch s.kind {
		case literalSegment:
			buf.WriteString(s.text)
		case timeSegment:
			buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		case nameSegment:
			buf.WriteString(entry.Logger)
		case levelSegment:
			buf.WriteString(entry.Level.String())
		case messageSegment:
			buf.WriteString(entry.Message)
		case callerSegment:
			if entry.Caller.Defined() {
				buf.WriteString(entry.Caller.File)
				buf.WriteByte(':')
				buf.Write(strconv.AppendInt(buf.AvailableBuffer(), int64(entry.Caller.Line), 10))
			}
		}
	}
	buf.WriteByte('\n')
}
