package core

import "strings"

// Level represents the severity level of a log entry
type Level int8

const (
	// DebugLevel for detailed debugging information
	DebugLevel Level = iota
	// InfoLevel for general informational messages (default)
	InfoLevel
	// WarningLevel for conditions that deserve attention
	WarningLevel
	// ErrorLevel for error messages
	ErrorLevel
	// CriticalLevel for failures the application cannot recover from
	CriticalLevel
)

// levelNames is indexed by Level.
var levelNames = [...]string{
	DebugLevel:    "DEBUG",
	InfoLevel:     "INFO",
	WarningLevel:  "WARNING",
	ErrorLevel:    "ERROR",
	CriticalLevel: "CRITICAL",
}

// String returns the string representation of the level
func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "UNKNOWN"
}

// Levels returns every level in ascending severity.
func Levels() []Level {
	return []Level{DebugLevel, InfoLevel, WarningLevel, ErrorLevel, CriticalLevel}
}

// LookupLevel resolves one of the five level names case-insensitively. The
// second result reports whether the name was recognized.
func LookupLevel(name string) (Level, bool) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return DebugLevel, true
	case "INFO":
		return InfoLevel, true
	case "WARNING":
		return WarningLevel, true
	case "ERROR":
		return ErrorLevel, true
	case "CRITICAL":
		return CriticalLevel, true
	default:
		return InfoLevel, false
	}
}

// ParseLevel converts a string to a Level. Unrecognized names, including the
// empty string, resolve to InfoLevel.
func ParseLevel(name string) Level {
	l, _ := LookupLevel(name)
	return l
}
