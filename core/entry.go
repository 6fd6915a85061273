package core

import (
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

// Entry is one log record on its way to the sinks.
type Entry struct {
	Time    time.Time
	Level   Level
	Logger  string
	Message string
	Caller  CallerInfo
}

// CallerInfo is a call site as rendered by {caller}. The zero value means
// the caller was not captured.
type CallerInfo struct {
	File string // base name only
	Line int
}

// NewCallerInfo builds a CallerInfo from a full source path
func NewCallerInfo(path string, line int) CallerInfo {
	if path == "" || line <= 0 {
		return CallerInfo{}
	}
	return CallerInfo{File: filepath.Base(path), Line: line}
}

// Defined reports whether the call site is known
func (c CallerInfo) Defined() bool {
	return c.Line > 0
}

var entryPool = sync.Pool{
	New: func() any { return new(Entry) },
}

// GetEntry takes an Entry from the pool, stamped with the current time.
// Return it with PutEntry once every sink has handled it.
func GetEntry(level Level, logger, message string) *Entry {
	e := entryPool.Get().(*Entry)
	*e = Entry{
		Time:    time.Now(),
		Level:   level,
		Logger:  logger,
		Message: message,
	}
	return e
}

// PutEntry clears e and returns it to the pool
func PutEntry(e *Entry) {
	if e == nil {
		return
	}
	*e = Entry{}
	entryPool.Put(e)
}

// GetCaller captures the call site skip frames up; 0 is GetCaller itself.
func GetCaller(skip int) CallerInfo {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		return CallerInfo{}
	}
	return NewCallerInfo(file, line)
}
