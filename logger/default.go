package logger

import (
	"sync"
)

var (
	defaultContext = NewContext()
	defaultMu      sync.RWMutex
)

// Default returns the process-wide default context
func Default() *Context {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultContext
}

// SetDefault replaces the default context. Loggers already obtained from
// the previous default keep writing through it.
func SetDefault(c *Context) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultContext = c
}

// Configure configures the default context
func Configure(cfg Config) (*Logger, error) {
	return Default().Configure(cfg)
}

// GetLogger returns the logger RootNamespace + "." + name from the default
// context
func GetLogger(name string) *Logger {
	return Default().Logger(name)
}

// Shutdown closes the default context's sinks
func Shutdown() error {
	return Default().Close()
}
