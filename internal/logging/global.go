package logging

import (
	"sync"
)

var (
	globalLogger *Logger
	globalMu     sync.RWMutex
	noop         = NewNoop()
)

// Global returns the global logger instance.
// Until InitGlobal or SetGlobal is called, and after CloseGlobal, it returns
// a logger that discards everything.
func Global() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return noop
	}
	return globalLogger
}

// SetGlobal sets the global logger instance. Passing nil restores the no-op
// logger.
func SetGlobal(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// Debug logs a debug message using the global logger.
func Debug(msg string, args ...any) {
	Global().Debug(msg, args...)
}

// Info logs an info message using the global logger.
func Info(msg string, args ...any) {
	Global().Info(msg, args...)
}

// Warn logs a warning message using the global logger.
func Warn(msg string, args ...any) {
	Global().Warn(msg, args...)
}

// Error logs an error message using the global logger.
func Error(msg string, args ...any) {
	Global().Error(msg, args...)
}

// With returns a new logger with the given attributes added.
func With(args ...any) *Logger {
	return Global().With(args...)
}

// InitGlobal creates a logger from config and installs it globally.
// If config is nil, default configuration is used.
func InitGlobal(config *Config) error {
	l, err := New(config)
	if err != nil {
		return err
	}
	SetGlobal(l)
	return nil
}

// CloseGlobal closes the global logger and restores the no-op logger.
func CloseGlobal() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		return nil
	}
	err := globalLogger.Close()
	globalLogger = nil
	return err
}
