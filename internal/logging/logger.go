// Package logging provides structured logging for roster.
// Records go to a timestamped file under the log directory and, when
// enabled, to a colored console handler.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// Level represents log severity levels.
type Level int

const (
	// LevelDebug is for detailed debugging information.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name such as "debug" or "WARN" to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FilePrefix is the name prefix of every log file.
const FilePrefix = "roster_"

// Config configures the logger.
type Config struct {
	// Level is the minimum log level to output.
	Level Level
	// LogDir is the directory to write log files (e.g., ".roster/logs").
	LogDir string
	// MaxLogFiles is the maximum number of log files to keep.
	MaxLogFiles int
	// MaxLogAge is the maximum age of log files before cleanup.
	MaxLogAge time.Duration
	// Console enables colored logging to stderr in addition to the file.
	Console bool
	// JSONFormat writes the file log as JSON.
	JSONFormat bool
}

// DefaultConfig returns default logging configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:       LevelInfo,
		LogDir:      ".roster/logs",
		MaxLogFiles: 10,
		MaxLogAge:   7 * 24 * time.Hour,
	}
}

// consoleOut is where console records go; tests replace it.
var consoleOut io.Writer = os.Stderr

// Logger is a structured logger for roster.
type Logger struct {
	slog    *slog.Logger
	config  *Config
	logFile *os.File
	logPath string
	mu      sync.Mutex
}

// New creates a new logger with the given configuration.
// It creates a log file in the configured log directory.
func New(config *Config) (*Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := os.MkdirAll(config.LogDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(config.LogDir, FilePrefix+time.Now().Format("20060102_150405")+".log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	logger := &Logger{
		slog:    slog.New(newHandler(config, logFile)),
		config:  config,
		logFile: logFile,
		logPath: logPath,
	}

	go logger.Cleanup()

	return logger, nil
}

// NewConsole creates a logger that writes only to the console handler.
// The CLI uses it for commands that should not leave log files behind.
func NewConsole(level Level) *Logger {
	return &Logger{
		slog:   slog.New(consoleHandler(level)),
		config: &Config{Level: level, Console: true},
	}
}

// NewNoop creates a no-op logger that discards all output.
func NewNoop() *Logger {
	return &Logger{
		slog:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		config: DefaultConfig(),
	}
}

func newHandler(config *Config, file io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: config.Level.slogLevel(),
	}

	var fileHandler slog.Handler
	if config.JSONFormat {
		fileHandler = slog.NewJSONHandler(file, opts)
	} else {
		fileHandler = slog.NewTextHandler(file, opts)
	}

	if !config.Console {
		return fileHandler
	}
	return fanout{fileHandler, consoleHandler(config.Level)}
}

func consoleHandler(level Level) slog.Handler {
	return tint.NewHandler(consoleOut, &tint.Options{
		Level:      level.slogLevel(),
		TimeFormat: time.Kitchen,
	})
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}

// LogPath returns the path to the current log file.
func (l *Logger) LogPath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.logPath
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs an info message.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs an error message.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// With returns a new logger with the given attributes added.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:    l.slog.With(args...),
		config:  l.config,
		logFile: l.logFile,
		logPath: l.logPath,
	}
}

// Context keys for logging.
type contextKey string

const (
	// ContextKeyOperation is the context key for the running operation
	// (add, import, export...).
	ContextKeyOperation contextKey = "operation"
	// ContextKeyPath is the context key for the file being read or written.
	ContextKeyPath contextKey = "path"
)

// WithOperation adds the operation name to the context.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, ContextKeyOperation, op)
}

// WithPath adds a file path to the context.
func WithPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, ContextKeyPath, path)
}

// WithContext returns a logger carrying the operation and path stored in ctx.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	next := l.slog

	if op, ok := ctx.Value(ContextKeyOperation).(string); ok && op != "" {
		next = next.With("operation", op)
	}
	if path, ok := ctx.Value(ContextKeyPath).(string); ok && path != "" {
		next = next.With("path", path)
	}

	return &Logger{
		slog:    next,
		config:  l.config,
		logFile: l.logFile,
		logPath: l.logPath,
	}
}

// Cleanup removes old log files based on MaxLogFiles and MaxLogAge.
func (l *Logger) Cleanup() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.config.LogDir == "" {
		return nil
	}

	entries, err := os.ReadDir(l.config.LogDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFileInfo struct {
		path    string
		modTime time.Time
	}
	var logFiles []logFileInfo

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		logFiles = append(logFiles, logFileInfo{
			path:    filepath.Join(l.config.LogDir, name),
			modTime: info.ModTime(),
		})
	}

	// Newest first
	sort.Slice(logFiles, func(i, j int) bool {
		return logFiles[i].modTime.After(logFiles[j].modTime)
	})

	now := time.Now()
	var removed int

	for i, lf := range logFiles {
		if lf.path == l.logPath {
			continue
		}

		expired := l.config.MaxLogAge > 0 && now.Sub(lf.modTime) > l.config.MaxLogAge
		excess := l.config.MaxLogFiles > 0 && i >= l.config.MaxLogFiles
		if !expired && !excess {
			continue
		}
		if err := os.Remove(lf.path); err == nil {
			removed++
		}
	}

	if removed > 0 {
		l.slog.Debug("cleaned up old log files", "count", removed)
	}

	return nil
}
