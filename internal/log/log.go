// Package log provides leveled, categorized logging for pixelpet.
// Because the TUI owns the terminal, output goes to a log file under the
// user config directory rather than stderr. Until Init is called, all
// logging is a no-op so tests and library use stay silent.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Category identifies the subsystem a log line belongs to.
type Category string

const (
	CatUI     Category = "ui"
	CatAudio  Category = "audio"
	CatConfig Category = "config"
	CatDB     Category = "db"
	CatRun    Category = "run"
)

var (
	mu      sync.RWMutex
	logger  *slog.Logger
	closeFn func() error
)

// Init opens (or creates) the log file at path and begins logging at the
// given level ("debug", "info", "warn", "error"). Calling Init twice
// replaces the previous sink.
func Init(path, level string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // G304: path comes from app config
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if closeFn != nil {
		_ = closeFn()
	}
	logger = newLogger(f, level)
	closeFn = f.Close
	return nil
}

// InitWriter directs logging to an arbitrary writer. Used by tests.
func InitWriter(w io.Writer, level string) {
	mu.Lock()
	defer mu.Unlock()
	if closeFn != nil {
		_ = closeFn()
		closeFn = nil
	}
	logger = newLogger(w, level)
}

// Close flushes and closes the log sink. Safe to call without Init.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if closeFn != nil {
		_ = closeFn()
		closeFn = nil
	}
	logger = nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)}))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Debug logs a debug message for the given category.
func Debug(cat Category, msg string, args ...any) {
	emit(slog.LevelDebug, cat, msg, args...)
}

// Info logs an informational message for the given category.
func Info(cat Category, msg string, args ...any) {
	emit(slog.LevelInfo, cat, msg, args...)
}

// Warn logs a warning for the given category.
func Warn(cat Category, msg string, args ...any) {
	emit(slog.LevelWarn, cat, msg, args...)
}

// Error logs an error message for the given category.
func Error(cat Category, msg string, args ...any) {
	emit(slog.LevelError, cat, msg, args...)
}

// ErrorErr logs an error message with the error attached as an attribute.
func ErrorErr(cat Category, msg string, err error, args ...any) {
	emit(slog.LevelError, cat, msg, append([]any{"error", err}, args...)...)
}

func emit(level slog.Level, cat Category, msg string, args ...any) {
	mu.RLock()
	l := logger
	mu.RUnlock()
	if l == nil {
		return
	}
	l.Log(context.Background(), level, msg, append([]any{"cat", string(cat)}, args...)...)
}
