package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	slogLogger *slog.Logger
	levelVar   = new(slog.LevelVar)
	logFile    *os.File
	mu         sync.Mutex
	logPath    string
	initDone   bool
)

// DefaultLogPath returns the log file used when --log-file is not given.
func DefaultLogPath() string {
	return filepath.Join(os.TempDir(), "vchat.log")
}

// SetDebug enables debug level logging. Otherwise the floor is info.
func SetDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens the log file at path. The terminal belongs to the UI, so the
// file is the only log sink. Until Init is called all output is discarded.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if initDone {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	logPath = path
	logFile = f
	slogLogger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	initDone = true

	slogLogger.Info("Logger initialized", "path", path)
	return nil
}

func ensureInit() {
	if slogLogger == nil {
		slogLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelVar}))
	}
}

// Path returns the file the logger writes to, or "" before Init.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// logWithLevel logs a message at the given level using printf-style formatting
func logWithLevel(level slog.Level, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()

	if !slogLogger.Enabled(context.Background(), level) {
		return
	}

	slogLogger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

// Debug writes a debug message to the log file (only after SetDebug(true))
func Debug(format string, args ...interface{}) {
	logWithLevel(slog.LevelDebug, format, args...)
}

// Warn writes a warning message to the log file
func Warn(format string, args ...interface{}) {
	logWithLevel(slog.LevelWarn, format, args...)
}

// Error writes an error message to the log file
func Error(format string, args ...interface{}) {
	logWithLevel(slog.LevelError, format, args...)
}

// Close closes the log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	slogLogger = nil
}

// Reset resets the logger state, allowing reinitialization.
// This is primarily for testing purposes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	initDone = false
	logPath = ""
	slogLogger = nil
	levelVar = new(slog.LevelVar)
}

// ComponentLogger returns a slog.Logger with the component attribute pre-attached.
//
// Example:
//
//	log := logger.ComponentLogger("pad")
//	log.Debug("selection moved", "from", old, "to", idx)
func ComponentLogger(component string) *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	return slogLogger.With(slog.String("component", component))
}
