// Package logger provides structured logging for respkv.
package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the application logger interface.
// args are alternating key-value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithContext(ctx context.Context) Logger
}

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// Format is the output format (json, console).
	Format string
	// Output is the output writer (defaults to os.Stderr). Ignored when File.Path is set.
	Output io.Writer
	// File enables rotated file output.
	File FileConfig
	// AddSource adds the caller file and line to log entries.
	AddSource bool
}

// FileConfig configures rotated file output.
type FileConfig struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		Format:    "json",
		Output:    os.Stderr,
		AddSource: false,
	}
}

// globalLevel is shared by every logger built with New so SetLevel affects all of them.
var globalLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)

// SetLevel dynamically sets the global log level.
// Unknown names select info.
func SetLevel(level string) {
	globalLevel.SetLevel(parseLevel(level))
}

// GetLevel returns the current log level as a string.
func GetLevel() string {
	switch globalLevel.Level() {
	case zapcore.DebugLevel:
		return "debug"
	case zapcore.WarnLevel:
		return "warn"
	case zapcore.ErrorLevel:
		return "error"
	default:
		return "info"
	}
}

// ValidLevel reports whether level names a supported log level.
func ValidLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

type holder struct{ l Logger }

// Global logger instance for convenience methods.
var defaultLogger atomic.Pointer[holder]

func init() {
	l, _ := New(DefaultConfig())
	defaultLogger.Store(&holder{l: l})
}

// SetDefault sets the default global logger.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger.Store(&holder{l: l})
	}
}

// Default returns the default global logger.
func Default() Logger {
	return defaultLogger.Load().l
}

// Sync flushes buffered entries of the default logger.
func Sync() error {
	if s, ok := Default().(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}

// Debug logs at debug level using the default logger.
func Debug(msg string, args ...any) {
	Default().Debug(msg, args...)
}

// Info logs at info level using the default logger.
func Info(msg string, args ...any) {
	Default().Info(msg, args...)
}

// Warn logs at warn level using the default logger.
func Warn(msg string, args ...any) {
	Default().Warn(msg, args...)
}

// Error logs at error level using the default logger.
func Error(msg string, args ...any) {
	Default().Error(msg, args...)
}
