package bigarray

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bigarray-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithLength adds a length field to the logger.
func (l *Logger) WithLength(length uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("length", length),
	}
}

// WithCapacity adds a capacity field to the logger.
func (l *Logger) WithCapacity(capacity uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("capacity", capacity),
	}
}

// LogGrow logs a capacity growth.
func (l *Logger) LogGrow(ctx context.Context, oldCap, newCap uint64) {
	l.DebugContext(ctx, "capacity grown",
		"old_capacity", oldCap,
		"new_capacity", newCap,
	)
}

// LogTrim logs a capacity trim.
func (l *Logger) LogTrim(ctx context.Context, oldCap, newCap uint64) {
	l.DebugContext(ctx, "capacity trimmed",
		"old_capacity", oldCap,
		"new_capacity", newCap,
	)
}

// LogSnapshotSave logs a snapshot save operation.
func (l *Logger) LogSnapshotSave(ctx context.Context, name string, count uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"name", name,
			"count", count,
		)
	}
}

// LogSnapshotLoad logs a snapshot load operation.
func (l *Logger) LogSnapshotLoad(ctx context.Context, name string, count uint64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot loaded",
			"name", name,
			"count", count,
		)
	}
}
