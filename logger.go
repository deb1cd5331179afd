package bptree

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bptree-specific context.
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

// WithFanout adds a fanout field to the logger.
func (l *Logger) WithFanout(m int) *Logger {
	return &Logger{
		Logger: l.Logger.With("fanout", m),
	}
}

// WithStrategy adds a search-strategy field to the logger.
func (l *Logger) WithStrategy(s Strategy) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", s.String()),
	}
}

// WithHeight adds a tree-height field to the logger.
func (l *Logger) WithHeight(h int) *Logger {
	return &Logger{
		Logger: l.Logger.With("height", h),
	}
}

// LogInsert logs a failed insert. Successful inserts are not logged;
// the hot path stays quiet.
func (l *Logger) LogInsert(err error) {
	if err != nil {
		l.Error("insert failed", "error", err)
	}
}

// LogRootSplit logs a root split, the only event that grows the tree.
func (l *Logger) LogRootSplit(height int) {
	l.Debug("root split", "height", height)
}
