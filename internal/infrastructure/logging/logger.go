package logging

import (
	"context"
	"log/slog"
	"os"
)

// ContextKey is the type for context keys.
type ContextKey string

const (
	// RequestIDKey carries the inbound request id into worker logs.
	RequestIDKey ContextKey = "request_id"
	// EntryIDKey carries the ledger entry id a worker is handling.
	EntryIDKey ContextKey = "entry_id"
)

// Logger is the slog logger used by background workers (outbox
// publisher, retrier, migrator). The HTTP path logs through zerolog;
// workers take *slog.Logger so they stay usable as libraries.
type Logger struct {
	*slog.Logger
}

// New creates a new structured logger.
func New(level slog.Level, format string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger annotated with whatever correlation
// fields the context carries.
func (l *Logger) WithContext(ctx context.Context) *slog.Logger {
	logger := l.Logger

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		logger = logger.With("request_id", requestID)
	}

	if entryID, ok := ctx.Value(EntryIDKey).(string); ok && entryID != "" {
		logger = logger.With("entry_id", entryID)
	}

	return logger
}

// InfoCtx logs an info message with context fields.
func (l *Logger) InfoCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Info(msg, args...)
}

// ErrorCtx logs an error message with context fields.
func (l *Logger) ErrorCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Error(msg, args...)
}

// WarnCtx logs a warning message with context fields.
func (l *Logger) WarnCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Warn(msg, args...)
}

// DebugCtx logs a debug message with context fields.
func (l *Logger) DebugCtx(ctx context.Context, msg string, args ...any) {
	l.WithContext(ctx).Debug(msg, args...)
}

// ParseLevel parses a log level string.
func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
