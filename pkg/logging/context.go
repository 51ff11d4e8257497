package logging

import (
	"context"
)

// contextKey is an unexported type for context keys to prevent collisions
type contextKey int

const (
	loggerKey contextKey = iota
	runIDKey
)

// WithLogger returns a new context carrying logger.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in ctx, or the default logger.
// A run ID stored with WithRunID is attached as a field.
func FromContext(ctx context.Context) Logger {
	if ctx == nil {
		return DefaultLogger()
	}
	logger, ok := ctx.Value(loggerKey).(Logger)
	if !ok || logger == nil {
		logger = DefaultLogger()
	}
	if id, ok := RunIDFromContext(ctx); ok {
		logger = logger.With(RunID(id))
	}
	return logger
}

// WithRunID returns a new context with the analysis run ID set
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run ID from the context.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}
