package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With returns a child context whose logger carries the extra fields.
// Fields accumulate across nested calls.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey{}, From(ctx).With(fields...))
}

// From returns the logger stored in context, falling back to the service-wide
// default so callers never receive nil.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
