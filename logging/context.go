package logging

import (
	"context"

	"go.uber.org/zap"
)

type requestLoggerKey struct{}

// ContextWithLogger returns ctx carrying logger for the rest of the request.
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	if logger == nil {
		return ctx
	}
	return context.WithValue(ctx, requestLoggerKey{}, logger)
}

// FromContextOr returns the logger stored in ctx, or fallback when there is none.
func FromContextOr(ctx context.Context, fallback *zap.Logger) *zap.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(requestLoggerKey{}).(*zap.Logger); ok && logger != nil {
			return logger
		}
	}
	return fallback
}

// FromContext is FromContextOr with the global logger as fallback.
func FromContext(ctx context.Context) *zap.Logger {
	return FromContextOr(ctx, zap.L())
}
