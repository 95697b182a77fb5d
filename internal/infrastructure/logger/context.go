package logger

import (
	"context"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/application/unitofwork"
	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

// LoggerKey is the context key for the logger
const LoggerKey contextKey = "logger"

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithCorrelationID attaches a correlation id to the context and returns the
// enriched logger alongside it. The id is stored under the same context key
// the unit of work writes, so SQL logging sees the id no matter which side
// attached it. Every log line written through the returned logger carries
// the id, so all lines of one unit of work correlate.
func WithCorrelationID(ctx context.Context, logger *zap.Logger, id uuid.UUID) (context.Context, *zap.Logger) {
	ctx = unitofwork.WithCorrelationID(ctx, id)
	enriched := logger.With(zap.String("correlation_id", id.String()))
	return WithContext(ctx, enriched), enriched
}

// GetCorrelationID retrieves the correlation id from context, or uuid.Nil
// when the context carries none
func GetCorrelationID(ctx context.Context) uuid.UUID {
	return unitofwork.CorrelationIDFromContext(ctx)
}
