package logger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerContext(t *testing.T) {
	t.Run("round trips a logger through context", func(t *testing.T) {
		logger := zap.NewExample()
		ctx := WithContext(context.Background(), logger)

		assert.Same(t, logger, FromContext(ctx))
	})

	t.Run("missing logger yields a no-op logger", func(t *testing.T) {
		logger := FromContext(context.Background())
		require.NotNil(t, logger)
		logger.Info("must not panic")
	})
}

func TestWithCorrelationID(t *testing.T) {
	t.Run("enriched logger carries the id on every line", func(t *testing.T) {
		core, recorded := observer.New(zap.InfoLevel)
		id := uuid.New()

		ctx, enriched := WithCorrelationID(context.Background(), zap.New(core), id)
		enriched.Info("first")
		enriched.Info("second")

		assert.Equal(t, id, GetCorrelationID(ctx))
		for _, entry := range recorded.All() {
			assert.Equal(t, id.String(), entry.ContextMap()["correlation_id"])
		}
	})

	t.Run("context logger is the enriched one", func(t *testing.T) {
		ctx, enriched := WithCorrelationID(context.Background(), zap.NewExample(), uuid.New())
		assert.Same(t, enriched, FromContext(ctx))
	})

	t.Run("missing correlation id yields the nil sentinel", func(t *testing.T) {
		assert.Equal(t, uuid.Nil, GetCorrelationID(context.Background()))
	})
}
