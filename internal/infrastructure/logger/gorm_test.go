package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/application/unitofwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func TestGormLoggerTrace(t *testing.T) {
	query := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("logs queries at debug with info level", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Info)

		gl.Trace(context.Background(), time.Now(), query, nil)

		logs := recorded.FilterMessage("SQL Query").All()
		require.Len(t, logs, 1)
		assert.Equal(t, "SELECT 1", logs[0].ContextMap()["sql"])
	})

	t.Run("logs errors", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), query, errors.New("syntax error"))

		assert.Equal(t, 1, recorded.FilterMessage("SQL Error").Len())
	})

	t.Run("record-not-found is ignored", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Error)

		gl.Trace(context.Background(), time.Now(), query, gormlogger.ErrRecordNotFound)

		assert.Zero(t, recorded.Len())
	})

	t.Run("slow queries are warned", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Nanosecond))

		gl.Trace(context.Background(), time.Now().Add(-time.Second), query, nil)

		require.Equal(t, 1, recorded.Len())
		assert.Equal(t, zapcore.WarnLevel, recorded.All()[0].Level)
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Silent)

		gl.Trace(context.Background(), time.Now(), query, errors.New("ignored"))

		assert.Zero(t, recorded.Len())
	})

	t.Run("correlation id from context is attached", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Info)
		id := uuid.New()
		ctx, _ := WithCorrelationID(context.Background(), zap.NewNop(), id)

		gl.Trace(ctx, time.Now(), query, nil)

		logs := recorded.FilterMessage("SQL Query").All()
		require.Len(t, logs, 1)
		assert.Equal(t, id.String(), logs[0].ContextMap()["correlation_id"])
	})

	t.Run("id attached by the unit of work reaches sql lines", func(t *testing.T) {
		gl, recorded := newObservedGormLogger(gormlogger.Info)
		id := uuid.New()
		ctx := unitofwork.WithCorrelationID(context.Background(), id)

		gl.Trace(ctx, time.Now(), query, nil)

		logs := recorded.FilterMessage("SQL Query").All()
		require.Len(t, logs, 1)
		assert.Equal(t, id.String(), logs[0].ContextMap()["correlation_id"])
	})
}

func TestGormLoggerLogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)

	quiet := gl.LogMode(gormlogger.Silent)

	assert.NotSame(t, gl, quiet)
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"bogus", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, MapGormLogLevel(tt.input))
		})
	}
}
