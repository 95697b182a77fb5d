package unitofwork

import (
	"context"
	"time"

	"github.com/realestate/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Execution is one unit of work about to run: the command name, the scope it
// runs inside, and the resolved dependencies in declaration order. Middlewares
// receive the execution before and after the handler runs.
type Execution struct {
	Command string
	Scope   *Scope
	Deps    []NamedDependency
}

// NamedDependency is a dependency resolved for an execution, in the order the
// handler declared it
type NamedDependency struct {
	Key      string
	Instance any
}

// Next advances the middleware chain and returns the handler's result
type Next func(ctx context.Context) (any, error)

// Middleware wraps a unit-of-work execution. Work before calling next runs on
// the way in, work after runs on the way out, in reverse registration order.
type Middleware interface {
	Handle(ctx context.Context, exec *Execution, next Next) (any, error)
}

// MiddlewareFunc adapts a function to the Middleware interface
type MiddlewareFunc func(ctx context.Context, exec *Execution, next Next) (any, error)

func (f MiddlewareFunc) Handle(ctx context.Context, exec *Execution, next Next) (any, error) {
	return f(ctx, exec, next)
}

// Chain composes middlewares around a terminal handler. The first registered
// middleware is outermost.
func Chain(middlewares []Middleware, terminal Next, exec *Execution) Next {
	next := terminal
	for i := len(middlewares) - 1; i >= 0; i-- {
		mw := middlewares[i]
		inner := next
		next = func(ctx context.Context) (any, error) {
			return mw.Handle(ctx, exec, inner)
		}
	}
	return next
}

// LoggingMiddleware logs the start and completion of every execution. It is
// registered outermost so completion is logged even when an inner middleware
// fails.
type LoggingMiddleware struct{}

func NewLoggingMiddleware() *LoggingMiddleware {
	return &LoggingMiddleware{}
}

func (m *LoggingMiddleware) Handle(ctx context.Context, exec *Execution, next Next) (any, error) {
	logger := exec.Scope.Logger()
	logger.Info("command started", zap.String("command", exec.Command))
	start := time.Now()

	result, err := next(ctx)

	elapsed := time.Since(start)
	if err != nil {
		logger.Info("command failed",
			zap.String("command", exec.Command),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return nil, err
	}
	logger.Info("command succeeded",
		zap.String("command", exec.Command),
		zap.Duration("elapsed", elapsed),
	)
	return result, nil
}

// EventCollectorMiddleware drains domain events from every dependency that
// collects them, in the order the dependencies were declared, and buffers
// them in the scope's outbox. It runs only when the handler succeeded, so a
// failed unit of work publishes nothing.
type EventCollectorMiddleware struct{}

func NewEventCollectorMiddleware() *EventCollectorMiddleware {
	return &EventCollectorMiddleware{}
}

func (m *EventCollectorMiddleware) Handle(ctx context.Context, exec *Execution, next Next) (any, error) {
	result, err := next(ctx)
	if err != nil {
		return nil, err
	}

	outbox := exec.Scope.Outbox()
	for _, dep := range exec.Deps {
		collector, ok := dep.Instance.(shared.EventCollector)
		if !ok {
			continue
		}
		for _, event := range collector.CollectEvents() {
			outbox.Put(event)
		}
	}
	return result, nil
}
