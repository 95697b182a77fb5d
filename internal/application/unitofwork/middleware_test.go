package unitofwork

import (
	"context"
	"errors"
	"testing"

	"github.com/realestate/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// collectingRepo stands in for a repository that buffers aggregate events
type collectingRepo struct {
	pending []shared.DomainEvent
}

func (r *collectingRepo) CollectEvents() []shared.DomainEvent {
	events := r.pending
	r.pending = nil
	return events
}

func newObservedScope(session Session, publisher shared.EventPublisher) (*Scope, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewScope(session, zap.New(core), publisher), logs
}

func TestChainOrdering(t *testing.T) {
	var trace []string

	tag := func(name string) Middleware {
		return MiddlewareFunc(func(ctx context.Context, exec *Execution, next Next) (any, error) {
			trace = append(trace, name+":in")
			result, err := next(ctx)
			trace = append(trace, name+":out")
			return result, err
		})
	}

	mws := []Middleware{tag("outer"), tag("inner")}
	terminal := func(ctx context.Context) (any, error) {
		trace = append(trace, "handler")
		return "done", nil
	}

	result, err := Chain(mws, terminal, &Execution{})(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, []string{"outer:in", "inner:in", "handler", "inner:out", "outer:out"}, trace)
}

func TestLoggingMiddleware(t *testing.T) {
	t.Run("logs start and success", func(t *testing.T) {
		scope, logs := newObservedScope(newFakeSession(), &fakePublisher{})
		exec := &Execution{Command: "partner.create", Scope: scope}

		result, err := NewLoggingMiddleware().Handle(context.Background(),
			exec,
			func(context.Context) (any, error) { return 7, nil },
		)

		require.NoError(t, err)
		assert.Equal(t, 7, result)
		assert.Equal(t, 1, logs.FilterMessage("command started").Len())
		assert.Equal(t, 1, logs.FilterMessage("command succeeded").Len())
	})

	t.Run("logs completion on failure too", func(t *testing.T) {
		scope, logs := newObservedScope(newFakeSession(), &fakePublisher{})
		exec := &Execution{Command: "partner.create", Scope: scope}

		_, err := NewLoggingMiddleware().Handle(context.Background(),
			exec,
			func(context.Context) (any, error) { return nil, errors.New("boom") },
		)

		assert.Error(t, err)
		assert.Equal(t, 1, logs.FilterMessage("command started").Len())
		assert.Equal(t, 1, logs.FilterMessage("command failed").Len())
	})

	t.Run("every entry carries the correlation id", func(t *testing.T) {
		scope, logs := newObservedScope(newFakeSession(), &fakePublisher{})
		exec := &Execution{Command: "partner.create", Scope: scope}

		_, err := NewLoggingMiddleware().Handle(context.Background(),
			exec,
			func(context.Context) (any, error) { return nil, nil },
		)
		require.NoError(t, err)

		for _, entry := range logs.All() {
			fields := entry.ContextMap()
			assert.Equal(t, scope.CorrelationID().String(), fields["correlation_id"])
		}
	})
}

func TestEventCollectorMiddleware(t *testing.T) {
	t.Run("drains collectors into the outbox on success", func(t *testing.T) {
		scope := newTestScope(t, newFakeSession(), &fakePublisher{})
		repo := &collectingRepo{pending: []shared.DomainEvent{newStubEvent("a"), newStubEvent("b")}}
		exec := &Execution{
			Scope: scope,
			Deps:  []NamedDependency{{Key: "repo", Instance: repo}},
		}

		_, err := NewEventCollectorMiddleware().Handle(context.Background(),
			exec,
			func(context.Context) (any, error) { return nil, nil },
		)

		require.NoError(t, err)
		assert.Equal(t, 2, scope.Outbox().Len())
		assert.Empty(t, repo.pending)
	})

	t.Run("collects nothing when the handler fails", func(t *testing.T) {
		scope := newTestScope(t, newFakeSession(), &fakePublisher{})
		repo := &collectingRepo{pending: []shared.DomainEvent{newStubEvent("a")}}
		exec := &Execution{
			Scope: scope,
			Deps:  []NamedDependency{{Key: "repo", Instance: repo}},
		}

		_, err := NewEventCollectorMiddleware().Handle(context.Background(),
			exec,
			func(context.Context) (any, error) { return nil, errors.New("boom") },
		)

		assert.Error(t, err)
		assert.Zero(t, scope.Outbox().Len())
		assert.Len(t, repo.pending, 1)
	})

	t.Run("dependency order decides event order", func(t *testing.T) {
		scope := newTestScope(t, newFakeSession(), &fakePublisher{})
		first := &collectingRepo{pending: []shared.DomainEvent{newStubEvent("from-first")}}
		second := &collectingRepo{pending: []shared.DomainEvent{newStubEvent("from-second")}}
		exec := &Execution{
			Scope: scope,
			Deps: []NamedDependency{
				{Key: "first", Instance: first},
				{Key: "second", Instance: second},
			},
		}

		_, err := NewEventCollectorMiddleware().Handle(context.Background(),
			exec,
			func(context.Context) (any, error) { return nil, nil },
		)
		require.NoError(t, err)

		drained := scope.Outbox().Drain()
		require.Len(t, drained, 2)
		assert.Equal(t, "from-first", drained[0].EventType())
		assert.Equal(t, "from-second", drained[1].EventType())
	})

	t.Run("non-collecting dependencies are skipped", func(t *testing.T) {
		scope := newTestScope(t, newFakeSession(), &fakePublisher{})
		exec := &Execution{
			Scope: scope,
			Deps:  []NamedDependency{{Key: "plain", Instance: 42}},
		}

		_, err := NewEventCollectorMiddleware().Handle(context.Background(),
			exec,
			func(context.Context) (any, error) { return nil, nil },
		)

		require.NoError(t, err)
		assert.Zero(t, scope.Outbox().Len())
	})
}
