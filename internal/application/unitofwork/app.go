package unitofwork

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Handler is the body of a unit of work. It receives the command payload and
// the dependencies it declared, resolved from the scope in declaration order.
type Handler func(ctx context.Context, payload any, deps Dependencies) (any, error)

// HandlerDescriptor registers a handler under a command name together with
// the dependency keys it needs
type HandlerDescriptor struct {
	Command string
	Deps    []string
	Handler Handler
}

// Dependencies gives a handler access to its resolved dependencies by key
type Dependencies struct {
	named []NamedDependency
}

// Get returns the dependency registered under key
func (d Dependencies) Get(key string) (any, error) {
	for _, dep := range d.named {
		if dep.Key == key {
			return dep.Instance, nil
		}
	}
	return nil, shared.ErrNotFound.WithCause(fmt.Errorf("dependency %q was not declared by the handler", key))
}

// Dep resolves a handler dependency as a concrete type
func Dep[T any](deps Dependencies, key string) (T, error) {
	var zero T
	instance, err := deps.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, shared.ErrConfiguration.WithCause(fmt.Errorf("dependency %q is %T, not %T", key, instance, zero))
	}
	return typed, nil
}

// RethrowPolicy decides whether a unit-of-work failure propagates to the
// caller after rollback. The default swallows everything: the failure is
// logged, the transaction is rolled back and the error is reported on the
// Result only.
type RethrowPolicy func(err error) bool

// SwallowAll is the default policy: no failure propagates
func SwallowAll(error) bool { return false }

// RethrowAll propagates every failure after rollback
func RethrowAll(error) bool { return true }

// RethrowKinds propagates failures of the given kinds and swallows the rest
func RethrowKinds(kinds ...shared.ErrorKind) RethrowPolicy {
	return func(err error) bool {
		kind := shared.KindOf(err)
		for _, k := range kinds {
			if kind == k {
				return true
			}
		}
		return false
	}
}

// Result is the outcome of a unit of work. When the configured policy
// swallows a failure, Execute returns a nil error and the failure is carried
// here instead.
type Result struct {
	Value         any
	Err           error
	CorrelationID uuid.UUID
	RolledBack    bool
}

// SessionFactory opens a fresh session for one scope
type SessionFactory func(ctx context.Context) (Session, error)

// Repositories builds the per-scope repository bindings on top of the scope's
// session. It returns them in a stable order because event collection drains
// dependencies in declaration order.
type Repositories func(scope *Scope) []NamedDependency

// App owns the handler registry and runs each command inside its own
// transactional scope, with the middleware chain wrapped around the handler.
type App struct {
	sessions     SessionFactory
	repositories Repositories
	publisher    shared.EventPublisher
	logger       *zap.Logger
	middlewares  []Middleware
	handlers     map[string]HandlerDescriptor
	rethrow      RethrowPolicy
}

// Option configures an App
type Option func(*App)

// WithMiddleware appends extra middlewares after the built-in ones
func WithMiddleware(mws ...Middleware) Option {
	return func(a *App) {
		a.middlewares = append(a.middlewares, mws...)
	}
}

// WithRethrowPolicy replaces the default swallow-all failure policy
func WithRethrowPolicy(policy RethrowPolicy) Option {
	return func(a *App) {
		a.rethrow = policy
	}
}

// NewApp builds an App. Logging runs outermost and event collection
// innermost, so completion is always logged and events are only collected
// from successful handlers.
func NewApp(sessions SessionFactory, repositories Repositories, publisher shared.EventPublisher, logger *zap.Logger, opts ...Option) *App {
	a := &App{
		sessions:     sessions,
		repositories: repositories,
		publisher:    publisher,
		logger:       logger,
		middlewares: []Middleware{
			NewLoggingMiddleware(),
			NewEventCollectorMiddleware(),
		},
		handlers: make(map[string]HandlerDescriptor),
		rethrow:  SwallowAll,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RegisterHandler adds a handler to the registry. Registering the same
// command twice is a configuration error.
func (a *App) RegisterHandler(desc HandlerDescriptor) error {
	if desc.Command == "" {
		return shared.ErrConfiguration.WithCause(fmt.Errorf("handler has no command name"))
	}
	if desc.Handler == nil {
		return shared.ErrConfiguration.WithCause(fmt.Errorf("handler %q has no body", desc.Command))
	}
	if _, exists := a.handlers[desc.Command]; exists {
		return shared.ErrConfiguration.WithCause(fmt.Errorf("handler %q is already registered", desc.Command))
	}
	a.handlers[desc.Command] = desc
	return nil
}

// MustRegisterHandler is RegisterHandler panicking on error, for wiring at
// startup
func (a *App) MustRegisterHandler(desc HandlerDescriptor) {
	if err := a.RegisterHandler(desc); err != nil {
		panic(err)
	}
}

// Execute runs the named command inside a fresh transactional scope. On
// success the outbox is flushed and the session committed; on any failure
// the session is rolled back and the configured policy decides whether the
// error propagates. Overrides replace scope dependencies by key before
// resolution, which is how tests substitute fakes.
func (a *App) Execute(ctx context.Context, command string, payload any, overrides map[string]any) (Result, error) {
	desc, ok := a.handlers[command]
	if !ok {
		return Result{}, shared.ErrNotFound.WithCause(fmt.Errorf("no handler registered for command %q", command))
	}

	session, err := a.sessions(ctx)
	if err != nil {
		return Result{}, shared.ErrPersistence.WithCause(err)
	}

	scope := NewScope(session, a.logger, a.publisher)
	defer scope.close()

	correlationID := scope.CorrelationID()
	ctx = WithCorrelationID(ctx, correlationID)

	if a.repositories != nil {
		for _, dep := range a.repositories(scope) {
			scope.Register(dep.Key, dep.Instance)
		}
	}
	for key, instance := range overrides {
		scope.Register(key, instance)
	}

	if err := scope.begin(); err != nil {
		return Result{CorrelationID: correlationID}, err
	}

	deps := make([]NamedDependency, 0, len(desc.Deps))
	for _, key := range desc.Deps {
		instance, err := scope.Provider().Resolve(key)
		if err != nil {
			scope.rollback(err)
			return a.conclude(Result{CorrelationID: correlationID, RolledBack: true}, err)
		}
		deps = append(deps, NamedDependency{Key: key, Instance: instance})
	}

	exec := &Execution{
		Command: command,
		Scope:   scope,
		Deps:    deps,
	}

	terminal := func(ctx context.Context) (any, error) {
		return desc.Handler(ctx, payload, Dependencies{named: deps})
	}

	value, err := Chain(a.middlewares, terminal, exec)(ctx)
	if err != nil {
		scope.rollback(err)
		return a.conclude(Result{CorrelationID: correlationID, RolledBack: true}, err)
	}

	if err := scope.flushOutbox(ctx); err != nil {
		scope.rollback(err)
		return a.conclude(Result{CorrelationID: correlationID, RolledBack: true}, err)
	}

	if err := scope.commit(); err != nil {
		scope.rollback(err)
		return a.conclude(Result{CorrelationID: correlationID, RolledBack: true}, err)
	}

	return Result{Value: value, CorrelationID: correlationID}, nil
}

// conclude applies the rethrow policy to a failed unit of work
func (a *App) conclude(result Result, err error) (Result, error) {
	result.Err = err
	if a.rethrow(err) {
		return result, err
	}
	return result, nil
}

type correlationKey struct{}

// WithCorrelationID attaches a correlation id to the context
func WithCorrelationID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationIDFromContext extracts the correlation id, or uuid.Nil when the
// context carries none
func CorrelationIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(correlationKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}
