package unitofwork

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Well-known dependency keys present in every scope
const (
	DepSession       = "session"
	DepLogger        = "logger"
	DepCorrelationID = "correlation_id"
	DepOutbox        = "outbox"
	DepPublish       = "publish"
)

// Session is the persistence port exclusively owned by one scope. All
// repositories in the scope share it, so their staged changes commit or roll
// back atomically together.
type Session interface {
	Commit() error
	Rollback() error
	Close() error
}

// State tracks where a scope is in its lifecycle
type State string

const (
	StateCreated     State = "created"
	StateActive      State = "active"
	StateCommitting  State = "committing"
	StateRollingBack State = "rolling_back"
	StateClosed      State = "closed"
)

// Scope is the bundle of dependencies valid for exactly one unit of work:
// a fresh correlation id, an exclusively owned session, a logger enriched
// with the correlation id, an outbox and one repository per aggregate, all
// registered in the scope's Provider. A scope must not be reused after close.
type Scope struct {
	correlationID uuid.UUID
	session       Session
	provider      *Provider
	logger        *zap.Logger
	outbox        *Outbox
	publisher     shared.EventPublisher
	state         State
}

// NewScope creates a scope in the created state with a fresh correlation id.
// The session becomes exclusively owned by this scope and is closed at
// teardown.
func NewScope(session Session, logger *zap.Logger, publisher shared.EventPublisher) *Scope {
	correlationID := uuid.New()

	s := &Scope{
		correlationID: correlationID,
		session:       session,
		provider:      NewProvider(),
		logger:        logger.With(zap.String("correlation_id", correlationID.String())),
		outbox:        NewOutbox(),
		publisher:     publisher,
		state:         StateCreated,
	}

	s.provider.Register(DepSession, session)
	s.provider.Register(DepLogger, s.logger)
	s.provider.Register(DepCorrelationID, correlationID)
	s.provider.Register(DepOutbox, s.outbox)
	s.provider.Register(DepPublish, shared.EventPublisher(publishFunc(s.Publish)))

	return s
}

// Session returns the session exclusively owned by this scope
func (s *Scope) Session() Session {
	return s.session
}

// CorrelationID returns the scope's correlation id, or uuid.Nil after close
func (s *Scope) CorrelationID() uuid.UUID {
	return s.correlationID
}

// Provider returns the scope's dependency provider
func (s *Scope) Provider() *Provider {
	return s.provider
}

// Logger returns the scope's logger, enriched with the correlation id
func (s *Scope) Logger() *zap.Logger {
	return s.logger
}

// Outbox returns the scope's event outbox
func (s *Scope) Outbox() *Outbox {
	return s.outbox
}

// State returns the scope's lifecycle state
func (s *Scope) State() State {
	return s.state
}

// Register binds an additional dependency into the scope's provider
func (s *Scope) Register(key string, instance any) {
	s.provider.Register(key, instance)
}

// Publish buffers an event for publication. Buffered events are flushed to
// the publisher, each awaited individually in order, before the scope commits.
func (s *Scope) Publish(_ context.Context, event shared.DomainEvent) error {
	s.outbox.Put(event)
	return nil
}

// begin moves the scope into the active state
func (s *Scope) begin() error {
	if s.state != StateCreated {
		return shared.ErrInvalidState.WithCause(fmt.Errorf("cannot begin a scope in state %s", s.state))
	}
	s.state = StateActive
	return nil
}

// flushOutbox publishes every buffered event, in order, awaiting each one
func (s *Scope) flushOutbox(ctx context.Context) error {
	for _, event := range s.outbox.Drain() {
		s.logger.Debug("publishing event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
		)
		if err := s.publisher.Publish(ctx, event); err != nil {
			return fmt.Errorf("publishing %s: %w", event.EventType(), err)
		}
	}
	return nil
}

// commit durably commits the session's changes
func (s *Scope) commit() error {
	if s.state != StateActive {
		return shared.ErrInvalidState.WithCause(fmt.Errorf("cannot commit a scope in state %s", s.state))
	}
	s.state = StateCommitting
	if err := s.session.Commit(); err != nil {
		return shared.ErrPersistence.WithCause(err)
	}
	s.logger.Debug("transaction committed")
	return nil
}

// rollback discards the session's changes, logging the failure cause
func (s *Scope) rollback(cause error) {
	if s.state == StateClosed {
		return
	}
	s.state = StateRollingBack
	if err := s.session.Rollback(); err != nil {
		s.logger.Error("rollback failed", zap.Error(err))
	}
	s.logger.Warn("transaction rolled back", zap.Error(cause))
}

// close tears the scope down: the session is closed and the correlation id is
// cleared to the no-active-transaction sentinel. Idempotent.
func (s *Scope) close() {
	if s.state == StateClosed {
		return
	}
	if err := s.session.Close(); err != nil {
		s.logger.Error("closing session failed", zap.Error(err))
	}
	s.logger.Debug("transaction ended")
	s.state = StateClosed
	s.correlationID = uuid.Nil
}

// publishFunc adapts a function to the EventPublisher interface
type publishFunc func(ctx context.Context, event shared.DomainEvent) error

func (f publishFunc) Publish(ctx context.Context, event shared.DomainEvent) error {
	return f(ctx, event)
}
