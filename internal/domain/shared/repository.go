package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the contract every aggregate-specific repository implements.
// A repository is bound to exactly one persistence session: all staged changes
// commit or roll back together with the session that owns the scope.
type Repository[T AggregateRoot] interface {
	EventCollector

	// Add stages a new aggregate for insertion
	Add(ctx context.Context, entity T) error
	// Remove stages an aggregate for deletion
	Remove(ctx context.Context, entity T) error
	// GetByID returns the aggregate with the given id, or ErrNotFound
	GetByID(ctx context.Context, id uuid.UUID) (T, error)
	// Persist flushes staged changes for one aggregate into the session
	// without ending the transaction
	Persist(ctx context.Context, entity T) error
	// PersistAll flushes all staged changes into the session
	PersistAll(ctx context.Context) error
}
