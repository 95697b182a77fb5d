package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Aggregate tables. Each aggregate type persists as one JSON document per row.
const (
	partnerTable   = "partners"
	strategyTable  = "strategies"
	operationTable = "operations"
)

// documentRow is the storage shape shared by all aggregate tables
type documentRow struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Data      []byte    `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// documentRepository persists aggregates of one type as JSON documents. It is
// bound to a single session and keeps an identity map of the aggregates it
// has loaded or staged, so a unit of work always works against one instance
// per id. Domain events accumulate here when an aggregate is persisted, until
// CollectEvents drains them.
type documentRepository[T shared.AggregateRoot] struct {
	session *GormSession
	table   string
	decode  func([]byte) (T, error)

	loaded map[uuid.UUID]T
	// aggregate version at load or last flush; a differing live version
	// marks the aggregate dirty
	flushed map[uuid.UUID]int
	added   map[uuid.UUID]bool
	removed map[uuid.UUID]bool
	events  []shared.DomainEvent
}

func newDocumentRepository[T shared.AggregateRoot](session *GormSession, table string, decode func([]byte) (T, error)) *documentRepository[T] {
	return &documentRepository[T]{
		session: session,
		table:   table,
		decode:  decode,
		loaded:  make(map[uuid.UUID]T),
		flushed: make(map[uuid.UUID]int),
		added:   make(map[uuid.UUID]bool),
		removed: make(map[uuid.UUID]bool),
	}
}

// Add stages a new aggregate for insertion
func (r *documentRepository[T]) Add(_ context.Context, entity T) error {
	id := entity.GetID()
	if _, exists := r.loaded[id]; exists && !r.removed[id] {
		return shared.ErrAlreadyExists.WithCause(fmt.Errorf("%s %s is already staged", r.table, id))
	}
	delete(r.removed, id)
	r.loaded[id] = entity
	r.added[id] = true
	return nil
}

// Remove stages an aggregate for deletion
func (r *documentRepository[T]) Remove(_ context.Context, entity T) error {
	id := entity.GetID()
	r.loaded[id] = entity
	r.removed[id] = true
	delete(r.added, id)
	return nil
}

// GetByID returns the aggregate with the given id. A previously loaded or
// staged instance is returned as-is; otherwise the document is read from the
// session's transaction.
func (r *documentRepository[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T

	if r.removed[id] {
		return zero, shared.ErrNotFound.WithCause(fmt.Errorf("%s %s is staged for deletion", r.table, id))
	}
	if entity, ok := r.loaded[id]; ok {
		return entity, nil
	}

	var row documentRow
	err := r.session.Tx().WithContext(ctx).Table(r.table).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, shared.ErrNotFound.WithCause(fmt.Errorf("%s %s does not exist", r.table, id))
		}
		return zero, shared.ErrPersistence.WithCause(err)
	}

	entity, err := r.decode(row.Data)
	if err != nil {
		return zero, shared.ErrPersistence.WithCause(fmt.Errorf("decoding %s %s: %w", r.table, id, err))
	}
	r.loaded[id] = entity
	r.flushed[id] = entity.GetVersion()
	return entity, nil
}

// Persist flushes one aggregate's document into the session and moves its
// pending domain events into the repository's buffer
func (r *documentRepository[T]) Persist(ctx context.Context, entity T) error {
	id := entity.GetID()

	if r.removed[id] {
		if err := r.session.Tx().WithContext(ctx).Table(r.table).Where("id = ?", id).Delete(&documentRow{}).Error; err != nil {
			return shared.ErrPersistence.WithCause(err)
		}
		delete(r.removed, id)
		delete(r.loaded, id)
		delete(r.flushed, id)
	} else {
		data, err := json.Marshal(entity)
		if err != nil {
			return shared.ErrPersistence.WithCause(fmt.Errorf("encoding %s %s: %w", r.table, id, err))
		}
		row := documentRow{ID: id, Data: data, UpdatedAt: time.Now()}
		err = r.session.Tx().WithContext(ctx).Table(r.table).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
			}).
			Create(&row).Error
		if err != nil {
			return shared.ErrPersistence.WithCause(err)
		}
		r.loaded[id] = entity
		r.flushed[id] = entity.GetVersion()
		delete(r.added, id)
	}

	r.events = append(r.events, entity.GetDomainEvents()...)
	entity.ClearDomainEvents()
	return nil
}

// PersistAll flushes every staged or dirty aggregate into the session.
// Aggregates that were only read and never modified are skipped.
func (r *documentRepository[T]) PersistAll(ctx context.Context) error {
	for id := range r.removed {
		if err := r.Persist(ctx, r.loaded[id]); err != nil {
			return err
		}
	}
	for id, entity := range r.loaded {
		if !r.added[id] && entity.GetVersion() == r.flushed[id] {
			continue
		}
		if err := r.Persist(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

// CollectEvents drains the buffered domain events. A second call returns
// nothing until new events accumulate.
func (r *documentRepository[T]) CollectEvents() []shared.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

func decodeInto[T any](data []byte) (*T, error) {
	entity := new(T)
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, err
	}
	return entity, nil
}
