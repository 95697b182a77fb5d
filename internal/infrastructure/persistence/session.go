package persistence

import (
	"context"

	"github.com/realestate/backend/internal/application/unitofwork"
	"github.com/realestate/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSession adapts a GORM transaction to the unit-of-work session port.
// One GormSession belongs to exactly one scope; all repositories in that
// scope flush into the same transaction.
type GormSession struct {
	tx   *gorm.DB
	done bool
}

// NewGormSession opens a transaction on the given connection
func NewGormSession(ctx context.Context, db *gorm.DB) (*GormSession, error) {
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, shared.ErrPersistence.WithCause(tx.Error)
	}
	return &GormSession{tx: tx}, nil
}

// Tx returns the transaction the session wraps. Repositories bound to this
// session run their statements through it.
func (s *GormSession) Tx() *gorm.DB {
	return s.tx
}

// Commit durably commits the transaction
func (s *GormSession) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.tx.Commit().Error
}

// Rollback discards the transaction's changes
func (s *GormSession) Rollback() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.tx.Rollback().Error
}

// Close releases the session. An open transaction that was neither committed
// nor rolled back is rolled back here, so an abandoned scope never leaks a
// transaction.
func (s *GormSession) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	return s.tx.Rollback().Error
}

// NewSessionFactory returns a session factory opening one transaction per scope
func NewSessionFactory(db *Database) unitofwork.SessionFactory {
	return func(ctx context.Context) (unitofwork.Session, error) {
		return NewGormSession(ctx, db.DB)
	}
}
