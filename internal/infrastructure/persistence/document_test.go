package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/realestate/backend/internal/domain/partner"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newMockPartnerRepository creates a PartnerRepository over a mocked session
func newMockPartnerRepository(t *testing.T) (*PartnerRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockConn(t)

	mock.ExpectBegin()
	session, err := NewGormSession(context.Background(), gormDB)
	require.NoError(t, err)

	return NewPartnerRepository(session), mock, mockDB
}

func newStoredPartner(t *testing.T) *partner.Partner {
	t.Helper()
	p, err := partner.NewPartner(uuid.New(), "Ada", uuid.New())
	require.NoError(t, err)
	return p
}

func TestDocumentRepository_GetByID(t *testing.T) {
	t.Run("loads an existing document", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		stored := newStoredPartner(t)
		data, err := json.Marshal(stored)
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "data"}).AddRow(stored.ID, data)
		mock.ExpectQuery(`SELECT \* FROM "partners" WHERE id = \$1 .* LIMIT .*`).
			WithArgs(stored.ID, 1).
			WillReturnRows(rows)

		found, err := repo.GetByID(context.Background(), stored.ID)

		require.NoError(t, err)
		assert.Equal(t, stored.ID, found.ID)
		assert.Equal(t, "Ada", found.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns the same instance on repeated loads", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		stored := newStoredPartner(t)
		data, err := json.Marshal(stored)
		require.NoError(t, err)

		mock.ExpectQuery(`SELECT \* FROM "partners" WHERE id = \$1 .* LIMIT .*`).
			WithArgs(stored.ID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "data"}).AddRow(stored.ID, data))

		first, err := repo.GetByID(context.Background(), stored.ID)
		require.NoError(t, err)
		second, err := repo.GetByID(context.Background(), stored.ID)
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps a missing row to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		id := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "partners" WHERE id = \$1 .* LIMIT .*`).
			WithArgs(id, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		_, err := repo.GetByID(context.Background(), id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an entity staged for removal is gone", func(t *testing.T) {
		repo, _, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		p := newStoredPartner(t)
		require.NoError(t, repo.Remove(context.Background(), p))

		_, err := repo.GetByID(context.Background(), p.ID)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDocumentRepository_Add(t *testing.T) {
	t.Run("rejects a duplicate id", func(t *testing.T) {
		repo, _, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		p := newStoredPartner(t)
		require.NoError(t, repo.Add(context.Background(), p))

		err := repo.Add(context.Background(), p)

		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestDocumentRepository_Persist(t *testing.T) {
	t.Run("upserts the document", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		p := newStoredPartner(t)
		require.NoError(t, repo.Add(context.Background(), p))

		mock.ExpectExec(`INSERT INTO "partners" .* ON CONFLICT \("id"\) DO UPDATE SET`).
			WithArgs(p.ID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Persist(context.Background(), p)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deletes a removed document", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		p := newStoredPartner(t)
		require.NoError(t, repo.Remove(context.Background(), p))

		mock.ExpectExec(`DELETE FROM "partners" WHERE id = \$1`).
			WithArgs(p.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Persist(context.Background(), p)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("buffers events and clears them off the aggregate", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		p := newStoredPartner(t)
		require.NoError(t, repo.Add(context.Background(), p))

		mock.ExpectExec(`INSERT INTO "partners"`).
			WithArgs(p.ID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Persist(context.Background(), p))

		assert.Empty(t, p.GetDomainEvents())

		events := repo.CollectEvents()
		require.Len(t, events, 1)
		assert.Equal(t, partner.EventPartnerCreated, events[0].EventType())
		assert.Empty(t, repo.CollectEvents())
	})
}

func TestDocumentRepository_PersistAll(t *testing.T) {
	loadPartner := func(t *testing.T, repo *PartnerRepository, mock sqlmock.Sqlmock) *partner.Partner {
		t.Helper()

		stored := newStoredPartner(t)
		data, err := json.Marshal(stored)
		require.NoError(t, err)

		rows := sqlmock.NewRows([]string{"id", "data"}).AddRow(stored.ID, data)
		mock.ExpectQuery(`SELECT \* FROM "partners" WHERE id = \$1 .* LIMIT .*`).
			WithArgs(stored.ID, 1).
			WillReturnRows(rows)

		found, err := repo.GetByID(context.Background(), stored.ID)
		require.NoError(t, err)
		return found
	}

	t.Run("skips aggregates that were only read", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		loadPartner(t, repo, mock)

		require.NoError(t, repo.PersistAll(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet(), "no write expected for an unmodified aggregate")
	})

	t.Run("flushes modified aggregates", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		found := loadPartner(t, repo, mock)
		require.NoError(t, found.Activate())

		mock.ExpectExec(`INSERT INTO "partners" .* ON CONFLICT \("id"\) DO UPDATE SET`).
			WithArgs(found.ID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.PersistAll(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("flushes staged additions once", func(t *testing.T) {
		repo, mock, mockDB := newMockPartnerRepository(t)
		defer mockDB.Close()

		p := newStoredPartner(t)
		require.NoError(t, repo.Add(context.Background(), p))

		mock.ExpectExec(`INSERT INTO "partners"`).
			WithArgs(p.ID, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.PersistAll(context.Background()))
		require.NoError(t, repo.PersistAll(context.Background()), "second flush writes nothing")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
