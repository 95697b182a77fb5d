package partner

import "github.com/realestate/backend/internal/domain/shared"

// Repository persists Partner aggregates. Implementations are bound to a
// single session for the lifetime of one unit of work.
type Repository interface {
	shared.Repository[*Partner]
}
