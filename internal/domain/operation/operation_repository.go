package operation

import "github.com/realestate/backend/internal/domain/shared"

// Repository persists Operation aggregates, bound to one session per unit of work
type Repository interface {
	shared.Repository[*Operation]
}
