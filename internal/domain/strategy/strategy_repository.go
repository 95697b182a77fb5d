package strategy

import "github.com/realestate/backend/internal/domain/shared"

// Repository persists Strategy aggregates, bound to one session per unit of work
type Repository interface {
	shared.Repository[*Strategy]
}
