package persistence

import (
	apppartner "github.com/realestate/backend/internal/application/partner"
	appstrategy "github.com/realestate/backend/internal/application/strategy"
	appoperation "github.com/realestate/backend/internal/application/operation"
	"github.com/realestate/backend/internal/application/unitofwork"
	"github.com/realestate/backend/internal/domain/operation"
	"github.com/realestate/backend/internal/domain/partner"
	"github.com/realestate/backend/internal/domain/strategy"
)

// PartnerRepository persists Partner aggregates as JSON documents
type PartnerRepository struct {
	*documentRepository[*partner.Partner]
}

// NewPartnerRepository creates a partner repository bound to the session
func NewPartnerRepository(session *GormSession) *PartnerRepository {
	return &PartnerRepository{
		documentRepository: newDocumentRepository(session, partnerTable, decodeInto[partner.Partner]),
	}
}

// StrategyRepository persists Strategy aggregates as JSON documents
type StrategyRepository struct {
	*documentRepository[*strategy.Strategy]
}

// NewStrategyRepository creates a strategy repository bound to the session
func NewStrategyRepository(session *GormSession) *StrategyRepository {
	return &StrategyRepository{
		documentRepository: newDocumentRepository(session, strategyTable, decodeInto[strategy.Strategy]),
	}
}

// OperationRepository persists Operation aggregates as JSON documents
type OperationRepository struct {
	*documentRepository[*operation.Operation]
}

// NewOperationRepository creates an operation repository bound to the session
func NewOperationRepository(session *GormSession) *OperationRepository {
	return &OperationRepository{
		documentRepository: newDocumentRepository(session, operationTable, decodeInto[operation.Operation]),
	}
}

var (
	_ partner.Repository   = (*PartnerRepository)(nil)
	_ strategy.Repository  = (*StrategyRepository)(nil)
	_ operation.Repository = (*OperationRepository)(nil)
)

// Bindings returns the per-scope repository bindings: one fresh repository
// per aggregate, each bound to the scope's session, plus the fee evaluator.
// The order is stable because event collection drains dependencies in
// declaration order.
func Bindings(evaluator *partner.Evaluator) unitofwork.Repositories {
	return func(scope *unitofwork.Scope) []unitofwork.NamedDependency {
		session, ok := scope.Session().(*GormSession)
		if !ok {
			return nil
		}
		return []unitofwork.NamedDependency{
			{Key: apppartner.RepositoryKey, Instance: NewPartnerRepository(session)},
			{Key: appstrategy.RepositoryKey, Instance: NewStrategyRepository(session)},
			{Key: appoperation.RepositoryKey, Instance: NewOperationRepository(session)},
			{Key: apppartner.EvaluatorKey, Instance: evaluator},
		}
	}
}
