package partner

import (
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// FeePolicy maps operation types to the fee a partner earns for an achievement
type FeePolicy struct {
	Fees map[shared.OperationType]valueobject.Fee
}

// Fee returns the fee for the given operation type
func (p FeePolicy) Fee(operationType shared.OperationType) (valueobject.Fee, error) {
	fee, ok := p.Fees[operationType]
	if !ok {
		return valueobject.Fee{}, shared.ErrConfiguration.WithCause(
			shared.NewRuleViolation("UNKNOWN_OPERATION", "No fee configured for operation type "+string(operationType)))
	}
	return fee, nil
}

// Evaluator is the domain service that resolves which fee policies apply to a
// partner tier. The policy table is fixed at construction.
type Evaluator struct {
	policies map[Tier]map[shared.AchievementType]FeePolicy
}

// NewEvaluator creates an Evaluator with the company's standard fee table
func NewEvaluator() *Evaluator {
	return &Evaluator{
		policies: map[Tier]map[shared.AchievementType]FeePolicy{
			TierBronze: {
				shared.AchievementClose: {Fees: map[shared.OperationType]valueobject.Fee{
					shared.OperationSale: valueobject.MustFee(1.0),
					shared.OperationRent: valueobject.MustFee(2.0),
				}},
				shared.AchievementCapture: {Fees: map[shared.OperationType]valueobject.Fee{
					shared.OperationSale: valueobject.MustFee(0.5),
					shared.OperationRent: valueobject.MustFee(1.0),
				}},
			},
			TierSilver: {
				shared.AchievementClose: {Fees: map[shared.OperationType]valueobject.Fee{
					shared.OperationSale: valueobject.MustFee(1.5),
					shared.OperationRent: valueobject.MustFee(3.0),
				}},
				shared.AchievementCapture: {Fees: map[shared.OperationType]valueobject.Fee{
					shared.OperationSale: valueobject.MustFee(0.75),
					shared.OperationRent: valueobject.MustFee(1.5),
				}},
			},
			TierGold: {
				shared.AchievementClose: {Fees: map[shared.OperationType]valueobject.Fee{
					shared.OperationSale: valueobject.MustFee(2.0),
					shared.OperationRent: valueobject.MustFee(4.0),
				}},
				shared.AchievementCapture: {Fees: map[shared.OperationType]valueobject.Fee{
					shared.OperationSale: valueobject.MustFee(1.0),
					shared.OperationRent: valueobject.MustFee(2.0),
				}},
			},
		},
	}
}

// FeePolicies returns the fee policies for the given tier keyed by achievement type
func (e *Evaluator) FeePolicies(tier Tier) (map[shared.AchievementType]FeePolicy, error) {
	policies, ok := e.policies[tier]
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(
			shared.NewRuleViolation("UNKNOWN_TIER", "No fee policies configured for tier "+string(tier)))
	}
	return policies, nil
}
