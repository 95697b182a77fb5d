package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/domain/partner"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// FeesProvider resolves the fee a partner earns for a given achievement on a
// given operation type, based on the partner's tier and the company's fee
// table. Partners outside the active status earn nothing.
type FeesProvider struct {
	partners  partner.Repository
	evaluator *partner.Evaluator
}

// NewFeesProvider creates a FeesProvider bound to a partner repository
func NewFeesProvider(partners partner.Repository, evaluator *partner.Evaluator) *FeesProvider {
	return &FeesProvider{partners: partners, evaluator: evaluator}
}

// GetFeeFor returns the fee the partner earns for the given achievement and
// operation type. Inactive and banned partners are not entitled to fees.
func (f *FeesProvider) GetFeeFor(ctx context.Context, partnerID uuid.UUID, achievementType shared.AchievementType, operationType shared.OperationType) (valueobject.Fee, error) {
	p, err := f.partners.GetByID(ctx, partnerID)
	if err != nil {
		return valueobject.Fee{}, err
	}
	if p.Status != shared.PartnershipActive {
		return valueobject.Fee{}, shared.ErrWithoutPermission.WithCause(
			fmt.Errorf("partner %s is %s", partnerID, p.Status))
	}

	policies, err := f.evaluator.FeePolicies(p.Tier)
	if err != nil {
		return valueobject.Fee{}, err
	}
	policy, ok := policies[achievementType]
	if !ok {
		return valueobject.Fee{}, shared.ErrConfiguration.WithCause(
			fmt.Errorf("no fee policy for achievement type %s", achievementType))
	}
	return policy.Fee(operationType)
}
