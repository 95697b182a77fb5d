package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// Tier represents a partner's commercial tier. The tier decides which fee
// policies apply to the partner's achievements.
type Tier string

const (
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// Valid reports whether the tier is a known value
func (t Tier) Valid() bool {
	return t == TierBronze || t == TierSilver || t == TierGold
}

// Partner is the aggregate root for the partner context: a real-estate agent
// or agency working with the company under a partnership agreement.
type Partner struct {
	shared.BaseAggregateRoot
	Name         string                               `json:"name"`
	UserID       uuid.UUID                            `json:"user_id"`
	Status       shared.PartnershipStatus             `json:"status"`
	Tier         Tier                                 `json:"tier"`
	Performances map[valueobject.Period]*Performance  `json:"performances"`
}

// NewPartner creates a new partner in the inactive state. Callers activate it
// explicitly once onboarding completes.
func NewPartner(id uuid.UUID, name string, userID uuid.UUID) (*Partner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewRuleViolation("INVALID_NAME", "Partner name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewRuleViolation("INVALID_NAME", "Partner name cannot exceed 200 characters")
	}
	if userID == uuid.Nil {
		return nil, shared.NewRuleViolation("INVALID_USER", "Partner must reference a user")
	}

	p := &Partner{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithID(id),
		Name:              name,
		UserID:            userID,
		Status:            shared.PartnershipInactive,
		Tier:              TierBronze,
		Performances:      make(map[valueobject.Period]*Performance),
	}

	p.AddDomainEvent(NewPartnerCreatedEvent(p))

	return p, nil
}

// Activate moves the partner into the active partnership status
func (p *Partner) Activate() error {
	if p.Status == shared.PartnershipBanned {
		return shared.NewRuleViolation("PARTNER_BANNED", "A banned partner cannot be activated")
	}
	if p.Status == shared.PartnershipActive {
		return nil
	}

	p.Status = shared.PartnershipActive
	p.touch()
	p.AddDomainEvent(NewPartnerActivatedEvent(p))

	return nil
}

// Deactivate suspends the partnership without penalty
func (p *Partner) Deactivate() error {
	if p.Status != shared.PartnershipActive {
		return shared.ErrInvalidState
	}

	p.Status = shared.PartnershipInactive
	p.touch()

	return nil
}

// Ban permanently blocks the partner
func (p *Partner) Ban() {
	if p.Status == shared.PartnershipBanned {
		return
	}

	p.Status = shared.PartnershipBanned
	p.touch()
	p.AddDomainEvent(NewPartnerBannedEvent(p))
}

// Promote moves the partner to a new tier
func (p *Partner) Promote(tier Tier) error {
	if !tier.Valid() {
		return shared.NewRuleViolation("INVALID_TIER", "Unknown partner tier")
	}

	p.Tier = tier
	p.touch()

	return nil
}

// RegisterAchievement records an achievement of the given type for the given
// period, accumulating revenue into the period's performance. Only active
// partners accumulate achievements.
func (p *Partner) RegisterAchievement(achievementType shared.AchievementType, revenue valueobject.Money, period valueobject.Period) error {
	if p.Status != shared.PartnershipActive {
		return shared.ErrWithoutPermission
	}
	if !achievementType.Valid() {
		return shared.NewRuleViolation("INVALID_ACHIEVEMENT", "Unknown achievement type")
	}

	perf := p.performanceFor(period)

	var err error
	switch achievementType {
	case shared.AchievementClose:
		err = perf.RegisterClose(revenue)
	case shared.AchievementCapture:
		err = perf.RegisterCapture(revenue)
	}
	if err != nil {
		return err
	}

	p.touch()
	p.AddDomainEvent(NewPartnerAchievementRegisteredEvent(p, achievementType, revenue, period))

	return nil
}

// RemoveAchievement reverses a previously registered achievement. Removing an
// achievement that was never registered is a rule violation.
func (p *Partner) RemoveAchievement(achievementType shared.AchievementType, revenue valueobject.Money, period valueobject.Period) error {
	if !achievementType.Valid() {
		return shared.NewRuleViolation("INVALID_ACHIEVEMENT", "Unknown achievement type")
	}

	perf, ok := p.Performances[period]
	if !ok {
		return shared.NewRuleViolation("NO_ACHIEVEMENT", "There is no achievement to remove for this period")
	}

	var err error
	switch achievementType {
	case shared.AchievementClose:
		err = perf.RemoveClose(revenue)
	case shared.AchievementCapture:
		err = perf.RemoveCapture(revenue)
	}
	if err != nil {
		return err
	}

	p.touch()
	p.AddDomainEvent(NewPartnerAchievementRemovedEvent(p, achievementType, revenue, period))

	return nil
}

// PerformanceFor returns the performance recorded for the given period, or
// nil when nothing was recorded.
func (p *Partner) PerformanceFor(period valueobject.Period) *Performance {
	return p.Performances[period]
}

func (p *Partner) performanceFor(period valueobject.Period) *Performance {
	if perf, ok := p.Performances[period]; ok {
		return perf
	}
	perf := NewPerformance(period)
	p.Performances[period] = perf
	return perf
}

func (p *Partner) touch() {
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
