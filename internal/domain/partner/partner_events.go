package partner

import (
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// Event types for the partner aggregate
const (
	EventPartnerCreated               = "partner.created"
	EventPartnerActivated             = "partner.activated"
	EventPartnerBanned                = "partner.banned"
	EventPartnerAchievementRegistered = "partner.achievement_registered"
	EventPartnerAchievementRemoved    = "partner.achievement_removed"
)

const aggregateType = "Partner"

// PartnerCreatedEvent is raised when a new partner joins
type PartnerCreatedEvent struct {
	shared.BaseDomainEvent
	Name   string `json:"name"`
	UserID string `json:"user_id"`
}

// NewPartnerCreatedEvent creates a PartnerCreatedEvent
func NewPartnerCreatedEvent(p *Partner) *PartnerCreatedEvent {
	return &PartnerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPartnerCreated, aggregateType, p.ID),
		Name:            p.Name,
		UserID:          p.UserID.String(),
	}
}

// PartnerActivatedEvent is raised when a partnership becomes active
type PartnerActivatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewPartnerActivatedEvent creates a PartnerActivatedEvent
func NewPartnerActivatedEvent(p *Partner) *PartnerActivatedEvent {
	return &PartnerActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPartnerActivated, aggregateType, p.ID),
		Name:            p.Name,
	}
}

// PartnerBannedEvent is raised when a partner is permanently blocked
type PartnerBannedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewPartnerBannedEvent creates a PartnerBannedEvent
func NewPartnerBannedEvent(p *Partner) *PartnerBannedEvent {
	return &PartnerBannedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPartnerBanned, aggregateType, p.ID),
		Name:            p.Name,
	}
}

// PartnerAchievementRegisteredEvent is published outward so other modules can
// react to a partner's achievement (fee settlement, reporting).
type PartnerAchievementRegisteredEvent struct {
	shared.BaseDomainEvent
	AchievementType shared.AchievementType `json:"achievement_type"`
	Revenue         valueobject.Money      `json:"revenue"`
	Period          valueobject.Period     `json:"period"`
}

// IsIntegrationEvent marks this event for outward publication
func (e *PartnerAchievementRegisteredEvent) IsIntegrationEvent() bool { return true }

// NewPartnerAchievementRegisteredEvent creates a PartnerAchievementRegisteredEvent
func NewPartnerAchievementRegisteredEvent(p *Partner, achievementType shared.AchievementType, revenue valueobject.Money, period valueobject.Period) *PartnerAchievementRegisteredEvent {
	return &PartnerAchievementRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPartnerAchievementRegistered, aggregateType, p.ID),
		AchievementType: achievementType,
		Revenue:         revenue,
		Period:          period,
	}
}

// PartnerAchievementRemovedEvent is raised when an achievement is reversed
type PartnerAchievementRemovedEvent struct {
	shared.BaseDomainEvent
	AchievementType shared.AchievementType `json:"achievement_type"`
	Revenue         valueobject.Money      `json:"revenue"`
	Period          valueobject.Period     `json:"period"`
}

// IsIntegrationEvent marks this event for outward publication
func (e *PartnerAchievementRemovedEvent) IsIntegrationEvent() bool { return true }

// NewPartnerAchievementRemovedEvent creates a PartnerAchievementRemovedEvent
func NewPartnerAchievementRemovedEvent(p *Partner, achievementType shared.AchievementType, revenue valueobject.Money, period valueobject.Period) *PartnerAchievementRemovedEvent {
	return &PartnerAchievementRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPartnerAchievementRemoved, aggregateType, p.ID),
		AchievementType: achievementType,
		Revenue:         revenue,
		Period:          period,
	}
}
