package strategy

import "github.com/realestate/backend/internal/domain/shared"

// Event types for the strategy aggregate
const (
	EventStrategyCreated   = "strategy.created"
	EventStrategyActivated = "strategy.activated"
	EventStrategyExtended  = "strategy.extended"
	EventStrategyStopped   = "strategy.stopped"
)

const aggregateType = "Strategy"

// StrategyCreatedEvent is raised when a strategy is drafted
type StrategyCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	PartnerID string `json:"partner_id"`
}

// NewStrategyCreatedEvent creates a StrategyCreatedEvent
func NewStrategyCreatedEvent(s *Strategy) *StrategyCreatedEvent {
	return &StrategyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStrategyCreated, aggregateType, s.ID),
		Name:            s.Name,
		PartnerID:       s.PartnerID.String(),
	}
}

// StrategyActivatedEvent is published outward when a strategy starts
type StrategyActivatedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	PartnerID string `json:"partner_id"`
}

// IsIntegrationEvent marks this event for outward publication
func (e *StrategyActivatedEvent) IsIntegrationEvent() bool { return true }

// NewStrategyActivatedEvent creates a StrategyActivatedEvent
func NewStrategyActivatedEvent(s *Strategy) *StrategyActivatedEvent {
	return &StrategyActivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStrategyActivated, aggregateType, s.ID),
		Name:            s.Name,
		PartnerID:       s.PartnerID.String(),
	}
}

// StrategyExtendedEvent is raised when a strategy's range is pushed out
type StrategyExtendedEvent struct {
	shared.BaseDomainEvent
	Days int `json:"days"`
}

// NewStrategyExtendedEvent creates a StrategyExtendedEvent
func NewStrategyExtendedEvent(s *Strategy, days int) *StrategyExtendedEvent {
	return &StrategyExtendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStrategyExtended, aggregateType, s.ID),
		Days:            days,
	}
}

// StrategyStoppedEvent is published outward when a strategy ends early
type StrategyStoppedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// IsIntegrationEvent marks this event for outward publication
func (e *StrategyStoppedEvent) IsIntegrationEvent() bool { return true }

// NewStrategyStoppedEvent creates a StrategyStoppedEvent
func NewStrategyStoppedEvent(s *Strategy) *StrategyStoppedEvent {
	return &StrategyStoppedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventStrategyStopped, aggregateType, s.ID),
		Name:            s.Name,
	}
}
