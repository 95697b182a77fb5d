package strategy

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of a strategy
type Status string

const (
	StatusDraft   Status = "draft"
	StatusActive  Status = "active"
	StatusStopped Status = "stopped"
)

// Strategy is the aggregate root for a time-boxed commercial push assigned to
// a partner: capture N properties or close operations worth a target revenue
// within the strategy's date range.
type Strategy struct {
	shared.BaseAggregateRoot
	Name          string                `json:"name"`
	PartnerID     uuid.UUID             `json:"partner_id"`
	Range         valueobject.DateRange `json:"range"`
	Status        Status                `json:"status"`
	TargetRevenue valueobject.Money     `json:"target_revenue"`
}

// NewStrategy creates a new strategy in draft state
func NewStrategy(id uuid.UUID, name string, partnerID uuid.UUID, dateRange valueobject.DateRange, targetRevenue valueobject.Money) (*Strategy, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewRuleViolation("INVALID_NAME", "Strategy name cannot be empty")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewRuleViolation("INVALID_PARTNER", "Strategy must reference a partner")
	}
	if dateRange.Finished() {
		return nil, shared.NewRuleViolation("RANGE_FINISHED", "Strategy range cannot lie entirely in the past")
	}

	s := &Strategy{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithID(id),
		Name:              name,
		PartnerID:         partnerID,
		Range:             dateRange,
		Status:            StatusDraft,
		TargetRevenue:     targetRevenue,
	}

	s.AddDomainEvent(NewStrategyCreatedEvent(s))

	return s, nil
}

// Activate starts the strategy
func (s *Strategy) Activate() error {
	if s.Status != StatusDraft {
		return shared.NewRuleViolation("INVALID_STATE", "Only a draft strategy can be activated")
	}
	if s.Range.Finished() {
		return shared.NewRuleViolation("RANGE_FINISHED", "Cannot activate a strategy whose range has finished")
	}

	s.Status = StatusActive
	s.touch()
	s.AddDomainEvent(NewStrategyActivatedEvent(s))

	return nil
}

// Extend pushes the strategy's end date out by the given number of days.
// Only an active strategy can be extended.
func (s *Strategy) Extend(days int) error {
	if s.Status != StatusActive {
		return shared.NewRuleViolation("INVALID_STATE", "Only an active strategy can be extended")
	}

	extended, err := s.Range.Extended(days)
	if err != nil {
		return shared.NewRuleViolation("INVALID_EXTENSION", err.Error())
	}

	s.Range = extended
	s.touch()
	s.AddDomainEvent(NewStrategyExtendedEvent(s, days))

	return nil
}

// Stop ends the strategy now, trimming its range to the current time
func (s *Strategy) Stop() error {
	if s.Status != StatusActive {
		return shared.NewRuleViolation("INVALID_STATE", "Only an active strategy can be stopped")
	}

	stopped, err := s.Range.Stopped()
	if err != nil {
		return shared.NewRuleViolation("NOT_STARTED", err.Error())
	}

	s.Range = stopped
	s.Status = StatusStopped
	s.touch()
	s.AddDomainEvent(NewStrategyStoppedEvent(s))

	return nil
}

// OnGoing reports whether the strategy is active and inside its date range
func (s *Strategy) OnGoing() bool {
	return s.Status == StatusActive && s.Range.OnGoing()
}

func (s *Strategy) touch() {
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
