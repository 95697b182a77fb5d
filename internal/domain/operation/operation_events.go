package operation

import (
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// Event types for the operation aggregate
const (
	EventOperationOpened    = "operation.opened"
	EventOperationClosed    = "operation.closed"
	EventOperationCancelled = "operation.cancelled"
)

const aggregateType = "Operation"

// OperationOpenedEvent is raised when an operation opens
type OperationOpenedEvent struct {
	shared.BaseDomainEvent
	PropertyID string               `json:"property_id"`
	PartnerID  string               `json:"partner_id"`
	Type       shared.OperationType `json:"operation_type"`
}

// NewOperationOpenedEvent creates an OperationOpenedEvent
func NewOperationOpenedEvent(o *Operation) *OperationOpenedEvent {
	return &OperationOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOperationOpened, aggregateType, o.ID),
		PropertyID:      o.PropertyID.String(),
		PartnerID:       o.PartnerID.String(),
		Type:            o.Type,
	}
}

// OperationClosedEvent is published outward when an operation completes, so
// partner fees and performance can be settled.
type OperationClosedEvent struct {
	shared.BaseDomainEvent
	PartnerID string               `json:"partner_id"`
	Type      shared.OperationType `json:"operation_type"`
	Amount    valueobject.Money    `json:"amount"`
}

// IsIntegrationEvent marks this event for outward publication
func (e *OperationClosedEvent) IsIntegrationEvent() bool { return true }

// NewOperationClosedEvent creates an OperationClosedEvent
func NewOperationClosedEvent(o *Operation) *OperationClosedEvent {
	return &OperationClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOperationClosed, aggregateType, o.ID),
		PartnerID:       o.PartnerID.String(),
		Type:            o.Type,
		Amount:          o.Amount,
	}
}

// OperationCancelledEvent is raised when an operation is abandoned
type OperationCancelledEvent struct {
	shared.BaseDomainEvent
	PartnerID string `json:"partner_id"`
}

// NewOperationCancelledEvent creates an OperationCancelledEvent
func NewOperationCancelledEvent(o *Operation) *OperationCancelledEvent {
	return &OperationCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventOperationCancelled, aggregateType, o.ID),
		PartnerID:       o.PartnerID.String(),
	}
}
