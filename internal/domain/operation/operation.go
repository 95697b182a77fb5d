package operation

import (
	"time"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// Status represents the lifecycle state of an operation
type Status string

const (
	StatusOpen      Status = "open"
	StatusClosed    Status = "closed"
	StatusCancelled Status = "cancelled"
)

// Operation is the aggregate root for a real-estate transaction in progress:
// a sale or rental of a property handled by a partner.
type Operation struct {
	shared.BaseAggregateRoot
	PropertyID uuid.UUID            `json:"property_id"`
	PartnerID  uuid.UUID            `json:"partner_id"`
	Type       shared.OperationType `json:"type"`
	Amount     valueobject.Money    `json:"amount"`
	Status     Status               `json:"status"`
	ClosedAt   *time.Time           `json:"closed_at,omitempty"`
}

// NewOperation opens a new operation
func NewOperation(id uuid.UUID, propertyID, partnerID uuid.UUID, operationType shared.OperationType, amount valueobject.Money) (*Operation, error) {
	if propertyID == uuid.Nil {
		return nil, shared.NewRuleViolation("INVALID_PROPERTY", "Operation must reference a property")
	}
	if partnerID == uuid.Nil {
		return nil, shared.NewRuleViolation("INVALID_PARTNER", "Operation must reference a partner")
	}
	if !operationType.Valid() {
		return nil, shared.NewRuleViolation("INVALID_OPERATION_TYPE", "Unknown operation type")
	}
	if amount.IsZero() {
		return nil, shared.NewRuleViolation("INVALID_AMOUNT", "Operation amount cannot be zero")
	}

	o := &Operation{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithID(id),
		PropertyID:        propertyID,
		PartnerID:         partnerID,
		Type:              operationType,
		Amount:            amount,
		Status:            StatusOpen,
	}

	o.AddDomainEvent(NewOperationOpenedEvent(o))

	return o, nil
}

// Close completes the operation. A closed or cancelled operation cannot be
// closed again.
func (o *Operation) Close() error {
	if o.Status != StatusOpen {
		return shared.NewRuleViolation("INVALID_STATE", "Only an open operation can be closed")
	}

	now := time.Now()
	o.Status = StatusClosed
	o.ClosedAt = &now
	o.touch()
	o.AddDomainEvent(NewOperationClosedEvent(o))

	return nil
}

// Cancel abandons the operation
func (o *Operation) Cancel() error {
	if o.Status != StatusOpen {
		return shared.NewRuleViolation("INVALID_STATE", "Only an open operation can be cancelled")
	}

	o.Status = StatusCancelled
	o.touch()
	o.AddDomainEvent(NewOperationCancelledEvent(o))

	return nil
}

// ClosedPeriod returns the period in which the operation was closed
func (o *Operation) ClosedPeriod() (valueobject.Period, error) {
	if o.ClosedAt == nil {
		return valueobject.Period{}, shared.NewRuleViolation("INVALID_STATE", "Operation is not closed")
	}
	return valueobject.NewPeriod(o.ClosedAt.Year(), int(o.ClosedAt.Month()))
}

func (o *Operation) touch() {
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
}
