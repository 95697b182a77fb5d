package partner

import (
	"time"

	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// Performance tracks what a partner accomplished inside one calendar period:
// closed operations, captured properties and the revenue they generated.
type Performance struct {
	Period             valueobject.Period `json:"period"`
	OperationsClosed   int                `json:"operations_closed"`
	PropertiesCaptured int                `json:"properties_captured"`
	RevenueGenerated   valueobject.Money  `json:"revenue_generated"`
	LastUpdated        time.Time          `json:"last_updated"`
}

// NewPerformance creates an empty performance record for the given period
func NewPerformance(period valueobject.Period) *Performance {
	return &Performance{
		Period:           period,
		RevenueGenerated: valueobject.ZeroARS(),
		LastUpdated:      time.Now(),
	}
}

// RegisterClose records one closed operation and its revenue
func (p *Performance) RegisterClose(amount valueobject.Money) error {
	revenue, err := p.RevenueGenerated.Add(amount)
	if err != nil {
		return shared.NewRuleViolation("INVALID_REVENUE", err.Error())
	}

	p.OperationsClosed++
	p.RevenueGenerated = revenue
	p.LastUpdated = time.Now()

	return nil
}

// RegisterCapture records one captured property and its revenue
func (p *Performance) RegisterCapture(amount valueobject.Money) error {
	revenue, err := p.RevenueGenerated.Add(amount)
	if err != nil {
		return shared.NewRuleViolation("INVALID_REVENUE", err.Error())
	}

	p.PropertiesCaptured++
	p.RevenueGenerated = revenue
	p.LastUpdated = time.Now()

	return nil
}

// RemoveClose reverses one recorded close. Fails when no close was recorded.
func (p *Performance) RemoveClose(amount valueobject.Money) error {
	if p.OperationsClosed == 0 {
		return shared.NewRuleViolation("NO_ACHIEVEMENT", "There is no closed achievement to remove")
	}

	revenue, err := p.RevenueGenerated.Subtract(amount)
	if err != nil {
		return shared.NewRuleViolation("INVALID_REVENUE", err.Error())
	}

	p.OperationsClosed--
	p.RevenueGenerated = revenue
	p.LastUpdated = time.Now()

	return nil
}

// RemoveCapture reverses one recorded capture. Fails when no capture was recorded.
func (p *Performance) RemoveCapture(amount valueobject.Money) error {
	if p.PropertiesCaptured == 0 {
		return shared.NewRuleViolation("NO_ACHIEVEMENT", "There is no capture achievement to remove")
	}

	revenue, err := p.RevenueGenerated.Subtract(amount)
	if err != nil {
		return shared.NewRuleViolation("INVALID_REVENUE", err.Error())
	}

	p.PropertiesCaptured--
	p.RevenueGenerated = revenue
	p.LastUpdated = time.Now()

	return nil
}

// AddRevenue accumulates revenue not tied to a counted achievement
func (p *Performance) AddRevenue(amount valueobject.Money) error {
	revenue, err := p.RevenueGenerated.Add(amount)
	if err != nil {
		return shared.NewRuleViolation("INVALID_REVENUE", err.Error())
	}

	p.RevenueGenerated = revenue
	p.LastUpdated = time.Now()

	return nil
}

// SubtractRevenue removes revenue. The amount may not exceed what was generated.
func (p *Performance) SubtractRevenue(amount valueobject.Money) error {
	revenue, err := p.RevenueGenerated.Subtract(amount)
	if err != nil {
		return shared.NewRuleViolation("INVALID_REVENUE", "Amount to subtract exceeds the revenue generated")
	}

	p.RevenueGenerated = revenue
	p.LastUpdated = time.Now()

	return nil
}
