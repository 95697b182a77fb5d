package valueobject

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fee is a percentage value object used for partner fee calculation.
// The value is expressed in percent and must lie in [0, 100].
type Fee struct {
	value decimal.Decimal
}

// NewFee creates a new Fee from a percentage value
func NewFee(value decimal.Decimal) (Fee, error) {
	if value.IsNegative() {
		return Fee{}, fmt.Errorf("fee cannot be negative: %s", value)
	}
	if value.GreaterThan(decimal.NewFromInt(100)) {
		return Fee{}, fmt.Errorf("fee cannot exceed 100 percent: %s", value)
	}
	return Fee{value: value}, nil
}

// NewFeeFromFloat creates a new Fee from a float64 percentage
func NewFeeFromFloat(value float64) (Fee, error) {
	return NewFee(decimal.NewFromFloat(value))
}

// MustFee creates a new Fee, panicking on an invalid value.
// Intended for static fee tables only.
func MustFee(value float64) Fee {
	fee, err := NewFeeFromFloat(value)
	if err != nil {
		panic(err)
	}
	return fee
}

// Value returns the percentage value
func (f Fee) Value() decimal.Decimal {
	return f.value
}

// IsZero returns true if the fee is zero percent
func (f Fee) IsZero() bool {
	return f.value.IsZero()
}

// Equals returns true if both fees have the same percentage value
func (f Fee) Equals(other Fee) bool {
	return f.value.Equal(other.value)
}

// String returns a string representation of the Fee
func (f Fee) String() string {
	return fmt.Sprintf("%s%%", f.value.String())
}
