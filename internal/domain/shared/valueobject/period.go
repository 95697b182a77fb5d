package valueobject

import (
	"fmt"
	"time"
)

// MaxYear is the upper bound accepted for a Period's year. It guards against
// garbage input (e.g. a two-digit year parsed as 24).
const MaxYear = 2100

// Period identifies a calendar month: the granularity at which partner
// performance is tracked.
type Period struct {
	year  int
	month time.Month
}

// NewPeriod creates a new Period for the given year and month
func NewPeriod(year int, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	if year < 1 || year > MaxYear {
		return Period{}, fmt.Errorf("year must be between 1 and %d, got %d", MaxYear, year)
	}
	return Period{year: year, month: time.Month(month)}, nil
}

// CurrentPeriod returns the Period for the current month
func CurrentPeriod() Period {
	now := time.Now()
	return Period{year: now.Year(), month: now.Month()}
}

// PeriodFromString parses the "MM-YYYY" representation produced by Representation
func PeriodFromString(s string) (Period, error) {
	var month, year int
	if _, err := fmt.Sscanf(s, "%02d-%04d", &month, &year); err != nil {
		return Period{}, fmt.Errorf("invalid period format %q, want MM-YYYY: %w", s, err)
	}
	return NewPeriod(year, month)
}

// Year returns the period's year
func (p Period) Year() int {
	return p.year
}

// Month returns the period's month
func (p Period) Month() time.Month {
	return p.month
}

// Representation returns the canonical "MM-YYYY" string form.
// PeriodFromString is its inverse.
func (p Period) Representation() string {
	return fmt.Sprintf("%02d-%04d", int(p.month), p.year)
}

// Before reports whether p is strictly earlier than other, comparing year
// first and month second
func (p Period) Before(other Period) bool {
	if p.year != other.year {
		return p.year < other.year
	}
	return p.month < other.month
}

// After reports whether p is strictly later than other
func (p Period) After(other Period) bool {
	return other.Before(p)
}

// Equals reports whether both periods identify the same month
func (p Period) Equals(other Period) bool {
	return p.year == other.year && p.month == other.month
}

// InsideRange reports whether p lies strictly between start and end
func (p Period) InsideRange(start, end Period) bool {
	return start.Before(p) && p.Before(end)
}

// String returns the canonical representation
func (p Period) String() string {
	return p.Representation()
}

// MarshalText encodes the period in its canonical "MM-YYYY" form.
// Implementing encoding.TextMarshaler also makes Period usable as a JSON map key.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.Representation()), nil
}

// UnmarshalText parses the canonical "MM-YYYY" form
func (p *Period) UnmarshalText(text []byte) error {
	parsed, err := PeriodFromString(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
