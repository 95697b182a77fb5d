package valueobject

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateRange is an immutable span of time with a strictly ordered start and end.
// Derived ranges (extended, stopped) are new values; the original is never mutated.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange creates a new DateRange. Start must be strictly before end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if !start.Before(end) {
		return DateRange{}, fmt.Errorf("start date %s must be before end date %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return DateRange{start: start, end: end}, nil
}

// RangeStartingNow creates a range beginning at the current time
func RangeStartingNow(end time.Time) (DateRange, error) {
	return NewDateRange(time.Now(), end)
}

// FromNowTo creates a range beginning now and lasting the given number of
// 24-hour days
func FromNowTo(days int) (DateRange, error) {
	now := time.Now()
	return NewDateRange(now, now.Add(time.Duration(days)*24*time.Hour))
}

// CurrentMonthRange returns the range covering the current calendar month
func CurrentMonthRange() DateRange {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return DateRange{start: start, end: end}
}

// Start returns the range start
func (r DateRange) Start() time.Time {
	return r.start
}

// End returns the range end
func (r DateRange) End() time.Time {
	return r.end
}

// AlreadyStarted reports whether the range has begun relative to the current time
func (r DateRange) AlreadyStarted() bool {
	return r.start.Before(time.Now())
}

// Finished reports whether the range has ended relative to the current time
func (r DateRange) Finished() bool {
	return time.Now().After(r.end)
}

// OnGoing reports whether the current time falls inside the range
func (r DateRange) OnGoing() bool {
	return r.AlreadyStarted() && !r.Finished()
}

// DaysToStart returns the whole days until the range begins, or zero if it
// already started
func (r DateRange) DaysToStart() int {
	days := int(time.Until(r.start).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// DaysLeft returns the whole days until the range ends, or zero if finished
func (r DateRange) DaysLeft() int {
	if r.Finished() {
		return 0
	}
	return int(time.Until(r.end).Hours() / 24)
}

// RangeDays returns the whole days spanned by the range
func (r DateRange) RangeDays() int {
	return int(r.end.Sub(r.start).Hours() / 24)
}

// Extended returns a copy of the range with the end pushed out by the given
// number of days. Zero or negative offsets are rejected: the copy must
// strictly extend the original.
func (r DateRange) Extended(days int) (DateRange, error) {
	if days <= 0 {
		return DateRange{}, fmt.Errorf("extension must be positive, got %d days", days)
	}
	return DateRange{start: r.start, end: r.end.Add(time.Duration(days) * 24 * time.Hour)}, nil
}

// Stopped returns a copy of the range ending at the current time. A range
// that has not started yet cannot be stopped: trimming it would put the end
// before the start.
func (r DateRange) Stopped() (DateRange, error) {
	return NewDateRange(r.start, time.Now())
}

// Equals reports whether both ranges cover the same instants
func (r DateRange) Equals(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

// String returns a human-readable representation
func (r DateRange) String() string {
	return fmt.Sprintf("%s .. %s", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}

type dateRangeJSON struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// MarshalJSON implements json.Marshaler
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateRangeJSON{Start: r.start, End: r.end})
}

// UnmarshalJSON implements json.Unmarshaler, enforcing the start-before-end invariant
func (r *DateRange) UnmarshalJSON(data []byte) error {
	var v dateRangeJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := NewDateRange(v.Start, v.End)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
