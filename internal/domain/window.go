package domain

import (
	"errors"
	"time"
)

// ErrInvalidWindow is returned when a window's end does not follow its start.
var ErrInvalidWindow = errors.New("domain: window end must be after start")

// TimeWindow is a half-open [Start, End) span of wall-clock instants.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewTimeWindow builds a window, enforcing End > Start.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, ErrInvalidWindow
	}
	return TimeWindow{Start: start, End: end}, nil
}

// IsZero reports whether both instants are unset.
func (w TimeWindow) IsZero() bool {
	return w.Start.IsZero() && w.End.IsZero()
}

// Duration returns End - Start.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// DurationMinutes returns the span length in whole minutes.
func (w TimeWindow) DurationMinutes() int {
	return int(w.Duration() / time.Minute)
}

// Hours returns the span length in fractional hours, for pricing.
func (w TimeWindow) Hours() float64 {
	return w.Duration().Hours()
}

// Overlaps reports whether two windows truly intersect. Strict
// inequalities keep back-to-back windows (one ends exactly where the
// other starts) from counting as overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}

// Contains reports whether t falls inside the half-open span.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// ShiftBy returns the window moved by d, keeping its duration.
func (w TimeWindow) ShiftBy(d time.Duration) TimeWindow {
	return TimeWindow{Start: w.Start.Add(d), End: w.End.Add(d)}
}

// SameCalendarDay reports whether the window starts and ends on one
// calendar day in the given location. Windows that touch midnight exactly
// at their end still count as single-day.
func (w TimeWindow) SameCalendarDay(loc *time.Location) bool {
	start := w.Start.In(loc)
	end := w.End.In(loc)

	// An end at exactly 00:00 belongs to the previous day for this check.
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 {
		end = end.Add(-time.Minute)
	}

	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
