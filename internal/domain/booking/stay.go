package booking

import "time"

// Stay is a value object for the date-bounded occupancy of a booking,
// expressed as the half-open interval [Start, End) of nights. Only the
// date component is significant; both bounds are UTC midnights.
type Stay struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// NewStay creates a Stay from the given bounds, truncated to UTC dates.
func NewStay(start, end time.Time) Stay {
	return Stay{Start: toUTCDate(start), End: toUTCDate(end)}
}

// Nights returns the whole-day difference between End and Start.
func (s Stay) Nights() int {
	return int(s.End.Sub(s.Start).Hours() / 24)
}

// Overlaps reports whether two half-open stay intervals intersect.
// A checkout date equal to another stay's check-in date is not an
// overlap, which allows same-day turnover.
func (s Stay) Overlaps(other Stay) bool {
	return s.Start.Before(other.End) && other.Start.Before(s.End)
}

// HasStarted reports whether the stay's start date has arrived.
func (s Stay) HasStarted(today time.Time) bool {
	return !s.Start.After(toUTCDate(today))
}

// HasEnded reports whether the stay has concluded (End is not in the future).
func (s Stay) HasEnded(today time.Time) bool {
	return !s.End.After(toUTCDate(today))
}

// toUTCDate truncates a time to its UTC date at midnight.
func toUTCDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC date at midnight for the given instant.
func Today(now time.Time) time.Time {
	return toUTCDate(now)
}
