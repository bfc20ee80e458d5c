package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewStay_TruncatesToUTCDates(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	start := time.Date(2026, 6, 1, 23, 45, 0, 0, loc) // 15:45 UTC
	end := time.Date(2026, 6, 4, 1, 30, 0, 0, loc)

	stay := NewStay(start, end)

	assert.Equal(t, date(2026, 6, 1), stay.Start)
	assert.Equal(t, date(2026, 6, 3), stay.End)
}

func TestStay_Nights(t *testing.T) {
	stay := NewStay(date(2026, 6, 1), date(2026, 6, 6))
	assert.Equal(t, 5, stay.Nights())

	oneNight := NewStay(date(2026, 6, 1), date(2026, 6, 2))
	assert.Equal(t, 1, oneNight.Nights())
}

func TestStay_Overlaps(t *testing.T) {
	base := NewStay(date(2026, 6, 10), date(2026, 6, 15))

	tests := []struct {
		name  string
		other Stay
		want  bool
	}{
		{"identical", NewStay(date(2026, 6, 10), date(2026, 6, 15)), true},
		{"contained", NewStay(date(2026, 6, 11), date(2026, 6, 13)), true},
		{"straddles start", NewStay(date(2026, 6, 8), date(2026, 6, 11)), true},
		{"straddles end", NewStay(date(2026, 6, 14), date(2026, 6, 18)), true},
		{"same-day turnover before", NewStay(date(2026, 6, 5), date(2026, 6, 10)), false},
		{"same-day turnover after", NewStay(date(2026, 6, 15), date(2026, 6, 20)), false},
		{"disjoint before", NewStay(date(2026, 6, 1), date(2026, 6, 4)), false},
		{"disjoint after", NewStay(date(2026, 6, 20), date(2026, 6, 25)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestStay_HasStartedHasEnded(t *testing.T) {
	stay := NewStay(date(2026, 6, 10), date(2026, 6, 15))

	assert.False(t, stay.HasStarted(date(2026, 6, 9)))
	assert.True(t, stay.HasStarted(date(2026, 6, 10)))
	assert.True(t, stay.HasStarted(date(2026, 6, 12)))

	assert.False(t, stay.HasEnded(date(2026, 6, 14)))
	assert.True(t, stay.HasEnded(date(2026, 6, 15)))
	assert.True(t, stay.HasEnded(date(2026, 7, 1)))
}
