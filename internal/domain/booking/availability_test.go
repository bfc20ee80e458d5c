package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/service-rental/internal/domain"
	"github.com/staynest/service-rental/internal/domain/property"
)

func testProperty(t *testing.T) *property.Property {
	t.Helper()
	p, err := property.NewProperty(
		uuid.New(),
		"Loft near the river", "", "12 Mill Lane", "Portland", "97201",
		12000,
		1, 1, 650,
		4, 2, 14,
		"", "",
		property.Amenities{Wifi: true},
	)
	require.NoError(t, err)
	return p
}

func TestValidateStay(t *testing.T) {
	today := date(2026, 6, 1)

	tests := []struct {
		name    string
		stay    Stay
		guests  int
		wantErr string
	}{
		{
			name:   "valid stay",
			stay:   NewStay(date(2026, 6, 10), date(2026, 6, 14)),
			guests: 2,
		},
		{
			name:    "end before start",
			stay:    NewStay(date(2026, 6, 14), date(2026, 6, 10)),
			guests:  2,
			wantErr: "end date must be after start date",
		},
		{
			name:    "end equals start",
			stay:    NewStay(date(2026, 6, 10), date(2026, 6, 10)),
			guests:  2,
			wantErr: "end date must be after start date",
		},
		{
			name:    "start in the past",
			stay:    NewStay(date(2026, 5, 28), date(2026, 6, 3)),
			guests:  2,
			wantErr: "start date cannot be in the past",
		},
		{
			name:   "start today is allowed",
			stay:   NewStay(date(2026, 6, 1), date(2026, 6, 4)),
			guests: 2,
		},
		{
			name:    "zero guests",
			stay:    NewStay(date(2026, 6, 10), date(2026, 6, 14)),
			guests:  0,
			wantErr: "at least 1 guest is required",
		},
		{
			name:    "too many guests",
			stay:    NewStay(date(2026, 6, 10), date(2026, 6, 14)),
			guests:  5,
			wantErr: "property can accommodate at most 4 guests",
		},
		{
			name:    "below minimum stay",
			stay:    NewStay(date(2026, 6, 10), date(2026, 6, 11)),
			guests:  2,
			wantErr: "minimum stay is 2 nights",
		},
		{
			name:    "above maximum stay",
			stay:    NewStay(date(2026, 6, 10), date(2026, 6, 25)),
			guests:  2,
			wantErr: "maximum stay is 14 nights",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testProperty(t)
			err := ValidateStay(p, tt.stay, tt.guests, today)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateStay_UnavailableProperty(t *testing.T) {
	p := testProperty(t)
	require.NoError(t, p.Update(
		p.Title(), p.Description(), p.Address(), p.City(), p.ZipCode(),
		p.NightlyRateCents(),
		p.Bedrooms(), p.Bathrooms(), p.SquareFootage(),
		p.MaxGuests(), p.MinStayNights(), p.MaxStayNights(),
		p.CheckInTime(), p.CheckOutTime(),
		p.Amenities(),
		false,
	))

	stay := NewStay(date(2026, 6, 10), date(2026, 6, 14))
	err := ValidateStay(p, stay, 2, date(2026, 6, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "property is not available for booking")
}

// Date order is checked before guest capacity, so an input that is wrong
// in both ways reports the date problem.
func TestValidateStay_FirstFailureWins(t *testing.T) {
	p := testProperty(t)
	stay := NewStay(date(2026, 6, 14), date(2026, 6, 10))
	err := ValidateStay(p, stay, 99, date(2026, 6, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end date must be after start date")
}
