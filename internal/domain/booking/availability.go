package booking

import (
	"fmt"
	"time"

	"github.com/staynest/service-rental/internal/domain"
	"github.com/staynest/service-rental/internal/domain/property"
)

// ValidateStay checks a requested stay against a property's static
// constraints. Checks run in a fixed order and the first failure wins, so
// error messages are deterministic for a given invalid input:
// date order, past start, availability flag, guest capacity, then stay
// length bounds.
func ValidateStay(p *property.Property, stay Stay, guests int, today time.Time) error {
	if !stay.End.After(stay.Start) {
		return domain.NewValidationError("end date must be after start date")
	}
	if stay.Start.Before(Today(today)) {
		return domain.NewValidationError("start date cannot be in the past")
	}
	if !p.IsAvailable() {
		return domain.NewValidationError("property is not available for booking")
	}
	if guests < 1 {
		return domain.NewValidationError("at least 1 guest is required")
	}
	if guests > p.MaxGuests() {
		return domain.NewValidationError(fmt.Sprintf("property can accommodate at most %d guests", p.MaxGuests()))
	}
	nights := stay.Nights()
	if nights < p.MinStayNights() {
		return domain.NewValidationError(fmt.Sprintf("minimum stay is %d nights", p.MinStayNights()))
	}
	if nights > p.MaxStayNights() {
		return domain.NewValidationError(fmt.Sprintf("maximum stay is %d nights", p.MaxStayNights()))
	}
	return nil
}
