package booking

import "fmt"

// PricingStrategy defines the interface for deriving a stay's total price.
type PricingStrategy interface {
	// Calculate returns the total price in cents for a stay of the given
	// length at the given nightly rate.
	Calculate(nights int, nightlyRateCents int64) (int64, error)
}

// NightlyRatePricing is the standard pricing logic: nights times the
// property's nightly rate, in cents. Both operands are exact fixed-point
// values, so the result carries no rounding ambiguity and the stored total
// can be re-derived byte-for-byte from nights and the rate at booking time.
type NightlyRatePricing struct{}

// NewNightlyRatePricing creates a new NightlyRatePricing.
func NewNightlyRatePricing() *NightlyRatePricing {
	return &NightlyRatePricing{}
}

// Calculate computes the total price in cents.
func (s *NightlyRatePricing) Calculate(nights int, nightlyRateCents int64) (int64, error) {
	if nights < 1 {
		return 0, fmt.Errorf("stay must be at least 1 night")
	}
	if nightlyRateCents <= 0 {
		return 0, fmt.Errorf("nightly rate must be positive")
	}
	return int64(nights) * nightlyRateCents, nil
}
