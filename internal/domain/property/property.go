package property

import (
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-rental/internal/domain"
)

// Default arrival and departure times. These are informational metadata
// shown to guests; booking conflicts are decided on dates alone.
const (
	DefaultCheckInTime  = "15:00"
	DefaultCheckOutTime = "11:00"
)

// Amenities is a value object describing what a property offers.
type Amenities struct {
	Wifi            bool `json:"wifi"`
	Parking         bool `json:"parking"`
	Kitchen         bool `json:"kitchen"`
	Washer          bool `json:"washer"`
	AirConditioning bool `json:"air_conditioning"`
}

// Property is the aggregate root for a rentable unit. It is owned by
// exactly one host and carries the static constraints the availability
// checks are evaluated against.
type Property struct {
	id               uuid.UUID
	ownerID          uuid.UUID
	title            string
	description      string
	address          string
	city             string
	zipCode          string
	nightlyRateCents int64
	bedrooms         int
	bathrooms        int
	squareFootage    int
	maxGuests        int
	minStayNights    int
	maxStayNights    int
	checkInTime      string
	checkOutTime     string
	amenities        Amenities
	available        bool
	version          int64
	createdAt        time.Time
	updatedAt        time.Time
}

// NewProperty creates a new available Property with validated fields.
func NewProperty(
	ownerID uuid.UUID,
	title, description, address, city, zipCode string,
	nightlyRateCents int64,
	bedrooms, bathrooms, squareFootage int,
	maxGuests, minStayNights, maxStayNights int,
	checkInTime, checkOutTime string,
	amenities Amenities,
) (*Property, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if err := validateFields(title, address, city, zipCode, nightlyRateCents, maxGuests, minStayNights, maxStayNights); err != nil {
		return nil, err
	}
	if checkInTime == "" {
		checkInTime = DefaultCheckInTime
	}
	if checkOutTime == "" {
		checkOutTime = DefaultCheckOutTime
	}

	now := time.Now().UTC()
	return &Property{
		id:               uuid.New(),
		ownerID:          ownerID,
		title:            title,
		description:      description,
		address:          address,
		city:             city,
		zipCode:          zipCode,
		nightlyRateCents: nightlyRateCents,
		bedrooms:         bedrooms,
		bathrooms:        bathrooms,
		squareFootage:    squareFootage,
		maxGuests:        maxGuests,
		minStayNights:    minStayNights,
		maxStayNights:    maxStayNights,
		checkInTime:      checkInTime,
		checkOutTime:     checkOutTime,
		amenities:        amenities,
		available:        true,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func validateFields(title, address, city, zipCode string, nightlyRateCents int64, maxGuests, minStayNights, maxStayNights int) error {
	if title == "" {
		return domain.NewValidationError("title is required")
	}
	if address == "" {
		return domain.NewValidationError("address is required")
	}
	if city == "" {
		return domain.NewValidationError("city is required")
	}
	if zipCode == "" {
		return domain.NewValidationError("zip code is required")
	}
	if nightlyRateCents <= 0 {
		return domain.NewValidationError("nightly rate must be positive")
	}
	if maxGuests < 1 {
		return domain.NewValidationError("max guests must be at least 1")
	}
	if minStayNights < 1 {
		return domain.NewValidationError("minimum stay must be at least 1 night")
	}
	if maxStayNights < minStayNights {
		return domain.NewValidationError("maximum stay cannot be shorter than minimum stay")
	}
	return nil
}

// Reconstruct rebuilds a Property from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	title, description, address, city, zipCode string,
	nightlyRateCents int64,
	bedrooms, bathrooms, squareFootage int,
	maxGuests, minStayNights, maxStayNights int,
	checkInTime, checkOutTime string,
	amenities Amenities,
	available bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Property {
	return &Property{
		id:               id,
		ownerID:          ownerID,
		title:            title,
		description:      description,
		address:          address,
		city:             city,
		zipCode:          zipCode,
		nightlyRateCents: nightlyRateCents,
		bedrooms:         bedrooms,
		bathrooms:        bathrooms,
		squareFootage:    squareFootage,
		maxGuests:        maxGuests,
		minStayNights:    minStayNights,
		maxStayNights:    maxStayNights,
		checkInTime:      checkInTime,
		checkOutTime:     checkOutTime,
		amenities:        amenities,
		available:        available,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// ID returns the property's unique identifier.
func (p *Property) ID() uuid.UUID { return p.id }

// OwnerID returns the host's user ID.
func (p *Property) OwnerID() uuid.UUID { return p.ownerID }

// Title returns the listing title.
func (p *Property) Title() string { return p.title }

// Description returns the listing description.
func (p *Property) Description() string { return p.description }

// Address returns the street address.
func (p *Property) Address() string { return p.address }

// City returns the city.
func (p *Property) City() string { return p.city }

// ZipCode returns the postal code.
func (p *Property) ZipCode() string { return p.zipCode }

// NightlyRateCents returns the price per night in cents.
func (p *Property) NightlyRateCents() int64 { return p.nightlyRateCents }

// Bedrooms returns the bedroom count.
func (p *Property) Bedrooms() int { return p.bedrooms }

// Bathrooms returns the bathroom count.
func (p *Property) Bathrooms() int { return p.bathrooms }

// SquareFootage returns the floor area in square feet.
func (p *Property) SquareFootage() int { return p.squareFootage }

// MaxGuests returns the guest capacity.
func (p *Property) MaxGuests() int { return p.maxGuests }

// MinStayNights returns the minimum stay length in nights.
func (p *Property) MinStayNights() int { return p.minStayNights }

// MaxStayNights returns the maximum stay length in nights.
func (p *Property) MaxStayNights() int { return p.maxStayNights }

// CheckInTime returns the advertised arrival time.
func (p *Property) CheckInTime() string { return p.checkInTime }

// CheckOutTime returns the advertised departure time.
func (p *Property) CheckOutTime() string { return p.checkOutTime }

// Amenities returns the amenity flags.
func (p *Property) Amenities() Amenities { return p.amenities }

// IsAvailable returns whether the property accepts booking requests.
func (p *Property) IsAvailable() bool { return p.available }

// Version returns the entity version for optimistic locking.
func (p *Property) Version() int64 { return p.version }

// CreatedAt returns the creation timestamp.
func (p *Property) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (p *Property) UpdatedAt() time.Time { return p.updatedAt }

// IsOwnedBy reports whether the given actor is the property's owner.
func (p *Property) IsOwnedBy(actorID uuid.UUID) bool {
	return p.ownerID == actorID
}

// Update replaces the mutable listing fields after re-validating the
// property invariants.
func (p *Property) Update(
	title, description, address, city, zipCode string,
	nightlyRateCents int64,
	bedrooms, bathrooms, squareFootage int,
	maxGuests, minStayNights, maxStayNights int,
	checkInTime, checkOutTime string,
	amenities Amenities,
	available bool,
) error {
	if err := validateFields(title, address, city, zipCode, nightlyRateCents, maxGuests, minStayNights, maxStayNights); err != nil {
		return err
	}
	if checkInTime == "" {
		checkInTime = p.checkInTime
	}
	if checkOutTime == "" {
		checkOutTime = p.checkOutTime
	}

	p.title = title
	p.description = description
	p.address = address
	p.city = city
	p.zipCode = zipCode
	p.nightlyRateCents = nightlyRateCents
	p.bedrooms = bedrooms
	p.bathrooms = bathrooms
	p.squareFootage = squareFootage
	p.maxGuests = maxGuests
	p.minStayNights = minStayNights
	p.maxStayNights = maxStayNights
	p.checkInTime = checkInTime
	p.checkOutTime = checkOutTime
	p.amenities = amenities
	p.available = available
	p.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (p *Property) IncrementVersion() {
	p.version++
	p.updatedAt = time.Now().UTC()
}
