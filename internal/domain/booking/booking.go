package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-rental/internal/domain"
)

// Booking is the aggregate root for the booking domain: one tenant's
// request to occupy one property for a stay. The total price is computed
// once at creation and immutable thereafter; a booking is never deleted,
// cancellation is a terminal status.
type Booking struct {
	id              uuid.UUID
	propertyID      uuid.UUID
	tenantID        uuid.UUID
	stay            Stay
	guests          int
	totalPriceCents int64
	status          BookingStatus
	note            string
	version         int64
	createdAt       time.Time
	updatedAt       time.Time
}

// NewBooking creates a new Booking aggregate with status=pending.
// Stay-versus-property constraints are the availability validator's
// concern; this constructor enforces only the booking's own invariants.
func NewBooking(
	propertyID, tenantID uuid.UUID,
	stay Stay,
	guests int,
	totalPriceCents int64,
	note string,
) (*Booking, error) {
	if propertyID == uuid.Nil {
		return nil, domain.NewValidationError("property ID is required")
	}
	if tenantID == uuid.Nil {
		return nil, domain.NewValidationError("tenant ID is required")
	}
	if !stay.End.After(stay.Start) {
		return nil, domain.NewValidationError("end date must be after start date")
	}
	if guests < 1 {
		return nil, domain.NewValidationError("at least 1 guest is required")
	}
	if totalPriceCents <= 0 {
		return nil, domain.NewValidationError("total price must be positive")
	}

	now := time.Now().UTC()
	return &Booking{
		id:              uuid.New(),
		propertyID:      propertyID,
		tenantID:        tenantID,
		stay:            stay,
		guests:          guests,
		totalPriceCents: totalPriceCents,
		status:          StatusPending,
		note:            note,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, propertyID, tenantID uuid.UUID,
	stay Stay,
	guests int,
	totalPriceCents int64,
	status BookingStatus,
	note string,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		propertyID:      propertyID,
		tenantID:        tenantID,
		stay:            stay,
		guests:          guests,
		totalPriceCents: totalPriceCents,
		status:          status,
		note:            note,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// PropertyID returns the booked property's ID.
func (b *Booking) PropertyID() uuid.UUID { return b.propertyID }

// TenantID returns the requesting tenant's user ID.
func (b *Booking) TenantID() uuid.UUID { return b.tenantID }

// Stay returns the requested stay interval.
func (b *Booking) Stay() Stay { return b.stay }

// Guests returns the guest count.
func (b *Booking) Guests() int { return b.guests }

// TotalPriceCents returns the total price in cents, fixed at creation.
func (b *Booking) TotalPriceCents() int64 { return b.totalPriceCents }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// Note returns the tenant's free-text note, if any.
func (b *Booking) Note() string { return b.note }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsTenant reports whether the given actor is the requesting tenant.
func (b *Booking) IsTenant(actorID uuid.UUID) bool {
	return b.tenantID == actorID
}

// --- Behavior ---

// Approve transitions the booking from pending to approved.
func (b *Booking) Approve() error {
	if !b.status.CanTransitionTo(StatusApproved) {
		return domain.NewInvalidStateError(string(b.status), string(StatusApproved))
	}
	b.status = StatusApproved
	b.updatedAt = time.Now().UTC()
	return nil
}

// Reject transitions the booking from pending to rejected.
func (b *Booking) Reject() error {
	if !b.status.CanTransitionTo(StatusRejected) {
		return domain.NewInvalidStateError(string(b.status), string(StatusRejected))
	}
	b.status = StatusRejected
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the booking to cancelled. An approved booking can no
// longer be cancelled once its start date has arrived; a property must not
// be freed retroactively mid-stay.
func (b *Booking) Cancel(today time.Time) error {
	if !b.status.CanTransitionTo(StatusCancelled) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	if b.status == StatusApproved && b.stay.HasStarted(today) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
