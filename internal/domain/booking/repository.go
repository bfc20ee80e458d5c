package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
//
// Save must treat the overlap check and the insert as one atomic unit for
// the booked property: two concurrent requests for overlapping stays must
// not both be able to reach approved status.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByTenantID retrieves bookings requested by a tenant, newest first.
	FindByTenantID(ctx context.Context, tenantID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindByPropertyID retrieves bookings for a property, newest first.
	FindByPropertyID(ctx context.Context, propertyID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindOverlappingApproved returns an approved booking for the property
	// whose stay overlaps the given one, or nil if there is none. excludeID
	// is ignored in the search so a booking is never its own conflict.
	FindOverlappingApproved(ctx context.Context, propertyID uuid.UUID, stay Stay, excludeID uuid.UUID) (*Booking, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
