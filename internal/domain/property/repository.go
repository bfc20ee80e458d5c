package property

import (
	"context"

	"github.com/google/uuid"
)

// Sort keys accepted by ListFilter. Anything else sorts by listing date.
const (
	SortByPrice    = "price"
	SortByCity     = "city"
	SortByBedrooms = "bedrooms"

	SortAsc = "asc"
)

// ListFilter narrows and orders a listing query. Pointer fields distinguish
// "unset" from a real zero or false.
type ListFilter struct {
	City         string
	MinRateCents *int64
	MaxRateCents *int64
	MinGuests    *int
	Bedrooms     *int
	Available    *bool
	SortBy       string
	SortOrder    string
}

// PropertyRepository defines the persistence contract for property aggregates.
type PropertyRepository interface {
	// FindByID retrieves a property by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// FindByOwnerID retrieves properties belonging to a specific owner.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Property, error)

	// ListAll retrieves properties matching the filter, paginated.
	ListAll(ctx context.Context, filter ListFilter, page, limit int) ([]*Property, int64, error)

	// Save persists a new property.
	Save(ctx context.Context, property *Property) error

	// Update persists changes to an existing property with optimistic locking.
	Update(ctx context.Context, property *Property) error

	// Delete removes a property.
	Delete(ctx context.Context, id uuid.UUID) error
}
