package review

import (
	"context"

	"github.com/google/uuid"
)

// ReviewRepository defines the persistence contract for review aggregates.
// Reviews are immutable; there is no update or delete.
type ReviewRepository interface {
	// FindByID retrieves a review by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByBookingID retrieves the review for a booking, or nil if the
	// booking has not been reviewed.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Review, error)

	// FindByHostID retrieves all reviews rating the given host, newest first.
	FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*Review, error)

	// Save persists a new review. Implementations must enforce the
	// one-review-per-booking invariant.
	Save(ctx context.Context, review *Review) error
}

// RatingCache holds precomputed host rating summaries. A miss returns
// (nil, nil); callers fall back to the repository.
type RatingCache interface {
	GetHostRating(ctx context.Context, hostID uuid.UUID) (*RatingSummary, error)
	SetHostRating(ctx context.Context, hostID uuid.UUID, summary RatingSummary) error
	InvalidateHostRating(ctx context.Context, hostID uuid.UUID) error
}
