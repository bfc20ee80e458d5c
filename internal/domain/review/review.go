package review

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-rental/internal/domain"
)

// Rating bounds for a star rating.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is the aggregate root for a host rating. It is tied 1:1 to a
// completed approved booking and immutable once created; the host is
// snapshotted from the property owner at creation time.
type Review struct {
	id        uuid.UUID
	bookingID uuid.UUID
	guestID   uuid.UUID
	hostID    uuid.UUID
	rating    int
	createdAt time.Time
}

// NewReview creates a new Review with a validated star rating.
func NewReview(bookingID, guestID, hostID uuid.UUID, rating int) (*Review, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if guestID == uuid.Nil {
		return nil, domain.NewValidationError("guest ID is required")
	}
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if rating < MinRating || rating > MaxRating {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}

	return &Review{
		id:        uuid.New(),
		bookingID: bookingID,
		guestID:   guestID,
		hostID:    hostID,
		rating:    rating,
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Review from persistence data (no validation).
func Reconstruct(id, bookingID, guestID, hostID uuid.UUID, rating int, createdAt time.Time) *Review {
	return &Review{
		id:        id,
		bookingID: bookingID,
		guestID:   guestID,
		hostID:    hostID,
		rating:    rating,
		createdAt: createdAt,
	}
}

// ID returns the review's unique identifier.
func (r *Review) ID() uuid.UUID { return r.id }

// BookingID returns the reviewed booking's ID.
func (r *Review) BookingID() uuid.UUID { return r.bookingID }

// GuestID returns the reviewing guest's user ID.
func (r *Review) GuestID() uuid.UUID { return r.guestID }

// HostID returns the rated host's user ID.
func (r *Review) HostID() uuid.UUID { return r.hostID }

// Rating returns the star rating.
func (r *Review) Rating() int { return r.rating }

// CreatedAt returns the creation timestamp.
func (r *Review) CreatedAt() time.Time { return r.createdAt }

// RatingSummary is the aggregate rating for a host.
type RatingSummary struct {
	AverageRating float64 `json:"average_rating"`
	TotalCount    int     `json:"total_count"`
}

// Summarize computes a host's aggregate rating: the arithmetic mean of all
// star ratings rounded to 1 decimal place, or 0 when no reviews exist.
func Summarize(reviews []*Review) RatingSummary {
	if len(reviews) == 0 {
		return RatingSummary{AverageRating: 0, TotalCount: 0}
	}
	var sum int
	for _, r := range reviews {
		sum += r.rating
	}
	avg := float64(sum) / float64(len(reviews))
	return RatingSummary{
		AverageRating: math.Round(avg*10) / 10,
		TotalCount:    len(reviews),
	}
}
