package events

import (
	"time"

	"github.com/google/uuid"
)

// Event source identifier used in CloudEvent envelopes.
const Source = "service-rental"

// Topics.
const (
	TopicBookingEvents = "booking.events"
	TopicReviewEvents  = "review.events"
)

// Event types.
const (
	BookingRequested = "booking.requested"
	BookingApproved  = "booking.approved"
	BookingRejected  = "booking.rejected"
	BookingCancelled = "booking.cancelled"
	ReviewCreated    = "review.created"
)

// BookingLifecycleEvent is the payload for the requested, approved and
// rejected events; the event type carries the decision.
type BookingLifecycleEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	PropertyID      uuid.UUID `json:"property_id"`
	TenantID        uuid.UUID `json:"tenant_id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Nights          int       `json:"nights"`
	Guests          int       `json:"guests"`
	TotalPriceCents int64     `json:"total_price_cents"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when the tenant cancels a booking.
type BookingCancelledEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	PropertyID  uuid.UUID `json:"property_id"`
	CancelledBy uuid.UUID `json:"cancelled_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ReviewCreatedEvent is published when a guest reviews a completed stay.
type ReviewCreatedEvent struct {
	ReviewID   uuid.UUID `json:"review_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	GuestID    uuid.UUID `json:"guest_id"`
	HostID     uuid.UUID `json:"host_id"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}
