package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/staynest/service-rental/internal/domain"
	bookingDomain "github.com/staynest/service-rental/internal/domain/booking"
	propertyDomain "github.com/staynest/service-rental/internal/domain/property"
	"github.com/staynest/service-rental/internal/events"
	"github.com/staynest/service-rental/internal/platform/kafka"
)

// EventPublisher is the slice of the Kafka producer the application layer
// needs; tests substitute a recording stub.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}

// CreateBookingRequest holds the data needed to request a stay.
type CreateBookingRequest struct {
	PropertyID uuid.UUID `json:"property_id" binding:"required"`
	StartDate  time.Time `json:"start_date" binding:"required"`
	EndDate    time.Time `json:"end_date" binding:"required"`
	Guests     int       `json:"guests" binding:"required"`
	Note       string    `json:"note"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID `json:"id"`
	PropertyID      uuid.UUID `json:"property_id"`
	TenantID        uuid.UUID `json:"tenant_id"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Nights          int       `json:"nights"`
	Guests          int       `json:"guests"`
	TotalPriceCents int64     `json:"total_price_cents"`
	Status          string    `json:"status"`
	Note            string    `json:"note,omitempty"`
	Version         int64     `json:"version"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings   bookingDomain.BookingRepository
	properties propertyDomain.PropertyRepository
	pricing    bookingDomain.PricingStrategy
	publisher  EventPublisher
	clock      clockwork.Clock
	logger     *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	properties propertyDomain.PropertyRepository,
	pricing bookingDomain.PricingStrategy,
	publisher EventPublisher,
	clock clockwork.Clock,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		properties: properties,
		pricing:    pricing,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// CreateBooking runs the full request pipeline for a new stay: resolve the
// property, validate the stay against its static constraints, check for
// overlap with approved bookings, derive the price and persist a pending
// booking. The schema's exclusion constraint backstops the overlap check
// against concurrent inserts.
func (s *BookingService) CreateBooking(ctx context.Context, tenantID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	prop, err := s.properties.FindByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}

	stay := bookingDomain.NewStay(req.StartDate, req.EndDate)
	if err := bookingDomain.ValidateStay(prop, stay, req.Guests, s.clock.Now()); err != nil {
		return nil, err
	}

	if colliding, err := s.bookings.FindOverlappingApproved(ctx, prop.ID(), stay, uuid.Nil); err != nil {
		return nil, err
	} else if colliding != nil {
		return nil, domain.NewConflictError(fmt.Sprintf(
			"property is already booked for the selected dates (booking %s)", colliding.ID()))
	}

	priceCents, err := s.pricing.Calculate(stay.Nights(), prop.NightlyRateCents())
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	bk, err := bookingDomain.NewBooking(prop.ID(), tenantID, stay, req.Guests, priceCents, req.Note)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, events.BookingRequested, bk, prop.OwnerID())

	result := toBookingDTO(bk)
	return &result, nil
}

// DecideBooking approves or rejects a pending booking. Only the property
// owner may decide, and approval re-checks the stay against bookings
// approved since the request was created.
func (s *BookingService) DecideBooking(ctx context.Context, actorID, bookingID uuid.UUID, target bookingDomain.BookingStatus) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	prop, err := s.properties.FindByID(ctx, bk.PropertyID())
	if err != nil {
		return nil, err
	}
	if !prop.IsOwnedBy(actorID) {
		return nil, domain.NewForbiddenError("only the property owner can approve or reject bookings")
	}

	var eventType string
	switch target {
	case bookingDomain.StatusApproved:
		if colliding, err := s.bookings.FindOverlappingApproved(ctx, bk.PropertyID(), bk.Stay(), bk.ID()); err != nil {
			return nil, err
		} else if colliding != nil {
			return nil, domain.NewConflictError(fmt.Sprintf(
				"an overlapping booking was approved in the meantime (booking %s)", colliding.ID()))
		}
		if err := bk.Approve(); err != nil {
			return nil, err
		}
		eventType = events.BookingApproved
	case bookingDomain.StatusRejected:
		if err := bk.Reject(); err != nil {
			return nil, err
		}
		eventType = events.BookingRejected
	default:
		return nil, domain.NewValidationError("status must be 'approved' or 'rejected'")
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, eventType, bk, prop.OwnerID())

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a booking on the requesting tenant's behalf.
func (s *BookingService) CancelBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsTenant(actorID) {
		return nil, domain.NewForbiddenError("only the requesting tenant can cancel a booking")
	}

	if err := bk.Cancel(s.clock.Now()); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCancelledEvent{
		BookingID:   bk.ID(),
		PropertyID:  bk.PropertyID(),
		CancelledBy: actorID,
		OccurredAt:  s.clock.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, bk.ID().String(), evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a booking visible to the caller. A booking is
// visible only to its tenant and the property owner; anyone else gets
// NotFound rather than confirmation that it exists.
func (s *BookingService) GetBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !bk.IsTenant(actorID) {
		prop, err := s.properties.FindByID(ctx, bk.PropertyID())
		if err != nil {
			return nil, err
		}
		if !prop.IsOwnedBy(actorID) {
			return nil, domain.NewNotFoundError("Booking", bookingID.String())
		}
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// GetTenantBookings retrieves paginated bookings requested by the tenant.
func (s *BookingService) GetTenantBookings(ctx context.Context, tenantID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByTenantID(ctx, tenantID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetPropertyBookings retrieves paginated bookings for a property; only
// its owner may see them.
func (s *BookingService) GetPropertyBookings(ctx context.Context, actorID, propertyID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	prop, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !prop.IsOwnedBy(actorID) {
		return nil, domain.NewForbiddenError("only the property owner can view its bookings")
	}

	bookings, total, err := s.bookings.FindByPropertyID(ctx, propertyID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}
	return &BookingStatsDTO{TotalBookings: total, ByStatus: counts}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              bk.ID(),
		PropertyID:      bk.PropertyID(),
		TenantID:        bk.TenantID(),
		StartDate:       bk.Stay().Start,
		EndDate:         bk.Stay().End,
		Nights:          bk.Stay().Nights(),
		Guests:          bk.Guests(),
		TotalPriceCents: bk.TotalPriceCents(),
		Status:          string(bk.Status()),
		Note:            bk.Note(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking, ownerID uuid.UUID) {
	evt := events.BookingLifecycleEvent{
		BookingID:       bk.ID(),
		PropertyID:      bk.PropertyID(),
		TenantID:        bk.TenantID(),
		OwnerID:         ownerID,
		StartDate:       bk.Stay().Start,
		EndDate:         bk.Stay().End,
		Nights:          bk.Stay().Nights(),
		Guests:          bk.Guests(),
		TotalPriceCents: bk.TotalPriceCents(),
		OccurredAt:      s.clock.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, eventType, bk.ID().String(), evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType, key string, data interface{}) {
	cloudEvent, err := kafka.NewCloudEvent(events.Source, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, topic, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
