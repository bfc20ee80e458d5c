package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/staynest/service-rental/internal/domain"
	bookingDomain "github.com/staynest/service-rental/internal/domain/booking"
	propertyDomain "github.com/staynest/service-rental/internal/domain/property"
	reviewDomain "github.com/staynest/service-rental/internal/domain/review"
	"github.com/staynest/service-rental/internal/events"
	"github.com/staynest/service-rental/internal/platform/kafka"
)

// CreateReviewRequest is the request DTO for reviewing a completed stay.
type CreateReviewRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// ReviewDTO is the API response representation of a review.
type ReviewDTO struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	GuestID   uuid.UUID `json:"guest_id"`
	HostID    uuid.UUID `json:"host_id"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// HostRatingDTO is the aggregate rating surface for a host.
type HostRatingDTO struct {
	HostID        uuid.UUID   `json:"host_id"`
	AverageRating float64     `json:"average_rating"`
	TotalCount    int         `json:"total_count"`
	Reviews       []ReviewDTO `json:"reviews"`
}

// ReviewService is the application service for host reviews.
type ReviewService struct {
	reviews    reviewDomain.ReviewRepository
	bookings   bookingDomain.BookingRepository
	properties propertyDomain.PropertyRepository
	cache      reviewDomain.RatingCache
	publisher  EventPublisher
	clock      clockwork.Clock
	logger     *zap.Logger
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviews reviewDomain.ReviewRepository,
	bookings bookingDomain.BookingRepository,
	properties propertyDomain.PropertyRepository,
	cache reviewDomain.RatingCache,
	publisher EventPublisher,
	clock clockwork.Clock,
	logger *zap.Logger,
) *ReviewService {
	return &ReviewService{
		reviews:    reviews,
		bookings:   bookings,
		properties: properties,
		cache:      cache,
		publisher:  publisher,
		clock:      clock,
		logger:     logger,
	}
}

// CreateReview records a rating for a completed stay. Only the booking's
// tenant may review, the booking must be approved, the stay must have
// ended, and each booking can be reviewed at most once.
func (s *ReviewService) CreateReview(ctx context.Context, guestID, bookingID uuid.UUID, req CreateReviewRequest) (*ReviewDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsTenant(guestID) {
		return nil, domain.NewForbiddenError("only the booking tenant can review the stay")
	}
	if bk.Status() != bookingDomain.StatusApproved {
		return nil, domain.NewInvalidStateError(bk.Status().String(), "reviewed")
	}
	if !bk.Stay().HasEnded(s.clock.Now()) {
		return nil, domain.NewInvalidStateError("in progress", "reviewed")
	}

	existing, err := s.reviews.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewAlreadyExistsError("Review", "booking "+bookingID.String())
	}

	prop, err := s.properties.FindByID(ctx, bk.PropertyID())
	if err != nil {
		return nil, err
	}

	rev, err := reviewDomain.NewReview(bookingID, guestID, prop.OwnerID(), req.Rating)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Save(ctx, rev); err != nil {
		return nil, err
	}

	// Drop the stale summary now; the projector rebuilds it from the event.
	if err := s.cache.InvalidateHostRating(ctx, rev.HostID()); err != nil {
		s.logger.Warn("failed to invalidate host rating cache",
			zap.String("host_id", rev.HostID().String()),
			zap.Error(err),
		)
	}

	s.publishReviewCreated(ctx, rev)

	s.logger.Info("review created",
		zap.String("review_id", rev.ID().String()),
		zap.String("booking_id", bookingID.String()),
		zap.Int("rating", rev.Rating()),
	)

	dto := toReviewDTO(rev)
	return &dto, nil
}

// GetReview retrieves a single review by ID.
func (s *ReviewService) GetReview(ctx context.Context, reviewID uuid.UUID) (*ReviewDTO, error) {
	rev, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	dto := toReviewDTO(rev)
	return &dto, nil
}

// GetBookingReview retrieves the review for a booking. Only the booking's
// tenant or the property owner may see it.
func (s *ReviewService) GetBookingReview(ctx context.Context, actorID, bookingID uuid.UUID) (*ReviewDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	prop, err := s.properties.FindByID(ctx, bk.PropertyID())
	if err != nil {
		return nil, err
	}
	if !bk.IsTenant(actorID) && !prop.IsOwnedBy(actorID) {
		return nil, domain.NewForbiddenError("only the tenant or the property owner can view this review")
	}

	rev, err := s.reviews.FindByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, domain.NewNotFoundError("Review", "booking "+bookingID.String())
	}
	dto := toReviewDTO(rev)
	return &dto, nil
}

// GetHostRating returns a host's reviews with the aggregate summary. The
// summary is read through the cache; a miss recomputes and backfills it.
func (s *ReviewService) GetHostRating(ctx context.Context, hostID uuid.UUID) (*HostRatingDTO, error) {
	reviews, err := s.reviews.FindByHostID(ctx, hostID)
	if err != nil {
		return nil, err
	}

	summary, err := s.cache.GetHostRating(ctx, hostID)
	if err != nil {
		s.logger.Warn("failed to read host rating cache",
			zap.String("host_id", hostID.String()),
			zap.Error(err),
		)
	}
	if summary == nil {
		computed := reviewDomain.Summarize(reviews)
		summary = &computed
		if err := s.cache.SetHostRating(ctx, hostID, computed); err != nil {
			s.logger.Warn("failed to backfill host rating cache",
				zap.String("host_id", hostID.String()),
				zap.Error(err),
			)
		}
	}

	dtos := make([]ReviewDTO, len(reviews))
	for i, r := range reviews {
		dtos[i] = toReviewDTO(r)
	}
	return &HostRatingDTO{
		HostID:        hostID,
		AverageRating: summary.AverageRating,
		TotalCount:    summary.TotalCount,
		Reviews:       dtos,
	}, nil
}

func (s *ReviewService) publishReviewCreated(ctx context.Context, rev *reviewDomain.Review) {
	payload := events.ReviewCreatedEvent{
		ReviewID:   rev.ID(),
		BookingID:  rev.BookingID(),
		GuestID:    rev.GuestID(),
		HostID:     rev.HostID(),
		Rating:     rev.Rating(),
		OccurredAt: s.clock.Now().UTC(),
	}
	event, err := kafka.NewCloudEvent(events.Source, events.ReviewCreated, payload)
	if err != nil {
		s.logger.Error("failed to build review event", zap.Error(err))
		return
	}
	if err := s.publisher.PublishEvent(ctx, events.TopicReviewEvents, rev.HostID().String(), event); err != nil {
		s.logger.Error("failed to publish review event",
			zap.String("review_id", rev.ID().String()),
			zap.Error(err),
		)
	}
}

func toReviewDTO(r *reviewDomain.Review) ReviewDTO {
	return ReviewDTO{
		ID:        r.ID(),
		BookingID: r.BookingID(),
		GuestID:   r.GuestID(),
		HostID:    r.HostID(),
		Rating:    r.Rating(),
		CreatedAt: r.CreatedAt(),
	}
}
