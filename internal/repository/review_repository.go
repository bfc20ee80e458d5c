package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staynest/service-rental/internal/domain"
	reviewDomain "github.com/staynest/service-rental/internal/domain/review"
)

// ReviewModel is the GORM model for the reviews table. The unique index on
// booking_id enforces the one-review-per-booking invariant at the schema
// level.
type ReviewModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	GuestID   uuid.UUID `gorm:"type:uuid;index;not null"`
	HostID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Rating    int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ReviewModel) TableName() string {
	return "reviews"
}

// GormReviewRepository is the GORM-based implementation of ReviewRepository.
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository.
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID retrieves a review by its unique identifier.
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*reviewDomain.Review, error) {
	var model ReviewModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Review", id.String())
		}
		return nil, fmt.Errorf("failed to find review by ID: %w", err)
	}
	return toDomainReview(&model), nil
}

// FindByBookingID retrieves the review for a booking, or nil if none exists.
func (r *GormReviewRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*reviewDomain.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find review by booking ID: %w", err)
	}
	return toDomainReview(&model), nil
}

// FindByHostID retrieves all reviews rating the given host, newest first.
func (r *GormReviewRepository) FindByHostID(ctx context.Context, hostID uuid.UUID) ([]*reviewDomain.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find host reviews: %w", err)
	}

	reviews := make([]*reviewDomain.Review, len(models))
	for i, m := range models {
		reviews[i] = toDomainReview(&m)
	}
	return reviews, nil
}

// Save persists a new review. A concurrent duplicate for the same booking
// trips the unique index and surfaces as an AlreadyExistsError.
func (r *GormReviewRepository) Save(ctx context.Context, rv *reviewDomain.Review) error {
	model := &ReviewModel{
		ID:        rv.ID(),
		BookingID: rv.BookingID(),
		GuestID:   rv.GuestID(),
		HostID:    rv.HostID(),
		Rating:    rv.Rating(),
		CreatedAt: rv.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return domain.NewAlreadyExistsError("Review", "booking "+rv.BookingID().String())
		}
		return fmt.Errorf("failed to save review: %w", err)
	}
	return nil
}

func toDomainReview(m *ReviewModel) *reviewDomain.Review {
	return reviewDomain.Reconstruct(m.ID, m.BookingID, m.GuestID, m.HostID, m.Rating, m.CreatedAt)
}
