package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staynest/service-rental/internal/domain"
	propertyDomain "github.com/staynest/service-rental/internal/domain/property"
)

// CreatePropertyRequest is the request DTO for listing a property.
type CreatePropertyRequest struct {
	Title            string                   `json:"title" binding:"required"`
	Description      string                   `json:"description"`
	Address          string                   `json:"address" binding:"required"`
	City             string                   `json:"city" binding:"required"`
	ZipCode          string                   `json:"zip_code" binding:"required"`
	NightlyRateCents int64                    `json:"nightly_rate_cents" binding:"required"`
	Bedrooms         int                      `json:"bedrooms"`
	Bathrooms        int                      `json:"bathrooms"`
	SquareFootage    int                      `json:"square_footage"`
	MaxGuests        int                      `json:"max_guests" binding:"required"`
	MinStayNights    int                      `json:"min_stay_nights" binding:"required"`
	MaxStayNights    int                      `json:"max_stay_nights" binding:"required"`
	CheckInTime      string                   `json:"check_in_time"`
	CheckOutTime     string                   `json:"check_out_time"`
	Amenities        propertyDomain.Amenities `json:"amenities"`
}

// UpdatePropertyRequest is the request DTO for updating a listing.
type UpdatePropertyRequest struct {
	Title            string                   `json:"title" binding:"required"`
	Description      string                   `json:"description"`
	Address          string                   `json:"address" binding:"required"`
	City             string                   `json:"city" binding:"required"`
	ZipCode          string                   `json:"zip_code" binding:"required"`
	NightlyRateCents int64                    `json:"nightly_rate_cents" binding:"required"`
	Bedrooms         int                      `json:"bedrooms"`
	Bathrooms        int                      `json:"bathrooms"`
	SquareFootage    int                      `json:"square_footage"`
	MaxGuests        int                      `json:"max_guests" binding:"required"`
	MinStayNights    int                      `json:"min_stay_nights" binding:"required"`
	MaxStayNights    int                      `json:"max_stay_nights" binding:"required"`
	CheckInTime      string                   `json:"check_in_time"`
	CheckOutTime     string                   `json:"check_out_time"`
	Amenities        propertyDomain.Amenities `json:"amenities"`
	Available        bool                     `json:"available"`
}

// PropertyDTO is the API response representation of a property.
type PropertyDTO struct {
	ID               uuid.UUID                `json:"id"`
	OwnerID          uuid.UUID                `json:"owner_id"`
	Title            string                   `json:"title"`
	Description      string                   `json:"description"`
	Address          string                   `json:"address"`
	City             string                   `json:"city"`
	ZipCode          string                   `json:"zip_code"`
	NightlyRateCents int64                    `json:"nightly_rate_cents"`
	Bedrooms         int                      `json:"bedrooms"`
	Bathrooms        int                      `json:"bathrooms"`
	SquareFootage    int                      `json:"square_footage"`
	MaxGuests        int                      `json:"max_guests"`
	MinStayNights    int                      `json:"min_stay_nights"`
	MaxStayNights    int                      `json:"max_stay_nights"`
	CheckInTime      string                   `json:"check_in_time"`
	CheckOutTime     string                   `json:"check_out_time"`
	Amenities        propertyDomain.Amenities `json:"amenities"`
	Available        bool                     `json:"available"`
	Version          int64                    `json:"version"`
	CreatedAt        time.Time                `json:"created_at"`
	UpdatedAt        time.Time                `json:"updated_at"`
}

// PropertyService is the application service for property listings.
type PropertyService struct {
	properties propertyDomain.PropertyRepository
	logger     *zap.Logger
}

// NewPropertyService creates a new PropertyService.
func NewPropertyService(properties propertyDomain.PropertyRepository, logger *zap.Logger) *PropertyService {
	return &PropertyService{properties: properties, logger: logger}
}

// CreateProperty lists a new property for the given owner.
func (s *PropertyService) CreateProperty(ctx context.Context, ownerID uuid.UUID, req CreatePropertyRequest) (*PropertyDTO, error) {
	prop, err := propertyDomain.NewProperty(
		ownerID,
		req.Title, req.Description, req.Address, req.City, req.ZipCode,
		req.NightlyRateCents,
		req.Bedrooms, req.Bathrooms, req.SquareFootage,
		req.MaxGuests, req.MinStayNights, req.MaxStayNights,
		req.CheckInTime, req.CheckOutTime,
		req.Amenities,
	)
	if err != nil {
		return nil, err
	}

	if err := s.properties.Save(ctx, prop); err != nil {
		return nil, err
	}

	s.logger.Info("property listed",
		zap.String("property_id", prop.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)

	result := toPropertyDTO(prop)
	return &result, nil
}

// UpdateProperty updates a listing; only its owner may do so.
func (s *PropertyService) UpdateProperty(ctx context.Context, actorID, propertyID uuid.UUID, req UpdatePropertyRequest) (*PropertyDTO, error) {
	prop, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if !prop.IsOwnedBy(actorID) {
		return nil, domain.NewForbiddenError("only the property owner can update a listing")
	}

	if err := prop.Update(
		req.Title, req.Description, req.Address, req.City, req.ZipCode,
		req.NightlyRateCents,
		req.Bedrooms, req.Bathrooms, req.SquareFootage,
		req.MaxGuests, req.MinStayNights, req.MaxStayNights,
		req.CheckInTime, req.CheckOutTime,
		req.Amenities,
		req.Available,
	); err != nil {
		return nil, err
	}

	prop.IncrementVersion()
	if err := s.properties.Update(ctx, prop); err != nil {
		return nil, err
	}

	result := toPropertyDTO(prop)
	return &result, nil
}

// DeleteProperty removes a listing; only its owner may do so.
func (s *PropertyService) DeleteProperty(ctx context.Context, actorID, propertyID uuid.UUID) error {
	prop, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if !prop.IsOwnedBy(actorID) {
		return domain.NewForbiddenError("only the property owner can delete a listing")
	}
	return s.properties.Delete(ctx, propertyID)
}

// GetProperty retrieves a single property by ID.
func (s *PropertyService) GetProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyDTO, error) {
	prop, err := s.properties.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	result := toPropertyDTO(prop)
	return &result, nil
}

// ListProperties retrieves paginated listings matching the filter,
// newest first unless the filter asks for another order.
func (s *PropertyService) ListProperties(ctx context.Context, filter propertyDomain.ListFilter, page, limit int) (*domain.PaginatedResult[PropertyDTO], error) {
	properties, total, err := s.properties.ListAll(ctx, filter, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]PropertyDTO, len(properties))
	for i, p := range properties {
		dtos[i] = toPropertyDTO(p)
	}
	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// ListOwnerProperties retrieves the caller's own listings.
func (s *PropertyService) ListOwnerProperties(ctx context.Context, ownerID uuid.UUID) ([]PropertyDTO, error) {
	properties, err := s.properties.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]PropertyDTO, len(properties))
	for i, p := range properties {
		dtos[i] = toPropertyDTO(p)
	}
	return dtos, nil
}

func toPropertyDTO(p *propertyDomain.Property) PropertyDTO {
	return PropertyDTO{
		ID:               p.ID(),
		OwnerID:          p.OwnerID(),
		Title:            p.Title(),
		Description:      p.Description(),
		Address:          p.Address(),
		City:             p.City(),
		ZipCode:          p.ZipCode(),
		NightlyRateCents: p.NightlyRateCents(),
		Bedrooms:         p.Bedrooms(),
		Bathrooms:        p.Bathrooms(),
		SquareFootage:    p.SquareFootage(),
		MaxGuests:        p.MaxGuests(),
		MinStayNights:    p.MinStayNights(),
		MaxStayNights:    p.MaxStayNights(),
		CheckInTime:      p.CheckInTime(),
		CheckOutTime:     p.CheckOutTime(),
		Amenities:        p.Amenities(),
		Available:        p.IsAvailable(),
		Version:          p.Version(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}
