package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staynest/service-rental/internal/domain"
	propertyDomain "github.com/staynest/service-rental/internal/domain/property"
)

// PropertyModel is the GORM model for the properties table.
type PropertyModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID          uuid.UUID `gorm:"type:uuid;index;not null"`
	Title            string    `gorm:"type:varchar(200);not null"`
	Description      string    `gorm:"type:text"`
	Address          string    `gorm:"type:varchar(500);not null"`
	City             string    `gorm:"type:varchar(100);not null;index"`
	ZipCode          string    `gorm:"type:varchar(20);not null"`
	NightlyRateCents int64     `gorm:"not null"`
	Bedrooms         int       `gorm:"not null;default:0"`
	Bathrooms        int       `gorm:"not null;default:0"`
	SquareFootage    int       `gorm:"not null;default:0"`
	MaxGuests        int       `gorm:"not null;default:2"`
	MinStayNights    int       `gorm:"not null;default:1"`
	MaxStayNights    int       `gorm:"not null;default:30"`
	CheckInTime      string    `gorm:"type:varchar(5);not null;default:'15:00'"`
	CheckOutTime     string    `gorm:"type:varchar(5);not null;default:'11:00'"`
	Wifi             bool      `gorm:"not null;default:false"`
	Parking          bool      `gorm:"not null;default:false"`
	Kitchen          bool      `gorm:"not null;default:false"`
	Washer           bool      `gorm:"not null;default:false"`
	AirConditioning  bool      `gorm:"not null;default:false"`
	Available        bool      `gorm:"not null;default:true"`
	Version          int64     `gorm:"not null;default:1"`
	CreatedAt        time.Time `gorm:"not null"`
	UpdatedAt        time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PropertyModel) TableName() string {
	return "properties"
}

// GormPropertyRepository is the GORM-based implementation of PropertyRepository.
type GormPropertyRepository struct {
	db *gorm.DB
}

// NewGormPropertyRepository creates a new GormPropertyRepository.
func NewGormPropertyRepository(db *gorm.DB) *GormPropertyRepository {
	return &GormPropertyRepository{db: db}
}

// FindByID retrieves a property by its unique identifier.
func (r *GormPropertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*propertyDomain.Property, error) {
	var model PropertyModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Property", id.String())
		}
		return nil, fmt.Errorf("failed to find property by ID: %w", err)
	}
	return toDomainProperty(&model), nil
}

// FindByOwnerID retrieves properties belonging to a specific owner.
func (r *GormPropertyRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*propertyDomain.Property, error) {
	var models []PropertyModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner properties: %w", err)
	}

	properties := make([]*propertyDomain.Property, len(models))
	for i, m := range models {
		properties[i] = toDomainProperty(&m)
	}
	return properties, nil
}

// listScope translates the filter into WHERE clauses. City matches as a
// case-insensitive substring; MinGuests asks for capacity, so it compares
// against max_guests.
func listScope(filter propertyDomain.ListFilter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		if filter.City != "" {
			q = q.Where("city ILIKE ?", "%"+filter.City+"%")
		}
		if filter.MinRateCents != nil {
			q = q.Where("nightly_rate_cents >= ?", *filter.MinRateCents)
		}
		if filter.MaxRateCents != nil {
			q = q.Where("nightly_rate_cents <= ?", *filter.MaxRateCents)
		}
		if filter.MinGuests != nil {
			q = q.Where("max_guests >= ?", *filter.MinGuests)
		}
		if filter.Bedrooms != nil {
			q = q.Where("bedrooms = ?", *filter.Bedrooms)
		}
		if filter.Available != nil {
			q = q.Where("available = ?", *filter.Available)
		}
		return q
	}
}

// listOrderClause maps the requested sort onto a whitelisted column so user
// input never reaches the ORDER BY directly.
func listOrderClause(filter propertyDomain.ListFilter) string {
	column := "created_at"
	switch filter.SortBy {
	case propertyDomain.SortByPrice:
		column = "nightly_rate_cents"
	case propertyDomain.SortByCity:
		column = "city"
	case propertyDomain.SortByBedrooms:
		column = "bedrooms"
	}
	if filter.SortOrder == propertyDomain.SortAsc {
		return column + " ASC"
	}
	return column + " DESC"
}

// ListAll retrieves properties matching the filter, paginated. The default
// order is newest listing first.
func (r *GormPropertyRepository) ListAll(ctx context.Context, filter propertyDomain.ListFilter, page, limit int) ([]*propertyDomain.Property, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&PropertyModel{}).
		Scopes(listScope(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	var models []PropertyModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Scopes(listScope(filter)).
		Order(listOrderClause(filter)).
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list properties: %w", err)
	}

	properties := make([]*propertyDomain.Property, len(models))
	for i, m := range models {
		properties[i] = toDomainProperty(&m)
	}
	return properties, total, nil
}

// Save persists a new property.
func (r *GormPropertyRepository) Save(ctx context.Context, p *propertyDomain.Property) error {
	if err := r.db.WithContext(ctx).Create(toPropertyModel(p)).Error; err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

// Update persists changes to an existing property with optimistic locking.
func (r *GormPropertyRepository) Update(ctx context.Context, p *propertyDomain.Property) error {
	model := toPropertyModel(p)

	expectedVersion := p.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&PropertyModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"title":              model.Title,
			"description":        model.Description,
			"address":            model.Address,
			"city":               model.City,
			"zip_code":           model.ZipCode,
			"nightly_rate_cents": model.NightlyRateCents,
			"bedrooms":           model.Bedrooms,
			"bathrooms":          model.Bathrooms,
			"square_footage":     model.SquareFootage,
			"max_guests":         model.MaxGuests,
			"min_stay_nights":    model.MinStayNights,
			"max_stay_nights":    model.MaxStayNights,
			"check_in_time":      model.CheckInTime,
			"check_out_time":     model.CheckOutTime,
			"wifi":               model.Wifi,
			"parking":            model.Parking,
			"kitchen":            model.Kitchen,
			"washer":             model.Washer,
			"air_conditioning":   model.AirConditioning,
			"available":          model.Available,
			"version":            model.Version,
			"updated_at":         model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("property was modified by another transaction")
	}
	return nil
}

// Delete removes a property.
func (r *GormPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PropertyModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Property", id.String())
	}
	return nil
}

// --- Conversion Helpers ---

func toPropertyModel(p *propertyDomain.Property) *PropertyModel {
	amenities := p.Amenities()
	return &PropertyModel{
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
		Wifi:             amenities.Wifi,
		Parking:          amenities.Parking,
		Kitchen:          amenities.Kitchen,
		Washer:           amenities.Washer,
		AirConditioning:  amenities.AirConditioning,
		Available:        p.IsAvailable(),
		Version:          p.Version(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}

func toDomainProperty(m *PropertyModel) *propertyDomain.Property {
	return propertyDomain.Reconstruct(
		m.ID,
		m.OwnerID,
		m.Title,
		m.Description,
		m.Address,
		m.City,
		m.ZipCode,
		m.NightlyRateCents,
		m.Bedrooms,
		m.Bathrooms,
		m.SquareFootage,
		m.MaxGuests,
		m.MinStayNights,
		m.MaxStayNights,
		m.CheckInTime,
		m.CheckOutTime,
		propertyDomain.Amenities{
			Wifi:            m.Wifi,
			Parking:         m.Parking,
			Kitchen:         m.Kitchen,
			Washer:          m.Washer,
			AirConditioning: m.AirConditioning,
		},
		m.Available,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
