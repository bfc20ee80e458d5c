package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/staynest/service-rental/internal/domain"
	propertyDomain "github.com/staynest/service-rental/internal/domain/property"
)

func newPropertyService() (*PropertyService, *fakePropertyRepo) {
	repo := newFakePropertyRepo()
	return NewPropertyService(repo, zap.NewNop()), repo
}

func createPropertyReq() CreatePropertyRequest {
	return CreatePropertyRequest{
		Title:            "Studio with skylight",
		Address:          "2 Birch Ave",
		City:             "Denver",
		ZipCode:          "80203",
		NightlyRateCents: 9500,
		Bedrooms:         1,
		Bathrooms:        1,
		SquareFootage:    480,
		MaxGuests:        2,
		MinStayNights:    1,
		MaxStayNights:    21,
		Amenities:        propertyDomain.Amenities{Wifi: true},
	}
}

func TestCreateProperty(t *testing.T) {
	svc, _ := newPropertyService()
	ownerID := uuid.New()

	dto, err := svc.CreateProperty(context.Background(), ownerID, createPropertyReq())
	require.NoError(t, err)

	assert.Equal(t, ownerID, dto.OwnerID)
	assert.True(t, dto.Available)
	assert.Equal(t, propertyDomain.DefaultCheckInTime, dto.CheckInTime)
	assert.Equal(t, propertyDomain.DefaultCheckOutTime, dto.CheckOutTime)
	assert.Equal(t, int64(1), dto.Version)
}

func TestCreateProperty_Validation(t *testing.T) {
	svc, _ := newPropertyService()

	req := createPropertyReq()
	req.MaxStayNights = 0
	_, err := svc.CreateProperty(context.Background(), uuid.New(), req)
	require.Error(t, err)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdateProperty_OnlyOwner(t *testing.T) {
	svc, _ := newPropertyService()
	ownerID := uuid.New()
	dto, err := svc.CreateProperty(context.Background(), ownerID, createPropertyReq())
	require.NoError(t, err)

	update := UpdatePropertyRequest{
		Title:            "Studio with skylight",
		Address:          "2 Birch Ave",
		City:             "Denver",
		ZipCode:          "80203",
		NightlyRateCents: 11000,
		MaxGuests:        3,
		MinStayNights:    2,
		MaxStayNights:    21,
		Available:        true,
	}

	updated, err := svc.UpdateProperty(context.Background(), ownerID, dto.ID, update)
	require.NoError(t, err)
	assert.Equal(t, int64(11000), updated.NightlyRateCents)
	assert.Equal(t, int64(2), updated.Version)

	_, err = svc.UpdateProperty(context.Background(), uuid.New(), dto.ID, update)
	require.Error(t, err)
	var forbidden *domain.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)
}

func TestDeleteProperty_OnlyOwner(t *testing.T) {
	svc, _ := newPropertyService()
	ownerID := uuid.New()
	dto, err := svc.CreateProperty(context.Background(), ownerID, createPropertyReq())
	require.NoError(t, err)

	err = svc.DeleteProperty(context.Background(), uuid.New(), dto.ID)
	require.Error(t, err)
	var forbidden *domain.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)

	require.NoError(t, svc.DeleteProperty(context.Background(), ownerID, dto.ID))

	_, err = svc.GetProperty(context.Background(), dto.ID)
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestListOwnerProperties(t *testing.T) {
	svc, _ := newPropertyService()
	ownerID := uuid.New()

	_, err := svc.CreateProperty(context.Background(), ownerID, createPropertyReq())
	require.NoError(t, err)
	_, err = svc.CreateProperty(context.Background(), uuid.New(), createPropertyReq())
	require.NoError(t, err)

	mine, err := svc.ListOwnerProperties(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := svc.ListProperties(context.Background(), propertyDomain.ListFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
}

func TestListProperties_Filters(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()

	denver := createPropertyReq()
	_, err := svc.CreateProperty(ctx, uuid.New(), denver)
	require.NoError(t, err)

	boulder := createPropertyReq()
	boulder.City = "Boulder"
	boulder.NightlyRateCents = 18000
	boulder.Bedrooms = 3
	_, err = svc.CreateProperty(ctx, uuid.New(), boulder)
	require.NoError(t, err)

	byCity, err := svc.ListProperties(ctx, propertyDomain.ListFilter{City: "boul"}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), byCity.Total)
	assert.Equal(t, "Boulder", byCity.Items[0].City)

	maxRate := int64(10000)
	cheap, err := svc.ListProperties(ctx, propertyDomain.ListFilter{MaxRateCents: &maxRate}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), cheap.Total)
	assert.Equal(t, "Denver", cheap.Items[0].City)

	bedrooms := 3
	threeBed, err := svc.ListProperties(ctx, propertyDomain.ListFilter{Bedrooms: &bedrooms}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), threeBed.Total)

	guests := 5
	roomy, err := svc.ListProperties(ctx, propertyDomain.ListFilter{MinGuests: &guests}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), roomy.Total)
}

func TestListProperties_AvailabilityFilter(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()
	ownerID := uuid.New()

	listed, err := svc.CreateProperty(ctx, ownerID, createPropertyReq())
	require.NoError(t, err)
	_, err = svc.CreateProperty(ctx, ownerID, createPropertyReq())
	require.NoError(t, err)

	update := UpdatePropertyRequest{
		Title:            listed.Title,
		Address:          listed.Address,
		City:             listed.City,
		ZipCode:          listed.ZipCode,
		NightlyRateCents: listed.NightlyRateCents,
		MaxGuests:        listed.MaxGuests,
		MinStayNights:    listed.MinStayNights,
		MaxStayNights:    listed.MaxStayNights,
		Available:        false,
	}
	_, err = svc.UpdateProperty(ctx, ownerID, listed.ID, update)
	require.NoError(t, err)

	available := true
	result, err := svc.ListProperties(ctx, propertyDomain.ListFilter{Available: &available}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.Total)
	assert.NotEqual(t, listed.ID, result.Items[0].ID)
}

func TestListProperties_SortByPrice(t *testing.T) {
	svc, _ := newPropertyService()
	ctx := context.Background()

	for _, rate := range []int64{15000, 8000, 12000} {
		req := createPropertyReq()
		req.NightlyRateCents = rate
		_, err := svc.CreateProperty(ctx, uuid.New(), req)
		require.NoError(t, err)
	}

	filter := propertyDomain.ListFilter{SortBy: propertyDomain.SortByPrice, SortOrder: propertyDomain.SortAsc}
	result, err := svc.ListProperties(ctx, filter, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(3), result.Total)

	rates := make([]int64, len(result.Items))
	for i, p := range result.Items {
		rates[i] = p.NightlyRateCents
	}
	assert.Equal(t, []int64{8000, 12000, 15000}, rates)

	filter.SortOrder = ""
	result, err = svc.ListProperties(ctx, filter, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(15000), result.Items[0].NightlyRateCents)
}
