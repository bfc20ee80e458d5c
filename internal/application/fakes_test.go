package application

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/staynest/service-rental/internal/domain"
	bookingDomain "github.com/staynest/service-rental/internal/domain/booking"
	propertyDomain "github.com/staynest/service-rental/internal/domain/property"
	reviewDomain "github.com/staynest/service-rental/internal/domain/review"
	"github.com/staynest/service-rental/internal/platform/kafka"
)

// In-memory repository fakes for application-layer tests. They implement
// the domain repository contracts over plain maps; no locking semantics
// beyond a mutex, so the exclusion-constraint behavior is covered by the
// integration tests instead.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) FindByTenantID(_ context.Context, tenantID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.TenantID() == tenantID {
			out = append(out, bk)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) FindByPropertyID(_ context.Context, propertyID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.PropertyID() == propertyID {
			out = append(out, bk)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) FindOverlappingApproved(_ context.Context, propertyID uuid.UUID, stay bookingDomain.Stay, excludeID uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bk := range r.bookings {
		if bk.ID() == excludeID {
			continue
		}
		if bk.PropertyID() == propertyID && bk.Status() == bookingDomain.StatusApproved && bk.Stay().Overlaps(stay) {
			return bk, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		out = append(out, bk)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[string(bk.Status())]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[bk.ID()]; !ok {
		return domain.NewNotFoundError("Booking", bk.ID().String())
	}
	r.bookings[bk.ID()] = bk
	return nil
}

type fakePropertyRepo struct {
	mu         sync.Mutex
	properties map[uuid.UUID]*propertyDomain.Property
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{properties: make(map[uuid.UUID]*propertyDomain.Property)}
}

func (r *fakePropertyRepo) FindByID(_ context.Context, id uuid.UUID) (*propertyDomain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.properties[id]
	if !ok {
		return nil, domain.NewNotFoundError("Property", id.String())
	}
	return p, nil
}

func (r *fakePropertyRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*propertyDomain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*propertyDomain.Property
	for _, p := range r.properties {
		if p.OwnerID() == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePropertyRepo) ListAll(_ context.Context, filter propertyDomain.ListFilter, page, limit int) ([]*propertyDomain.Property, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*propertyDomain.Property
	for _, p := range r.properties {
		if filter.City != "" && !strings.Contains(strings.ToLower(p.City()), strings.ToLower(filter.City)) {
			continue
		}
		if filter.MinRateCents != nil && p.NightlyRateCents() < *filter.MinRateCents {
			continue
		}
		if filter.MaxRateCents != nil && p.NightlyRateCents() > *filter.MaxRateCents {
			continue
		}
		if filter.MinGuests != nil && p.MaxGuests() < *filter.MinGuests {
			continue
		}
		if filter.Bedrooms != nil && p.Bedrooms() != *filter.Bedrooms {
			continue
		}
		if filter.Available != nil && p.IsAvailable() != *filter.Available {
			continue
		}
		out = append(out, p)
	}

	asc := filter.SortOrder == propertyDomain.SortAsc
	sort.Slice(out, func(i, j int) bool {
		var less bool
		switch filter.SortBy {
		case propertyDomain.SortByPrice:
			less = out[i].NightlyRateCents() < out[j].NightlyRateCents()
		case propertyDomain.SortByCity:
			less = out[i].City() < out[j].City()
		case propertyDomain.SortByBedrooms:
			less = out[i].Bedrooms() < out[j].Bedrooms()
		default:
			less = out[i].CreatedAt().Before(out[j].CreatedAt())
		}
		if asc {
			return less
		}
		return !less
	})
	return out, int64(len(out)), nil
}

func (r *fakePropertyRepo) Save(_ context.Context, p *propertyDomain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.properties[p.ID()] = p
	return nil
}

func (r *fakePropertyRepo) Update(_ context.Context, p *propertyDomain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[p.ID()]; !ok {
		return domain.NewNotFoundError("Property", p.ID().String())
	}
	r.properties[p.ID()] = p
	return nil
}

func (r *fakePropertyRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.properties[id]; !ok {
		return domain.NewNotFoundError("Property", id.String())
	}
	delete(r.properties, id)
	return nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews map[uuid.UUID]*reviewDomain.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[uuid.UUID]*reviewDomain.Review)}
}

func (r *fakeReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*reviewDomain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rev, ok := r.reviews[id]
	if !ok {
		return nil, domain.NewNotFoundError("Review", id.String())
	}
	return rev, nil
}

func (r *fakeReviewRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) (*reviewDomain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rev := range r.reviews {
		if rev.BookingID() == bookingID {
			return rev, nil
		}
	}
	return nil, nil
}

func (r *fakeReviewRepo) FindByHostID(_ context.Context, hostID uuid.UUID) ([]*reviewDomain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*reviewDomain.Review
	for _, rev := range r.reviews {
		if rev.HostID() == hostID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Save(_ context.Context, rev *reviewDomain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.BookingID() == rev.BookingID() {
			return domain.NewAlreadyExistsError("Review", "booking "+rev.BookingID().String())
		}
	}
	r.reviews[rev.ID()] = rev
	return nil
}

type fakeRatingCache struct {
	mu        sync.Mutex
	summaries map[uuid.UUID]reviewDomain.RatingSummary
}

func newFakeRatingCache() *fakeRatingCache {
	return &fakeRatingCache{summaries: make(map[uuid.UUID]reviewDomain.RatingSummary)}
}

func (c *fakeRatingCache) GetHostRating(_ context.Context, hostID uuid.UUID) (*reviewDomain.RatingSummary, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.summaries[hostID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *fakeRatingCache) SetHostRating(_ context.Context, hostID uuid.UUID, summary reviewDomain.RatingSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.summaries[hostID] = summary
	return nil
}

func (c *fakeRatingCache) InvalidateHostRating(_ context.Context, hostID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.summaries, hostID)
	return nil
}

// fakePublisher records published events instead of talking to Kafka.
type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	Topic string
	Key   string
	Event kafka.CloudEvent
}

func (p *fakePublisher) PublishEvent(_ context.Context, topic, key string, event kafka.CloudEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func (p *fakePublisher) eventTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Event.Type
	}
	return types
}
