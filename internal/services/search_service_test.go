package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gocab/internal/models"
	"gocab/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRateCardRepo struct {
	cards []*models.RateCard
	calls int
}

func (f *fakeRateCardRepo) Create(ctx context.Context, card *models.RateCard) error { return nil }

func (f *fakeRateCardRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RateCard, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRateCardRepo) GetActiveByServiceType(ctx context.Context, serviceType models.ServiceType) ([]*models.RateCard, error) {
	f.calls++
	var out []*models.RateCard
	for _, card := range f.cards {
		if card.ServiceType == serviceType && card.IsActive {
			out = append(out, card)
		}
	}
	return out, nil
}

func (f *fakeRateCardRepo) GetBySupplierAndCategory(ctx context.Context, serviceType models.ServiceType, supplierID, categoryID primitive.ObjectID) (*models.RateCard, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeRateCardRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return nil
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]interface{}
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: make(map[string]interface{})}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.items[key]
	if !ok {
		return errors.New("cache miss")
	}
	switch d := dest.(type) {
	case *models.SearchResult:
		*d = *(value.(*models.SearchResult))
	case *maps.RouteEstimate:
		*d = *(value.(*maps.RouteEstimate))
	case *string:
		*d = value.(string)
	default:
		return errors.New("unsupported destination")
	}
	return nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.items, key)
	}
	return nil
}

func (m *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok, nil
}

func (m *memoryCache) Increment(ctx context.Context, key string) (int64, error) { return 0, nil }

func (m *memoryCache) SetExpire(ctx context.Context, key string, expiration time.Duration) error {
	return nil
}

func (m *memoryCache) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

func cityRateCard(supplier string, base *float64) *models.RateCard {
	return &models.RateCard{
		ID:          primitive.NewObjectID(),
		ServiceType: models.ServiceTypeCity,
		Supplier:    models.Supplier{ID: primitive.NewObjectID(), Name: supplier},
		Category:    models.CarCategory{ID: primitive.NewObjectID(), Name: "Sedan", IsAC: true},
		Pricing:     models.PricingRecord{BasePrice: base},
		IsActive:    true,
	}
}

func TestSearchPricesAllSuppliers(t *testing.T) {
	repo := &fakeRateCardRepo{cards: []*models.RateCard{
		cityRateCard("Alpha Cabs", fptr(500)),
		cityRateCard("Beta Travels", fptr(640)),
	}}

	svc := NewSearchService(repo, newFakeMapsProvider(), NewFareService(), nil, 0, testLogger(t))

	trip := validCitySearch()
	result, err := svc.Search(context.Background(), trip)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(result.Offers) != 2 {
		t.Fatalf("got %d offers, want 2", len(result.Offers))
	}
	if result.Offers[0].Fare == nil || result.Offers[0].Fare.Total != 525 {
		t.Errorf("first offer fare = %+v, want total 525", result.Offers[0].Fare)
	}
	if result.Offers[1].Fare == nil || result.Offers[1].Fare.Total != 672 {
		t.Errorf("second offer fare = %+v, want total 672", result.Offers[1].Fare)
	}
	if result.RouteInfo.DistanceKm != 10 {
		t.Errorf("route distance = %v, want 10", result.RouteInfo.DistanceKm)
	}
}

func TestSearchKeepsUnpriceableOffersFlagged(t *testing.T) {
	repo := &fakeRateCardRepo{cards: []*models.RateCard{
		cityRateCard("Alpha Cabs", fptr(500)),
		cityRateCard("Broken Rates", nil),
	}}

	svc := NewSearchService(repo, newFakeMapsProvider(), NewFareService(), nil, 0, testLogger(t))

	result, err := svc.Search(context.Background(), validCitySearch())
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(result.Offers) != 2 {
		t.Fatalf("got %d offers, want 2", len(result.Offers))
	}

	broken := result.Offers[1]
	if !broken.PriceUnavailable {
		t.Error("offer with missing pricing not flagged unavailable")
	}
	if broken.Fare != nil {
		t.Errorf("unpriceable offer carries a fare: %+v", broken.Fare)
	}
}

func TestSearchUsesCache(t *testing.T) {
	repo := &fakeRateCardRepo{cards: []*models.RateCard{
		cityRateCard("Alpha Cabs", fptr(500)),
	}}
	cache := newMemoryCache()

	svc := NewSearchService(repo, newFakeMapsProvider(), NewFareService(), cache, 0, testLogger(t))

	trip := validCitySearch()
	if _, err := svc.Search(context.Background(), trip); err != nil {
		t.Fatalf("first search failed: %v", err)
	}
	if _, err := svc.Search(context.Background(), trip); err != nil {
		t.Fatalf("second search failed: %v", err)
	}

	if repo.calls != 1 {
		t.Errorf("rate card lookups = %d, want 1 (second search should hit cache)", repo.calls)
	}
}

func TestSearchHonorsACPreference(t *testing.T) {
	nonAC := cityRateCard("Budget Rides", fptr(400))
	nonAC.Category = models.CarCategory{ID: primitive.NewObjectID(), Name: "Mini Non-AC", IsAC: false}

	repo := &fakeRateCardRepo{cards: []*models.RateCard{
		cityRateCard("Alpha Cabs", fptr(500)),
		nonAC,
	}}

	svc := NewSearchService(repo, newFakeMapsProvider(), NewFareService(), nil, 0, testLogger(t))

	trip := validCitySearch()
	trip.IsACPreference = true

	result, err := svc.Search(context.Background(), trip)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}

	if len(result.Offers) != 1 {
		t.Fatalf("got %d offers, want 1 (non-AC category must be filtered out)", len(result.Offers))
	}
	if !result.Offers[0].Category.IsAC {
		t.Errorf("remaining offer is non-AC: %+v", result.Offers[0].Category)
	}

	trip.IsACPreference = false
	result, err = svc.Search(context.Background(), trip)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(result.Offers) != 2 {
		t.Errorf("got %d offers without AC preference, want 2", len(result.Offers))
	}
}

func TestSearchChargesExtraKmsPerRateCard(t *testing.T) {
	// Route estimate is 10 km. The first card includes only 4 km, the second
	// includes 20, so only the first accrues an extra-km line.
	shortAllowance := hourlyRateCard("Alpha Cabs", 4)
	longAllowance := hourlyRateCard("Beta Travels", 20)

	repo := &fakeRateCardRepo{cards: []*models.RateCard{shortAllowance, longAllowance}}
	svc := NewSearchService(repo, newFakeMapsProvider(), NewFareService(), nil, 0, testLogger(t))

	trip := &models.TripRequest{
		ServiceType:    models.ServiceTypeHourly,
		PickupLocation: "Bandra West",
		DropLocation:   "Churchgate",
		PaxCount:       2,
		PickupTimeType: models.PickupTimeNow,
		Hours:          4,
	}

	result, err := svc.Search(context.Background(), trip)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(result.Offers) != 2 {
		t.Fatalf("got %d offers, want 2", len(result.Offers))
	}

	charged := result.Offers[0]
	if charged.Distance.ExtraKms != 6 {
		t.Errorf("extra kms = %v, want 6", charged.Distance.ExtraKms)
	}
	// 500 base + 100 allowance + 6 km * 10 = 660, plus 33 tax.
	if charged.Fare == nil || charged.Fare.Total != 693 {
		t.Errorf("fare with extra kms = %+v, want total 693", charged.Fare)
	}

	within := result.Offers[1]
	if within.Distance.ExtraKms != 0 {
		t.Errorf("extra kms = %v, want 0 (route inside included allowance)", within.Distance.ExtraKms)
	}
	// 500 base + 100 allowance, plus 30 tax.
	if within.Fare == nil || within.Fare.Total != 630 {
		t.Errorf("fare without extra kms = %+v, want total 630", within.Fare)
	}
}

func TestSearchValidatesTrip(t *testing.T) {
	svc := NewSearchService(&fakeRateCardRepo{}, newFakeMapsProvider(), NewFareService(), nil, 0, testLogger(t))

	trip := validCitySearch()
	trip.DropLocation = ""

	_, err := svc.Search(context.Background(), trip)
	if !errors.Is(err, models.ErrMissingDropLocation) {
		t.Errorf("err = %v, want ErrMissingDropLocation", err)
	}
}

func hourlyRateCard(supplier string, includedKms float64) *models.RateCard {
	return &models.RateCard{
		ID:          primitive.NewObjectID(),
		ServiceType: models.ServiceTypeHourly,
		Supplier:    models.Supplier{ID: primitive.NewObjectID(), Name: supplier},
		Category:    models.CarCategory{ID: primitive.NewObjectID(), Name: "Sedan", IsAC: true},
		Pricing: models.PricingRecord{
			BasePrice:       fptr(500),
			DriverAllowance: fptr(100),
			PricePerKm:      fptr(10),
			IncludedKms:     includedKms,
		},
		IsActive: true,
	}
}

func validCitySearch() *models.TripRequest {
	return &models.TripRequest{
		ServiceType:    models.ServiceTypeCity,
		PickupLocation: "Bandra West",
		DropLocation:   "Churchgate",
		PaxCount:       2,
		PickupTimeType: models.PickupTimeNow,
	}
}
