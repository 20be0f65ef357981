package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gocab/internal/models"
	"gocab/internal/repositories/interfaces"
	"gocab/internal/utils"
	"gocab/pkg/logger"
	"gocab/pkg/maps"
)

var ErrNoRoute = errors.New("no route found between locations")

// SearchService prices a trip request against every active rate card for the
// requested service type and returns displayable offers. Offers whose rate
// card is missing required pricing data are kept but flagged unavailable.
type SearchService interface {
	Search(ctx context.Context, trip *models.TripRequest) (*models.SearchResult, error)
}

type searchService struct {
	rateCards interfaces.RateCardRepository
	maps      maps.Provider
	fares     *FareService
	cache     CacheService
	cacheTTL  time.Duration
	logger    *logger.Logger
}

func NewSearchService(rateCards interfaces.RateCardRepository, mapsProvider maps.Provider, fares *FareService, cache CacheService, cacheTTL time.Duration, log *logger.Logger) SearchService {
	if cacheTTL <= 0 {
		cacheTTL = utils.SearchCacheTTL
	}
	return &searchService{
		rateCards: rateCards,
		maps:      mapsProvider,
		fares:     fares,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    log,
	}
}

func (s *searchService) Search(ctx context.Context, trip *models.TripRequest) (*models.SearchResult, error) {
	if err := trip.Validate(); err != nil {
		return nil, err
	}

	cacheKey := searchCacheKey(trip)
	if s.cache != nil {
		var cached models.SearchResult
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	routeInfo, distance, err := s.routeExtent(ctx, trip)
	if err != nil {
		return nil, err
	}

	cards, err := s.rateCards.GetActiveByServiceType(ctx, trip.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate cards: %w", err)
	}

	offers := make([]models.Offer, 0, len(cards))
	for _, card := range cards {
		extent := *distance
		extent.ExtraKms = extraKms(&card.Pricing, distance.TotalDistanceKm, trip)

		offer := models.Offer{
			Supplier: card.Supplier,
			Category: card.Category,
			Pricing:  card.Pricing,
			Distance: extent,
		}

		fare, err := s.fares.Compute(&card.Pricing, &extent, trip)
		switch {
		case err == nil:
			offer.Fare = fare
			s.logger.LogFareEvent(string(trip.ServiceType), "fare_computed", fare.Total, map[string]interface{}{
				"supplier": card.Supplier.Name,
				"category": card.Category.Name,
			})
		case errors.Is(err, ErrMissingPricingData) || errors.Is(err, ErrInvalidPricingData):
			offer.PriceUnavailable = true
			s.logger.WithFields(map[string]interface{}{
				"supplier": card.Supplier.Name,
				"category": card.Category.Name,
			}).Warn("Offer excluded from pricing")
		default:
			return nil, err
		}

		offers = append(offers, offer)
	}

	if trip.IsACPreference {
		offers = FilterOffers(offers, OfferFilter{ACOnly: true})
	}

	result := &models.SearchResult{
		RouteInfo: *routeInfo,
		Offers:    offers,
	}

	if s.cache != nil {
		s.cache.Set(ctx, cacheKey, result, s.cacheTTL)
	}

	s.logger.WithFields(map[string]interface{}{
		"service_type": trip.ServiceType,
		"offers":       len(offers),
	}).Info("Search priced")

	return result, nil
}

// routeExtent derives the route summary and the distance facts the fare
// engine needs. Hourly and multiday trips tolerate a missing drop location.
func (s *searchService) routeExtent(ctx context.Context, trip *models.TripRequest) (*models.RouteInfo, *models.DistanceInfo, error) {
	routeInfo := &models.RouteInfo{
		PickupLocation: trip.PickupLocation,
		DropLocation:   trip.DropLocation,
	}
	distance := &models.DistanceInfo{}

	switch trip.ServiceType {
	case models.ServiceTypeCity, models.ServiceTypeTerminal:
		estimate, err := s.estimateRoute(ctx, trip.PickupLocation, trip.DropLocation)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrNoRoute, err)
		}
		routeInfo.DistanceKm = estimate.DistanceKm
		routeInfo.Duration = estimate.DurationText
		distance.TotalDistanceKm = estimate.DistanceKm
		distance.TotalHours = estimate.Duration.Hours()

	case models.ServiceTypeHourly:
		distance.TotalHours = float64(trip.Hours)
		routeInfo.Duration = utils.FormatDuration(time.Duration(trip.Hours) * time.Hour)
		if trip.DropLocation != "" {
			if estimate, err := s.estimateRoute(ctx, trip.PickupLocation, trip.DropLocation); err == nil {
				routeInfo.DistanceKm = estimate.DistanceKm
				distance.TotalDistanceKm = estimate.DistanceKm
			}
		}

	case models.ServiceTypeMultiday:
		if trip.DropLocation != "" {
			estimate, err := s.estimateRoute(ctx, trip.PickupLocation, trip.DropLocation)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: %v", ErrNoRoute, err)
			}
			routeInfo.DistanceKm = estimate.DistanceKm
			routeInfo.Duration = estimate.DurationText
			distance.TotalDistanceKm = estimate.DistanceKm
			distance.TotalHours = estimate.Duration.Hours()
		}
	}

	return routeInfo, distance, nil
}

// estimateRoute consults the provider through a short-lived cache so
// repeated searches over the same leg do not re-bill the maps API.
func (s *searchService) estimateRoute(ctx context.Context, origin, destination string) (*maps.RouteEstimate, error) {
	key := routeCacheKey(origin, destination)
	if s.cache != nil {
		var cached maps.RouteEstimate
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	estimate, err := s.maps.RouteEstimate(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, estimate, s.cacheTTL)
	}
	return estimate, nil
}

func routeCacheKey(origin, destination string) string {
	sum := sha1.Sum([]byte(origin + "|" + destination))
	return utils.CacheRoutePrefix + hex.EncodeToString(sum[:])
}

// extraKms is the chargeable distance beyond the rate card's included
// allowance. Multiday cards state the allowance per day; a card with no
// allowance charges no extras.
func extraKms(pricing *models.PricingRecord, totalKm float64, trip *models.TripRequest) float64 {
	if pricing.IncludedKms <= 0 || totalKm <= 0 {
		return 0
	}

	included := pricing.IncludedKms
	if trip.ServiceType == models.ServiceTypeMultiday {
		included *= float64(trip.NumberOfDays())
	}
	if totalKm <= included {
		return 0
	}
	return totalKm - included
}

func searchCacheKey(trip *models.TripRequest) string {
	raw := fmt.Sprintf("%s|%s|%s|%d|%t|%s|%s|%s|%d|%v|%v|%t",
		trip.ServiceType, trip.PickupLocation, trip.DropLocation,
		trip.PaxCount, trip.IsACPreference, trip.PickupTimeType,
		trip.PickupDate, trip.PickupTime, trip.Hours,
		trip.StartDate, trip.EndDate, trip.IsRoundTrip)

	sum := sha1.Sum([]byte(raw))
	return utils.CacheSearchPrefix + hex.EncodeToString(sum[:])
}
