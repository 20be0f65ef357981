package maps

import (
	"context"
	"time"
)

// Provider abstracts the mapping backend used for location autosuggest and
// route extent estimation.
type Provider interface {
	AutocompletePlaces(ctx context.Context, input string) ([]PlaceSuggestion, error)
	RouteEstimate(ctx context.Context, origin, destination string) (*RouteEstimate, error)
	GetPlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error)
}

type PlaceSuggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

type RouteEstimate struct {
	DistanceKm   float64       `json:"distance_km"`
	Duration     time.Duration `json:"-"`
	DurationText string        `json:"duration"`
}

type PlaceDetails struct {
	PlaceID   string  `json:"place_id"`
	Name      string  `json:"name"`
	Address   string  `json:"formatted_address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}
