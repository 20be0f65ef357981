package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

type GoogleMapsProvider struct {
	client     *maps.Client
	region     string
	maxResults int
}

func NewGoogleMapsProvider(apiKey, region string, maxResults int) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsProvider{
		client:     client,
		region:     region,
		maxResults: maxResults,
	}, nil
}

func (g *GoogleMapsProvider) AutocompletePlaces(ctx context.Context, input string) ([]PlaceSuggestion, error) {
	req := &maps.PlaceAutocompleteRequest{
		Input: input,
	}
	if g.region != "" {
		req.Components = map[maps.Component][]string{
			maps.ComponentCountry: {g.region},
		}
	}

	resp, err := g.client.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("place autocomplete failed: %w", err)
	}

	predictions := resp.Predictions
	if g.maxResults > 0 && len(predictions) > g.maxResults {
		predictions = predictions[:g.maxResults]
	}

	suggestions := make([]PlaceSuggestion, len(predictions))
	for i, prediction := range predictions {
		suggestions[i] = PlaceSuggestion{
			Description: prediction.Description,
			PlaceID:     prediction.PlaceID,
		}
	}

	return suggestions, nil
}

func (g *GoogleMapsProvider) RouteEstimate(ctx context.Context, origin, destination string) (*RouteEstimate, error) {
	req := &maps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Mode:         maps.TravelModeDriving,
	}

	resp, err := g.client.DistanceMatrix(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, fmt.Errorf("no route found between %q and %q", origin, destination)
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil, fmt.Errorf("route lookup failed with status %s", element.Status)
	}

	return &RouteEstimate{
		DistanceKm:   float64(element.Distance.Meters) / 1000.0,
		Duration:     element.Duration,
		DurationText: element.Duration.String(),
	}, nil
}

func (g *GoogleMapsProvider) GetPlaceDetails(ctx context.Context, placeID string) (*PlaceDetails, error) {
	req := &maps.PlaceDetailsRequest{
		PlaceID: placeID,
	}

	resp, err := g.client.PlaceDetails(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("place details failed: %w", err)
	}

	return &PlaceDetails{
		PlaceID:   resp.PlaceID,
		Name:      resp.Name,
		Address:   resp.FormattedAddress,
		Latitude:  resp.Geometry.Location.Lat,
		Longitude: resp.Geometry.Location.Lng,
	}, nil
}
