package config

import (
	"time"
)

type MapsConfig struct {
	GoogleMaps        *GoogleMapsConfig `yaml:"google_maps"`
	Region            string            `yaml:"region"`
	SuggestDebounce   time.Duration     `yaml:"suggest_debounce"`
	RouteCacheTTL     time.Duration     `yaml:"route_cache_ttl"`
	MaxSuggestResults int               `yaml:"max_suggest_results"`
}

type GoogleMapsConfig struct {
	APIKey string `yaml:"api_key"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		GoogleMaps: &GoogleMapsConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		},
		Region:            getEnv("MAPS_REGION", "in"),
		SuggestDebounce:   getEnvAsDuration("MAPS_SUGGEST_DEBOUNCE", 300*time.Millisecond),
		RouteCacheTTL:     getEnvAsDuration("MAPS_ROUTE_CACHE_TTL", 2*time.Minute),
		MaxSuggestResults: getEnvAsInt("MAPS_MAX_SUGGEST_RESULTS", 5),
	}
}
