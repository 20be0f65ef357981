package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PricingRecord is one supplier's rate card for a vehicle category. Monetary
// fields are whole currency units. Fields the backend may omit are pointers;
// the fare engine refuses to compute on a missing required field instead of
// substituting a default.
type PricingRecord struct {
	BasePrice       *float64 `json:"base_price" bson:"base_price"`
	IncludedKms     float64  `json:"included_kms" bson:"included_kms"`
	PricePerKm      *float64 `json:"price_per_km" bson:"price_per_km"`
	DriverAllowance *float64 `json:"driver_allowance" bson:"driver_allowance"`
	NightDrivingFee *float64 `json:"night_driving_fee" bson:"night_driving_fee"`
	PricePerHour    *float64 `json:"price_per_hour" bson:"price_per_hour"`
	DeadReturnCost  *float64 `json:"dead_return_cost" bson:"dead_return_cost"`

	// FinalPrice is the backend's precomputed total, when present it is
	// authoritative for display.
	FinalPrice *float64 `json:"final_price,omitempty" bson:"final_price,omitempty"`
}

// DistanceInfo holds computed trip-extent facts derived from route planning.
type DistanceInfo struct {
	TotalDistanceKm float64 `json:"total_distance_km" bson:"total_distance_km"`
	ExtraKms        float64 `json:"extra_kms" bson:"extra_kms"`
	TotalHours      float64 `json:"total_hours" bson:"total_hours"`
	ExtraHours      float64 `json:"extra_hours" bson:"extra_hours"`
}

type Supplier struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Phone       string             `json:"phone,omitempty" bson:"phone,omitempty"`
	AvgRating   float64            `json:"avg_rating" bson:"avg_rating"`
	ReviewCount int                `json:"review_count" bson:"review_count"`
	IsVerified  bool               `json:"is_verified" bson:"is_verified"`
}

type CarCategory struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name"`
	SeatingCapacity int                `json:"seating_capacity" bson:"seating_capacity"`
	IsAC            bool               `json:"is_ac" bson:"is_ac"`
	VehicleList     []string           `json:"vehicle_list" bson:"vehicle_list"`
	Description     string             `json:"description,omitempty" bson:"description,omitempty"`
}

// RateCard is the persisted supplier+category+pricing row for one service
// type; search expands rate cards into Offers.
type RateCard struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ServiceType ServiceType        `json:"service_type" bson:"service_type"`
	Supplier    Supplier           `json:"supplier" bson:"supplier"`
	Category    CarCategory        `json:"category" bson:"category"`
	Pricing     PricingRecord      `json:"pricing" bson:"pricing"`
	IsActive    bool               `json:"is_active" bson:"is_active"`
}

// Offer is one supplier+category option returned by a search, priced for the
// requested trip. Immutable once built; it lives for the duration of the
// search-results view.
type Offer struct {
	Supplier Supplier      `json:"supplier"`
	Category CarCategory   `json:"category"`
	Pricing  PricingRecord `json:"pricing"`
	Distance DistanceInfo  `json:"distance_info"`

	// Fare is nil when the rate card was missing required pricing data; such
	// offers render as "price unavailable", never as zero.
	Fare             *FareBreakdown `json:"fare,omitempty"`
	PriceUnavailable bool           `json:"price_unavailable,omitempty"`
}

// RouteInfo summarizes the searched route for display alongside offers.
type RouteInfo struct {
	PickupLocation string  `json:"pickup_location"`
	DropLocation   string  `json:"drop_location"`
	DistanceKm     float64 `json:"distance_km"`
	Duration       string  `json:"duration"`
}

// SearchResult is the priced outcome of one trip search.
type SearchResult struct {
	RouteInfo RouteInfo `json:"route_info"`
	Offers    []Offer   `json:"suppliers"`
}
