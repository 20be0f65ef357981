package services

import (
	"errors"
	"math"
	"testing"
	"time"

	"gocab/internal/models"
)

func fptr(v float64) *float64 { return &v }

func multidayTrip(days int, roundTrip bool) *models.TripRequest {
	start := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(time.Duration(days) * 24 * time.Hour)
	return &models.TripRequest{
		ServiceType:    models.ServiceTypeMultiday,
		PickupLocation: "Pune",
		DropLocation:   "Mumbai",
		PaxCount:       2,
		PickupTimeType: models.PickupTimeNow,
		StartDate:      &start,
		EndDate:        &end,
		IsRoundTrip:    roundTrip,
	}
}

func TestComputeTransferFare(t *testing.T) {
	svc := NewFareService()

	trip := &models.TripRequest{
		ServiceType:    models.ServiceTypeCity,
		PickupLocation: "Andheri",
		DropLocation:   "Airport T2",
		PaxCount:       1,
		PickupTimeType: models.PickupTimeNow,
	}
	pricing := &models.PricingRecord{BasePrice: fptr(500)}

	fare, err := svc.Compute(pricing, &models.DistanceInfo{TotalDistanceKm: 12}, trip)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if fare.Subtotal != 500 {
		t.Errorf("subtotal = %v, want 500", fare.Subtotal)
	}
	if fare.Tax != 25 {
		t.Errorf("tax = %v, want 25", fare.Tax)
	}
	if fare.Total != 525 {
		t.Errorf("total = %v, want 525", fare.Total)
	}
}

func TestComputeHourlyFare(t *testing.T) {
	svc := NewFareService()

	trip := &models.TripRequest{
		ServiceType:    models.ServiceTypeHourly,
		PickupLocation: "Koramangala",
		PaxCount:       3,
		PickupTimeType: models.PickupTimeNow,
		Hours:          4,
	}

	tests := []struct {
		name     string
		pricing  *models.PricingRecord
		distance *models.DistanceInfo
		subtotal float64
		tax      float64
		total    float64
	}{
		{
			name: "base plus allowance",
			pricing: &models.PricingRecord{
				BasePrice:       fptr(996),
				DriverAllowance: fptr(300),
			},
			distance: &models.DistanceInfo{},
			subtotal: 1296,
			tax:      65,
			total:    1361,
		},
		{
			name: "extra kms charged beyond included",
			pricing: &models.PricingRecord{
				BasePrice:       fptr(1000),
				DriverAllowance: fptr(200),
				PricePerKm:      fptr(12),
			},
			distance: &models.DistanceInfo{ExtraKms: 10},
			subtotal: 1320,
			tax:      66,
			total:    1386,
		},
		{
			name: "zero extra kms needs no per-km rate",
			pricing: &models.PricingRecord{
				BasePrice:       fptr(1000),
				DriverAllowance: fptr(200),
			},
			distance: &models.DistanceInfo{ExtraKms: 0},
			subtotal: 1200,
			tax:      60,
			total:    1260,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fare, err := svc.Compute(tt.pricing, tt.distance, trip)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}
			if fare.Subtotal != tt.subtotal {
				t.Errorf("subtotal = %v, want %v", fare.Subtotal, tt.subtotal)
			}
			if fare.Tax != tt.tax {
				t.Errorf("tax = %v, want %v", fare.Tax, tt.tax)
			}
			if fare.Total != tt.total {
				t.Errorf("total = %v, want %v", fare.Total, tt.total)
			}
		})
	}
}

func TestComputeMultidayFare(t *testing.T) {
	svc := NewFareService()

	pricing := &models.PricingRecord{
		BasePrice:       fptr(3000),
		DriverAllowance: fptr(300),
		NightDrivingFee: fptr(500),
		PricePerHour:    fptr(200),
		DeadReturnCost:  fptr(800),
	}

	fare, err := svc.Compute(pricing, &models.DistanceInfo{}, multidayTrip(3, false))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	// 3 days, 2 nights, one way: 3000*3 + 300*2 + 500*2 + 800 = 11400
	if fare.Subtotal != 11400 {
		t.Errorf("subtotal = %v, want 11400", fare.Subtotal)
	}
	if fare.Tax != 570 {
		t.Errorf("tax = %v, want 570", fare.Tax)
	}
	if fare.Total != 11970 {
		t.Errorf("total = %v, want 11970", fare.Total)
	}
}

func TestComputeMultidayRoundTripSkipsDeadReturn(t *testing.T) {
	svc := NewFareService()

	// DeadReturnCost deliberately absent; a round trip must not require it.
	pricing := &models.PricingRecord{
		BasePrice:       fptr(3000),
		DriverAllowance: fptr(300),
		NightDrivingFee: fptr(500),
	}

	fare, err := svc.Compute(pricing, &models.DistanceInfo{}, multidayTrip(3, true))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if fare.Subtotal != 10600 {
		t.Errorf("subtotal = %v, want 10600", fare.Subtotal)
	}
	for _, line := range fare.Lines {
		if line.Label == "Dead return cost" {
			t.Error("round trip fare includes a dead return line")
		}
	}
}

func TestComputeMultidayExtraHours(t *testing.T) {
	svc := NewFareService()

	pricing := &models.PricingRecord{
		BasePrice:       fptr(3000),
		DriverAllowance: fptr(300),
		NightDrivingFee: fptr(500),
		PricePerHour:    fptr(200),
		DeadReturnCost:  fptr(800),
	}

	fare, err := svc.Compute(pricing, &models.DistanceInfo{ExtraHours: 2}, multidayTrip(3, false))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if fare.Subtotal != 11800 {
		t.Errorf("subtotal = %v, want 11800", fare.Subtotal)
	}
}

func TestComputeMissingPricingData(t *testing.T) {
	svc := NewFareService()

	tests := []struct {
		name    string
		trip    *models.TripRequest
		pricing *models.PricingRecord
	}{
		{
			name: "transfer without base price",
			trip: &models.TripRequest{
				ServiceType:    models.ServiceTypeCity,
				PickupTimeType: models.PickupTimeNow,
				PaxCount:       1,
			},
			pricing: &models.PricingRecord{},
		},
		{
			name: "hourly without driver allowance",
			trip: &models.TripRequest{
				ServiceType:    models.ServiceTypeHourly,
				PickupTimeType: models.PickupTimeNow,
				PaxCount:       1,
				Hours:          4,
			},
			pricing: &models.PricingRecord{BasePrice: fptr(996)},
		},
		{
			name:    "multiday one way without dead return cost",
			trip:    multidayTrip(2, false),
			pricing: &models.PricingRecord{BasePrice: fptr(3000), DriverAllowance: fptr(300), NightDrivingFee: fptr(500)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compute(tt.pricing, &models.DistanceInfo{}, tt.trip)
			if !errors.Is(err, ErrMissingPricingData) {
				t.Errorf("err = %v, want ErrMissingPricingData", err)
			}
		})
	}
}

func TestComputeRejectsNegativeAmounts(t *testing.T) {
	svc := NewFareService()

	trip := &models.TripRequest{
		ServiceType:    models.ServiceTypeCity,
		PickupTimeType: models.PickupTimeNow,
		PaxCount:       1,
	}

	_, err := svc.Compute(&models.PricingRecord{BasePrice: fptr(-100)}, nil, trip)
	if !errors.Is(err, ErrInvalidPricingData) {
		t.Errorf("err = %v, want ErrInvalidPricingData", err)
	}
}

func TestComputeFinalPriceReconciliation(t *testing.T) {
	svc := NewFareService()

	trip := &models.TripRequest{
		ServiceType:    models.ServiceTypeCity,
		PickupTimeType: models.PickupTimeNow,
		PaxCount:       1,
	}

	tests := []struct {
		name       string
		finalPrice float64
		wantTotal  float64
		mismatch   bool
	}{
		{name: "agrees exactly", finalPrice: 525, wantTotal: 525, mismatch: false},
		{name: "within rounding tolerance", finalPrice: 525.5, wantTotal: 525.5, mismatch: false},
		{name: "beyond tolerance is flagged", finalPrice: 600, wantTotal: 600, mismatch: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pricing := &models.PricingRecord{
				BasePrice:  fptr(500),
				FinalPrice: fptr(tt.finalPrice),
			}

			fare, err := svc.Compute(pricing, nil, trip)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}
			if fare.Total != tt.wantTotal {
				t.Errorf("total = %v, want %v", fare.Total, tt.wantTotal)
			}
			if fare.PriceMismatch != tt.mismatch {
				t.Errorf("mismatch = %v, want %v", fare.PriceMismatch, tt.mismatch)
			}
		})
	}
}

func TestComputeLinesSumToTotal(t *testing.T) {
	svc := NewFareService()

	pricing := &models.PricingRecord{
		BasePrice:       fptr(3000),
		DriverAllowance: fptr(300),
		NightDrivingFee: fptr(500),
		PricePerKm:      fptr(11),
		PricePerHour:    fptr(200),
		DeadReturnCost:  fptr(800),
	}
	distance := &models.DistanceInfo{ExtraKms: 35, ExtraHours: 1.5}

	fare, err := svc.Compute(pricing, distance, multidayTrip(4, false))
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if diff := math.Abs(fare.LineSum() - fare.Total); diff > 1e-9 {
		t.Errorf("lines sum to %v but total is %v", fare.LineSum(), fare.Total)
	}
}
