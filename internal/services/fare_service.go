package services

import (
	"errors"
	"fmt"
	"math"

	"gocab/internal/models"
)

var (
	ErrMissingPricingData = errors.New("missing pricing data")
	ErrInvalidPricingData = errors.New("invalid pricing data")
)

const (
	// TaxRate is applied to the pre-tax subtotal and rounded to whole units.
	TaxRate = 0.05

	// FareTolerance is the acceptable gap, in whole currency units, between a
	// backend-supplied final price and the reconstructed line-item sum.
	FareTolerance = 1.0
)

// FareService computes itemized fares from a rate card and trip parameters.
// It is pure: no I/O, no state, the same inputs always produce the same
// breakdown. All four service types share this one implementation.
type FareService struct{}

func NewFareService() *FareService {
	return &FareService{}
}

// Compute builds the fare breakdown for one offer under the given trip.
// A nil required pricing field fails with ErrMissingPricingData; the caller
// renders such offers as price-unavailable rather than zero.
func (s *FareService) Compute(pricing *models.PricingRecord, distance *models.DistanceInfo, trip *models.TripRequest) (*models.FareBreakdown, error) {
	if pricing == nil || trip == nil {
		return nil, ErrMissingPricingData
	}
	if distance == nil {
		distance = &models.DistanceInfo{}
	}

	var (
		lines []models.FareLine
		err   error
	)

	switch trip.ServiceType {
	case models.ServiceTypeCity, models.ServiceTypeTerminal:
		lines, err = s.transferLines(pricing)
	case models.ServiceTypeHourly:
		lines, err = s.hourlyLines(pricing, distance)
	case models.ServiceTypeMultiday:
		lines, err = s.multidayLines(pricing, distance, trip)
	default:
		return nil, models.ErrInvalidServiceType
	}
	if err != nil {
		return nil, err
	}

	breakdown := &models.FareBreakdown{Lines: lines}
	for _, l := range lines {
		breakdown.Subtotal += l.Amount
	}
	breakdown.Tax = math.Round(breakdown.Subtotal * TaxRate)
	breakdown.Lines = append(breakdown.Lines, models.FareLine{Label: "Taxes & fees (5%)", Amount: breakdown.Tax})
	breakdown.Total = breakdown.Subtotal + breakdown.Tax

	// A backend final price is authoritative for display. Disagreement beyond
	// rounding tolerance is flagged, never silently reconciled.
	if pricing.FinalPrice != nil {
		authoritative := *pricing.FinalPrice
		if authoritative < 0 {
			return nil, fmt.Errorf("%w: negative final_price", ErrInvalidPricingData)
		}
		if math.Abs(breakdown.Total-authoritative) > FareTolerance {
			breakdown.PriceMismatch = true
		}
		breakdown.Total = authoritative
	}

	if breakdown.Total < 0 {
		return nil, fmt.Errorf("%w: negative total", ErrInvalidPricingData)
	}

	return breakdown, nil
}

func (s *FareService) transferLines(pricing *models.PricingRecord) ([]models.FareLine, error) {
	base, err := requireAmount(pricing.BasePrice, "base_price")
	if err != nil {
		return nil, err
	}

	return []models.FareLine{
		{Label: "Base fare", Amount: base},
	}, nil
}

func (s *FareService) hourlyLines(pricing *models.PricingRecord, distance *models.DistanceInfo) ([]models.FareLine, error) {
	base, err := requireAmount(pricing.BasePrice, "base_price")
	if err != nil {
		return nil, err
	}
	allowance, err := requireAmount(pricing.DriverAllowance, "driver_allowance")
	if err != nil {
		return nil, err
	}

	lines := []models.FareLine{
		{Label: "Base fare", Amount: base},
		{Label: "Driver allowance", Amount: allowance},
	}

	// Distance is charged only beyond the included allowance.
	if distance.ExtraKms > 0 {
		perKm, err := requireAmount(pricing.PricePerKm, "price_per_km")
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.FareLine{
			Label:  fmt.Sprintf("Extra kms (%.0f km)", distance.ExtraKms),
			Amount: distance.ExtraKms * perKm,
		})
	}

	return lines, nil
}

func (s *FareService) multidayLines(pricing *models.PricingRecord, distance *models.DistanceInfo, trip *models.TripRequest) ([]models.FareLine, error) {
	days := trip.NumberOfDays()
	nights := trip.NumberOfNights()

	base, err := requireAmount(pricing.BasePrice, "base_price")
	if err != nil {
		return nil, err
	}
	allowance, err := requireAmount(pricing.DriverAllowance, "driver_allowance")
	if err != nil {
		return nil, err
	}
	nightFee, err := requireAmount(pricing.NightDrivingFee, "night_driving_fee")
	if err != nil {
		return nil, err
	}

	lines := []models.FareLine{
		{Label: fmt.Sprintf("Base fare (x%d days)", days), Amount: base * float64(days)},
		{Label: fmt.Sprintf("Driver allowance (x%d nights)", nights), Amount: allowance * float64(nights)},
		{Label: "Night driving fee", Amount: nightFee * float64(nights)},
	}

	if distance.ExtraKms > 0 {
		perKm, err := requireAmount(pricing.PricePerKm, "price_per_km")
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.FareLine{
			Label:  fmt.Sprintf("Extra kms (%.0f km)", distance.ExtraKms),
			Amount: distance.ExtraKms * perKm,
		})
	}

	if distance.ExtraHours > 0 {
		perHour, err := requireAmount(pricing.PricePerHour, "price_per_hour")
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.FareLine{
			Label:  "Extra hours",
			Amount: distance.ExtraHours * perHour,
		})
	}

	// One-way rentals pay for the vehicle's empty return leg.
	if !trip.IsRoundTrip {
		deadReturn, err := requireAmount(pricing.DeadReturnCost, "dead_return_cost")
		if err != nil {
			return nil, err
		}
		lines = append(lines, models.FareLine{Label: "Dead return cost", Amount: deadReturn})
	}

	return lines, nil
}

func requireAmount(field *float64, name string) (float64, error) {
	if field == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingPricingData, name)
	}
	if *field < 0 {
		return 0, fmt.Errorf("%w: negative %s", ErrInvalidPricingData, name)
	}
	return *field, nil
}
