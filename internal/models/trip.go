package models

import (
	"errors"
	"math"
	"time"
)

type ServiceType string
type PickupTimeType string

const (
	ServiceTypeCity     ServiceType = "city"
	ServiceTypeTerminal ServiceType = "terminal"
	ServiceTypeHourly   ServiceType = "hourly"
	ServiceTypeMultiday ServiceType = "multiday"

	PickupTimeNow      PickupTimeType = "now"
	PickupTimeSchedule PickupTimeType = "schedule"
)

var (
	ErrInvalidServiceType    = errors.New("invalid service type")
	ErrMissingPickupLocation = errors.New("pickup location is required")
	ErrMissingDropLocation   = errors.New("drop location is required")
	ErrMissingSchedule       = errors.New("scheduled pickup requires both date and time")
	ErrInvalidPaxCount       = errors.New("pax count must be positive")
	ErrInvalidHours          = errors.New("rental hours must be positive")
	ErrInvalidDateRange      = errors.New("end date must not be before start date")
)

// TripRequest captures the rider's search input. ServiceType decides which
// optional fields are required; Validate enforces that before any search or
// booking call is issued.
type TripRequest struct {
	ServiceType    ServiceType    `json:"service_type" bson:"service_type"`
	PickupLocation string         `json:"pickup_location" bson:"pickup_location"`
	DropLocation   string         `json:"drop_location" bson:"drop_location"`
	PaxCount       int            `json:"pax_count" bson:"pax_count"`
	IsACPreference bool           `json:"is_ac_preference" bson:"is_ac_preference"`
	PickupTimeType PickupTimeType `json:"pickup_time_type" bson:"pickup_time_type"`
	PickupDate     string         `json:"pickup_date,omitempty" bson:"pickup_date,omitempty"`
	PickupTime     string         `json:"pickup_time,omitempty" bson:"pickup_time,omitempty"`
	ContactName    string         `json:"contact_name,omitempty" bson:"contact_name,omitempty"`
	ContactPhone   string         `json:"contact_phone,omitempty" bson:"contact_phone,omitempty"`

	// Hourly rentals only.
	Hours int `json:"hours,omitempty" bson:"hours,omitempty"`

	// Multiday rentals only.
	StartDate   *time.Time `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty" bson:"end_date,omitempty"`
	IsRoundTrip bool       `json:"is_round_trip,omitempty" bson:"is_round_trip,omitempty"`
}

func (t *TripRequest) Validate() error {
	switch t.ServiceType {
	case ServiceTypeCity, ServiceTypeTerminal, ServiceTypeHourly, ServiceTypeMultiday:
	default:
		return ErrInvalidServiceType
	}

	if t.PickupLocation == "" {
		return ErrMissingPickupLocation
	}
	if t.PaxCount <= 0 {
		return ErrInvalidPaxCount
	}

	switch t.PickupTimeType {
	case PickupTimeNow:
	case PickupTimeSchedule:
		if t.PickupDate == "" || t.PickupTime == "" {
			return ErrMissingSchedule
		}
	default:
		return ErrMissingSchedule
	}

	switch t.ServiceType {
	case ServiceTypeCity, ServiceTypeTerminal:
		if t.DropLocation == "" {
			return ErrMissingDropLocation
		}
	case ServiceTypeHourly:
		if t.Hours <= 0 {
			return ErrInvalidHours
		}
	case ServiceTypeMultiday:
		if t.StartDate == nil || t.EndDate == nil {
			return ErrInvalidDateRange
		}
		if t.EndDate.Before(*t.StartDate) {
			return ErrInvalidDateRange
		}
	}

	return nil
}

// NumberOfDays is ceil(end-start) in whole days with a one day minimum, so a
// same-day rental still bills one day.
func (t *TripRequest) NumberOfDays() int {
	if t.StartDate == nil || t.EndDate == nil {
		return 0
	}
	days := int(math.Ceil(t.EndDate.Sub(*t.StartDate).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// NumberOfNights is days-1, never negative.
func (t *TripRequest) NumberOfNights() int {
	nights := t.NumberOfDays() - 1
	if nights < 0 {
		nights = 0
	}
	return nights
}

func (t *TripRequest) IsScheduled() bool {
	return t.PickupTimeType == PickupTimeSchedule
}
