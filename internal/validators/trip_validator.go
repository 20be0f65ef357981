package validators

import (
	"time"

	"gocab/internal/models"
)

// TransferSearchRequest covers city and terminal point-to-point searches.
type TransferSearchRequest struct {
	ServiceType    string `json:"service_type" validate:"required,oneof=city terminal"`
	PickupLocation string `json:"pickup_location" validate:"required,min=3,max=255"`
	DropLocation   string `json:"drop_location" validate:"required,min=3,max=255"`
	PaxCount       int    `json:"pax_count" validate:"required,min=1,max=12"`
	IsACPreference bool   `json:"is_ac_preference"`
	PickupTimeType string `json:"pickup_time_type" validate:"required,oneof=now schedule"`
	PickupDate     string `json:"pickup_date" validate:"omitempty"`
	PickupTime     string `json:"pickup_time" validate:"omitempty"`
}

type HourlySearchRequest struct {
	PickupLocation string `json:"pickup_location" validate:"required,min=3,max=255"`
	DropLocation   string `json:"drop_location" validate:"omitempty,max=255"`
	Hours          int    `json:"hours" validate:"required,min=1,max=24"`
	PaxCount       int    `json:"pax_count" validate:"required,min=1,max=12"`
	IsACPreference bool   `json:"is_ac_preference"`
	PickupTimeType string `json:"pickup_time_type" validate:"required,oneof=now schedule"`
	PickupDate     string `json:"pickup_date" validate:"omitempty"`
	PickupTime     string `json:"pickup_time" validate:"omitempty"`
}

type MultidaySearchRequest struct {
	PickupLocation string     `json:"pickup_location" validate:"required,min=3,max=255"`
	DropLocation   string     `json:"drop_location" validate:"omitempty,max=255"`
	StartDate      *time.Time `json:"start_date" validate:"required"`
	EndDate        *time.Time `json:"end_date" validate:"required"`
	IsRoundTrip    bool       `json:"is_round_trip"`
	PaxCount       int        `json:"pax_count" validate:"required,min=1,max=12"`
	IsACPreference bool       `json:"is_ac_preference"`
	PickupTimeType string     `json:"pickup_time_type" validate:"required,oneof=now schedule"`
	PickupDate     string     `json:"pickup_date" validate:"omitempty"`
	PickupTime     string     `json:"pickup_time" validate:"omitempty"`
}

type CreateBookingRequest struct {
	Trip         models.TripRequest `json:"trip" validate:"required"`
	SupplierID   string             `json:"supplier_id" validate:"required,object_id"`
	CategoryID   string             `json:"category_id" validate:"required,object_id"`
	ContactName  string             `json:"contact_name" validate:"required,min=2,max=100"`
	ContactPhone string             `json:"contact_phone" validate:"required,phone_number"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,booking_status"`
}

func ValidateTransferSearch(req *TransferSearchRequest) ValidationErrors {
	errs := ValidateStruct(req)
	return appendScheduleErrors(errs, req.PickupTimeType, req.PickupDate, req.PickupTime)
}

func ValidateHourlySearch(req *HourlySearchRequest) ValidationErrors {
	errs := ValidateStruct(req)
	return appendScheduleErrors(errs, req.PickupTimeType, req.PickupDate, req.PickupTime)
}

func ValidateMultidaySearch(req *MultidaySearchRequest) ValidationErrors {
	errs := ValidateStruct(req)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		errs = append(errs, ValidationError{
			Field:   "end_date",
			Message: "End date must not be before start date",
		})
	}

	return appendScheduleErrors(errs, req.PickupTimeType, req.PickupDate, req.PickupTime)
}

func ValidateCreateBooking(req *CreateBookingRequest) ValidationErrors {
	errs := ValidateStruct(req)

	if err := req.Trip.Validate(); err != nil {
		errs = append(errs, ValidationError{
			Field:   "trip",
			Message: err.Error(),
		})
	}

	return errs
}

func appendScheduleErrors(errs ValidationErrors, timeType, date, clock string) ValidationErrors {
	if timeType == string(models.PickupTimeSchedule) {
		if date == "" {
			errs = append(errs, ValidationError{
				Field:   "pickup_date",
				Message: "Pickup date is required for scheduled pickups",
			})
		}
		if clock == "" {
			errs = append(errs, ValidationError{
				Field:   "pickup_time",
				Message: "Pickup time is required for scheduled pickups",
			})
		}
	}
	return errs
}
