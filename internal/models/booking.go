package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string
type RequestStatus string

const (
	BookingStatusPending                      BookingStatus = "pending"
	BookingStatusAwaitingSupplierConfirmation BookingStatus = "awaiting_supplier_confirmation"
	BookingStatusConfirmed                    BookingStatus = "confirmed"
	BookingStatusCompleted                    BookingStatus = "completed"
	BookingStatusCancelled                    BookingStatus = "cancelled"
	BookingStatusExpired                      BookingStatus = "expired"

	RequestStatusRequested RequestStatus = "requested"
	RequestStatusAccepted  RequestStatus = "accepted"
	RequestStatusConfirmed RequestStatus = "confirmed"
	RequestStatusRejected  RequestStatus = "rejected"
)

// KnownBookingStatus reports whether status is in the closed enum. Anything
// else is an unrecoverable data condition for the client side.
func KnownBookingStatus(status BookingStatus) bool {
	switch status {
	case BookingStatusPending, BookingStatusAwaitingSupplierConfirmation,
		BookingStatusConfirmed, BookingStatusCompleted,
		BookingStatusCancelled, BookingStatusExpired:
		return true
	}
	return false
}

// Booking is the persisted search-to-ride commitment. Status moves only
// through the lifecycle transition table; riders hold read-only projections.
type Booking struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BookingNumber   string             `json:"booking_number" bson:"booking_number"`
	UserID          primitive.ObjectID `json:"user_id" bson:"user_id"`
	ServiceType     ServiceType        `json:"service_type" bson:"service_type"`
	Status          BookingStatus      `json:"booking_status" bson:"booking_status"`
	PickupTimeType  PickupTimeType     `json:"pickup_time_type" bson:"pickup_time_type"`
	PickupLocation  string             `json:"pickup_location" bson:"pickup_location"`
	DropLocation    string             `json:"drop_location" bson:"drop_location"`
	CarCategoryID   primitive.ObjectID `json:"car_category_id" bson:"car_category_id"`
	CarCategoryName string             `json:"car_category_name" bson:"car_category_name"`
	SupplierID      primitive.ObjectID `json:"supplier_id" bson:"supplier_id"`
	PaxCount        int                `json:"pax_count" bson:"pax_count"`
	IsAC            bool               `json:"is_ac" bson:"is_ac"`
	TotalPrice      float64            `json:"total_price" bson:"total_price"`
	FareDetails     *FareBreakdown     `json:"fare_details,omitempty" bson:"fare_details,omitempty"`
	UserInput       *TripRequest       `json:"user_input,omitempty" bson:"user_input,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// PricingFramework pins the rate-card coordinates a booking was priced under.
type PricingFramework struct {
	SupplierID     primitive.ObjectID `json:"supplier_id" bson:"supplier_id"`
	CarCategoryID  primitive.ObjectID `json:"car_category_id" bson:"car_category_id"`
	IsAC           bool               `json:"is_ac" bson:"is_ac"`
	RentalDuration int                `json:"rental_duration,omitempty" bson:"rental_duration,omitempty"`
}

// BookingRequest is one supplier's response to a booking. Several may exist
// while the booking is pending; at most one may be accepted or confirmed.
type BookingRequest struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BookingID        primitive.ObjectID `json:"booking_id" bson:"booking_id"`
	SupplierID       primitive.ObjectID `json:"supplier_id" bson:"supplier_id"`
	SupplierName     string             `json:"supplier_name" bson:"supplier_name"`
	Status           RequestStatus      `json:"status" bson:"status"`
	ProposedPrice    *float64           `json:"proposed_price,omitempty" bson:"proposed_price,omitempty"`
	FareDetails      *FareBreakdown     `json:"faredetails,omitempty" bson:"faredetails,omitempty"`
	PricingFramework *PricingFramework  `json:"pricing_framework,omitempty" bson:"pricing_framework,omitempty"`
	VehicleModel     string             `json:"vehicle_model,omitempty" bson:"vehicle_model,omitempty"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
}

// Assignment is the driver/vehicle record attached once operational
// assignment happens. Its absence on a confirmed booking is meaningful state.
type Assignment struct {
	ID                 primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BookingID          primitive.ObjectID `json:"booking_id" bson:"booking_id"`
	DriverName         string             `json:"driver_name" bson:"driver_name"`
	Phone              string             `json:"phone" bson:"phone"`
	VehicleModel       string             `json:"vehicle_model" bson:"vehicle_model"`
	RegistrationNumber string             `json:"registration_number" bson:"registration_number"`
	AssignedAt         time.Time          `json:"assigned_at" bson:"assigned_at"`
}
