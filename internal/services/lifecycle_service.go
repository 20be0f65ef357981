package services

import (
	"errors"

	"gocab/internal/models"
)

var (
	ErrUnknownBookingStatus     = errors.New("unknown booking status")
	ErrMultipleAcceptedRequests = errors.New("multiple accepted booking requests")
	ErrInvalidTransition        = errors.New("invalid booking status transition")
)

// DisplayState is the derived, never-persisted state a booking renders as.
type DisplayState string

const (
	DisplayRequested        DisplayState = "requested"
	DisplayAwaitingSupplier DisplayState = "awaiting_supplier_confirmation"
	DisplayConfirmed        DisplayState = "confirmed"
	DisplayDriverAssigned   DisplayState = "driver_assigned"
	DisplayCompleted        DisplayState = "completed"
	DisplayCancelled        DisplayState = "cancelled"
	DisplayExpired          DisplayState = "expired"

	// DisplayUnknown is the fallback when a stored status cannot be mapped
	// to a display state.
	DisplayUnknown DisplayState = "unknown"
)

// BookingState is the single authoritative display descriptor every
// consuming view renders from. Deriving it in one place keeps the status
// banner, progress track, and driver-contact visibility consistent across
// the detail, confirmation, and review screens.
type BookingState struct {
	Status   models.BookingStatus `json:"status"`
	Display  DisplayState         `json:"display"`
	Terminal bool                 `json:"terminal"`

	// Steps and StepIndex describe the 3-step progress track. Steps is nil
	// for terminal states, which render a banner instead of a track.
	Steps     []string `json:"steps,omitempty"`
	StepIndex int      `json:"step_index"`

	// ShowDriverContact gates the driver name and call affordance.
	// DriverPending means a confirmed booking should render the "driver will
	// be assigned" placeholder instead.
	ShowDriverContact bool `json:"show_driver_contact"`
	DriverPending     bool `json:"driver_pending"`

	AcceptedRequest *models.BookingRequest `json:"accepted_request,omitempty"`
}

// LifecycleService derives display state from persisted booking records and
// validates backend-driven status transitions. It never advances state on
// its own.
type LifecycleService struct{}

func NewLifecycleService() *LifecycleService {
	return &LifecycleService{}
}

// transitions is the monotonic forward table. Cancelled and expired are
// reachable from every pre-completed state; terminal states have no exits.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending: {
		models.BookingStatusAwaitingSupplierConfirmation,
		models.BookingStatusCancelled,
		models.BookingStatusExpired,
	},
	models.BookingStatusAwaitingSupplierConfirmation: {
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
		models.BookingStatusExpired,
	},
	models.BookingStatusConfirmed: {
		models.BookingStatusCompleted,
		models.BookingStatusCancelled,
		models.BookingStatusExpired,
	},
	models.BookingStatusCompleted: {},
	models.BookingStatusCancelled: {},
	models.BookingStatusExpired:   {},
}

// CanTransition reports whether the backend may move a booking from one
// status to another.
func CanTransition(from, to models.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DeriveState classifies a booking plus its supplier requests and optional
// driver assignment into the display descriptor. An unrecognized persisted
// status or more than one accepted request is a data-integrity error: the
// caller renders a safe generic fallback and logs, it does not guess.
func (s *LifecycleService) DeriveState(booking *models.Booking, requests []*models.BookingRequest, assignment *models.Assignment) (*BookingState, error) {
	if !models.KnownBookingStatus(booking.Status) {
		return nil, ErrUnknownBookingStatus
	}

	accepted, err := AcceptedRequest(requests)
	if err != nil {
		return nil, err
	}

	state := &BookingState{
		Status:          booking.Status,
		AcceptedRequest: accepted,
	}

	isNow := booking.PickupTimeType == models.PickupTimeNow

	switch booking.Status {
	case models.BookingStatusPending, models.BookingStatusAwaitingSupplierConfirmation:
		state.Steps = []string{"Requested", "Pending", "Confirmed"}
		if booking.Status == models.BookingStatusAwaitingSupplierConfirmation {
			state.Display = DisplayAwaitingSupplier
			state.StepIndex = 1
		} else {
			state.Display = DisplayRequested
			state.StepIndex = 0
		}

	case models.BookingStatusConfirmed:
		last := "Scheduled"
		if isNow {
			last = "Driver Onway"
		}
		state.Steps = []string{"Requested", "Confirmed", last}
		if isNow {
			state.StepIndex = 2
		} else {
			state.StepIndex = 1
		}

		state.Display = DisplayConfirmed
		if assignment != nil {
			state.Display = DisplayDriverAssigned
		}
		state.ShowDriverContact = showDriverContact(booking, assignment)
		state.DriverPending = !state.ShowDriverContact

	case models.BookingStatusCompleted:
		state.Display = DisplayCompleted
		state.Terminal = true
	case models.BookingStatusCancelled:
		state.Display = DisplayCancelled
		state.Terminal = true
	case models.BookingStatusExpired:
		state.Display = DisplayExpired
		state.Terminal = true
	}

	return state, nil
}

// showDriverContact is the one driver-visibility rule: an assignment must
// exist, and a scheduled booking additionally needs an explicit driver name
// before any call affordance appears.
func showDriverContact(booking *models.Booking, assignment *models.Assignment) bool {
	if assignment == nil {
		return false
	}
	if booking.PickupTimeType == models.PickupTimeNow {
		return true
	}
	return assignment.DriverName != ""
}

// AcceptedRequest scans supplier responses for the single accepted or
// confirmed one. More than one match is a data-integrity condition to
// surface, not resolve by picking the first.
func AcceptedRequest(requests []*models.BookingRequest) (*models.BookingRequest, error) {
	var accepted *models.BookingRequest
	for _, req := range requests {
		if req == nil {
			continue
		}
		if req.Status == models.RequestStatusAccepted || req.Status == models.RequestStatusConfirmed {
			if accepted != nil {
				return nil, ErrMultipleAcceptedRequests
			}
			accepted = req
		}
	}
	return accepted, nil
}
