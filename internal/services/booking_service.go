package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gocab/internal/models"
	"gocab/internal/repositories/interfaces"
	"gocab/internal/utils"
	"gocab/pkg/logger"
	"gocab/pkg/sms"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrOfferNotPriced  = errors.New("selected offer has no fare")
)

// BookingDetails is the rider-facing projection of one booking: the stored
// record plus everything the lifecycle engine derives from it.
type BookingDetails struct {
	Booking    *models.Booking          `json:"booking"`
	State      *BookingState            `json:"state"`
	Requests   []*models.BookingRequest `json:"requests,omitempty"`
	Assignment *models.Assignment       `json:"assignment,omitempty"`
}

type CreateBookingInput struct {
	UserID primitive.ObjectID
	Trip   *models.TripRequest
	Offer  *models.Offer
}

type BookingService interface {
	Create(ctx context.Context, input *CreateBookingInput) (*models.Booking, error)
	GetDetails(ctx context.Context, id primitive.ObjectID) (*BookingDetails, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error)
	Cancel(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Booking, error)
}

type bookingService struct {
	bookings    interfaces.BookingRepository
	requests    interfaces.BookingRequestRepository
	assignments interfaces.AssignmentRepository
	lifecycle   *LifecycleService
	smsProvider sms.Provider
	smsFrom     string
	logger      *logger.Logger
}

func NewBookingService(
	bookings interfaces.BookingRepository,
	requests interfaces.BookingRequestRepository,
	assignments interfaces.AssignmentRepository,
	lifecycle *LifecycleService,
	smsProvider sms.Provider,
	smsFrom string,
	log *logger.Logger,
) BookingService {
	return &bookingService{
		bookings:    bookings,
		requests:    requests,
		assignments: assignments,
		lifecycle:   lifecycle,
		smsProvider: smsProvider,
		smsFrom:     smsFrom,
		logger:      log,
	}
}

func (s *bookingService) Create(ctx context.Context, input *CreateBookingInput) (*models.Booking, error) {
	if err := input.Trip.Validate(); err != nil {
		return nil, err
	}
	if input.Offer == nil || input.Offer.Fare == nil || input.Offer.PriceUnavailable {
		return nil, ErrOfferNotPriced
	}

	booking := &models.Booking{
		BookingNumber:   newBookingNumber(),
		UserID:          input.UserID,
		ServiceType:     input.Trip.ServiceType,
		Status:          models.BookingStatusPending,
		PickupTimeType:  input.Trip.PickupTimeType,
		PickupLocation:  input.Trip.PickupLocation,
		DropLocation:    input.Trip.DropLocation,
		CarCategoryID:   input.Offer.Category.ID,
		CarCategoryName: input.Offer.Category.Name,
		SupplierID:      input.Offer.Supplier.ID,
		PaxCount:        input.Trip.PaxCount,
		IsAC:            input.Offer.Category.IsAC,
		TotalPrice:      input.Offer.Fare.Total,
		FareDetails:     input.Offer.Fare,
		UserInput:       input.Trip,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.LogBookingEvent(booking.ID, utils.EventBookingCreated, map[string]interface{}{
		"booking_number": booking.BookingNumber,
		"service_type":   booking.ServiceType,
		"total_price":    booking.TotalPrice,
	})

	return booking, nil
}

func (s *bookingService) GetDetails(ctx context.Context, id primitive.ObjectID) (*BookingDetails, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	requests, err := s.requests.GetByBooking(ctx, id)
	if err != nil {
		s.logger.WithBookingID(id).WithError(err).Warn("Failed to load booking requests")
		requests = nil
	}

	assignment, err := s.assignments.GetByBooking(ctx, id)
	if err != nil {
		s.logger.WithBookingID(id).WithError(err).Warn("Failed to load assignment")
		assignment = nil
	}

	state, err := s.lifecycle.DeriveState(booking, requests, assignment)
	if err != nil {
		// Unknown status or conflicting requests still render; the screen
		// falls back to a generic state with no progress track rather than
		// echoing an unrecognized stored value.
		s.logger.WithBookingID(id).WithError(err).Error("Failed to derive booking state")
		state = &BookingState{
			Status:  booking.Status,
			Display: DisplayUnknown,
		}
	}

	return &BookingDetails{
		Booking:    booking,
		State:      state,
		Requests:   requests,
		Assignment: assignment,
	}, nil
}

func (s *bookingService) ListByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.bookings.GetByUser(ctx, userID, params)
}

func (s *bookingService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}

	if !models.KnownBookingStatus(status) {
		return nil, ErrUnknownBookingStatus
	}
	if !CanTransition(booking.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, status)
	}

	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	booking.Status = status

	s.logger.LogBookingEvent(booking.ID, "status_changed", map[string]interface{}{
		"booking_number": booking.BookingNumber,
		"status":         status,
	})

	if status == models.BookingStatusConfirmed {
		s.notifyConfirmed(ctx, booking)
	}

	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id primitive.ObjectID, userID primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}

	return s.UpdateStatus(ctx, id, models.BookingStatusCancelled)
}

// notifyConfirmed sends the confirmation SMS. Failures are logged, never
// surfaced; the status change already happened.
func (s *bookingService) notifyConfirmed(ctx context.Context, booking *models.Booking) {
	if s.smsProvider == nil || booking.UserInput == nil {
		return
	}

	phone := contactPhone(booking)
	if phone == "" {
		return
	}

	body := fmt.Sprintf("Your %s booking %s is confirmed. Pickup: %s. Total: %s.",
		booking.ServiceType, booking.BookingNumber, booking.PickupLocation,
		utils.FormatFare(booking.TotalPrice, utils.DefaultCurrency))

	if _, err := s.smsProvider.Send(ctx, &sms.Message{
		To:       phone,
		From:     s.smsFrom,
		Body:     body,
		Category: "transactional",
	}); err != nil {
		s.logger.WithBookingID(booking.ID).WithError(err).Warn("Confirmation SMS failed")
	}
}

func contactPhone(booking *models.Booking) string {
	// Phone travels with the trip input until rider profiles carry it.
	if booking.UserInput != nil && booking.UserInput.ContactPhone != "" {
		return booking.UserInput.ContactPhone
	}
	return ""
}

func newBookingNumber() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return utils.BookingNumberPrefix + token[:10]
}
