package handlers

import (
	"errors"
	"net/http"

	"gocab/internal/models"
	"gocab/internal/services"
	"gocab/internal/utils"
	"gocab/internal/validators"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService services.BookingService
	searchService  services.SearchService
}

func NewBookingHandler(bookingService services.BookingService, searchService services.SearchService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		searchService:  searchService,
	}
}

// CreateBooking re-prices the trip, picks the offer the rider selected by
// supplier and category, and creates a pending booking from it. Re-pricing
// server side keeps a stale client quote from becoming the committed price.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var request validators.CreateBookingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateCreateBooking(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	supplierID, _ := primitive.ObjectIDFromHex(request.SupplierID)
	categoryID, _ := primitive.ObjectIDFromHex(request.CategoryID)

	trip := request.Trip
	trip.ContactName = request.ContactName
	trip.ContactPhone = request.ContactPhone

	result, err := h.searchService.Search(c.Request.Context(), &trip)
	if err != nil {
		utils.BadRequestResponse(c, "Failed to price trip: "+err.Error())
		return
	}

	offer := findOffer(result.Offers, supplierID, categoryID)
	if offer == nil {
		utils.NotFoundResponse(c, "Offer")
		return
	}
	if offer.PriceUnavailable {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "PRICE_UNAVAILABLE", utils.ErrPriceUnavailable)
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), &services.CreateBookingInput{
		UserID: userID,
		Trip:   &trip,
		Offer:  offer,
	})
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "BOOKING_CREATE_FAILED", "Failed to create booking: "+err.Error())
		return
	}

	utils.CreatedResponse(c, "Booking created", booking)
}

// GetBooking returns the stored booking plus its derived display state.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	details, err := h.bookingService.GetDetails(c.Request.Context(), bookingID)
	if err != nil {
		utils.NotFoundResponse(c, "Booking")
		return
	}
	if details.Booking.UserID != userID {
		utils.NotFoundResponse(c, "Booking")
		return
	}

	utils.SuccessResponse(c, "Booking retrieved", details)
}

// ListBookings pages through the caller's bookings, newest first.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.ListByUser(c.Request.Context(), userID, params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Bookings retrieved", gin.H{
		"bookings":   bookings,
		"pagination": utils.CreatePaginationMeta(params, total),
	})
}

// UpdateBookingStatus applies one lifecycle transition. The route is
// operator-gated; riders go through CancelBooking. Illegal transitions
// answer 409, unknown target statuses 400.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var request validators.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStruct(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Fields())
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), bookingID, models.BookingStatus(request.Status))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.NotFoundResponse(c, "Booking")
		case errors.Is(err, services.ErrUnknownBookingStatus):
			utils.BadRequestResponse(c, "Unknown booking status")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Booking status updated", booking)
}

// CancelBooking cancels the caller's booking when the lifecycle allows it.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.Cancel(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBookingNotFound):
			utils.NotFoundResponse(c, "Booking")
		case errors.Is(err, services.ErrInvalidTransition):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", booking)
}

func findOffer(offers []models.Offer, supplierID, categoryID primitive.ObjectID) *models.Offer {
	for i := range offers {
		if offers[i].Supplier.ID == supplierID && offers[i].Category.ID == categoryID {
			return &offers[i]
		}
	}
	return nil
}

func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	return userID, true
}
