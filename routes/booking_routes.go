package routes

import (
	"gocab/internal/handlers"
	"gocab/internal/middleware"
	"gocab/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes wires the booking lifecycle endpoints. Rider endpoints
// require an authenticated session; status transitions are backend-driven
// and only accept operator calls.
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, sessions services.SessionService, operatorKey string) {
	bookings := r.Group("/bookings")

	bookings.PUT("/:id/status", middleware.OperatorRequired(operatorKey), bookingHandler.UpdateBookingStatus)

	rider := bookings.Group("")
	rider.Use(middleware.AuthRequired(sessions))
	{
		rider.POST("", bookingHandler.CreateBooking)
		rider.GET("", bookingHandler.ListBookings)
		rider.GET("/:id", bookingHandler.GetBooking)
		rider.PUT("/:id/cancel", bookingHandler.CancelBooking)
	}
}
