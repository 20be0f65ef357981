package interfaces

import (
	"context"

	"gocab/internal/models"
	"gocab/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error
	GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByStatus(ctx context.Context, status models.BookingStatus) ([]*models.Booking, error)
}

type BookingRequestRepository interface {
	Create(ctx context.Context, request *models.BookingRequest) error
	GetByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]*models.BookingRequest, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus) error
}

type AssignmentRepository interface {
	Upsert(ctx context.Context, assignment *models.Assignment) error
	GetByBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Assignment, error)
}
