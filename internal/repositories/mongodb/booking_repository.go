package mongodb

import (
	"context"
	"fmt"
	"time"

	"gocab/internal/models"
	"gocab/internal/repositories/interfaces"
	"gocab/internal/services"
	"gocab/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewBookingRepository(db *mongo.Database, cache services.CacheService) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
		cache:      cache,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	// Cache bookings still in flight for quick status polling
	if !isTerminalStatus(booking.Status) {
		r.cacheBooking(ctx, booking)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if booking := r.getBookingFromCache(ctx, id.Hex()); booking != nil {
		return booking, nil
	}

	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found")
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if !isTerminalStatus(booking.Status) {
		r.cacheBooking(ctx, &booking)
	}

	return &booking, nil
}

func (r *bookingRepository) GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	var booking models.Booking
	err := r.collection.FindOne(ctx, bson.M{"booking_number": bookingNumber}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("booking not found with number")
		}
		return nil, fmt.Errorf("failed to get booking by number: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	r.invalidateBookingCache(ctx, id.Hex())

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) error {
	return r.Update(ctx, id, map[string]interface{}{
		"booking_status": status,
	})
}

func (r *bookingRepository) GetByUser(ctx context.Context, userID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	filter := bson.M{"user_id": userID}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if params != nil {
		opts = params.GetSortOptions()
	}

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, total, nil
}

func (r *bookingRepository) GetByStatus(ctx context.Context, status models.BookingStatus) ([]*models.Booking, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"booking_status": status})
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by status: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, nil
}

func isTerminalStatus(status models.BookingStatus) bool {
	switch status {
	case models.BookingStatusCompleted, models.BookingStatusCancelled, models.BookingStatusExpired:
		return true
	}
	return false
}

func (r *bookingRepository) cacheBooking(ctx context.Context, booking *models.Booking) {
	if r.cache != nil {
		cacheKey := utils.CacheBookingPrefix + booking.ID.Hex()
		r.cache.Set(ctx, cacheKey, booking, 15*time.Minute)
	}
}

func (r *bookingRepository) getBookingFromCache(ctx context.Context, bookingID string) *models.Booking {
	if r.cache == nil {
		return nil
	}

	var booking models.Booking
	if err := r.cache.Get(ctx, utils.CacheBookingPrefix+bookingID, &booking); err != nil {
		return nil
	}

	return &booking
}

func (r *bookingRepository) invalidateBookingCache(ctx context.Context, bookingID string) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheBookingPrefix+bookingID)
	}
}
