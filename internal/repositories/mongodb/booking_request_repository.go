package mongodb

import (
	"context"
	"fmt"
	"time"

	"gocab/internal/models"
	"gocab/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type bookingRequestRepository struct {
	collection *mongo.Collection
}

func NewBookingRequestRepository(db *mongo.Database) interfaces.BookingRequestRepository {
	return &bookingRequestRepository{
		collection: db.Collection("booking_requests"),
	}
}

func (r *bookingRequestRepository) Create(ctx context.Context, request *models.BookingRequest) error {
	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to create booking request: %w", err)
	}

	return nil
}

func (r *bookingRequestRepository) GetByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]*models.BookingRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking requests: %w", err)
	}
	defer cursor.Close(ctx)

	var requests []*models.BookingRequest
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("failed to decode booking requests: %w", err)
	}

	return requests, nil
}

func (r *bookingRequestRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RequestStatus) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking request status: %w", err)
	}

	return nil
}
