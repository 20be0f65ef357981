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

type assignmentRepository struct {
	collection *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) interfaces.AssignmentRepository {
	return &assignmentRepository{
		collection: db.Collection("assignments"),
	}
}

// Upsert keeps at most one assignment per booking; reassignment replaces the
// previous driver record.
func (r *assignmentRepository) Upsert(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID.IsZero() {
		assignment.ID = primitive.NewObjectID()
	}
	if assignment.AssignedAt.IsZero() {
		assignment.AssignedAt = time.Now()
	}

	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"booking_id": assignment.BookingID}, assignment, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert assignment: %w", err)
	}

	return nil
}

func (r *assignmentRepository) GetByBooking(ctx context.Context, bookingID primitive.ObjectID) (*models.Assignment, error) {
	var assignment models.Assignment
	err := r.collection.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return &assignment, nil
}
