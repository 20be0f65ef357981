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
)

type rateCardRepository struct {
	collection *mongo.Collection
	cache      services.CacheService
}

func NewRateCardRepository(db *mongo.Database, cache services.CacheService) interfaces.RateCardRepository {
	return &rateCardRepository{
		collection: db.Collection("rate_cards"),
		cache:      cache,
	}
}

func (r *rateCardRepository) Create(ctx context.Context, card *models.RateCard) error {
	card.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, card)
	if err != nil {
		return fmt.Errorf("failed to create rate card: %w", err)
	}

	r.invalidateServiceCache(ctx, card.ServiceType)

	return nil
}

func (r *rateCardRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RateCard, error) {
	var card models.RateCard
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("rate card not found")
		}
		return nil, fmt.Errorf("failed to get rate card: %w", err)
	}

	return &card, nil
}

// GetActiveByServiceType is the hot path behind every search, so results sit
// in redis for a few minutes.
func (r *rateCardRepository) GetActiveByServiceType(ctx context.Context, serviceType models.ServiceType) ([]*models.RateCard, error) {
	cacheKey := utils.CacheSupplierPrefix + string(serviceType)
	if r.cache != nil {
		var cached []*models.RateCard
		if err := r.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	cursor, err := r.collection.Find(ctx, bson.M{
		"service_type": serviceType,
		"is_active":    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list rate cards: %w", err)
	}
	defer cursor.Close(ctx)

	var cards []*models.RateCard
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("failed to decode rate cards: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, cacheKey, cards, 5*time.Minute)
	}

	return cards, nil
}

func (r *rateCardRepository) GetBySupplierAndCategory(ctx context.Context, serviceType models.ServiceType, supplierID, categoryID primitive.ObjectID) (*models.RateCard, error) {
	var card models.RateCard
	err := r.collection.FindOne(ctx, bson.M{
		"service_type": serviceType,
		"supplier._id": supplierID,
		"category._id": categoryID,
		"is_active":    true,
	}).Decode(&card)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("rate card not found")
		}
		return nil, fmt.Errorf("failed to get rate card: %w", err)
	}

	return &card, nil
}

func (r *rateCardRepository) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	var card models.RateCard
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_active": active}},
	).Decode(&card)
	if err != nil {
		return fmt.Errorf("failed to update rate card: %w", err)
	}

	r.invalidateServiceCache(ctx, card.ServiceType)

	return nil
}

func (r *rateCardRepository) invalidateServiceCache(ctx context.Context, serviceType models.ServiceType) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheSupplierPrefix+string(serviceType))
	}
}
