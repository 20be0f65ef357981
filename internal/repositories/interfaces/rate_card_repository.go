package interfaces

import (
	"context"

	"gocab/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RateCardRepository interface {
	Create(ctx context.Context, card *models.RateCard) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.RateCard, error)
	GetActiveByServiceType(ctx context.Context, serviceType models.ServiceType) ([]*models.RateCard, error)
	GetBySupplierAndCategory(ctx context.Context, serviceType models.ServiceType, supplierID, categoryID primitive.ObjectID) (*models.RateCard, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
}
