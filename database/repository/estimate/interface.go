package estimateRepo

import (
	"context"

	"shineops/database"
	"shineops/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// EstimateRepository defines access to the estimates collection.
type EstimateRepository interface {
	Create(ctx context.Context, est models.Estimate) (string, error)
	GetByID(ctx context.Context, id string) (*models.Estimate, error)
	Update(ctx context.Context, est models.Estimate) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Estimate, error)
}

type mongoEstimateRepo struct {
	coll *mongo.Collection
}

// NewMongoEstimateRepo returns a new EstimateRepository instance using MongoDB.
func NewMongoEstimateRepo() EstimateRepository {
	return &mongoEstimateRepo{
		coll: database.Collection("estimates"),
	}
}
