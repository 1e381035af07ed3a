package catalogRepo

import (
	"context"

	"shineops/database"
	"shineops/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository defines access to the service catalogue: services with
// their embedded option groups, and the per-service add-ons. The booking
// funnel reads it for pricing inputs; operator edits are plain last-write-wins
// field updates.
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	CreateService(ctx context.Context, svc models.Service) (string, error)
	UpdateService(ctx context.Context, svc models.Service) error
	DeleteService(ctx context.Context, id string) error

	ListAddOns(ctx context.Context, serviceID string) ([]models.AddOn, error)
	GetAddOnsByIDs(ctx context.Context, ids []string) ([]models.AddOn, error)
	CreateAddOn(ctx context.Context, addOn models.AddOn) (string, error)
	DeleteAddOn(ctx context.Context, id string) error
}

type mongoCatalogRepo struct {
	services *mongo.Collection
	addOns   *mongo.Collection
}

// NewMongoCatalogRepo returns a new CatalogRepository instance using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	return &mongoCatalogRepo{
		services: database.Collection("services"),
		addOns:   database.Collection("add_ons"),
	}
}
