package catalogRepo

import (
	"context"
	"errors"
	"fmt"

	"shineops/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a catalogue record does not exist.
var ErrNotFound = errors.New("catalog record not found")

// ListServices retrieves the whole service catalogue, popular first.
func (r *mongoCatalogRepo) ListServices(ctx context.Context) ([]models.Service, error) {
	opts := options.Find().SetSort(bson.D{{Key: "popular", Value: -1}, {Key: "title", Value: 1}})
	cursor, err := r.services.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// GetServiceByID retrieves one service with its option groups.
func (r *mongoCatalogRepo) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&svc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &svc, nil
}

// CreateService inserts a new service and returns its ID.
func (r *mongoCatalogRepo) CreateService(ctx context.Context, svc models.Service) (string, error) {
	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	if _, err := r.services.InsertOne(ctx, svc); err != nil {
		return "", fmt.Errorf("failed to insert service: %w", err)
	}
	return svc.ID, nil
}

// UpdateService replaces a service record.
func (r *mongoCatalogRepo) UpdateService(ctx context.Context, svc models.Service) error {
	res, err := r.services.ReplaceOne(ctx, bson.M{"id": svc.ID}, svc)
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", svc.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteService removes a service and its scoped add-ons.
func (r *mongoCatalogRepo) DeleteService(ctx context.Context, id string) error {
	res, err := r.services.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	if _, err := r.addOns.DeleteMany(ctx, bson.M{"service_id": id}); err != nil {
		return fmt.Errorf("failed to delete add-ons for service %s: %w", id, err)
	}
	return nil
}

// ListAddOns retrieves the add-ons scoped to one service.
func (r *mongoCatalogRepo) ListAddOns(ctx context.Context, serviceID string) ([]models.AddOn, error) {
	opts := options.Find().SetSort(bson.M{"title": 1})
	cursor, err := r.addOns.Find(ctx, bson.M{"service_id": serviceID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch add-ons for service %s: %w", serviceID, err)
	}
	defer cursor.Close(ctx)

	var addOns []models.AddOn
	if err := cursor.All(ctx, &addOns); err != nil {
		return nil, fmt.Errorf("failed to decode add-ons: %w", err)
	}
	return addOns, nil
}

// GetAddOnsByIDs retrieves a set of add-ons by ID.
func (r *mongoCatalogRepo) GetAddOnsByIDs(ctx context.Context, ids []string) ([]models.AddOn, error) {
	if len(ids) == 0 {
		return []models.AddOn{}, nil
	}
	cursor, err := r.addOns.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch add-ons: %w", err)
	}
	defer cursor.Close(ctx)

	var addOns []models.AddOn
	if err := cursor.All(ctx, &addOns); err != nil {
		return nil, fmt.Errorf("failed to decode add-ons: %w", err)
	}
	return addOns, nil
}

// CreateAddOn inserts a new add-on and returns its ID.
func (r *mongoCatalogRepo) CreateAddOn(ctx context.Context, addOn models.AddOn) (string, error) {
	if addOn.ID == "" {
		addOn.ID = uuid.New().String()
	}
	if _, err := r.addOns.InsertOne(ctx, addOn); err != nil {
		return "", fmt.Errorf("failed to insert add-on: %w", err)
	}
	return addOn.ID, nil
}

// DeleteAddOn removes one add-on.
func (r *mongoCatalogRepo) DeleteAddOn(ctx context.Context, id string) error {
	res, err := r.addOns.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete add-on %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
