package estimateRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shineops/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when an estimate does not exist.
var ErrNotFound = errors.New("estimate not found")

// Create inserts a new estimate and returns its ID.
func (r *mongoEstimateRepo) Create(ctx context.Context, est models.Estimate) (string, error) {
	if est.ID == "" {
		est.ID = uuid.New().String()
	}
	est.CreatedAt = time.Now()
	est.UpdatedAt = est.CreatedAt

	if _, err := r.coll.InsertOne(ctx, est); err != nil {
		return "", fmt.Errorf("failed to insert estimate: %w", err)
	}
	return est.ID, nil
}

// GetByID retrieves an estimate by its ID.
func (r *mongoEstimateRepo) GetByID(ctx context.Context, id string) (*models.Estimate, error) {
	var est models.Estimate
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&est)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch estimate %s: %w", id, err)
	}
	return &est, nil
}

// Update replaces an estimate record.
func (r *mongoEstimateRepo) Update(ctx context.Context, est models.Estimate) error {
	est.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": est.ID}, est)
	if err != nil {
		return fmt.Errorf("failed to update estimate %s: %w", est.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an estimate.
func (r *mongoEstimateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete estimate %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// List retrieves all estimates, newest first.
func (r *mongoEstimateRepo) List(ctx context.Context) ([]models.Estimate, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch estimates: %w", err)
	}
	defer cursor.Close(ctx)

	var estimates []models.Estimate
	if err := cursor.All(ctx, &estimates); err != nil {
		return nil, fmt.Errorf("failed to decode estimates: %w", err)
	}
	return estimates, nil
}
