package hoursRepo

import (
	"context"

	"shineops/database"
	"shineops/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// HoursRepository defines access to the per-weekday business hours rows.
type HoursRepository interface {
	// GetAll retrieves every weekday row, ordered by weekday.
	GetAll(ctx context.Context) ([]models.BusinessHours, error)
	// GetByWeekday retrieves the row for one weekday (0=Sunday). Returns
	// ErrNotFound when no row exists.
	GetByWeekday(ctx context.Context, weekday int) (*models.BusinessHours, error)
	// Upsert replaces the row for each given weekday, creating it if absent.
	Upsert(ctx context.Context, rows []models.BusinessHours) error
}

type mongoHoursRepo struct {
	coll *mongo.Collection
}

// NewMongoHoursRepo returns a new HoursRepository instance using MongoDB.
func NewMongoHoursRepo() HoursRepository {
	return &mongoHoursRepo{
		coll: database.Collection("business_hours"),
	}
}
