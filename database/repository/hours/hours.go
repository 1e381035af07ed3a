package hoursRepo

import (
	"context"
	"errors"
	"fmt"

	"shineops/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no hours row exists for the requested weekday.
var ErrNotFound = errors.New("business hours not found")

// GetAll retrieves every weekday row, ordered by weekday.
func (r *mongoHoursRepo) GetAll(ctx context.Context) ([]models.BusinessHours, error) {
	opts := options.Find().SetSort(bson.M{"weekday": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch business hours: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []models.BusinessHours
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode business hours: %w", err)
	}
	return rows, nil
}

// GetByWeekday retrieves the row for one weekday.
func (r *mongoHoursRepo) GetByWeekday(ctx context.Context, weekday int) (*models.BusinessHours, error) {
	var row models.BusinessHours
	err := r.coll.FindOne(ctx, bson.M{"weekday": weekday}).Decode(&row)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch business hours for weekday %d: %w", weekday, err)
	}
	return &row, nil
}

// Upsert replaces the row for each given weekday, creating it if absent. At
// most one row per weekday is preserved by keying the replace on the weekday.
func (r *mongoHoursRepo) Upsert(ctx context.Context, rows []models.BusinessHours) error {
	opts := options.Replace().SetUpsert(true)
	for _, row := range rows {
		if row.Weekday < 0 || row.Weekday > 6 {
			return fmt.Errorf("invalid weekday %d", row.Weekday)
		}
		if _, err := r.coll.ReplaceOne(ctx, bson.M{"weekday": row.Weekday}, row, opts); err != nil {
			return fmt.Errorf("failed to upsert business hours for weekday %d: %w", row.Weekday, err)
		}
	}
	return nil
}
