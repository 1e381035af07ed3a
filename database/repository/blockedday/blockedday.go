package blockedDayRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shineops/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List retrieves all blocked days, ordered by date.
func (r *mongoBlockedDayRepo) List(ctx context.Context) ([]models.BlockedDay, error) {
	opts := options.Find().SetSort(bson.M{"date": 1})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocked days: %w", err)
	}
	defer cursor.Close(ctx)

	var days []models.BlockedDay
	if err := cursor.All(ctx, &days); err != nil {
		return nil, fmt.Errorf("failed to decode blocked days: %w", err)
	}
	return days, nil
}

// IsBlocked reports whether the given date has a blocked-day entry.
func (r *mongoBlockedDayRepo) IsBlocked(ctx context.Context, date string) (bool, error) {
	err := r.coll.FindOne(ctx, bson.M{"date": date}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check blocked day %s: %w", date, err)
	}
	return true, nil
}

// Toggle flips the blocked state of a date. Uniqueness per date is preserved
// by deleting all entries for the date before deciding to insert.
func (r *mongoBlockedDayRepo) Toggle(ctx context.Context, date, reason string) (bool, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"date": date})
	if err != nil {
		return false, fmt.Errorf("failed to toggle blocked day %s: %w", date, err)
	}
	if res.DeletedCount > 0 {
		// Was blocked, now unblocked.
		return false, nil
	}

	day := models.BlockedDay{
		Date:      date,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	if _, err := r.coll.InsertOne(ctx, day); err != nil {
		return false, fmt.Errorf("failed to insert blocked day %s: %w", date, err)
	}
	return true, nil
}
