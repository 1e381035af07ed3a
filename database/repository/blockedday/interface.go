package blockedDayRepo

import (
	"context"

	"shineops/database"
	"shineops/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BlockedDayRepository defines access to operator-declared exclusion dates.
type BlockedDayRepository interface {
	// List retrieves all blocked days, ordered by date.
	List(ctx context.Context) ([]models.BlockedDay, error)
	// IsBlocked reports whether the given "YYYY-MM-DD" date is blocked.
	IsBlocked(ctx context.Context, date string) (bool, error)
	// Toggle flips the blocked state of a date: present means removed,
	// absent means created. It returns the resulting state (true = now
	// blocked) so repeated toggles stay idempotent pair-wise.
	Toggle(ctx context.Context, date, reason string) (bool, error)
}

type mongoBlockedDayRepo struct {
	coll *mongo.Collection
}

// NewMongoBlockedDayRepo returns a new BlockedDayRepository instance using MongoDB.
func NewMongoBlockedDayRepo() BlockedDayRepository {
	return &mongoBlockedDayRepo{
		coll: database.Collection("blocked_days"),
	}
}
