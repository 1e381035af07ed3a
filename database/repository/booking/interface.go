package bookingRepo

import (
	"context"

	"shineops/database"
	"shineops/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository defines access to the bookings collection. The public
// funnel and the operator views share this single surface; both observe the
// same records and invariants.
type BookingRepository interface {
	// Create inserts a new booking and returns its ID.
	Create(ctx context.Context, booking models.Booking) (string, error)
	// GetByID retrieves a booking by its ID. Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Update replaces a booking record.
	Update(ctx context.Context, booking models.Booking) error
	// UpdateStatus writes only the status field (last write wins).
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	// UpdateChecklist writes only the checklist.
	UpdateChecklist(ctx context.Context, id string, checklist []models.ChecklistItem) error
	// Delete hard-removes a booking. Operator action only.
	Delete(ctx context.Context, id string) error
	// ListByDate retrieves bookings on a "YYYY-MM-DD" date.
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	// ListByDateRange retrieves bookings with from <= bookingDate < to.
	ListByDateRange(ctx context.Context, from, to string) ([]models.Booking, error)
	// ListByStatus retrieves bookings with the given status.
	ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	// List retrieves all bookings, newest first.
	List(ctx context.Context) ([]models.Booking, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo returns a new BookingRepository instance using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.Collection("bookings"),
	}
}
