package jobs

import (
	"context"
	"fmt"

	bookingRepo "shineops/database/repository/booking"
	"shineops/models"
)

// JobService manages the lifecycle of confirmed reservations: manual status
// edits, kanban moves, checklists and operator CRUD. Status writes are plain
// last-write-wins updates with no version check, matching the existing
// dashboard contract; concurrent operator edits can overwrite one another.
type JobService interface {
	Create(ctx context.Context, booking models.Booking) (*models.Booking, error)
	Get(ctx context.Context, id string) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	ListByDate(ctx context.Context, date string) ([]models.Booking, error)
	Update(ctx context.Context, booking models.Booking) error
	Delete(ctx context.Context, id string) error

	// UpdateStatus accepts any target status. The board has no forward-only
	// restriction: completed back to pending is a legal move.
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	// MoveCard sets the status mapped to the target column.
	MoveCard(ctx context.Context, id string, column KanbanColumn) error
	// KanbanBoard returns all non-cancelled bookings grouped by column.
	KanbanBoard(ctx context.Context) (Board, error)

	// SetChecklist replaces a booking's checklist. Checklist completion is
	// informational only and never gates a status transition.
	SetChecklist(ctx context.Context, id string, checklist []models.ChecklistItem) error
	// ToggleChecklistItem flips the done flag of one checklist step.
	ToggleChecklistItem(ctx context.Context, id string, index int) (*models.Booking, error)
}

// DefaultJobService implements JobService.
type DefaultJobService struct {
	Repo bookingRepo.BookingRepository
}

// Create inserts an operator-created booking. It defaults to confirmed,
// since the operator scheduling a job directly is already confirmation.
func (s *DefaultJobService) Create(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	if booking.Status == "" {
		booking.Status = models.StatusConfirmed
	}
	if !models.ValidStatus(booking.Status) {
		return nil, fmt.Errorf("unknown booking status %q", booking.Status)
	}
	if booking.BookingDate == "" || booking.BookingTime == "" {
		return nil, fmt.Errorf("booking date and time are required")
	}

	id, err := s.Repo.Create(ctx, booking)
	if err != nil {
		return nil, err
	}
	booking.ID = id
	return &booking, nil
}

func (s *DefaultJobService) Get(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultJobService) List(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.List(ctx)
}

func (s *DefaultJobService) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return s.Repo.ListByDate(ctx, date)
}

func (s *DefaultJobService) Update(ctx context.Context, booking models.Booking) error {
	if !models.ValidStatus(booking.Status) {
		return fmt.Errorf("unknown booking status %q", booking.Status)
	}
	return s.Repo.Update(ctx, booking)
}

func (s *DefaultJobService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// UpdateStatus writes the target status directly. Any non-empty known status
// is accepted from any current status.
func (s *DefaultJobService) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	if !models.ValidStatus(status) {
		return fmt.Errorf("unknown booking status %q", status)
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

// MoveCard is a status write keyed by column. Completion is never gated on
// the checklist.
func (s *DefaultJobService) MoveCard(ctx context.Context, id string, column KanbanColumn) error {
	status, err := StatusForColumn(column)
	if err != nil {
		return err
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

// KanbanBoard loads every booking and groups the non-cancelled ones.
func (s *DefaultJobService) KanbanBoard(ctx context.Context) (Board, error) {
	bookings, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildBoard(bookings), nil
}

// SetChecklist replaces the booking's checklist wholesale.
func (s *DefaultJobService) SetChecklist(ctx context.Context, id string, checklist []models.ChecklistItem) error {
	return s.Repo.UpdateChecklist(ctx, id, checklist)
}

// ToggleChecklistItem flips one step's done flag and returns the updated
// booking.
func (s *DefaultJobService) ToggleChecklistItem(ctx context.Context, id string, index int) (*models.Booking, error) {
	booking, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(booking.Checklist) {
		return nil, fmt.Errorf("checklist index %d out of range", index)
	}
	booking.Checklist[index].Done = !booking.Checklist[index].Done

	if err := s.Repo.UpdateChecklist(ctx, id, booking.Checklist); err != nil {
		return nil, err
	}
	return booking, nil
}
