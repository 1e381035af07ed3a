package scheduling

import (
	"context"
	"testing"
	"time"

	hoursRepo "shineops/database/repository/hours"
	"shineops/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHoursRepo struct {
	rows map[int]models.BusinessHours
}

func (f *fakeHoursRepo) GetAll(ctx context.Context) ([]models.BusinessHours, error) {
	out := make([]models.BusinessHours, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeHoursRepo) GetByWeekday(ctx context.Context, weekday int) (*models.BusinessHours, error) {
	row, ok := f.rows[weekday]
	if !ok {
		return nil, hoursRepo.ErrNotFound
	}
	return &row, nil
}

func (f *fakeHoursRepo) Upsert(ctx context.Context, rows []models.BusinessHours) error {
	for _, row := range rows {
		f.rows[row.Weekday] = row
	}
	return nil
}

type fakeBlockedDayRepo struct {
	blocked map[string]string // date -> reason
}

func (f *fakeBlockedDayRepo) List(ctx context.Context) ([]models.BlockedDay, error) {
	out := make([]models.BlockedDay, 0, len(f.blocked))
	for date, reason := range f.blocked {
		out = append(out, models.BlockedDay{Date: date, Reason: reason})
	}
	return out, nil
}

func (f *fakeBlockedDayRepo) IsBlocked(ctx context.Context, date string) (bool, error) {
	_, ok := f.blocked[date]
	return ok, nil
}

func (f *fakeBlockedDayRepo) Toggle(ctx context.Context, date, reason string) (bool, error) {
	if _, ok := f.blocked[date]; ok {
		delete(f.blocked, date)
		return false, nil
	}
	f.blocked[date] = reason
	return true, nil
}

type fakeBookingRepo struct {
	bookings []models.Booking
}

func (f *fakeBookingRepo) Create(ctx context.Context, b models.Booking) (string, error) {
	f.bookings = append(f.bookings, b)
	return b.ID, nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			return &f.bookings[i], nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) Update(ctx context.Context, b models.Booking) error { return nil }
func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	return nil
}
func (f *fakeBookingRepo) UpdateChecklist(ctx context.Context, id string, checklist []models.ChecklistItem) error {
	return nil
}
func (f *fakeBookingRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.BookingDate == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.BookingDate >= from && b.BookingDate < to {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) List(ctx context.Context) ([]models.Booking, error) {
	return f.bookings, nil
}

func newTestEngine() (*DefaultAvailabilityEngine, *fakeHoursRepo, *fakeBlockedDayRepo, *fakeBookingRepo) {
	hours := &fakeHoursRepo{rows: map[int]models.BusinessHours{}}
	blocked := &fakeBlockedDayRepo{blocked: map[string]string{}}
	bookings := &fakeBookingRepo{}
	engine := &DefaultAvailabilityEngine{
		Hours:           hours,
		BlockedDays:     blocked,
		Bookings:        bookings,
		IntervalMinutes: 60,
		Now: func() time.Time {
			return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		},
	}
	return engine, hours, blocked, bookings
}

// 2026-03-09 is a Monday.
const testMonday = "2026-03-09"

func TestSlotsForDateFullDay(t *testing.T) {
	engine, hours, _, bookings := newTestEngine()
	hours.rows[1] = models.BusinessHours{Weekday: 1, OpenTime: "09:00", CloseTime: "17:00"}
	bookings.bookings = []models.Booking{
		{BookingDate: testMonday, BookingTime: "10:00", Status: models.StatusConfirmed},
	}

	slots, err := engine.SlotsForDate(context.Background(), testMonday)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	for i, slot := range slots {
		if slot.Time == "10:00" {
			assert.False(t, slot.Available, "slot %d should be taken", i)
		} else {
			assert.True(t, slot.Available, "slot %d should be free", i)
		}
	}
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "16:00", slots[7].Time)
}

func TestSlotsForDateEmptyCases(t *testing.T) {
	tests := []struct {
		name  string
		setup func(hours *fakeHoursRepo, blocked *fakeBlockedDayRepo)
		date  string
	}{
		{
			name:  "no hours row for the weekday",
			setup: func(hours *fakeHoursRepo, blocked *fakeBlockedDayRepo) {},
			date:  testMonday,
		},
		{
			name: "weekday marked closed",
			setup: func(hours *fakeHoursRepo, blocked *fakeBlockedDayRepo) {
				hours.rows[1] = models.BusinessHours{Weekday: 1, IsClosed: true, OpenTime: "09:00", CloseTime: "17:00"}
			},
			date: testMonday,
		},
		{
			name: "blocked day supersedes open hours",
			setup: func(hours *fakeHoursRepo, blocked *fakeBlockedDayRepo) {
				hours.rows[1] = models.BusinessHours{Weekday: 1, OpenTime: "09:00", CloseTime: "17:00"}
				blocked.blocked[testMonday] = "holiday"
			},
			date: testMonday,
		},
		{
			name: "past date",
			setup: func(hours *fakeHoursRepo, blocked *fakeBlockedDayRepo) {
				hours.rows[5] = models.BusinessHours{Weekday: 5, OpenTime: "09:00", CloseTime: "17:00"}
			},
			date: "2026-02-27", // a Friday before the fixed test clock
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, hours, blocked, _ := newTestEngine()
			tt.setup(hours, blocked)

			slots, err := engine.SlotsForDate(context.Background(), tt.date)
			require.NoError(t, err)
			assert.Empty(t, slots)
			assert.NotNil(t, slots, "empty list, not null, so clients can range over it")
		})
	}
}

func TestSlotsForDateTodayIsBookable(t *testing.T) {
	engine, hours, _, _ := newTestEngine()
	// The fixed clock is 2026-03-01 12:00, a Sunday.
	hours.rows[0] = models.BusinessHours{Weekday: 0, OpenTime: "10:00", CloseTime: "14:00"}

	slots, err := engine.SlotsForDate(context.Background(), "2026-03-01")
	require.NoError(t, err)
	assert.Len(t, slots, 4)
}

func TestSlotsForDateInvalidDate(t *testing.T) {
	engine, _, _, _ := newTestEngine()
	for _, date := range []string{"03/09/2026", "2026-3-9", "tomorrow", ""} {
		_, err := engine.SlotsForDate(context.Background(), date)
		assert.ErrorIs(t, err, ErrInvalidDate, "date %q", date)
	}
}

func TestSlotsForDateMalformedHoursRowFailsSoft(t *testing.T) {
	engine, hours, _, _ := newTestEngine()
	hours.rows[1] = models.BusinessHours{Weekday: 1, OpenTime: "whenever", CloseTime: "17:00"}

	slots, err := engine.SlotsForDate(context.Background(), testMonday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestBlockedDayToggleRoundTrip(t *testing.T) {
	_, _, blocked, _ := newTestEngine()

	nowBlocked, err := blocked.Toggle(context.Background(), testMonday, "maintenance")
	require.NoError(t, err)
	assert.True(t, nowBlocked)

	nowBlocked, err = blocked.Toggle(context.Background(), testMonday, "")
	require.NoError(t, err)
	assert.False(t, nowBlocked)

	isBlocked, err := blocked.IsBlocked(context.Background(), testMonday)
	require.NoError(t, err)
	assert.False(t, isBlocked)
}
