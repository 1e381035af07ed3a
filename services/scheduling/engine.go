package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	blockedDayRepo "shineops/database/repository/blockedday"
	bookingRepo "shineops/database/repository/booking"
	hoursRepo "shineops/database/repository/hours"
	"shineops/models"

	"go.uber.org/zap"
)

// ErrInvalidDate is returned for dates that are not "YYYY-MM-DD".
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// AvailabilityEngine derives the bookable slots for a calendar date.
type AvailabilityEngine interface {
	// SlotsForDate returns the ordered slot list for a "YYYY-MM-DD" date,
	// each annotated with availability. Past dates, blocked days and closed
	// weekdays all yield an empty list.
	SlotsForDate(ctx context.Context, date string) ([]models.Slot, error)
}

// DefaultAvailabilityEngine implements AvailabilityEngine over the hours,
// blocked-day and booking stores.
//
// The availability check is read-then-decide with no locking: two customers
// can be offered, and both submit, the same slot before either write lands.
// There is no slot-hold mechanism; the funnel's submit path re-checks and
// surfaces the loser's conflict.
type DefaultAvailabilityEngine struct {
	Hours           hoursRepo.HoursRepository
	BlockedDays     blockedDayRepo.BlockedDayRepository
	Bookings        bookingRepo.BookingRepository
	IntervalMinutes int
	Now             func() time.Time // injectable for tests; defaults to time.Now
}

func (e *DefaultAvailabilityEngine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// SlotsForDate derives the bookable slots for the given date.
func (e *DefaultAvailabilityEngine) SlotsForDate(ctx context.Context, date string) ([]models.Slot, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if dateInPast(day, e.now()) {
		return []models.Slot{}, nil
	}

	// A blocked day supersedes business hours entirely.
	blocked, err := e.BlockedDays.IsBlocked(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to check blocked days: %w", err)
	}
	if blocked {
		return []models.Slot{}, nil
	}

	hours, err := e.Hours.GetByWeekday(ctx, int(day.Weekday()))
	if err != nil {
		if errors.Is(err, hoursRepo.ErrNotFound) {
			// No row configured for this weekday means not bookable.
			return []models.Slot{}, nil
		}
		return nil, fmt.Errorf("failed to fetch business hours: %w", err)
	}
	if hours.IsClosed {
		return []models.Slot{}, nil
	}

	starts, err := GenerateSlotStarts(hours.OpenTime, hours.CloseTime, e.IntervalMinutes)
	if err != nil {
		zap.L().Warn("Malformed business hours row", zap.Int("weekday", hours.Weekday), zap.Error(err))
		return []models.Slot{}, nil
	}

	bookings, err := e.Bookings.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for %s: %w", date, err)
	}

	return MarkAvailability(starts, bookings), nil
}

// SlotAvailable reports whether a specific start time is currently offered
// and free on the given date.
func SlotAvailable(slots []models.Slot, start string) bool {
	start = normalizeClock(start)
	for _, s := range slots {
		if s.Time == start {
			return s.Available
		}
	}
	return false
}
