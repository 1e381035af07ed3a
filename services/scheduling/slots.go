package scheduling

import (
	"fmt"
	"time"

	"shineops/models"
)

// DefaultIntervalMinutes is the slot step used when none is configured.
const DefaultIntervalMinutes = 60

const (
	clockLayout = "15:04"
	dateLayout  = "2006-01-02"
)

// clockToMinutes parses an "HH:MM" time-of-day into minutes from midnight.
func clockToMinutes(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// minutesToClock formats minutes from midnight as "HH:MM".
func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// GenerateSlotStarts steps from open to close in fixed increments. A slot is
// only offered if the whole increment fits before closing, so the final slot
// always starts strictly before closeTime.
func GenerateSlotStarts(openTime, closeTime string, intervalMinutes int) ([]string, error) {
	if intervalMinutes <= 0 {
		intervalMinutes = DefaultIntervalMinutes
	}
	open, err := clockToMinutes(openTime)
	if err != nil {
		return nil, err
	}
	close, err := clockToMinutes(closeTime)
	if err != nil {
		return nil, err
	}

	starts := make([]string, 0)
	for cur := open; cur < close && cur+intervalMinutes <= close; cur += intervalMinutes {
		starts = append(starts, minutesToClock(cur))
	}
	return starts, nil
}

// MarkAvailability annotates slot starts against existing bookings. A slot is
// unavailable only when its start exactly matches a non-cancelled booking's
// start time. A longer booking that merely overlaps a later slot's start is
// not detected; that matches the dashboard's observed behavior and is left
// as-is on purpose.
func MarkAvailability(starts []string, bookings []models.Booking) []models.Slot {
	taken := make(map[string]bool, len(bookings))
	for i := range bookings {
		if !bookings[i].IsActive() {
			continue
		}
		taken[normalizeClock(bookings[i].BookingTime)] = true
	}

	slots := make([]models.Slot, len(starts))
	for i, start := range starts {
		slots[i] = models.Slot{
			Time:      start,
			Available: !taken[start],
		}
	}
	return slots
}

// normalizeClock re-renders a clock string so "9:00" and "09:00" compare equal.
// Unparseable values pass through unchanged.
func normalizeClock(s string) string {
	m, err := clockToMinutes(s)
	if err != nil {
		return s
	}
	return minutesToClock(m)
}

// dateInPast compares calendar days only; wall-clock time is deliberately
// ignored so a late-evening lookup does not hide today's date across
// timezone skew.
func dateInPast(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
