// Package analytics derives comparative metrics over a reporting window
// versus the immediately preceding window of equal length.
package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "shineops/database/repository/booking"
	"shineops/models"
	"shineops/services/pricing"
)

const dateLayout = "2006-01-02"

// ErrInvalidWindow is returned for malformed or empty reporting windows.
var ErrInvalidWindow = errors.New("invalid reporting window")

// AnalyticsService computes period-over-period booking metrics.
type AnalyticsService interface {
	// Summary reports revenue, completed-job count and average ticket over
	// [start, end), alongside the same metrics for the preceding window.
	Summary(ctx context.Context, start, end string) (*models.PeriodSummary, error)
}

// DefaultAnalyticsService implements AnalyticsService over the booking store.
type DefaultAnalyticsService struct {
	Repo bookingRepo.BookingRepository
}

// Summary computes the comparison for a [start, end) window.
func (s *DefaultAnalyticsService) Summary(ctx context.Context, start, end string) (*models.PeriodSummary, error) {
	startDay, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	endDay, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, ErrInvalidWindow
	}
	if !endDay.After(startDay) {
		return nil, ErrInvalidWindow
	}

	// The previous window ends where the current one starts and has the
	// same length, so every day is counted in exactly one window.
	windowDays := int(endDay.Sub(startDay).Hours() / 24)
	prevStart := startDay.AddDate(0, 0, -windowDays)

	current, err := s.metricsFor(ctx, start, end)
	if err != nil {
		return nil, err
	}
	previous, err := s.metricsFor(ctx, prevStart.Format(dateLayout), start)
	if err != nil {
		return nil, err
	}

	return &models.PeriodSummary{
		Start:           start,
		End:             end,
		Current:         current,
		Previous:        previous,
		RevenueChange:   models.MetricChange{Pct: PctChange(current.Revenue, previous.Revenue)},
		CompletedChange: models.MetricChange{Pct: PctChange(float64(current.CompletedCount), float64(previous.CompletedCount))},
		TicketChange:    models.MetricChange{Pct: PctChange(current.AverageTicket, previous.AverageTicket)},
	}, nil
}

func (s *DefaultAnalyticsService) metricsFor(ctx context.Context, from, to string) (models.PeriodMetrics, error) {
	bookings, err := s.Repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return models.PeriodMetrics{}, fmt.Errorf("failed to fetch bookings for window [%s, %s): %w", from, to, err)
	}
	return ComputeMetrics(bookings), nil
}

// ComputeMetrics folds a window's bookings into its raw metrics. Revenue
// counts every booking dated in the window regardless of status; the
// completed count and average ticket consider completed jobs only.
func ComputeMetrics(bookings []models.Booking) models.PeriodMetrics {
	var m models.PeriodMetrics
	var completedRevenue float64

	for i := range bookings {
		m.Revenue += bookings[i].ServicePrice
		if bookings[i].Status == models.StatusCompleted {
			m.CompletedCount++
			completedRevenue += bookings[i].ServicePrice
		}
	}
	if m.CompletedCount > 0 {
		m.AverageTicket = pricing.Round2(completedRevenue / float64(m.CompletedCount))
	}
	m.Revenue = pricing.Round2(m.Revenue)
	return m
}

// PctChange returns the period-over-period change in percent. When both
// values are zero there is no data to compare and nil is returned, which is
// distinct from a 0% change. When only the previous value is zero the change
// reports +100%.
func PctChange(current, previous float64) *float64 {
	if current == 0 && previous == 0 {
		return nil
	}
	var pct float64
	if previous == 0 {
		pct = 100
	} else {
		pct = pricing.Round2((current - previous) / previous * 100)
	}
	return &pct
}
