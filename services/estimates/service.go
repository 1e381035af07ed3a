package estimates

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "shineops/database/repository/booking"
	estimateRepo "shineops/database/repository/estimate"
	"shineops/models"
	"shineops/services/notification"
	"shineops/services/pricing"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ErrNotConvertible is returned when an estimate cannot become a booking:
// it is not accepted, already converted, or past its valid-until date.
var ErrNotConvertible = errors.New("estimate cannot be converted")

// EstimateService manages quoted job proposals and their one-way conversion
// into bookings.
type EstimateService interface {
	Create(ctx context.Context, est models.Estimate) (*models.Estimate, error)
	Get(ctx context.Context, id string) (*models.Estimate, error)
	List(ctx context.Context) ([]models.Estimate, error)
	Update(ctx context.Context, est models.Estimate) (*models.Estimate, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status models.EstimateStatus) (*models.Estimate, error)

	// ConvertToBooking turns an accepted estimate into exactly one booking
	// scheduled at the given date and time. The action is not transactional:
	// the booking write happens first, and the estimate is only marked
	// converted after that write succeeds. A failed booking write leaves the
	// estimate untouched.
	ConvertToBooking(ctx context.Context, id, date, timeOfDay string, durationMinutes int) (*models.Booking, error)
}

// DefaultEstimateService implements EstimateService.
type DefaultEstimateService struct {
	Repo       estimateRepo.EstimateRepository
	Bookings   bookingRepo.BookingRepository
	Dispatcher notification.Dispatcher
	Now        func() time.Time // injectable for tests; defaults to time.Now
}

func (s *DefaultEstimateService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create inserts a new estimate with derived totals.
func (s *DefaultEstimateService) Create(ctx context.Context, est models.Estimate) (*models.Estimate, error) {
	if est.CustomerName == "" {
		return nil, fmt.Errorf("customer name is required")
	}
	if est.Status == "" {
		est.Status = models.EstimateDraft
	}
	if !models.ValidEstimateStatus(est.Status) {
		return nil, fmt.Errorf("unknown estimate status %q", est.Status)
	}
	applyTotals(&est)

	id, err := s.Repo.Create(ctx, est)
	if err != nil {
		return nil, err
	}
	est.ID = id
	return &est, nil
}

func (s *DefaultEstimateService) Get(ctx context.Context, id string) (*models.Estimate, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultEstimateService) List(ctx context.Context) ([]models.Estimate, error) {
	return s.Repo.List(ctx)
}

// Update replaces an estimate's editable fields, recomputing totals. The
// conversion marker is preserved from the stored record.
func (s *DefaultEstimateService) Update(ctx context.Context, est models.Estimate) (*models.Estimate, error) {
	stored, err := s.Repo.GetByID(ctx, est.ID)
	if err != nil {
		return nil, err
	}
	if !models.ValidEstimateStatus(est.Status) {
		return nil, fmt.Errorf("unknown estimate status %q", est.Status)
	}
	est.ConvertedBookingID = stored.ConvertedBookingID
	est.CreatedAt = stored.CreatedAt
	applyTotals(&est)

	if err := s.Repo.Update(ctx, est); err != nil {
		return nil, err
	}
	return &est, nil
}

func (s *DefaultEstimateService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

// UpdateStatus writes a new lifecycle status. Sending an estimate enqueues a
// notification dispatch for the customer.
func (s *DefaultEstimateService) UpdateStatus(ctx context.Context, id string, status models.EstimateStatus) (*models.Estimate, error) {
	if !models.ValidEstimateStatus(status) {
		return nil, fmt.Errorf("unknown estimate status %q", status)
	}
	est, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	est.Status = status
	if err := s.Repo.Update(ctx, *est); err != nil {
		return nil, err
	}

	if status == models.EstimateSent && s.Dispatcher != nil && est.CustomerEmail != "" {
		payload := models.DispatchPayload{
			Kind:      "estimate_sent",
			Recipient: est.CustomerEmail,
			Subject:   fmt.Sprintf("Your estimate from %s", est.CustomerName),
			Data:      map[string]string{"estimateId": est.ID},
		}
		if err := s.Dispatcher.Enqueue(ctx, payload); err != nil {
			zap.L().Warn("Failed to enqueue estimate notification",
				zap.String("estimateId", est.ID), zap.Error(err))
		}
	}
	return est, nil
}

// ConvertToBooking converts an accepted estimate into a booking.
func (s *DefaultEstimateService) ConvertToBooking(ctx context.Context, id, date, timeOfDay string, durationMinutes int) (*models.Booking, error) {
	est, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if est.Status != models.EstimateAccepted {
		return nil, fmt.Errorf("%w: status is %q, want %q", ErrNotConvertible, est.Status, models.EstimateAccepted)
	}
	if est.ConvertedBookingID != "" {
		return nil, fmt.Errorf("%w: already converted to booking %s", ErrNotConvertible, est.ConvertedBookingID)
	}
	if est.ValidUntil != "" {
		validUntil, err := time.Parse(dateLayout, est.ValidUntil)
		if err == nil && s.now().After(validUntil.AddDate(0, 0, 1)) {
			return nil, fmt.Errorf("%w: expired on %s", ErrNotConvertible, est.ValidUntil)
		}
	}
	if date == "" || timeOfDay == "" {
		return nil, fmt.Errorf("%w: a date and time are required", ErrNotConvertible)
	}
	if durationMinutes <= 0 {
		durationMinutes = 60
	}

	title := "Estimate"
	if len(est.LineItems) > 0 {
		title = est.LineItems[0].Title
	}

	booking := models.Booking{
		CustomerName:    est.CustomerName,
		CustomerEmail:   est.CustomerEmail,
		ServiceTitle:    title,
		ServicePrice:    est.Total,
		BookingDate:     date,
		BookingTime:     timeOfDay,
		DurationMinutes: durationMinutes,
		Status:          models.StatusConfirmed,
		Notes:           fmt.Sprintf("Converted from estimate %s", est.ID),
	}

	bookingID, err := s.Bookings.Create(ctx, booking)
	if err != nil {
		// Not transactional: the estimate stays exactly as it was.
		return nil, fmt.Errorf("failed to create booking from estimate %s: %w", est.ID, err)
	}
	booking.ID = bookingID

	est.ConvertedBookingID = bookingID
	if err := s.Repo.Update(ctx, *est); err != nil {
		// The booking exists; losing the marker is recoverable by hand and
		// preferable to deleting a customer's booking.
		zap.L().Error("Failed to mark estimate as converted",
			zap.String("estimateId", est.ID), zap.String("bookingId", bookingID), zap.Error(err))
	}

	return &booking, nil
}

// applyTotals recomputes the derived subtotal and total.
func applyTotals(est *models.Estimate) {
	if est.DiscountType == "" {
		est.DiscountType = models.DiscountFlat
	}
	totals := pricing.ComputeTotals(
		pricing.EstimateSubtotal(est.LineItems),
		est.DiscountAmount,
		est.DiscountType,
		est.TaxRate,
	)
	est.Subtotal = totals.Subtotal
	est.Total = totals.Total
}
