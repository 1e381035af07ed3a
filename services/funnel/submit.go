package funnel

import (
	"context"
	"fmt"

	"shineops/models"
	"shineops/services/scheduling"

	"go.uber.org/zap"
)

// Checkout converts the session's aggregated selections into exactly one
// booking. Validation failures and slot conflicts leave the session intact;
// so does a failed booking write, so the customer can retry without
// re-entering anything. Only a successful write consumes the session.
func (s *DefaultFunnelService) Checkout(ctx context.Context, sessionID string, customer models.CustomerDetails) (*models.Booking, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := validateForCheckout(sess, customer); err != nil {
		return nil, err
	}

	// Re-check the slot between offer and submission. There is no hold
	// mechanism, so a concurrent customer may have taken it since it was
	// offered; the loser lands here.
	slots, err := s.Engine.SlotsForDate(ctx, sess.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to verify slot availability: %w", err)
	}
	if !scheduling.SlotAvailable(slots, sess.Time) {
		return nil, ErrSlotTaken
	}

	quote, err := s.Quote(ctx, sess)
	if err != nil {
		return nil, err
	}

	duration := sess.Service.DurationMinutes
	if duration <= 0 {
		duration = scheduling.DefaultIntervalMinutes
	}

	booking := models.Booking{
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerPhone:   customer.Phone,
		ServiceTitle:    sess.Service.Title,
		ServicePrice:    quote.Total,
		Vehicles:        sess.Vehicles,
		BookingDate:     sess.Date,
		BookingTime:     sess.Time,
		DurationMinutes: duration,
		Status:          models.StatusPending,
		Notes:           customer.Notes,
	}

	id, err := s.Bookings.Create(ctx, booking)
	if err != nil {
		// Write failed loud; the session survives for a retry.
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}
	booking.ID = id

	// The session is consumed only after the booking write landed.
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		zap.L().Warn("Failed to discard funnel session after checkout",
			zap.String("sessionId", sessionID), zap.Error(err))
	}

	if s.Dispatcher != nil {
		payload := models.DispatchPayload{
			Kind:      "booking_confirmation",
			Recipient: customer.Email,
			Subject:   fmt.Sprintf("Booking confirmed: %s on %s at %s", sess.Service.Title, sess.Date, sess.Time),
			Data: map[string]string{
				"bookingId": booking.ID,
				"date":      sess.Date,
				"time":      sess.Time,
			},
		}
		if err := s.Dispatcher.Enqueue(ctx, payload); err != nil {
			// Delivery is an external concern; a queue hiccup must not
			// unwind an already-created booking.
			zap.L().Warn("Failed to enqueue booking confirmation",
				zap.String("bookingId", booking.ID), zap.Error(err))
		}
	}

	return &booking, nil
}

// validateForCheckout checks that every required selection of every step is
// present before any store call is made.
func validateForCheckout(sess *models.FunnelSession, customer models.CustomerDetails) error {
	if sess.Service.ID == "" {
		return NewValidationError("service", "no service selected")
	}
	if len(sess.Vehicles) == 0 {
		return NewValidationError("vehicle", "at least one vehicle is required")
	}
	if !stepComplete(sess, models.StepOptions) {
		return NewValidationError("options", "required options are missing")
	}
	if sess.Date == "" {
		return NewValidationError("date", "no date selected")
	}
	if sess.Time == "" {
		return NewValidationError("time", "no time selected")
	}
	if customer.Name == "" {
		return NewValidationError("customer", "name is required")
	}
	if customer.Email == "" && customer.Phone == "" {
		return NewValidationError("customer", "an email or phone number is required")
	}
	return nil
}
