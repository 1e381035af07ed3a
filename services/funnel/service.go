package funnel

import (
	"context"
	"fmt"
	"time"

	bookingRepo "shineops/database/repository/booking"
	catalogRepo "shineops/database/repository/catalog"
	"shineops/models"
	"shineops/services/notification"
	"shineops/services/pricing"
	"shineops/services/scheduling"

	"github.com/google/uuid"
)

// FunnelService walks a customer through the multi-step booking funnel:
// service, vehicle, options, add-ons, date/time, checkout. Each step reads
// and writes the shared session; submission consumes it exactly once.
type FunnelService interface {
	Start(ctx context.Context, serviceID string) (*models.FunnelSession, error)
	Get(ctx context.Context, sessionID string) (*models.FunnelSession, error)
	SetVehicles(ctx context.Context, sessionID string, vehicles []models.Vehicle) (*models.FunnelSession, error)
	SetOptions(ctx context.Context, sessionID string, selections map[string]models.OptionSelection) (*models.FunnelSession, error)
	SetAddOns(ctx context.Context, sessionID string, addOnIDs []string) (*models.FunnelSession, error)
	SetSchedule(ctx context.Context, sessionID, date, timeOfDay string) (*models.FunnelSession, error)
	Quote(ctx context.Context, sess *models.FunnelSession) (pricing.Totals, error)
	Checkout(ctx context.Context, sessionID string, customer models.CustomerDetails) (*models.Booking, error)
	Abandon(ctx context.Context, sessionID string) error
}

// DefaultFunnelService implements FunnelService.
type DefaultFunnelService struct {
	Store      SessionStore
	Catalog    catalogRepo.CatalogRepository
	Bookings   bookingRepo.BookingRepository
	Engine     scheduling.AvailabilityEngine
	Dispatcher notification.Dispatcher
	TaxRate    float64 // percent applied to funnel totals
}

// Start opens a new session for the chosen service, capturing a pricing
// snapshot so later catalogue edits cannot change the quote mid-funnel.
func (s *DefaultFunnelService) Start(ctx context.Context, serviceID string) (*models.FunnelSession, error) {
	if serviceID == "" {
		return nil, NewValidationError("service", "no service selected")
	}

	svc, err := s.Catalog.GetServiceByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}

	sess := &models.FunnelSession{
		SessionID: uuid.New().String(),
		Service: models.ServiceSnapshot{
			ID:              svc.ID,
			Title:           svc.Title,
			BasePrice:       svc.BasePrice,
			DurationMinutes: svc.DurationMinutes,
			Category:        models.ClassifyService(svc.Title),
			OptionGroups:    svc.OptionGroups,
		},
		Options:   make(map[string]models.OptionSelection),
		CreatedAt: time.Now(),
	}

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get returns the current session state. Revisiting any step sees exactly
// the selections made before.
func (s *DefaultFunnelService) Get(ctx context.Context, sessionID string) (*models.FunnelSession, error) {
	return s.Store.Get(ctx, sessionID)
}

// SetVehicles records the customer's vehicles. An omitted class prices as
// sedan.
func (s *DefaultFunnelService) SetVehicles(ctx context.Context, sessionID string, vehicles []models.Vehicle) (*models.FunnelSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := guardStep(sess, models.StepVehicle); err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return nil, NewValidationError("vehicle", "at least one vehicle is required")
	}
	for i := range vehicles {
		if vehicles[i].Make == "" || vehicles[i].Model == "" {
			return nil, NewValidationError("vehicle", "make and model are required")
		}
		if vehicles[i].Class == "" {
			vehicles[i].Class = models.ClassSedan
		}
		if !models.ValidVehicleClass(vehicles[i].Class) {
			return nil, NewValidationError("vehicle", fmt.Sprintf("unknown vehicle class %q", vehicles[i].Class))
		}
	}

	sess.Vehicles = vehicles
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetOptions records the customer's option choices. For a service with zero
// option groups the step is a no-op and the session is returned unchanged,
// identical to the step having been skipped.
func (s *DefaultFunnelService) SetOptions(ctx context.Context, sessionID string, selections map[string]models.OptionSelection) (*models.FunnelSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := guardStep(sess, models.StepOptions); err != nil {
		return nil, err
	}
	if OptionsSkipped(sess) {
		return sess, nil
	}

	validated, err := validateSelections(sess.Service.OptionGroups, selections)
	if err != nil {
		return nil, err
	}

	sess.Options = validated
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetAddOns records selected add-ons, all of which must be scoped to the
// session's service.
func (s *DefaultFunnelService) SetAddOns(ctx context.Context, sessionID string, addOnIDs []string) (*models.FunnelSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := guardStep(sess, models.StepAddOns); err != nil {
		return nil, err
	}

	addOns, err := s.Catalog.GetAddOnsByIDs(ctx, addOnIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load add-ons: %w", err)
	}
	if len(addOns) != len(addOnIDs) {
		return nil, NewValidationError("addOns", "unknown add-on selected")
	}
	for _, a := range addOns {
		if a.ServiceID != sess.Service.ID {
			return nil, NewValidationError("addOns", fmt.Sprintf("add-on %q does not belong to the selected service", a.Title))
		}
	}

	sess.AddOnIDs = addOnIDs
	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// SetSchedule records the chosen date and time. Changing the date always
// clears a previously chosen time; a time may only be chosen from the
// date's currently available slots.
func (s *DefaultFunnelService) SetSchedule(ctx context.Context, sessionID, date, timeOfDay string) (*models.FunnelSession, error) {
	sess, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := guardStep(sess, models.StepSchedule); err != nil {
		return nil, err
	}
	if date == "" {
		return nil, NewValidationError("date", "no date selected")
	}

	if date != sess.Date {
		sess.Time = ""
	}
	sess.Date = date

	if timeOfDay != "" {
		slots, err := s.Engine.SlotsForDate(ctx, date)
		if err != nil {
			return nil, err
		}
		if len(slots) == 0 {
			return nil, NewValidationError("date", "no bookable times on this date")
		}
		if !scheduling.SlotAvailable(slots, timeOfDay) {
			return nil, ErrSlotTaken
		}
		sess.Time = timeOfDay
	}

	if err := s.Store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Quote computes the running total for the session's current selections.
func (s *DefaultFunnelService) Quote(ctx context.Context, sess *models.FunnelSession) (pricing.Totals, error) {
	addOns, err := s.Catalog.GetAddOnsByIDs(ctx, sess.AddOnIDs)
	if err != nil {
		return pricing.Totals{}, fmt.Errorf("failed to load add-ons: %w", err)
	}
	subtotal := pricing.FunnelSubtotal(sess.Service, sess.Vehicles, sess.Options, addOns)
	return pricing.ComputeTotals(subtotal, 0, models.DiscountFlat, s.TaxRate), nil
}

// Abandon discards the session. No bookings or holds exist before checkout,
// so there is nothing else to clean up.
func (s *DefaultFunnelService) Abandon(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}

// validateSelections checks option selections against their groups and
// returns the canonical selection map, with slider defaults filled in.
func validateSelections(groups []models.OptionGroup, selections map[string]models.OptionSelection) (map[string]models.OptionSelection, error) {
	byID := make(map[string]models.OptionGroup, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
	}
	for groupID := range selections {
		if _, ok := byID[groupID]; !ok {
			return nil, NewValidationError("options", fmt.Sprintf("unknown option group %q", groupID))
		}
	}

	validated := make(map[string]models.OptionSelection, len(groups))
	for _, group := range groups {
		sel, present := selections[group.ID]

		switch group.Type {
		case models.GroupSlider:
			if !present {
				// Sliders always carry a value; fall back to the default.
				validated[group.ID] = models.OptionSelection{SliderValue: group.Default}
				continue
			}
			if group.Max > group.Min && (sel.SliderValue < group.Min || sel.SliderValue > group.Max) {
				return nil, NewValidationError("options", fmt.Sprintf("%s must be between %v and %v", group.Title, group.Min, group.Max))
			}
			validated[group.ID] = models.OptionSelection{SliderValue: sel.SliderValue}

		case models.GroupRadio:
			if !present || len(sel.ItemIDs) == 0 {
				if group.Required {
					return nil, NewValidationError("options", fmt.Sprintf("%s is required", group.Title))
				}
				continue
			}
			if len(sel.ItemIDs) > 1 {
				return nil, NewValidationError("options", fmt.Sprintf("%s allows a single choice", group.Title))
			}
			if !groupHasItem(group, sel.ItemIDs[0]) {
				return nil, NewValidationError("options", fmt.Sprintf("unknown choice for %s", group.Title))
			}
			validated[group.ID] = models.OptionSelection{ItemIDs: sel.ItemIDs}

		case models.GroupCheckbox:
			if !present || len(sel.ItemIDs) == 0 {
				if group.Required {
					return nil, NewValidationError("options", fmt.Sprintf("%s is required", group.Title))
				}
				continue
			}
			for _, id := range sel.ItemIDs {
				if !groupHasItem(group, id) {
					return nil, NewValidationError("options", fmt.Sprintf("unknown choice for %s", group.Title))
				}
			}
			validated[group.ID] = models.OptionSelection{ItemIDs: sel.ItemIDs}

		default:
			return nil, NewValidationError("options", fmt.Sprintf("unknown group type %q", group.Type))
		}
	}
	return validated, nil
}

func groupHasItem(group models.OptionGroup, itemID string) bool {
	for _, item := range group.Items {
		if item.ID == itemID {
			return true
		}
	}
	return false
}
