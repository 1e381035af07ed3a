package funnel

import "shineops/models"

// stepOrder is the strict funnel sequence. Back-navigation is always
// permitted and never clears state; forward entry requires every prior
// step's required selections to be present.
var stepOrder = []models.FunnelStep{
	models.StepService,
	models.StepVehicle,
	models.StepOptions,
	models.StepAddOns,
	models.StepSchedule,
	models.StepCheckout,
}

// OptionsSkipped reports whether the options step is bypassed for this
// session's service (a service that owns zero option groups goes straight
// from vehicle to add-ons).
func OptionsSkipped(sess *models.FunnelSession) bool {
	return len(sess.Service.OptionGroups) == 0
}

// stepComplete reports whether the required selections of a single step are
// present in the session.
func stepComplete(sess *models.FunnelSession, step models.FunnelStep) bool {
	switch step {
	case models.StepService:
		return sess.Service.ID != ""
	case models.StepVehicle:
		return len(sess.Vehicles) > 0
	case models.StepOptions:
		if OptionsSkipped(sess) {
			return true
		}
		for _, group := range sess.Service.OptionGroups {
			if !group.Required {
				continue
			}
			sel, ok := sess.Options[group.ID]
			if !ok {
				return false
			}
			if group.Type != models.GroupSlider && len(sel.ItemIDs) == 0 {
				return false
			}
		}
		return true
	case models.StepAddOns:
		// Add-ons are always optional.
		return true
	case models.StepSchedule:
		return sess.Date != "" && sess.Time != ""
	case models.StepCheckout:
		return false
	}
	return false
}

// StepAllowed reports whether the session may enter the given step. When it
// may not, the first incomplete prior step is returned.
func StepAllowed(sess *models.FunnelSession, step models.FunnelStep) (bool, models.FunnelStep) {
	for _, prior := range stepOrder {
		if prior == step {
			return true, ""
		}
		if prior == models.StepOptions && OptionsSkipped(sess) {
			continue
		}
		if !stepComplete(sess, prior) {
			return false, prior
		}
	}
	return false, ""
}

// guardStep converts a failed StepAllowed check into a StepLockedError.
func guardStep(sess *models.FunnelSession, step models.FunnelStep) error {
	if ok, missing := StepAllowed(sess, step); !ok {
		return &StepLockedError{Step: step, Missing: missing}
	}
	return nil
}
