package models

import "time"

// FunnelStep identifies one of the ordered booking funnel steps.
type FunnelStep string

const (
	StepService  FunnelStep = "service"
	StepVehicle  FunnelStep = "vehicle"
	StepOptions  FunnelStep = "options"
	StepAddOns   FunnelStep = "add-ons"
	StepSchedule FunnelStep = "booking"
	StepCheckout FunnelStep = "checkout"
)

// ServiceSnapshot captures the pricing-relevant parts of a service at the
// moment the funnel starts, so a catalogue edit mid-funnel cannot change a
// quote under the customer.
type ServiceSnapshot struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	BasePrice       float64         `json:"basePrice"`
	DurationMinutes int             `json:"durationMinutes"`
	Category        ServiceCategory `json:"category"`
	OptionGroups    []OptionGroup   `json:"optionGroups,omitempty"`
}

// OptionSelection records the customer's choice for one option group.
// ItemIDs holds the checked item(s) for checkbox/radio groups; SliderValue
// holds the chosen value for slider groups.
type OptionSelection struct {
	ItemIDs     []string `json:"itemIds,omitempty"`
	SliderValue float64  `json:"sliderValue,omitempty"`
}

// CustomerDetails are collected at checkout.
type CustomerDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes,omitempty"`
}

// FunnelSession is the shared state of one customer's walk through the
// booking funnel. It lives in short-lived storage keyed by SessionID and is
// read and written by every step; it is consumed exactly once on successful
// submission.
type FunnelSession struct {
	SessionID string                     `json:"sessionId"`
	Service   ServiceSnapshot            `json:"service"`
	Vehicles  []Vehicle                  `json:"vehicles,omitempty"`
	Options   map[string]OptionSelection `json:"options,omitempty"` // keyed by option group ID
	AddOnIDs  []string                   `json:"addOnIds,omitempty"`
	Date      string                     `json:"date,omitempty"` // "YYYY-MM-DD"
	Time      string                     `json:"time,omitempty"` // "HH:MM"
	CreatedAt time.Time                  `json:"createdAt"`
}
