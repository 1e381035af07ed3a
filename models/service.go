package models

import "strings"

// OptionGroupType enumerates how a configurable option group is presented
// and how it contributes to price.
type OptionGroupType string

const (
	GroupCheckbox OptionGroupType = "checkbox" // sum of all checked items' modifiers
	GroupRadio    OptionGroupType = "radio"    // at most one item's modifier
	GroupSlider   OptionGroupType = "slider"   // presentation only, never affects price
)

// OptionItem is one selectable choice inside a checkbox or radio group.
type OptionItem struct {
	ID            string  `bson:"id" json:"id"`
	Label         string  `bson:"label" json:"label"`
	PriceModifier float64 `bson:"price_modifier" json:"priceModifier"`
}

// OptionGroup is a configurable, per-service choice set. Slider fields are
// only meaningful when Type is GroupSlider.
type OptionGroup struct {
	ID       string          `bson:"id" json:"id"`
	Title    string          `bson:"title" json:"title"`
	Type     OptionGroupType `bson:"type" json:"type"`
	Required bool            `bson:"required" json:"required"`
	Min      float64         `bson:"min,omitempty" json:"min,omitempty"`
	Max      float64         `bson:"max,omitempty" json:"max,omitempty"`
	Step     float64         `bson:"step,omitempty" json:"step,omitempty"`
	Unit     string          `bson:"unit,omitempty" json:"unit,omitempty"`
	Default  float64         `bson:"default,omitempty" json:"default,omitempty"`
	Items    []OptionItem    `bson:"items,omitempty" json:"items,omitempty"` // ordered
}

// Service is a bookable offering with its configurable option groups embedded.
type Service struct {
	ID              string        `bson:"id" json:"id"`
	Title           string        `bson:"title" json:"title"`
	Description     string        `bson:"description,omitempty" json:"description,omitempty"`
	BasePrice       float64       `bson:"base_price" json:"basePrice"`
	DurationMinutes int           `bson:"duration_minutes" json:"durationMinutes"`
	Popular         bool          `bson:"popular" json:"popular"`
	ImageURL        string        `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	OptionGroups    []OptionGroup `bson:"option_groups,omitempty" json:"optionGroups,omitempty"`
}

// AddOn is an extra scoped to a single service.
type AddOn struct {
	ID        string  `bson:"id" json:"id"`
	ServiceID string  `bson:"service_id" json:"serviceId"`
	Title     string  `bson:"title" json:"title"`
	Price     float64 `bson:"price" json:"price"`
}

// ServiceCategory tags a service for category-specific funnel affordances
// (tint coverage slider, wrap color picker). The affordances ride on the
// regular OptionGroup model and never affect price.
type ServiceCategory string

const (
	CategoryStandard ServiceCategory = "standard"
	CategoryTint     ServiceCategory = "tint"
	CategoryWrap     ServiceCategory = "wrap"
)

// ClassifyService maps a service title to its category tag. Classification
// happens once, here, so the funnel can dispatch on the tag instead of
// matching strings in every view.
func ClassifyService(title string) ServiceCategory {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "tint"):
		return CategoryTint
	case strings.Contains(t, "wrap"):
		return CategoryWrap
	default:
		return CategoryStandard
	}
}
