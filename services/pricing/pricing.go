// Package pricing computes booking and estimate totals. Every function is
// pure; callers gather the inputs.
package pricing

import (
	"math"

	"shineops/models"
)

// Round2 rounds a monetary value to 2 decimal places, half up. Intermediate
// line values stay unrounded; rounding happens only at subtotal and total, so
// totals stay cent-compatible with the dashboard's own arithmetic.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Totals is the result of the discount/tax pipeline.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals applies discount then tax to a subtotal, in that order:
// percent or flat discount, clamp at zero, tax on the discounted amount.
func ComputeTotals(subtotal, discountAmount float64, discountType models.DiscountType, taxRate float64) Totals {
	sub := Round2(subtotal)

	var discount float64
	if discountType == models.DiscountPercent {
		discount = sub * (discountAmount / 100)
	} else {
		discount = discountAmount
	}

	afterDiscount := sub - discount
	if afterDiscount < 0 {
		afterDiscount = 0
	}

	tax := afterDiscount * (taxRate / 100)

	return Totals{
		Subtotal: sub,
		Discount: discount,
		Tax:      tax,
		Total:    Round2(afterDiscount + tax),
	}
}

// EstimateSubtotal sums price x quantity across line items.
func EstimateSubtotal(items []models.LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// VehicleModifiers sums the flat class additions for the customer's vehicles.
func VehicleModifiers(vehicles []models.Vehicle) float64 {
	var sum float64
	for _, v := range vehicles {
		sum += v.Class.Modifier()
	}
	return sum
}

// OptionModifiers sums the price effect of the customer's option selections.
// Radio groups contribute at most one item's modifier, checkbox groups the
// sum of all checked items, slider groups nothing.
func OptionModifiers(groups []models.OptionGroup, selections map[string]models.OptionSelection) float64 {
	var sum float64
	for _, group := range groups {
		sel, ok := selections[group.ID]
		if !ok {
			continue
		}
		switch group.Type {
		case models.GroupSlider:
			// presentation only
		case models.GroupRadio:
			for _, item := range group.Items {
				if len(sel.ItemIDs) > 0 && item.ID == sel.ItemIDs[0] {
					sum += item.PriceModifier
					break
				}
			}
		case models.GroupCheckbox:
			checked := make(map[string]bool, len(sel.ItemIDs))
			for _, id := range sel.ItemIDs {
				checked[id] = true
			}
			for _, item := range group.Items {
				if checked[item.ID] {
					sum += item.PriceModifier
				}
			}
		}
	}
	return sum
}

// AddOnSum sums the prices of the selected add-ons.
func AddOnSum(addOns []models.AddOn) float64 {
	var sum float64
	for _, a := range addOns {
		sum += a.Price
	}
	return sum
}

// FunnelSubtotal aggregates the booking funnel's price factors: base service
// price, vehicle-class additions, option modifiers and add-ons.
func FunnelSubtotal(svc models.ServiceSnapshot, vehicles []models.Vehicle, selections map[string]models.OptionSelection, addOns []models.AddOn) float64 {
	return svc.BasePrice +
		VehicleModifiers(vehicles) +
		OptionModifiers(svc.OptionGroups, selections) +
		AddOnSum(addOns)
}
