package models

import "time"

// EstimateStatus enumerates the lifecycle of an estimate.
type EstimateStatus string

const (
	EstimateDraft    EstimateStatus = "draft"
	EstimateSent     EstimateStatus = "sent"
	EstimateAccepted EstimateStatus = "accepted"
	EstimateDeclined EstimateStatus = "declined"
)

// ValidEstimateStatus reports whether s is a known estimate status.
func ValidEstimateStatus(s EstimateStatus) bool {
	switch s {
	case EstimateDraft, EstimateSent, EstimateAccepted, EstimateDeclined:
		return true
	}
	return false
}

// DiscountType selects how Estimate.DiscountAmount is interpreted.
type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFlat    DiscountType = "flat"
)

// LineItem is one priced row of an estimate.
type LineItem struct {
	Title    string  `bson:"title" json:"title"`
	Price    float64 `bson:"price" json:"price"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// Estimate is a quoted job proposal. Subtotal and Total are derived through
// the pricing package and persisted for display; they are recomputed on every
// write. An accepted estimate may be converted into exactly one booking;
// ConvertedBookingID records that conversion.
type Estimate struct {
	ID                 string         `bson:"id" json:"id"`
	CustomerName       string         `bson:"customer_name" json:"customerName"`
	CustomerEmail      string         `bson:"customer_email,omitempty" json:"customerEmail,omitempty"`
	LineItems          []LineItem     `bson:"line_items" json:"lineItems"`
	DiscountAmount     float64        `bson:"discount_amount" json:"discountAmount"`
	DiscountType       DiscountType   `bson:"discount_type" json:"discountType"`
	TaxRate            float64        `bson:"tax_rate" json:"taxRate"` // percent, e.g. 8 for 8%
	Subtotal           float64        `bson:"subtotal" json:"subtotal"`
	Total              float64        `bson:"total" json:"total"`
	Status             EstimateStatus `bson:"status" json:"status"`
	ValidUntil         string         `bson:"valid_until,omitempty" json:"validUntil,omitempty"` // "YYYY-MM-DD"
	ConvertedBookingID string         `bson:"converted_booking_id,omitempty" json:"convertedBookingId,omitempty"`
	CreatedAt          time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time      `bson:"updated_at" json:"updatedAt"`
}
