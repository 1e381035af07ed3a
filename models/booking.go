package models

import "time"

// BookingStatus enumerates the lifecycle of a job.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"   // newly created, worked as "In Progress" on the board
	StatusConfirmed BookingStatus = "confirmed" // scheduled
	StatusReady     BookingStatus = "ready"     // work finished, awaiting pickup
	StatusCompleted BookingStatus = "completed" // terminal, successful
	StatusCancelled BookingStatus = "cancelled" // terminal, from any non-terminal state
)

// ValidStatus reports whether s is one of the known booking statuses.
func ValidStatus(s BookingStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ChecklistItem is one named step of a job's work checklist. Checklist
// completion is informational only and never gates a status transition.
type ChecklistItem struct {
	Label string `bson:"label" json:"label"`
	Done  bool   `bson:"done" json:"done"`
}

// Booking represents a confirmed reservation record.
type Booking struct {
	ID              string          `bson:"id" json:"id"`
	CustomerName    string          `bson:"customer_name" json:"customerName"`
	CustomerEmail   string          `bson:"customer_email" json:"customerEmail"`
	CustomerPhone   string          `bson:"customer_phone" json:"customerPhone"`
	ServiceTitle    string          `bson:"service_title" json:"serviceTitle"`
	ServicePrice    float64         `bson:"service_price" json:"servicePrice"` // captured at booking time, not a live reference
	Vehicles        []Vehicle       `bson:"vehicles,omitempty" json:"vehicles,omitempty"`
	BookingDate     string          `bson:"booking_date" json:"bookingDate"` // "YYYY-MM-DD"
	BookingTime     string          `bson:"booking_time" json:"bookingTime"` // "HH:MM"
	DurationMinutes int             `bson:"duration_minutes" json:"durationMinutes"`
	Status          BookingStatus   `bson:"status" json:"status"`
	Notes           string          `bson:"notes,omitempty" json:"notes,omitempty"`
	Checklist       []ChecklistItem `bson:"checklist,omitempty" json:"checklist,omitempty"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}

// IsActive reports whether the booking still occupies its time slot.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}
