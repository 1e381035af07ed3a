package models

// DispatchPayload is the body of a queued notification-dispatch task. The
// core's responsibility ends at enqueuing it; delivery (email/SMS) is an
// external collaborator.
type DispatchPayload struct {
	Kind      string            `json:"kind"` // "booking_confirmation", "estimate_sent"
	Recipient string            `json:"recipient"`
	Subject   string            `json:"subject"`
	Data      map[string]string `json:"data,omitempty"`
}
