package models

// Slot is a discrete bookable time-of-day offering, annotated with whether
// it is still available on the requested date.
type Slot struct {
	Time      string `json:"time"` // "HH:MM" slot start
	Available bool   `json:"available"`
}
