package funnel

import (
	"errors"
	"fmt"

	"shineops/models"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// ErrSlotTaken is returned when the chosen time is no longer available. The
// session is kept intact so the customer can pick another time without
// re-entering anything.
var ErrSlotTaken = errors.New("this time is no longer available, please pick another")

// ValidationError marks a missing or malformed funnel selection. It is
// surfaced to the customer immediately and never reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// StepLockedError is returned when a step is entered before the required
// selections of a prior step are present.
type StepLockedError struct {
	Step    models.FunnelStep
	Missing models.FunnelStep
}

func (e *StepLockedError) Error() string {
	return fmt.Sprintf("step %q requires %q to be completed first", e.Step, e.Missing)
}
