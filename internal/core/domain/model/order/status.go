package order

import (
	"orderflow/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct fulfillment workflow.
//
// State transitions:
//
//	Created ──> Picking ──> InTransit ──> Delivered
//
// Each transition requires the exact predecessor state; the status never
// skips ahead and never regresses. Status is a value object that validates
// state transitions and provides string representations for persistence
// and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when an order is first persisted.
	Created

	// Picking indicates warehouse picking has started for the order.
	Picking

	// InTransit indicates the order has left the warehouse and is on its way.
	InTransit

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Created:   "Created",
		Picking:   "Picking",
		InTransit: "InTransit",
		Delivered: "Delivered",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
// Only valid statuses are included to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Created:   "Created",
		Picking:   "Picking",
		InTransit: "InTransit",
		Delivered: "Delivered",
	}
}

// StatusFromString converts a stored status string back to its Status value.
// Returns Unknown with an error for strings that do not name a valid status.
func StatusFromString(value string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidError("status")
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Created, Picking, InTransit, Delivered.
// Unknown (0) and any other values are invalid.
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			errs.NewValueIsOutOfRangeError("status", int(s), int(Created), int(Delivered)))
	}
	return nil
}

// String returns the human-readable name of the status.
//
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// StartPicking transitions the status to Picking.
//
// Valid transition:
//   - Created -> Picking
//
// Returns (0, StateConflictError) for any other starting state. The conflict
// carries the operation name and both statuses so callers can log redeliveries
// meaningfully.
func (s Status) StartPicking() (Status, error) {
	if s != Created {
		return 0, errs.NewStateConflictError("startPicking", Created.String(), s.String())
	}
	return Picking, nil
}

// StartTransit transitions the status to InTransit.
//
// Valid transition:
//   - Picking -> InTransit
//
// Returns (0, StateConflictError) for any other starting state.
func (s Status) StartTransit() (Status, error) {
	if s != Picking {
		return 0, errs.NewStateConflictError("startTransit", Picking.String(), s.String())
	}
	return InTransit, nil
}

// MarkDelivered transitions the status to Delivered.
//
// Valid transition:
//   - InTransit -> Delivered
//
// Delivered is a final state with no further transitions possible.
// Returns (0, StateConflictError) for any other starting state.
func (s Status) MarkDelivered() (Status, error) {
	if s != InTransit {
		return 0, errs.NewStateConflictError("markDelivered", InTransit.String(), s.String())
	}
	return Delivered, nil
}
