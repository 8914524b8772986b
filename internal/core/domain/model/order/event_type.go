package order

import (
	"orderflow/internal/pkg/errs"
)

// EventType classifies a lifecycle event. The values mirror Status 1:1:
// each successful transition produces exactly one event of the type that
// corresponds to the new status.
type EventType int

const (
	// EventUnknown represents an invalid or unrecognized event type.
	EventUnknown EventType = iota

	// EventCreated records that an order was created.
	EventCreated

	// EventPickingStarted records that warehouse picking started.
	EventPickingStarted

	// EventTransitStarted records that the order left the warehouse.
	EventTransitStarted

	// EventDelivered records that the order reached the customer.
	EventDelivered
)

func getEventTypeStrings() map[EventType]string {
	return map[EventType]string{
		EventCreated:        "CREATED",
		EventPickingStarted: "PICKING_STARTED",
		EventTransitStarted: "TRANSIT_STARTED",
		EventDelivered:      "DELIVERED",
	}
}

// EventTypeForStatus maps a status to the event type recorded when an order
// enters that status.
func EventTypeForStatus(s Status) (EventType, error) {
	switch s {
	case Created:
		return EventCreated, nil
	case Picking:
		return EventPickingStarted, nil
	case InTransit:
		return EventTransitStarted, nil
	case Delivered:
		return EventDelivered, nil
	default:
		return EventUnknown, errs.NewValueIsInvalidError("status")
	}
}

// EventTypeFromString parses the wire representation of an event type.
// Unrecognized values yield EventUnknown without an error: consumers treat
// unknown types as acknowledged no-ops rather than failures.
func EventTypeFromString(s string) EventType {
	for t, str := range getEventTypeStrings() {
		if str == s {
			return t
		}
	}
	return EventUnknown
}

// Validate checks that the event type is one of the recognized values.
func (t EventType) Validate() error {
	if _, ok := getEventTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidError("eventType")
	}
	return nil
}

// String returns the wire representation of the event type.
// Implements fmt.Stringer; safe on any value.
func (t EventType) String() string {
	if str, ok := getEventTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}
