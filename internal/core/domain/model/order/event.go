package order

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
)

var (
	// ErrEventIsNotConstructed is returned when an Event instance was not created
	// through the NewEvent or RestoreEvent factory methods.
	ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent constructor")

	// ErrEventAlreadyPublished signals a second MarkPublished call on the same
	// event. Unlike a state conflict on the Order aggregate this is never a
	// normal outcome: only the outbox publisher flips the flag, and it does so
	// under a row lock, so a double flip means broken claim discipline.
	ErrEventAlreadyPublished = errors.New("event is already published")

	// ErrEventIDAlreadyAssigned is returned when AssignID is called on an event
	// that already has a persistent identity.
	ErrEventIDAlreadyAssigned = errors.New("event id is already assigned")

	// ErrEventNotPublished is returned when UnmarkPublished is called on an
	// event whose published flag is not set.
	ErrEventNotPublished = errors.New("event is not published")
)

// Event records a single lifecycle transition of an order. Events form a
// durable append-only audit log: once persisted they are immutable except for
// the published flag, and they are never deleted.
//
// An event's id is zero until the outbox store first persists it.
type Event struct {
	id        int64
	orderID   int64
	eventType EventType
	createdAt time.Time
	published bool

	isConstructed bool
}

// NewEvent creates an unpublished event describing a transition of the given
// order. The creation timestamp comes from the caller so that time stays an
// injected collaborator.
func NewEvent(orderID int64, eventType EventType, createdAt time.Time) (*Event, error) {
	if orderID <= 0 {
		return nil, errs.NewValueIsRequiredError("orderId")
	}
	if err := eventType.Validate(); err != nil {
		return nil, err
	}
	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Event{
		orderID:       orderID,
		eventType:     eventType,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreEvent reconstructs an event from persistence, including its assigned
// id and published flag.
func RestoreEvent(id, orderID int64, eventType EventType, createdAt time.Time, published bool) (*Event, error) {
	if id <= 0 {
		return nil, errs.NewValueIsRequiredError("id")
	}

	event, err := NewEvent(orderID, eventType, createdAt)
	if err != nil {
		return nil, err
	}

	event.id = id
	event.published = published
	return event, nil
}

// Validate ensures the Event instance was properly constructed through
// NewEvent or RestoreEvent.
func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

// ID returns the event's persistent identity, or zero before first persist.
func (e *Event) ID() int64 {
	return e.id
}

// OrderID returns the id of the order the event belongs to.
func (e *Event) OrderID() int64 {
	return e.orderID
}

// Type returns the event classification.
func (e *Event) Type() EventType {
	return e.eventType
}

// CreatedAt returns the event creation timestamp.
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// Published reports whether the event has been handed to the broker.
func (e *Event) Published() bool {
	return e.published
}

// AssignID sets the event's identity on first persist. Called by the outbox
// store once the database has generated the key.
func (e *Event) AssignID(id int64) error {
	if e.id != 0 {
		return ErrEventIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsRequiredError("id")
	}
	e.id = id
	return nil
}

// MarkPublished flips the published flag false to true. A second call returns
// ErrEventAlreadyPublished: the flag transitions exactly once per event.
func (e *Event) MarkPublished() error {
	if e.published {
		return ErrEventAlreadyPublished
	}
	e.published = true
	return nil
}

// UnmarkPublished reverts a publish claim whose transaction rolled back,
// keeping the entity consistent with its still-unpublished row. Only the
// outbox publisher calls this, and only for a claim it made itself.
func (e *Event) UnmarkPublished() error {
	if !e.published {
		return ErrEventNotPublished
	}
	e.published = false
	return nil
}
