package order

import (
	"errors"
	"time"

	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods. This ensures all
	// orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrderIDAlreadyAssigned is returned when AssignID is called on an order
	// that already has a persistent identity.
	ErrOrderIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Order represents a customer order in the system. It is the aggregate root
// that manages the order lifecycle from creation through picking and transit
// to delivery.
//
// Order follows these invariants:
//   - Must have validated details (customer name, address, at least one item)
//   - Status advances only forward through Created -> Picking -> InTransit -> Delivered
//   - The persistent id is assigned exactly once, on first persist
//   - Can only be created through NewOrder or RestoreOrder
//
// Every successful transition returns the Event describing it. The calling
// use case persists the mutated order and the event within one transaction;
// that coupling is what guarantees no transition is ever lost, regardless of
// which component fails afterwards.
type Order struct {
	// id is the persistent identity, zero until first persist
	id int64

	// details holds the customer-facing contents of the order
	details Details

	// status represents the current state in the order lifecycle
	status Status

	// isConstructed ensures the order was created via a factory method
	isConstructed bool
}

// NewOrder creates a new Order in Created status with validated details.
// The id stays unassigned until the repository persists the order.
func NewOrder(details Details) (*Order, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		details:       details,
		status:        Created,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an order from persistence with its assigned id
// and current status.
func RestoreOrder(id int64, details Details, status Status) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}

	o, err := NewOrder(details)
	if err != nil {
		return nil, err
	}

	o.id = id
	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's persistent identity, or zero before first persist.
func (o *Order) ID() int64 {
	return o.id
}

// Details returns the customer-facing contents of the order.
func (o *Order) Details() Details {
	return o.details
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// AssignID sets the order's identity on first persist. Called by the
// repository once the database has generated the key.
func (o *Order) AssignID(id int64) error {
	if o.id != 0 {
		return ErrOrderIDAlreadyAssigned
	}
	if id <= 0 {
		return errs.NewValueIsRequiredError("id")
	}
	o.id = id
	return nil
}

// CreatedEvent produces the CREATED event for a freshly persisted order.
// It requires the id to be assigned so the event can reference its owner.
func (o *Order) CreatedEvent(now time.Time) (*Event, error) {
	if o.id == 0 {
		return nil, errs.NewValueIsRequiredError("id")
	}
	return NewEvent(o.id, EventCreated, now)
}

// StartPicking advances the order from Created to Picking and returns the
// PICKING_STARTED event describing the transition.
//
// On a precondition mismatch nothing is mutated, no event is produced, and a
// StateConflictError is returned. That is an expected outcome, e.g. when a
// redelivered message races a transition that already happened.
func (o *Order) StartPicking(now time.Time) (*Event, error) {
	newStatus, err := o.status.StartPicking()
	if err != nil {
		return nil, err
	}

	event, err := NewEvent(o.id, EventPickingStarted, now)
	if err != nil {
		return nil, err
	}

	o.status = newStatus
	return event, nil
}

// StartTransit advances the order from Picking to InTransit and returns the
// TRANSIT_STARTED event describing the transition. Conflict semantics match
// StartPicking.
func (o *Order) StartTransit(now time.Time) (*Event, error) {
	newStatus, err := o.status.StartTransit()
	if err != nil {
		return nil, err
	}

	event, err := NewEvent(o.id, EventTransitStarted, now)
	if err != nil {
		return nil, err
	}

	o.status = newStatus
	return event, nil
}

// MarkDelivered advances the order from InTransit to Delivered and returns
// the DELIVERED event describing the transition. Delivered is terminal.
// Conflict semantics match StartPicking.
func (o *Order) MarkDelivered(now time.Time) (*Event, error) {
	newStatus, err := o.status.MarkDelivered()
	if err != nil {
		return nil, err
	}

	event, err := NewEvent(o.id, EventDelivered, now)
	if err != nil {
		return nil, err
	}

	o.status = newStatus
	return event, nil
}
