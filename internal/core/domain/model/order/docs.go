// Package order provides domain entities and business logic for order lifecycle
// tracking. It implements the Order aggregate root with state transitions and
// the outbox Event entity that records each transition for reliable publishing.
//
// The package includes:
//   - Order: the aggregate root that manages order identity, details, and lifecycle
//   - Status: a state machine that enforces valid order status transitions
//   - Details/Item: validated value objects describing the ordered goods
//   - Event: an immutable record of a lifecycle transition with a published flag
//   - EventType: the event classification mirroring Status values 1:1
//
// Key business rules:
//   - Order status only advances forward: Created -> Picking -> InTransit -> Delivered
//   - A transition from any state other than its exact predecessor mutates nothing,
//     produces no event, and signals a state conflict
//   - Every successful transition yields exactly one Event describing the new status;
//     the caller is responsible for persisting order and event in one transaction
//   - An Event's published flag flips false to true exactly once
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
// Transitions return the produced event instead of notifying a listener, so the
// domain model carries no infrastructure dependency.
package order
