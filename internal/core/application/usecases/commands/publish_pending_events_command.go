package commands

import (
	"errors"

	"orderflow/internal/pkg/guard"
)

var ErrPublishPendingEventsCommandIsNotConstructed = errors.New(
	"PublishPendingEventsCommand must be created via NewPublishPendingEventsCommand constructor",
)

// PublishPendingEventsCommand represents one sweep over the outbox: claim
// every unpublished event and push it to the broker.
type PublishPendingEventsCommand struct {
	guard guard.ConstructorGuard
}

// NewPublishPendingEventsCommand creates a command to run one outbox sweep.
func NewPublishPendingEventsCommand() (PublishPendingEventsCommand, error) {
	return PublishPendingEventsCommand{
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c PublishPendingEventsCommand) Validate() error {
	return c.guard.Validate(ErrPublishPendingEventsCommandIsNotConstructed)
}
