package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// applyTransition loads the order under a row lock, applies the status change,
// and persists the updated order together with its outbox event in one
// transaction.
//
// A state conflict means the message that caused this call is a redelivery of
// something already processed (or arrived after a later transition). The
// transition is skipped without error so the caller can acknowledge the
// message instead of retrying it forever.
func applyTransition(
	ctx context.Context,
	uowFactory UoWFactory,
	clock ports.Clock,
	trigger ports.PublishTrigger,
	logger *slog.Logger,
	orderID int64,
	transition func(o *order.Order, now time.Time) (*order.Event, error),
) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lockedOrder, err := uow.OrderRepository().GetOrFail(ctx, orderID)
	if err != nil {
		return err
	}

	event, err := transition(lockedOrder, clock.Now())
	if err != nil {
		if errors.Is(err, errs.ErrStateConflict) {
			logger.InfoContext(ctx, "Skipping transition for order in incompatible status",
				"orderId", orderID,
				"status", lockedOrder.Status().String(),
				"reason", err.Error())
			return nil
		}

		return err
	}

	if err = uow.OrderRepository().Update(ctx, lockedOrder); err != nil {
		return err
	}

	if err = uow.OrderEventRepository().Add(ctx, event); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	trigger.Notify()
	return nil
}
