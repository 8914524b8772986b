package cmd

import (
	"context"
	"log/slog"

	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/rabbitmq"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/clock"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters into use case handlers. All handlers share
// one unit of work factory, one broker channel and one metrics sink.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	metrics    ports.OrderMetrics
	trigger    ports.PublishTrigger
	clock      ports.Clock
	logger     *slog.Logger
}

// NewCompositionRoot creates the object graph below the use case layer.
// The publish trigger is injected later via WithPublishTrigger because the
// trigger itself needs the sweep handler built here.
func NewCompositionRoot(
	_ Config,
	gormDB *gorm.DB,
	publishChannel rabbitmq.PublishChannel,
	metrics ports.OrderMetrics,
	logger *slog.Logger,
) *CompositionRoot {
	return &CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  rabbitmq.NewEventPublisher(publishChannel),
		metrics:    metrics,
		trigger:    noopTrigger{},
		clock:      clock.NewSystemClock(),
		logger:     logger,
	}
}

// WithPublishTrigger replaces the no-op trigger with the real one.
// Must be called before building transition handlers.
func (c *CompositionRoot) WithPublishTrigger(trigger ports.PublishTrigger) {
	c.trigger = trigger
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.createUoWFactory(), c.clock, c.trigger)
}

func (c *CompositionRoot) CreateStartPickingCommandHandler() commands.StartPickingCommandHandler {
	return commands.NewStartPickingCommandHandler(c.createUoWFactory(), c.clock, c.trigger, c.logger)
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	return commands.NewStartTransitCommandHandler(c.createUoWFactory(), c.clock, c.trigger, c.logger)
}

func (c *CompositionRoot) CreateMarkDeliveredCommandHandler() commands.MarkDeliveredCommandHandler {
	return commands.NewMarkDeliveredCommandHandler(c.createUoWFactory(), c.clock, c.trigger, c.logger)
}

func (c *CompositionRoot) CreatePublishPendingEventsCommandHandler() commands.PublishPendingEventsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishPendingEventsCommandHandler(f, c.publisher, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatusQueryHandler() queries.GetOrderStatusQueryHandler {
	return queries.NewGetOrderStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderEventsQueryHandler() queries.GetOrderEventsQueryHandler {
	return queries.NewGetOrderEventsQueryHandler(c.gormDB)
}

// CreateConsumerHandlers builds the dispatch table for the broker consumer.
// Each published event drives the order to its next lifecycle stage; the
// DELIVERED event is terminal and intentionally has no handler.
func (c *CompositionRoot) CreateConsumerHandlers() map[order.EventType]rabbitmq.HandlerFunc {
	startPicking := c.CreateStartPickingCommandHandler()
	startTransit := c.CreateStartTransitCommandHandler()
	markDelivered := c.CreateMarkDeliveredCommandHandler()

	return map[order.EventType]rabbitmq.HandlerFunc{
		order.EventCreated: func(ctx context.Context, orderID int64) error {
			cmd, err := commands.NewStartPickingCommand(orderID)
			if err != nil {
				return err
			}
			return startPicking.Handle(ctx, cmd)
		},
		order.EventPickingStarted: func(ctx context.Context, orderID int64) error {
			cmd, err := commands.NewStartTransitCommand(orderID)
			if err != nil {
				return err
			}
			return startTransit.Handle(ctx, cmd)
		},
		order.EventTransitStarted: func(ctx context.Context, orderID int64) error {
			cmd, err := commands.NewMarkDeliveredCommand(orderID)
			if err != nil {
				return err
			}
			return markDelivered.Handle(ctx, cmd)
		},
	}
}

func (c *CompositionRoot) createUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

// noopTrigger stands in until the job manager provides the real trigger.
type noopTrigger struct{}

func (noopTrigger) Notify() {}
