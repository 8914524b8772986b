package rabbitmq

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore backs the pipeline test with database-like semantics: event rows
// are value snapshots, and the published flip is first-writer-wins.
type memStore struct {
	mu          sync.Mutex
	orders      map[int64]*order.Order
	eventRows   map[int64]memEventRow
	nextOrderID int64
	nextEventID int64
}

type memEventRow struct {
	id        int64
	orderID   int64
	eventType order.EventType
	createdAt time.Time
	published bool
}

func newMemStore() *memStore {
	return &memStore{
		orders:    make(map[int64]*order.Order),
		eventRows: make(map[int64]memEventRow),
	}
}

// restoreRows rebuilds entities from rows matching keep, ordered by id.
// Callers must hold the store lock.
func (s *memStore) restoreRows(keep func(memEventRow) bool) ([]*order.Event, error) {
	ids := make([]int64, 0, len(s.eventRows))
	for id, row := range s.eventRows {
		if keep(row) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)

	events := make([]*order.Event, 0, len(ids))
	for _, id := range ids {
		row := s.eventRows[id]
		event, err := order.RestoreEvent(row.id, row.orderID, row.eventType, row.createdAt, row.published)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

type memOrderRepo struct {
	store *memStore
}

func (r memOrderRepo) Add(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextOrderID++
	if err := aggregate.AssignID(r.store.nextOrderID); err != nil {
		return err
	}
	r.store.orders[aggregate.ID()] = aggregate
	return nil
}

func (r memOrderRepo) Update(_ context.Context, aggregate *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("orderID", aggregate.ID())
	}
	r.store.orders[aggregate.ID()] = aggregate
	return nil
}

func (r memOrderRepo) Get(_ context.Context, id int64) (*order.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.orders[id], nil
}

func (r memOrderRepo) GetOrFail(ctx context.Context, id int64) (*order.Order, error) {
	aggregate, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if aggregate == nil {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return aggregate, nil
}

func (r memOrderRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	_, ok := r.store.orders[id]
	return ok, nil
}

type memEventRepo struct {
	store *memStore
}

func (r memEventRepo) Add(_ context.Context, event *order.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.nextEventID++
	if err := event.AssignID(r.store.nextEventID); err != nil {
		return err
	}
	r.store.eventRows[event.ID()] = memEventRow{
		id:        event.ID(),
		orderID:   event.OrderID(),
		eventType: event.Type(),
		createdAt: event.CreatedAt(),
		published: event.Published(),
	}
	return nil
}

func (r memEventRepo) Update(_ context.Context, event *order.Event) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	row, ok := r.store.eventRows[event.ID()]
	if !ok || row.published {
		return errs.NewStateConflictError("markEventPublished", "unpublished", "published or missing")
	}
	row.published = event.Published()
	r.store.eventRows[event.ID()] = row
	return nil
}

func (r memEventRepo) FindUnpublished(_ context.Context) ([]*order.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.restoreRows(func(row memEventRow) bool { return !row.published })
}

func (r memEventRepo) FindByOrderID(_ context.Context, orderID int64) ([]*order.Event, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.restoreRows(func(row memEventRow) bool { return row.orderID == orderID })
}

type memUoW struct {
	store *memStore
}

func (u *memUoW) Begin(context.Context) error    { return nil }
func (u *memUoW) Commit(context.Context) error   { return nil }
func (u *memUoW) Rollback(context.Context) error { return nil }

func (u *memUoW) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (u *memUoW) OrderRepository() ports.OrderRepository { return memOrderRepo{store: u.store} }

func (u *memUoW) OrderEventRepository() ports.OrderEventRepository {
	return memEventRepo{store: u.store}
}

type memUoWFactory struct {
	store *memStore
}

func (f memUoWFactory) Create() commands.UoW { return &memUoW{store: f.store} }

type memOutboxUoWFactory struct {
	store *memStore
}

func (f memOutboxUoWFactory) Create() commands.OutboxUoW { return &memUoW{store: f.store} }

type nopTrigger struct{}

func (nopTrigger) Notify() {}

// TestOrderEventPipeline_CreateSweepConsumeRedeliver walks one event through
// the whole pipeline: creating an order appends an unpublished CREATED event,
// a sweep publishes it to the broker with the fixed routing key, the consumer
// drives the order to Picking and appends PICKING_STARTED, and redelivering
// the original CREATED message afterwards changes nothing.
func TestOrderEventPipeline_CreateSweepConsumeRedeliver(t *testing.T) {
	ctx := t.Context()
	store := newMemStore()
	logger := slog.New(slog.DiscardHandler)
	eventRepo := memEventRepo{store: store}

	item, err := order.NewItem(7, 2, 5000)
	require.NoError(t, err)
	details, err := order.NewDetails("Alice", "1 Main St", []order.Item{item})
	require.NoError(t, err)

	createHandler := commands.NewCreateOrderCommandHandler(
		memUoWFactory{store: store}, systemClock{}, nopTrigger{})
	createCmd, err := commands.NewCreateOrderCommand(details)
	require.NoError(t, err)

	orderID, err := createHandler.Handle(ctx, createCmd)
	require.NoError(t, err)

	createdOrder, err := memOrderRepo{store: store}.GetOrFail(ctx, orderID)
	require.NoError(t, err)
	require.Equal(t, order.Created, createdOrder.Status())

	pending, err := eventRepo.FindUnpublished(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, order.EventCreated, pending[0].Type())
	require.Equal(t, orderID, pending[0].OrderID())

	// Sweep: the event is published to the broker and the outbox drains.
	ch := &fakeConsumeChannel{deliveries: make(chan amqp.Delivery, 2)}
	metrics := &nopMetrics{}
	sweepHandler := commands.NewPublishPendingEventsCommandHandler(
		memOutboxUoWFactory{store: store}, NewEventPublisher(ch), metrics, logger)
	sweepCmd, err := commands.NewPublishPendingEventsCommand()
	require.NoError(t, err)
	require.NoError(t, sweepHandler.Handle(ctx, sweepCmd))

	pending, err = eventRepo.FindUnpublished(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	ch.mu.Lock()
	require.Len(t, ch.published, 1)
	createdBody := ch.published[0].Body
	routingKey := ch.routingKey
	ch.mu.Unlock()
	assert.Equal(t, RoutingKey, routingKey)

	// Consumer: the CREATED message drives the order to its next stage.
	startPicking := commands.NewStartPickingCommandHandler(
		memUoWFactory{store: store}, systemClock{}, nopTrigger{}, logger)
	handlers := map[order.EventType]HandlerFunc{
		order.EventCreated: func(ctx context.Context, id int64) error {
			cmd, cmdErr := commands.NewStartPickingCommand(id)
			if cmdErr != nil {
				return cmdErr
			}
			return startPicking.Handle(ctx, cmd)
		},
	}

	consumer := newTestConsumer(ch, handlers, metrics)
	require.NoError(t, consumer.Start(t.Context()))

	ack := &fakeAcknowledger{}
	delivery := amqp.Delivery{
		Acknowledger: ack,
		MessageId:    "msg-created",
		ContentType:  "application/json",
		Body:         createdBody,
	}
	ch.deliveries <- delivery

	require.Eventually(t, func() bool {
		ack.mu.Lock()
		defer ack.mu.Unlock()
		return ack.acked == 1
	}, time.Second, 5*time.Millisecond)

	pickedOrder, err := memOrderRepo{store: store}.GetOrFail(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, order.Picking, pickedOrder.Status())

	history, err := eventRepo.FindByOrderID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, order.EventPickingStarted, history[1].Type())
	assert.False(t, history[1].Published())

	// Redelivery of the processed CREATED message is a silent no-op.
	ch.deliveries <- delivery

	require.Eventually(t, func() bool {
		ack.mu.Lock()
		defer ack.mu.Unlock()
		return ack.acked == 2
	}, time.Second, 5*time.Millisecond)

	redeliveredOrder, err := memOrderRepo{store: store}.GetOrFail(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, order.Picking, redeliveredOrder.Status())

	history, err = eventRepo.FindByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Len(t, history, 2)

	assert.Zero(t, metrics.failedCount())
	ch.mu.Lock()
	assert.Len(t, ch.published, 1)
	ch.mu.Unlock()
}
