// Package http exposes the order lifecycle over a small JSON API.
// Writes go through command handlers; reads go through query handlers.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error envelope returned by every failing endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is one line item of an order creation request.
type NewOrderItem struct {
	ProductID  int64 `json:"productId"`
	Quantity   int   `json:"quantity"`
	PriceCents int64 `json:"priceCents"`
}

// NewOrder is the order creation request body.
type NewOrder struct {
	CustomerName    string         `json:"customerName"`
	CustomerAddress string         `json:"customerAddress"`
	Items           []NewOrderItem `json:"items"`
}

// CreatedOrder is the order creation response body.
type CreatedOrder struct {
	ID int64 `json:"id"`
}

// OrderItem is one line item in an order view response.
type OrderItem struct {
	ProductID  int64 `json:"productId"`
	Quantity   int   `json:"quantity"`
	PriceCents int64 `json:"priceCents"`
}

// Order is the full order view response body.
type Order struct {
	ID              int64       `json:"id"`
	CustomerName    string      `json:"customerName"`
	CustomerAddress string      `json:"customerAddress"`
	Items           []OrderItem `json:"items"`
	Status          string      `json:"status"`
}

// OrderStatus is the status response body.
type OrderStatus struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// OrderEvent is one entry of the event history response.
// CreatedAt is epoch milliseconds, matching the broker wire format.
type OrderEvent struct {
	ID        int64  `json:"id"`
	OrderID   int64  `json:"orderId"`
	Type      string `json:"type"`
	CreatedAt int64  `json:"createdAt"`
	Published bool   `json:"published"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler commands.CreateOrderCommandHandler

	getOrderHandler       queries.GetOrderQueryHandler
	getOrderStatusHandler queries.GetOrderStatusQueryHandler
	getOrderEventsHandler queries.GetOrderEventsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrderStatusHandler queries.GetOrderStatusQueryHandler,
	getOrderEventsHandler queries.GetOrderEventsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		getOrderHandler:       getOrderHandler,
		getOrderStatusHandler: getOrderStatusHandler,
		getOrderEventsHandler: getOrderEventsHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/orders", s.CreateOrder)
	v1.GET("/orders/:id", s.GetOrder)
	v1.GET("/orders/:id/status", s.GetOrderStatus)
	v1.GET("/orders/:id/events", s.GetOrderEvents)
}

// Health handles GET /health - liveness probe.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	items := make([]order.Item, 0, len(body.Items))
	for _, itemBody := range body.Items {
		item, err := order.NewItem(itemBody.ProductID, itemBody.Quantity, itemBody.PriceCents)
		if err != nil {
			return badRequest(ctx, "Invalid order item: "+err.Error())
		}
		items = append(items, item)
	}

	details, err := order.NewDetails(body.CustomerName, body.CustomerAddress, items)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(details)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	orderID, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{ID: orderID})
}

// GetOrder handles GET /api/v1/orders/:id - retrieves the full order view.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve order")
	}

	items := make([]OrderItem, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			PriceCents: item.PriceCents,
		})
	}

	return ctx.JSON(http.StatusOK, Order{
		ID:              view.ID,
		CustomerName:    view.CustomerName,
		CustomerAddress: view.CustomerAddress,
		Items:           items,
		Status:          view.Status,
	})
}

// GetOrderStatus handles GET /api/v1/orders/:id/status.
func (s *Server) GetOrderStatus(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderStatusQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	status, err := s.getOrderStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve order status")
	}

	return ctx.JSON(http.StatusOK, OrderStatus{ID: status.ID, Status: status.Status})
}

// GetOrderEvents handles GET /api/v1/orders/:id/events - the recorded
// lifecycle history, oldest first.
func (s *Server) GetOrderEvents(ctx echo.Context) error {
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderEventsQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	events, err := s.getOrderEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return queryError(ctx, err, "Failed to retrieve order events")
	}

	response := make([]OrderEvent, 0, len(events))
	for _, event := range events {
		response = append(response, OrderEvent{
			ID:        event.ID,
			OrderID:   event.OrderID,
			Type:      event.Type,
			CreatedAt: event.CreatedAt.UnixMilli(),
			Published: event.Published,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func parseOrderID(ctx echo.Context) (int64, error) {
	return strconv.ParseInt(ctx.Param("id"), 10, 64)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func queryError(ctx echo.Context, err error, message string) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}

	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
