// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and database rows.
package orderrepo

import (
	"encoding/json"

	"orderflow/internal/core/domain/model/order"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The identity is a bigserial assigned by the database on insert; line items
// are stored as a jsonb document since they are only ever read and written
// together with the order.
type OrderDTO struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	CustomerName    string `gorm:"type:varchar(255);not null"`
	CustomerAddress string `gorm:"type:varchar(512);not null"`
	Items           string `gorm:"type:jsonb;not null"`
	Status          string `gorm:"type:varchar(32);not null;index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is one line item inside the jsonb items document.
type ItemDTO struct {
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := aggregate.Details().Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			ProductID:  item.ProductID(),
			Quantity:   item.Quantity(),
			PriceCents: item.PriceCents(),
		})
	}

	itemsJSON, err := json.Marshal(itemDTOs)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:              aggregate.ID(),
		CustomerName:    aggregate.Details().CustomerName(),
		CustomerAddress: aggregate.Details().CustomerAddress(),
		Items:           string(itemsJSON),
		Status:          aggregate.Status().String(),
	}, nil
}

// toDomain converts a database row back to an order domain aggregate.
func toDomain(dto OrderDTO) (*order.Order, error) {
	var itemDTOs []ItemDTO
	if err := json.Unmarshal([]byte(dto.Items), &itemDTOs); err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(itemDTOs))
	for _, itemDTO := range itemDTOs {
		item, err := order.NewItem(itemDTO.ProductID, itemDTO.Quantity, itemDTO.PriceCents)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	details, err := order.NewDetails(dto.CustomerName, dto.CustomerAddress, items)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(dto.ID, details, status)
}
