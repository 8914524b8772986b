package order

import (
	"fmt"
	"strings"

	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

const (
	minQuantity = 1
	maxQuantity = 999

	// Prices are held in hundredths (cents) to keep arithmetic exact.
	minPriceCents int64 = 0
	maxPriceCents int64 = 99_999_999 // 999999.99
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through the NewItem factory method.
	ErrItemIsNotConstructed = fmt.Errorf("Item must be created via NewItem constructor")

	// ErrDetailsAreNotConstructed is returned when a Details instance was not
	// created through the NewDetails factory method.
	ErrDetailsAreNotConstructed = fmt.Errorf("Details must be created via NewDetails constructor")
)

// Item is a value object describing one ordered line item.
//
// Invariants:
//   - product id is positive
//   - quantity is within [1, 999]
//   - price is within [0.00, 999999.99], held as cents
type Item struct {
	productID  int64
	quantity   int
	priceCents int64

	guard guard.ConstructorGuard
}

// NewItem creates a validated line item. priceCents is the unit price in
// hundredths of the currency unit, e.g. 5000 for 50.00.
func NewItem(productID int64, quantity int, priceCents int64) (Item, error) {
	item := Item{guard: guard.NewConstructorGuard()}

	if productID <= 0 {
		return Item{}, errs.NewValueIsRequiredError("productId")
	}
	item.productID = productID

	if quantity < minQuantity || quantity > maxQuantity {
		return Item{}, errs.NewValueIsOutOfRangeError("quantity", quantity, minQuantity, maxQuantity)
	}
	item.quantity = quantity

	if priceCents < minPriceCents || priceCents > maxPriceCents {
		return Item{}, errs.NewValueIsOutOfRangeError("price", priceCents, minPriceCents, maxPriceCents)
	}
	item.priceCents = priceCents

	return item, nil
}

// Validate ensures the Item instance was properly constructed through NewItem.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// ProductID returns the identifier of the ordered product.
func (i Item) ProductID() int64 {
	return i.productID
}

// Quantity returns how many units were ordered.
func (i Item) Quantity() int {
	return i.quantity
}

// PriceCents returns the unit price in hundredths of the currency unit.
func (i Item) PriceCents() int64 {
	return i.priceCents
}

// Details is a value object holding the customer-facing contents of an order:
// who ordered, where to deliver, and the ordered line items.
type Details struct {
	customerName    string
	customerAddress string
	items           []Item

	guard guard.ConstructorGuard
}

// NewDetails creates validated order details. Name and address must be
// non-blank and at least one valid item is required.
func NewDetails(customerName, customerAddress string, items []Item) (Details, error) {
	details := Details{guard: guard.NewConstructorGuard()}

	name := strings.TrimSpace(customerName)
	if name == "" {
		return Details{}, errs.NewValueIsRequiredError("customerName")
	}
	details.customerName = name

	address := strings.TrimSpace(customerAddress)
	if address == "" {
		return Details{}, errs.NewValueIsRequiredError("customerAddress")
	}
	details.customerAddress = address

	if len(items) == 0 {
		return Details{}, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return Details{}, err
		}
	}
	details.items = append([]Item(nil), items...)

	return details, nil
}

// Validate ensures the Details instance was properly constructed through NewDetails.
func (d Details) Validate() error {
	return d.guard.Validate(ErrDetailsAreNotConstructed)
}

// CustomerName returns the name of the ordering customer.
func (d Details) CustomerName() string {
	return d.customerName
}

// CustomerAddress returns the delivery address.
func (d Details) CustomerAddress() string {
	return d.customerAddress
}

// Items returns a copy of the ordered line items.
func (d Details) Items() []Item {
	return append([]Item(nil), d.items...)
}
