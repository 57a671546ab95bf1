// Package cart holds the working set of line items for one in-progress
// invoice. A Cart is owned by a single checkout session; it is never a
// process-wide singleton.
package cart

import (
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/Victamina15/billtracky-2/internal/catalog/domain"
	paymentmethoddomain "github.com/Victamina15/billtracky-2/internal/paymentmethod/domain"
)

// LineItem is one cart row. Name, price and unit are snapshots taken when the
// service was added; later catalog edits never reach an open cart.
type LineItem struct {
	ID        string             `json:"id"`
	ServiceID snowflake.ID       `json:"service_id"`
	Name      string             `json:"name"`
	UnitPrice decimal.Decimal    `json:"unit_price"`
	Unit      catalogdomain.Unit `json:"unit"`
	Quantity  decimal.Decimal    `json:"quantity"`
}

// Subtotal is always derived, never stored, so it cannot drift from the
// quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(li.Quantity).Round(2)
}

// PaymentSelection snapshots the chosen payment method plus the operator's
// reference string.
type PaymentSelection struct {
	MethodID          snowflake.ID             `json:"method_id"`
	Name              string                   `json:"name"`
	Type              paymentmethoddomain.Type `json:"type"`
	RequiresReference bool                     `json:"requires_reference"`
	CommissionPercent *decimal.Decimal         `json:"commission_percent,omitempty"`
	Reference         string                   `json:"reference,omitempty"`
}

// Cart is the mutable invoice-in-progress aggregate. All mutations are
// serialized under one mutex so a session handler and a commit never race.
type Cart struct {
	mu sync.Mutex

	items        []LineItem
	customerID   *snowflake.ID
	deliveryDate *time.Time
	notes        string
	payment      *PaymentSelection
}

func New() *Cart {
	return &Cart{}
}

// AddService merges into an existing line when the service is already in the
// cart, otherwise appends a new line snapshotting the service's current name,
// price and unit.
func (c *Cart) AddService(svc *catalogdomain.Service, quantity decimal.Decimal) (LineItem, error) {
	if !quantity.IsPositive() {
		return LineItem{}, ErrInvalidQuantity
	}
	if svc == nil || !svc.Price.IsPositive() {
		return LineItem{}, ErrInvalidPrice
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ServiceID == svc.ID {
			c.items[i].Quantity = c.items[i].Quantity.Add(quantity)
			return c.items[i], nil
		}
	}

	line := LineItem{
		ID:        uuid.NewString(),
		ServiceID: svc.ID,
		Name:      svc.Name,
		UnitPrice: svc.Price,
		Unit:      svc.Unit,
		Quantity:  quantity,
	}
	c.items = append(c.items, line)
	return line, nil
}

// SetQuantity replaces a line's quantity. A non-positive quantity removes the
// line; a zero or negative quantity is never stored.
func (c *Cart) SetQuantity(lineID string, quantity decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	if !quantity.IsPositive() {
		c.removeAt(idx)
		return nil
	}
	c.items[idx].Quantity = quantity
	return nil
}

// Increment adds one to a line's quantity.
func (c *Cart) Increment(lineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	c.items[idx].Quantity = c.items[idx].Quantity.Add(decimal.NewFromInt(1))
	return nil
}

// Decrement subtracts one from a line's quantity, removing the line when the
// result would reach zero or below.
func (c *Cart) Decrement(lineID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	next := c.items[idx].Quantity.Sub(decimal.NewFromInt(1))
	if !next.IsPositive() {
		c.removeAt(idx)
		return nil
	}
	c.items[idx].Quantity = next
	return nil
}

// RemoveItem removes a line unconditionally. Removing an absent line is a
// no-op, so retried removals stay safe.
func (c *Cart) RemoveItem(lineID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOf(lineID); idx >= 0 {
		c.removeAt(idx)
	}
}

// Clear empties the cart and resets customer, delivery date, payment and
// notes. Called after a successful commit and on explicit "start over".
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.customerID = nil
	c.deliveryDate = nil
	c.notes = ""
	c.payment = nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemCount is the sum of all line quantities, not the number of distinct
// lines.
func (c *Cart) ItemCount() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := decimal.Zero
	for _, li := range c.items {
		count = count.Add(li.Quantity)
	}
	return count
}

func (c *Cart) SetCustomer(id *snowflake.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.customerID = id
}

func (c *Cart) CustomerID() *snowflake.ID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.customerID
}

func (c *Cart) SetDeliveryDate(date *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deliveryDate = date
}

func (c *Cart) DeliveryDate() *time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deliveryDate
}

func (c *Cart) SetNotes(notes string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notes = notes
}

func (c *Cart) Notes() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notes
}

// SetPaymentMethod records the chosen method. Switching to a method that does
// not require a reference drops any previously entered reference string.
func (c *Cart) SetPaymentMethod(method *paymentmethoddomain.PaymentMethod) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if method == nil {
		c.payment = nil
		return
	}

	selection := &PaymentSelection{
		MethodID:          method.ID,
		Name:              method.Name,
		Type:              method.Type,
		RequiresReference: method.RequiresReference,
		CommissionPercent: method.CommissionPercent,
	}
	if method.RequiresReference && c.payment != nil {
		selection.Reference = c.payment.Reference
	}
	c.payment = selection
}

// SetReference stores the payment reference text. It is only meaningful when
// the selected method requires one; commit re-validates that.
func (c *Cart) SetReference(reference string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.payment == nil {
		return ErrNoPaymentMethod
	}
	c.payment.Reference = reference
	return nil
}

// Payment returns a copy of the current payment selection, or nil when none
// has been made.
func (c *Cart) Payment() *PaymentSelection {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.payment == nil {
		return nil
	}
	selection := *c.payment
	return &selection
}

// CanCommit reports whether the cart is ready to be committed. It returns nil
// when ready, otherwise the first violated precondition.
func (c *Cart) CanCommit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return ErrEmptyCart
	}
	if c.payment == nil {
		return ErrNoPaymentMethod
	}
	if c.payment.RequiresReference && c.payment.Reference == "" {
		return ErrReferenceRequired
	}
	return nil
}

// Totals recomputes subtotal, tax and total from scratch on every call.
func (c *Cart) Totals(taxRate decimal.Decimal) Totals {
	return ComputeTotals(c.Items(), taxRate)
}

func (c *Cart) indexOf(lineID string) int {
	for i := range c.items {
		if c.items[i].ID == lineID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}
