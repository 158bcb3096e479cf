// Package pos holds the arithmetic core of the point of sale: the cart
// engine, payment reconciliation and return/exchange reconciliation.
// Everything in this package is synchronous and pure over in-memory state;
// it has no HTTP, database or rendering dependency. Monetary values are
// decimals at full precision, rounded to the currency's two minor-unit
// places only when a payload leaves the engine.
package pos

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hmidach/librapos-api/internal/domain/enum"
)

// Product is the catalog snapshot the cart works against. The engine only
// reads it; the catalog owns the record.
type Product struct {
	ID           uuid.UUID
	Name         string
	UnitPrice    decimal.Decimal
	AvailableQty int
}

// Discount is a per-line or cart-wide reduction: a percentage of the base
// in [0,100], or a fixed amount clamped so totals never go negative.
type Discount struct {
	Type  enum.DiscountType
	Value decimal.Decimal
}

// NewDiscount validates and builds a discount.
func NewDiscount(dtype enum.DiscountType, value decimal.Decimal) (Discount, error) {
	if !dtype.IsValid() {
		return Discount{}, ErrInvalidDiscount
	}
	if value.IsNegative() {
		return Discount{}, ErrInvalidAmount
	}
	if dtype == enum.DiscountTypePercentage && value.GreaterThan(decimal.NewFromInt(100)) {
		return Discount{}, ErrInvalidPercentage
	}
	return Discount{Type: dtype, Value: value}, nil
}

// AmountOff returns how much the discount takes off the given base,
// clamped to [0, base].
func (d Discount) AmountOff(base decimal.Decimal) decimal.Decimal {
	var off decimal.Decimal
	switch d.Type {
	case enum.DiscountTypePercentage:
		off = base.Mul(d.Value).Div(decimal.NewFromInt(100))
	case enum.DiscountTypeAmount:
		off = d.Value
	}
	if off.GreaterThan(base) {
		return base
	}
	if off.IsNegative() {
		return decimal.Zero
	}
	return off
}

// IsZero reports whether the discount reduces nothing.
func (d Discount) IsZero() bool {
	return d.Value.IsZero()
}

// CartLine is one product entry in an in-progress sale. The unit price is
// captured when the line is created; later catalog price changes do not
// touch it.
type CartLine struct {
	ProductID uuid.UUID
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Discount  *Discount
}

// GrossTotal is quantity times unit price, before any discount.
func (l *CartLine) GrossTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total is the line total after the line discount, never negative.
func (l *CartLine) Total() decimal.Decimal {
	gross := l.GrossTotal()
	if l.Discount == nil {
		return gross
	}
	return gross.Sub(l.Discount.AmountOff(gross))
}

// Cart holds the line items and optional global discount for one checkout
// session. It is owned by a single flow and is not safe for concurrent use.
type Cart struct {
	lines  []*CartLine
	global *Discount
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

func (c *Cart) find(productID uuid.UUID) *CartLine {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l
		}
	}
	return nil
}

// AddItem adds quantity units of the product, merging into an existing line
// for the same product. The combined quantity must not exceed the product's
// available quantity; if it would, the cart is left unchanged and an
// InsufficientStockError is returned.
func (c *Cart) AddItem(p Product, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	if line := c.find(p.ID); line != nil {
		if line.Quantity+quantity > p.AvailableQty {
			return &InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.AvailableQty,
				Requested:   line.Quantity + quantity,
			}
		}
		line.Quantity += quantity
		return nil
	}

	if p.AvailableQty <= 0 || quantity > p.AvailableQty {
		return &InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   p.AvailableQty,
			Requested:   quantity,
		}
	}

	c.lines = append(c.lines, &CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.UnitPrice,
		Quantity:  quantity,
	})
	return nil
}

// SetQuantity overwrites a line's quantity. Zero removes the line. The
// stock ceiling binds only at AddItem; quantity edits may exceed displayed
// stock (manual and offline entries are legitimate), but negative values
// are rejected.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	line := c.find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	if quantity == 0 {
		c.RemoveItem(productID)
		return nil
	}
	line.Quantity = quantity
	return nil
}

// RemoveItem removes the line for the product. Removing an absent product
// is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for i, l := range c.lines {
		if l.ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetLineDiscount applies a discount to one line. A zero-valued discount
// clears any existing one.
func (c *Cart) SetLineDiscount(productID uuid.UUID, dtype enum.DiscountType, value decimal.Decimal) error {
	line := c.find(productID)
	if line == nil {
		return ErrLineNotFound
	}
	d, err := NewDiscount(dtype, value)
	if err != nil {
		return err
	}
	if d.IsZero() {
		line.Discount = nil
		return nil
	}
	line.Discount = &d
	return nil
}

// SetGlobalDiscount applies a discount to the sum of the line totals.
func (c *Cart) SetGlobalDiscount(dtype enum.DiscountType, value decimal.Decimal) error {
	d, err := NewDiscount(dtype, value)
	if err != nil {
		return err
	}
	if d.IsZero() {
		c.global = nil
		return nil
	}
	c.global = &d
	return nil
}

// ClearGlobalDiscount removes the cart-wide discount.
func (c *Cart) ClearGlobalDiscount() {
	c.global = nil
}

// Clear empties the cart and resets all discounts.
func (c *Cart) Clear() {
	c.lines = nil
	c.global = nil
}

// Line returns a copy of the line for the product, if present.
func (c *Cart) Line(productID uuid.UUID) (CartLine, bool) {
	if l := c.find(productID); l != nil {
		return *l, true
	}
	return CartLine{}, false
}

// Lines returns copies of all lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	for i, l := range c.lines {
		out[i] = *l
	}
	return out
}

// GlobalDiscount returns the cart-wide discount, if set.
func (c *Cart) GlobalDiscount() *Discount {
	if c.global == nil {
		return nil
	}
	d := *c.global
	return &d
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// TotalQuantity is the sum of all line quantities.
func (c *Cart) TotalQuantity() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of line totals before the global discount.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// GlobalDiscountAmount is how much the global discount takes off the
// subtotal, clamped so the total never goes negative.
func (c *Cart) GlobalDiscountAmount() decimal.Decimal {
	if c.global == nil {
		return decimal.Zero
	}
	return c.global.AmountOff(c.Subtotal())
}

// Total is the amount due: subtotal minus the global discount, floored at
// zero.
func (c *Cart) Total() decimal.Decimal {
	total := c.Subtotal().Sub(c.GlobalDiscountAmount())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
