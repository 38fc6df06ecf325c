package cart

import (
	"github.com/shopspring/decimal"

	"github.com/PAUpau912/maki-kape-pos-system/pkg/db/models"
)

// Line pairs a product snapshot (as seen at add time) with a quantity.
// Invariant: 1 <= Quantity <= Product.Stock for as long as the line exists.
type Line struct {
	Product  models.Product
	Quantity int
}

// Subtotal is quantity times the snapshotted unit price, unrounded.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds at most one line per product. Insertion order is preserved
// for display. Cart is not safe for concurrent use; the owning session
// serializes access.
type Cart struct {
	lines []*Line
	index map[int64]*Line
}

func New() *Cart {
	return &Cart{index: make(map[int64]*Line)}
}

// Add inserts the product with quantity 1 or increments an existing line.
// Unsellable products and lines already at the stock ceiling are ignored
// without signal: the caller has no feedback channel for these.
// It reports whether the cart changed.
func (c *Cart) Add(product models.Product) bool {
	if !product.Sellable() {
		return false
	}
	if line, ok := c.index[product.ID]; ok {
		if line.Quantity >= line.Product.Stock {
			return false
		}
		line.Quantity++
		return true
	}
	line := &Line{Product: product, Quantity: 1}
	c.lines = append(c.lines, line)
	c.index[product.ID] = line
	return true
}

// SetQuantity sets the line quantity clamped to the snapshotted stock,
// floored at 1. Reports whether a line for the product exists.
func (c *Cart) SetQuantity(productID int64, qty int) bool {
	line, ok := c.index[productID]
	if !ok {
		return false
	}
	if qty < 1 {
		qty = 1
	}
	if qty > line.Product.Stock {
		qty = line.Product.Stock
	}
	line.Quantity = qty
	return true
}

// Remove deletes the line unconditionally.
func (c *Cart) Remove(productID int64) {
	if _, ok := c.index[productID]; !ok {
		return
	}
	delete(c.index, productID)
	for i, line := range c.lines {
		if line.Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	for i, line := range c.lines {
		out[i] = *line
	}
	return out
}

// TotalAmount sums quantity times unit price over all lines. No rounding
// happens here; presentation rounds to two decimals.
func (c *Cart) TotalAmount() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// TotalItems is the summed quantity across lines (cart badge count).
func (c *Cart) TotalItems() int {
	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Clear drops every line.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[int64]*Line)
}
