package cart

import (
	"errors"
)

// Pricing rules. Amounts are in paise.
const (
	TaxRatePercent        = 5
	FreeDeliveryThreshold = 50000 // subtotal above this ships free
	DeliveryFee           = 4000
)

var (
	ErrInvalidProduct  = errors.New("product_id is required")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrProductNotFound = errors.New("product not found")
)

// Line is one product/quantity pairing. The unit price is never stored on
// the line; totals always read the live catalog price.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the lines a shopper intends to purchase. At most one line per
// product; insertion order is preserved for display.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges quantity into an existing line or appends a new one. The
// resulting quantity is clamped to [1, stock].
func (c *Cart) Add(productID string, quantity, stock int) {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines[i].Quantity = clampQuantity(line.Quantity+quantity, stock)
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ProductID: productID,
		Quantity:  clampQuantity(quantity, stock),
	})
}

// Remove deletes the line for productID. Removing an absent product is a
// no-op.
func (c *Cart) Remove(productID string) {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// SetQuantity overwrites a line's quantity, clamped to [1, stock]. A
// quantity of zero or less removes the line. Setting an absent product is a
// no-op.
func (c *Cart) SetQuantity(productID string, quantity, stock int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i, line := range c.Lines {
		if line.ProductID == productID {
			c.Lines[i].Quantity = clampQuantity(quantity, stock)
			return
		}
	}
}

// Clear empties all lines.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Quantity returns the current quantity for productID, zero when absent.
func (c *Cart) Quantity(productID string) int {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func clampQuantity(quantity, stock int) int {
	if stock > 0 && quantity > stock {
		return stock
	}
	if quantity < 1 {
		return 1
	}
	return quantity
}
