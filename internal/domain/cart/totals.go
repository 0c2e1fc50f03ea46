package cart

// Totals are the derived cart amounts in paise. They are never stored;
// every read recomputes them from the current lines and live prices.
type Totals struct {
	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
}

// PriceFunc resolves a product's current unit price. The second return is
// false when the product no longer exists; such lines do not contribute to
// the totals.
type PriceFunc func(productID string) (int64, bool)

// Totals computes subtotal, tax, delivery fee and total over the surviving
// lines.
func (c *Cart) Totals(price PriceFunc) Totals {
	var subtotal int64
	for _, line := range c.Lines {
		unitPrice, ok := price(line.ProductID)
		if !ok {
			continue
		}
		subtotal += unitPrice * int64(line.Quantity)
	}
	return TotalsFor(subtotal)
}

// TotalsFor derives the full totals from a subtotal. Checkout uses the same
// function so an order's frozen amounts match what the cart showed.
func TotalsFor(subtotal int64) Totals {
	t := Totals{
		Subtotal: subtotal,
		Tax:      taxOn(subtotal),
	}
	if subtotal > 0 && subtotal <= FreeDeliveryThreshold {
		t.DeliveryFee = DeliveryFee
	}
	t.Total = t.Subtotal + t.Tax + t.DeliveryFee
	return t
}

// taxOn is 5% of the subtotal, rounded half up to the nearest paisa.
func taxOn(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}
