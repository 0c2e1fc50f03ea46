package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fixedPrices(prices map[string]int64) PriceFunc {
	return func(productID string) (int64, bool) {
		p, ok := prices[productID]
		return p, ok
	}
}

// ============================================
// Line Mutation Tests
// ============================================

func TestCart_Add_NewLine(t *testing.T) {
	var c Cart

	c.Add("prod-1", 2, 50)

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Quantity("prod-1"))
}

func TestCart_Add_MergesExistingLine(t *testing.T) {
	var c Cart

	c.Add("prod-1", 2, 50)
	c.Add("prod-1", 3, 50)

	// Never a second line for the same product.
	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Quantity("prod-1"))
}

func TestCart_Add_ClampsToStock(t *testing.T) {
	var c Cart

	c.Add("prod-1", 4, 5)
	c.Add("prod-1", 4, 5)

	assert.Equal(t, 5, c.Quantity("prod-1"))
}

func TestCart_Add_PreservesInsertionOrder(t *testing.T) {
	var c Cart

	c.Add("prod-3", 1, 10)
	c.Add("prod-1", 1, 10)
	c.Add("prod-2", 1, 10)
	c.Add("prod-1", 1, 10) // merge must not reorder

	ids := make([]string, len(c.Lines))
	for i, line := range c.Lines {
		ids[i] = line.ProductID
	}
	assert.Equal(t, []string{"prod-3", "prod-1", "prod-2"}, ids)
}

func TestCart_Remove(t *testing.T) {
	var c Cart
	c.Add("prod-1", 2, 50)
	c.Add("prod-2", 1, 50)

	c.Remove("prod-1")

	assert.Len(t, c.Lines, 1)
	assert.Zero(t, c.Quantity("prod-1"))
}

func TestCart_Remove_AbsentIsNoop(t *testing.T) {
	var c Cart
	c.Add("prod-1", 2, 50)

	c.Remove("prod-99")

	assert.Len(t, c.Lines, 1)
}

func TestCart_SetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		stock    int
		expected int
	}{
		{"overwrite", 7, 50, 7},
		{"clamped to stock", 100, 50, 50},
		{"minimum one", 1, 50, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Cart
			c.Add("prod-1", 2, tt.stock)

			c.SetQuantity("prod-1", tt.quantity, tt.stock)

			assert.Equal(t, tt.expected, c.Quantity("prod-1"))
		})
	}
}

func TestCart_SetQuantity_ZeroRemovesLine(t *testing.T) {
	var c Cart
	c.Add("prod-1", 2, 50)

	c.SetQuantity("prod-1", 0, 50)

	assert.True(t, c.IsEmpty())
}

func TestCart_SetQuantity_NegativeRemovesLine(t *testing.T) {
	var c Cart
	c.Add("prod-1", 2, 50)

	c.SetQuantity("prod-1", -3, 50)

	assert.True(t, c.IsEmpty())
}

func TestCart_Clear(t *testing.T) {
	var c Cart
	c.Add("prod-1", 2, 50)
	c.Add("prod-2", 1, 50)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, Totals{}, c.Totals(fixedPrices(nil)))
}

// ============================================
// Derived Totals Tests
// ============================================

func TestCart_Totals_Subtotal(t *testing.T) {
	var c Cart
	c.Add("prod-1", 2, 50) // 2 x 12000
	c.Add("prod-2", 1, 50) // 1 x 6000

	totals := c.Totals(fixedPrices(map[string]int64{"prod-1": 12000, "prod-2": 6000}))

	assert.Equal(t, int64(30000), totals.Subtotal)
	assert.Equal(t, int64(1500), totals.Tax)
	assert.Equal(t, int64(4000), totals.DeliveryFee) // 300.00 <= 500.00
	assert.Equal(t, int64(35500), totals.Total)
}

func TestCart_Totals_SkipsVanishedProducts(t *testing.T) {
	var c Cart
	c.Add("prod-1", 2, 50)
	c.Add("gone", 5, 50)

	totals := c.Totals(fixedPrices(map[string]int64{"prod-1": 10000}))

	assert.Equal(t, int64(20000), totals.Subtotal)
}

func TestCart_Totals_TracksLivePrice(t *testing.T) {
	var c Cart
	c.Add("prod-1", 1, 50)

	before := c.Totals(fixedPrices(map[string]int64{"prod-1": 10000}))
	after := c.Totals(fixedPrices(map[string]int64{"prod-1": 15000}))

	assert.Equal(t, int64(10000), before.Subtotal)
	assert.Equal(t, int64(15000), after.Subtotal)
}

func TestTotalsFor_DeliveryFeeBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		fee      int64
	}{
		{"well under threshold", 49999, 4000},
		{"exactly 500.00", 50000, 4000},
		{"just over 500.00", 50001, 0},
		{"well over threshold", 100000, 0},
		{"empty cart", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			totals := TotalsFor(tt.subtotal)
			assert.Equal(t, tt.fee, totals.DeliveryFee)
		})
	}
}

func TestTotalsFor_TaxIsFivePercent(t *testing.T) {
	tests := []struct {
		subtotal int64
		tax      int64
	}{
		{28000, 1400}, // 280.00 -> 14.00
		{30000, 1500},
		{50001, 2500}, // rounds half up to nearest paisa
		{1, 0},
		{10, 1}, // 0.5 paise rounds up
	}

	for _, tt := range tests {
		totals := TotalsFor(tt.subtotal)
		assert.Equal(t, tt.tax, totals.Tax, "subtotal=%d", tt.subtotal)
	}
}

func TestTotalsFor_TotalIsSumOfParts(t *testing.T) {
	totals := TotalsFor(30000)

	assert.Equal(t, totals.Subtotal+totals.Tax+totals.DeliveryFee, totals.Total)
}
