package email

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/example/quickbasket/internal/catalog"
	"github.com/example/quickbasket/internal/domain/order"
	"github.com/example/quickbasket/internal/notify"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		paise int64
		want  string
	}{
		{0, "₹0.00"},
		{50, "₹0.50"},
		{4000, "₹40.00"},
		{50000, "₹500.00"},
		{123456, "₹1,234.56"},
		{100000000, "₹1,000,000.00"},
		{-4000, "-₹40.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.paise))
	}
}

func TestBuildOrderConfirmationBody(t *testing.T) {
	o := &order.Order{
		ID: "ORD-TEST1234",
		Items: []order.Item{
			{Product: catalog.Product{Name: "Fresh Organic Apples"}, Quantity: 2, Price: 12000},
		},
		Subtotal:          24000,
		Tax:               1200,
		DeliveryFee:       4000,
		Total:             29200,
		EstimatedDelivery: time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC),
	}

	body := BuildOrderConfirmationBody(o)
	assert.Contains(t, body, "ORD-TEST1234")
	assert.Contains(t, body, "Fresh Organic Apples")
	assert.Contains(t, body, "₹292.00")
	assert.Contains(t, body, "₹40.00")
}

func TestBuildOrderConfirmationBodyFreeDelivery(t *testing.T) {
	o := &order.Order{
		ID:       "ORD-TEST1234",
		Subtotal: 60000,
		Tax:      3000,
		Total:    63000,
	}

	assert.Contains(t, BuildOrderConfirmationBody(o), "FREE")
}

func TestBuildNotificationBody(t *testing.T) {
	n := notify.Notification{Title: "Out for Delivery", Description: "Your order is out for delivery."}

	body := BuildNotificationBody(n)
	assert.Contains(t, body, "Out for Delivery")
	assert.Contains(t, body, "Your order is out for delivery.")
}
