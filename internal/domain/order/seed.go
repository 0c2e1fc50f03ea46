package order

import (
	"context"
	"fmt"
	"time"

	"github.com/example/quickbasket/internal/catalog"
	"github.com/example/quickbasket/internal/domain/tracking"
	"github.com/example/quickbasket/internal/identity"
)

// Seed loads the demo order history so the storefront has data on first
// boot. ORD12345 finished its lifecycle; ORD12346 is mid-delivery with an
// assigned partner.
func Seed(ctx context.Context, store *Store, trackingStore *tracking.Store, cat catalog.Provider) error {
	homeAddress := identity.Address{
		ID:         "1",
		Name:       "Home",
		Line1:      "123 Main St",
		Line2:      "Apt 4B",
		City:       "New York",
		State:      "NY",
		PostalCode: "10001",
		IsDefault:  true,
	}

	item := func(productID string, quantity int) (Item, error) {
		p, ok, err := cat.GetProduct(ctx, productID)
		if err != nil {
			return Item{}, err
		}
		if !ok {
			return Item{}, fmt.Errorf("seed product %s is not in the catalog", productID)
		}
		return Item{Product: p, Quantity: quantity, Price: p.Price}, nil
	}

	apples, err := item("1", 2)
	if err != nil {
		return err
	}
	milk, err := item("2", 1)
	if err != nil {
		return err
	}
	bread, err := item("3", 1)
	if err != nil {
		return err
	}
	juice, err := item("4", 2)
	if err != nil {
		return err
	}

	delivered := &Order{
		ID:                "ORD12345",
		UserID:            "1",
		Items:             []Item{apples, milk},
		Subtotal:          28000,
		Tax:               1400,
		DeliveryFee:       4000,
		Discount:          3400,
		Total:             30000,
		Status:            StatusDelivered,
		PaymentStatus:     PaymentStatusPaid,
		PaymentMethod:     PaymentCard,
		PaymentID:         "PAY98765",
		DeliveryAddress:   homeAddress,
		CreatedAt:         time.Date(2023, 5, 15, 10, 30, 0, 0, time.UTC),
		EstimatedDelivery: time.Date(2023, 5, 15, 12, 30, 0, 0, time.UTC),
		Version:           5, // placed + four transitions
	}

	outForDelivery := &Order{
		ID:                "ORD12346",
		UserID:            "1",
		Items:             []Item{bread, juice},
		Subtotal:          20000,
		Tax:               1000,
		DeliveryFee:       4000,
		Discount:          3000,
		Total:             22000,
		Status:            StatusOutForDelivery,
		PaymentStatus:     PaymentStatusPaid,
		PaymentMethod:     PaymentUPI,
		PaymentID:         "PAY98766",
		DeliveryAddress:   homeAddress,
		CreatedAt:         time.Date(2023, 6, 20, 14, 45, 0, 0, time.UTC),
		EstimatedDelivery: time.Date(2023, 6, 20, 16, 45, 0, 0, time.UTC),
		Version:           4,
	}

	for _, o := range []*Order{delivered, outForDelivery} {
		if err := store.Put(ctx, o); err != nil {
			return err
		}
	}

	if err := trackingStore.Create(ctx, outForDelivery.ID, outForDelivery.EstimatedDelivery, tracking.Update{
		Status:      StatusPending.DisplayName(),
		Timestamp:   outForDelivery.CreatedAt,
		Description: "Your order has been placed successfully.",
	}); err != nil {
		return err
	}
	if err := trackingStore.Append(ctx, outForDelivery.ID, tracking.Update{
		Status:      StatusConfirmed.DisplayName(),
		Timestamp:   outForDelivery.CreatedAt.Add(5 * time.Minute),
		Description: "Your order has been confirmed and is being prepared.",
	}); err != nil {
		return err
	}
	if err := trackingStore.Append(ctx, outForDelivery.ID, tracking.Update{
		Status:      StatusOutForDelivery.DisplayName(),
		Timestamp:   outForDelivery.CreatedAt.Add(45 * time.Minute),
		Description: "Your order is out for delivery with Michael Johnson.",
	}); err != nil {
		return err
	}
	return trackingStore.AssignPartner(ctx, outForDelivery.ID,
		tracking.Partner{ID: "DEL789", Name: "Michael Johnson", Phone: "+1234567890"},
		&tracking.Location{Lat: 40.7128, Lng: -74.006})
}
