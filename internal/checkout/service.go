package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/example/quickbasket/internal/domain/cart"
	"github.com/example/quickbasket/internal/domain/order"
	"github.com/example/quickbasket/internal/identity"
)

var (
	ErrEmptyCart         = errors.New("cannot check out an empty cart")
	ErrUnknownAddress    = errors.New("delivery address not found")
	ErrIncompleteAddress = errors.New("delivery address is missing required fields")
)

const deliveryWindow = 2 * time.Hour

// Service turns a shopper's cart into a placed order. The snapshot freezes
// product details and prices at the moment of checkout; the cart is cleared
// only after the order is durably stored.
type Service struct {
	orders *order.Service
}

func NewService(orders *order.Service) *Service {
	return &Service{orders: orders}
}

// PlaceOrder validates the form, snapshots the cart and places the order.
// Totals on the order are the same derivation the cart displayed, so the
// shopper is charged exactly what they saw.
func (s *Service) PlaceOrder(ctx context.Context, session *cart.Session, user *identity.User, form *Form) (*order.Order, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if session.IsEmpty() {
		return nil, ErrEmptyCart
	}

	address, ok := addressByID(user, form.AddressID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAddress, form.AddressID)
	}
	if address.Line1 == "" || address.City == "" || address.State == "" || address.PostalCode == "" {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteAddress, form.AddressID)
	}

	views := session.Items(ctx)
	if len(views) == 0 {
		// Every line pointed at a product that no longer exists.
		return nil, ErrEmptyCart
	}

	items := make([]order.Item, 0, len(views))
	var subtotal int64
	for _, v := range views {
		items = append(items, order.Item{
			Product:  v.Product,
			Quantity: v.Quantity,
			Price:    v.Product.Price,
		})
		subtotal += v.Product.Price * int64(v.Quantity)
	}
	totals := cart.TotalsFor(subtotal)

	method := order.PaymentMethod(form.PaymentMethod)
	now := time.Now()
	o := &order.Order{
		ID:                newOrderID(),
		UserID:            user.ID,
		Items:             items,
		Subtotal:          totals.Subtotal,
		Tax:               totals.Tax,
		DeliveryFee:       totals.DeliveryFee,
		Total:             totals.Total,
		PaymentStatus:     settle(method),
		PaymentMethod:     method,
		DeliveryAddress:   address,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(deliveryWindow),
	}
	if o.PaymentStatus == order.PaymentStatusPaid {
		o.PaymentID = newPaymentID()
	}

	if err := s.orders.Place(ctx, o); err != nil {
		return nil, err
	}

	if err := session.Clear(ctx); err != nil {
		// The order is already placed; an unclearable cart is not fatal.
		log.Printf("[Checkout] Failed to clear cart for user %s after order %s: %v", user.ID, o.ID, err)
	}
	return o, nil
}

// settle resolves the initial payment status. Cash on delivery stays
// pending until handover; everything else settles at checkout.
func settle(method order.PaymentMethod) order.PaymentStatus {
	if method == order.PaymentCOD {
		return order.PaymentStatusPending
	}
	return order.PaymentStatusPaid
}

func addressByID(user *identity.User, addressID string) (identity.Address, bool) {
	for _, a := range user.Addresses {
		if a.ID == addressID {
			return a, true
		}
	}
	return identity.Address{}, false
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.New().String()[:8])
}

func newPaymentID() string {
	return "PAY-" + strings.ToUpper(uuid.New().String()[:8])
}
