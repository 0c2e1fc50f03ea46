package order

import (
	"errors"
	"time"

	"github.com/example/quickbasket/internal/catalog"
	"github.com/example/quickbasket/internal/identity"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrEmptyOrder      = errors.New("order must have at least one item")
	ErrVersionConflict = errors.New("order was modified concurrently")
)

// PaymentMethod is how the shopper chose to pay.
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentUPI    PaymentMethod = "upi"
	PaymentCOD    PaymentMethod = "cod"
	PaymentWallet PaymentMethod = "wallet"
)

// PaymentStatus tracks settlement, independent of delivery status.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Item is one order line. Product and price are snapshots frozen at
// checkout; later catalog changes never alter a placed order.
type Item struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Price    int64           `json:"price"` // unit price at purchase, paise
}

// Order is the immutable purchase snapshot plus the mutable Status. Version
// increments on every status change and guards concurrent admin updates.
type Order struct {
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	Items             []Item           `json:"items"`
	Subtotal          int64            `json:"subtotal"`
	Tax               int64            `json:"tax"`
	DeliveryFee       int64            `json:"delivery_fee"`
	Discount          int64            `json:"discount"`
	Total             int64            `json:"total"`
	Status            Status           `json:"status"`
	PaymentStatus     PaymentStatus    `json:"payment_status"`
	PaymentMethod     PaymentMethod    `json:"payment_method"`
	PaymentID         string           `json:"payment_id,omitempty"` // empty until payment settles
	DeliveryAddress   identity.Address `json:"delivery_address"`
	CreatedAt         time.Time        `json:"created_at"`
	EstimatedDelivery time.Time        `json:"estimated_delivery"`
	Version           int              `json:"version"`
}
