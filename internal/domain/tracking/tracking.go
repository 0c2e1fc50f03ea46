package tracking

import "time"

// Partner is the delivery person assigned to an order.
type Partner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Image string `json:"image,omitempty"`
}

// Location is the partner's last reported position.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Update is one entry in an order's delivery history. The sequence is
// append-only; entries are never edited or removed.
type Update struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
}

// Tracking is the delivery record for one order. Records are retained after
// the order reaches a terminal status so the history stays auditable.
type Tracking struct {
	OrderID          string    `json:"order_id"`
	Status           string    `json:"status"`
	Partner          *Partner  `json:"delivery_partner,omitempty"`
	CurrentLocation  *Location `json:"current_location,omitempty"`
	EstimatedArrival time.Time `json:"estimated_arrival"`
	Updates          []Update  `json:"updates"`
}
