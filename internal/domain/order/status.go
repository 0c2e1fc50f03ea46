package order

import (
	"errors"
	"fmt"
)

// Status is an order's lifecycle state.
type Status string

const (
	StatusPending        Status = "pending"
	StatusConfirmed      Status = "confirmed"
	StatusPreparing      Status = "preparing"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

var (
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrTerminalStatus    = errors.New("order is in a terminal status")
)

// validTransitions is the full transition graph: strictly forward along the
// delivery sequence, with cancellation reachable from any non-terminal
// state. Skipping forward or moving backward is not allowed.
var validTransitions = map[Status][]Status{
	StatusPending:        {StatusConfirmed, StatusCancelled},
	StatusConfirmed:      {StatusPreparing, StatusCancelled},
	StatusPreparing:      {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered, StatusCancelled},
	StatusDelivered:      {}, // terminal
	StatusCancelled:      {}, // terminal
}

// ParseStatus validates a status string from the outside world.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := validTransitions[status]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// IsTerminal reports whether no further transitions are permitted.
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// CanTransitionTo checks the transition graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range validTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// transitionError returns the typed error for a rejected transition.
func (s Status) transitionError(target Status) error {
	if s.IsTerminal() {
		return fmt.Errorf("%w: %s accepts no further transitions", ErrTerminalStatus, s)
	}
	return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, s, target)
}

// DisplayName is the customer-facing label used in tracking updates.
func (s Status) DisplayName() string {
	switch s {
	case StatusPending:
		return "Order Placed"
	case StatusConfirmed:
		return "Order Confirmed"
	case StatusPreparing:
		return "Preparing"
	case StatusOutForDelivery:
		return "Out for Delivery"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}

// description is the customer-facing sentence for a tracking update.
func (s Status) description() string {
	switch s {
	case StatusPending:
		return "Your order has been placed successfully."
	case StatusConfirmed:
		return "Your order has been confirmed and is being prepared."
	case StatusPreparing:
		return "Your order is being prepared."
	case StatusOutForDelivery:
		return "Your order is out for delivery."
	case StatusDelivered:
		return "Your order has been delivered."
	case StatusCancelled:
		return "Your order has been cancelled."
	}
	return ""
}
