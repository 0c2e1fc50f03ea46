package order

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/quickbasket/internal/domain/tracking"
	"github.com/example/quickbasket/internal/notify"
)

// Service owns order lifecycle rules: placement, the status state machine,
// and the side effects of a transition (tracking history, notification).
type Service struct {
	store    *Store
	tracking *tracking.Store
	sink     notify.Sink
}

func NewService(store *Store, trackingStore *tracking.Store, sink notify.Sink) *Service {
	return &Service{
		store:    store,
		tracking: trackingStore,
		sink:     sink,
	}
}

// Place persists a freshly created order snapshot and opens its tracking
// record. The order arrives fully priced from checkout; Place only assigns
// lifecycle fields.
func (s *Service) Place(ctx context.Context, o *Order) error {
	if len(o.Items) == 0 {
		return ErrEmptyOrder
	}

	o.Status = StatusPending
	o.Version = 1
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}

	if err := s.store.Put(ctx, o); err != nil {
		return err
	}

	if err := s.tracking.Create(ctx, o.ID, o.EstimatedDelivery, tracking.Update{
		Status:      StatusPending.DisplayName(),
		Timestamp:   o.CreatedAt,
		Description: StatusPending.description(),
	}); err != nil {
		log.Printf("[Order] Failed to create tracking record for order %s: %v", o.ID, err)
	}

	s.publish(ctx, o.UserID, "Order placed",
		fmt.Sprintf("Order %s has been placed successfully.", o.ID), notify.SeveritySuccess)
	return nil
}

// Get loads one order.
func (s *Service) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.store.Get(ctx, orderID)
}

// ListByUser returns the user's order history.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	return s.store.ListByUser(ctx, userID)
}

// ListAll returns every order, for admin views.
func (s *Service) ListAll(ctx context.Context) ([]*Order, error) {
	return s.store.ListAll(ctx)
}

// Tracking returns the delivery record for an order.
func (s *Service) Tracking(ctx context.Context, orderID string) (*tracking.Tracking, error) {
	return s.tracking.Get(ctx, orderID)
}

// SetStatus applies one transition. expectedVersion must match the stored
// order; a mismatch means another admin changed the order first and the
// caller must re-read before retrying. Every accepted transition appends a
// tracking update and notifies the shopper.
func (s *Service) SetStatus(ctx context.Context, orderID string, next Status, expectedVersion int) (*Order, error) {
	// The check and the write run as one locked Update so two concurrent
	// transitions at the same expectedVersion cannot both pass: the loser
	// re-reads the winner's version and fails the conflict check.
	o, err := s.store.Update(ctx, orderID, func(o *Order) error {
		if o.Version != expectedVersion {
			return fmt.Errorf("%w: order %s is at version %d, expected %d",
				ErrVersionConflict, orderID, o.Version, expectedVersion)
		}
		if !o.Status.CanTransitionTo(next) {
			return o.Status.transitionError(next)
		}

		o.Status = next
		o.Version++
		if next == StatusCancelled && o.PaymentStatus == PaymentStatusPaid {
			o.PaymentStatus = PaymentStatusRefunded
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.tracking.Append(ctx, orderID, tracking.Update{
		Status:      next.DisplayName(),
		Timestamp:   time.Now(),
		Description: next.description(),
	}); err != nil {
		log.Printf("[Order] Failed to append tracking update for order %s: %v", orderID, err)
	}

	severity := notify.SeverityInfo
	if next == StatusCancelled {
		severity = notify.SeverityError
	}
	s.publish(ctx, o.UserID, next.DisplayName(),
		fmt.Sprintf("Order %s: %s", o.ID, next.description()), severity)

	return o, nil
}

// AssignDeliveryPartner records who is delivering the order and where they
// are, for the tracking view.
func (s *Service) AssignDeliveryPartner(ctx context.Context, orderID string, partner tracking.Partner, location *tracking.Location) error {
	if _, err := s.store.Get(ctx, orderID); err != nil {
		return err
	}
	return s.tracking.AssignPartner(ctx, orderID, partner, location)
}

func (s *Service) publish(ctx context.Context, userID, title, description string, severity notify.Severity) {
	if s.sink == nil {
		return
	}
	n := notify.New(userID, title, description, severity)
	if err := s.sink.Publish(ctx, n); err != nil {
		log.Printf("[Order] Failed to publish notification for user %s: %v", userID, err)
	}
}
