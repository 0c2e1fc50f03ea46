package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/example/quickbasket/internal/storage"
)

var ErrNotFound = errors.New("tracking record not found")

// Store persists tracking records through the KV abstraction, one record
// per order.
type Store struct {
	kv storage.KV
}

// StorageKey returns the KV key an order's tracking record lives under.
func StorageKey(orderID string) string {
	return "tracking:" + orderID
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Create starts a record for a freshly placed order.
func (s *Store) Create(ctx context.Context, orderID string, estimatedArrival time.Time, first Update) error {
	t := &Tracking{
		OrderID:          orderID,
		Status:           first.Status,
		EstimatedArrival: estimatedArrival,
		Updates:          []Update{first},
	}
	return s.put(ctx, t)
}

// Get loads the record for an order.
func (s *Store) Get(ctx context.Context, orderID string) (*Tracking, error) {
	data, ok, err := s.kv.Get(ctx, StorageKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to load tracking record: %w", err)
	}
	if !ok {
		return nil, ErrNotFound
	}

	var t Tracking
	if err := json.Unmarshal(data, &t); err != nil {
		// Corrupt record: drop it rather than failing every read.
		log.Printf("[Tracking] Discarding corrupt record for order %s: %v", orderID, err)
		if err := s.kv.Delete(ctx, StorageKey(orderID)); err != nil {
			log.Printf("[Tracking] Failed to delete corrupt record for order %s: %v", orderID, err)
		}
		return nil, ErrNotFound
	}
	return &t, nil
}

// Append adds an update and mirrors the new status onto the record. A
// missing record is created on the fly so a transition never loses its
// history entry.
func (s *Store) Append(ctx context.Context, orderID string, update Update) error {
	t, err := s.Get(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		t = &Tracking{OrderID: orderID}
	} else if err != nil {
		return err
	}

	t.Status = update.Status
	t.Updates = append(t.Updates, update)
	return s.put(ctx, t)
}

// AssignPartner records the delivery partner and their position.
func (s *Store) AssignPartner(ctx context.Context, orderID string, partner Partner, location *Location) error {
	t, err := s.Get(ctx, orderID)
	if err != nil {
		return err
	}
	t.Partner = &partner
	t.CurrentLocation = location
	return s.put(ctx, t)
}

func (s *Store) put(ctx context.Context, t *Tracking) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal tracking record: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey(t.OrderID), data); err != nil {
		return fmt.Errorf("failed to persist tracking record: %w", err)
	}
	return nil
}
