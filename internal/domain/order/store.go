package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/example/quickbasket/internal/storage"
)

const indexKey = "orders:index"

// Store persists orders through the KV abstraction: each order under
// order:<id>, plus an id index for listings. The mutex serializes every
// read-modify-write cycle (Put and Update), so two admins racing on the same
// order see each other's writes and the loser fails the Version check.
type Store struct {
	mu sync.Mutex
	kv storage.KV
}

// StorageKey returns the KV key an order is persisted under.
func StorageKey(orderID string) string {
	return "order:" + orderID
}

func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Put inserts or overwrites an order and keeps the index current.
func (s *Store) Put(ctx context.Context, o *Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLocked(ctx, o)
}

func (s *Store) putLocked(ctx context.Context, o *Order) error {
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal order: %w", err)
	}
	if err := s.kv.Set(ctx, StorageKey(o.ID), data); err != nil {
		return fmt.Errorf("failed to persist order: %w", err)
	}

	ids, err := s.loadIndex(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == o.ID {
			return nil
		}
	}
	ids = append(ids, o.ID)
	return s.saveIndex(ctx, ids)
}

// Update loads an order, applies fn, and writes the result back, all while
// holding the store lock so concurrent read-check-write cycles on the same
// order cannot interleave. fn returning an error abandons the write. The
// lock only covers this process; running several API nodes against a shared
// Redis/Postgres/Dynamo backend would need a conditional write in the
// backend instead.
func (s *Store) Update(ctx context.Context, orderID string, fn func(*Order) error) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, err := s.load(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := fn(o); err != nil {
		return nil, err
	}
	if err := s.putLocked(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Get loads one order.
func (s *Store) Get(ctx context.Context, orderID string) (*Order, error) {
	return s.load(ctx, orderID)
}

func (s *Store) load(ctx context.Context, orderID string) (*Order, error) {
	data, ok, err := s.kv.Get(ctx, StorageKey(orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if !ok {
		return nil, ErrOrderNotFound
	}

	var o Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order %s: %w", orderID, err)
	}
	return &o, nil
}

// ListByUser returns a user's orders in insertion order.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]*Order, 0)
	for _, o := range all {
		if o.UserID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// ListAll returns every order, for admin views.
func (s *Store) ListAll(ctx context.Context) ([]*Order, error) {
	ids, err := s.loadIndex(ctx)
	if err != nil {
		return nil, err
	}

	orders := make([]*Order, 0, len(ids))
	for _, id := range ids {
		o, err := s.Get(ctx, id)
		if err != nil {
			// An indexed order that fails to load is skipped, not fatal.
			log.Printf("[Order] Skipping unreadable order %s: %v", id, err)
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (s *Store) loadIndex(ctx context.Context) ([]string, error) {
	data, ok, err := s.kv.Get(ctx, indexKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load order index: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		log.Printf("[Order] Discarding corrupt order index: %v", err)
		return nil, nil
	}
	return ids, nil
}

func (s *Store) saveIndex(ctx context.Context, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to marshal order index: %w", err)
	}
	if err := s.kv.Set(ctx, indexKey, data); err != nil {
		return fmt.Errorf("failed to persist order index: %w", err)
	}
	return nil
}
