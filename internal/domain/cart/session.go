package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/example/quickbasket/internal/catalog"
	"github.com/example/quickbasket/internal/notify"
	"github.com/example/quickbasket/internal/storage"
)

// Session owns one shopper's cart for the lifetime of their visit. The pure
// Cart core holds the state; the session loads it from durable storage at
// construction, persists it after every accepted mutation, and tells the
// notification sink what happened. The manager hands the same session to
// every request for a user, so the mutex guards the cart against concurrent
// requests.
type Session struct {
	userID  string
	key     string
	catalog catalog.Provider
	store   storage.KV
	sink    notify.Sink

	mu   sync.Mutex
	cart Cart
}

// StorageKey returns the KV key a user's cart is persisted under.
func StorageKey(userID string) string {
	return "cart:" + userID
}

// NewSession restores the persisted cart for userID. A missing or
// unparseable stored value yields an empty cart; corruption is never fatal.
func NewSession(ctx context.Context, userID string, cat catalog.Provider, kv storage.KV, sink notify.Sink) *Session {
	s := &Session{
		userID:  userID,
		key:     StorageKey(userID),
		catalog: cat,
		store:   kv,
		sink:    sink,
	}

	data, ok, err := kv.Get(ctx, s.key)
	if err != nil {
		log.Printf("[Cart] Failed to load cart for user %s: %v", userID, err)
		return s
	}
	if !ok {
		return s
	}
	if err := json.Unmarshal(data, &s.cart); err != nil {
		log.Printf("[Cart] Discarding corrupt stored cart for user %s: %v", userID, err)
		s.cart = Cart{}
		if err := kv.Delete(ctx, s.key); err != nil {
			log.Printf("[Cart] Failed to delete corrupt cart for user %s: %v", userID, err)
		}
	}
	return s
}

func (s *Session) UserID() string {
	return s.userID
}

// AddItem adds quantity of a product, merging with an existing line. The
// resulting quantity is clamped to the product's stock.
func (s *Session) AddItem(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return ErrInvalidProduct
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	product, ok, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to look up product: %w", err)
	}
	if !ok {
		return ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Add(productID, quantity, product.Stock)
	if err := s.persist(ctx); err != nil {
		return err
	}

	s.publish(ctx, "Added to cart", fmt.Sprintf("%s is now in your cart.", product.Name), notify.SeveritySuccess)
	return nil
}

// SetQuantity overwrites a line's quantity; zero or negative removes the
// line.
func (s *Session) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if productID == "" {
		return ErrInvalidProduct
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	product, ok, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to look up product: %w", err)
	}
	if !ok {
		return ErrProductNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.SetQuantity(productID, quantity, product.Stock)
	if err := s.persist(ctx); err != nil {
		return err
	}

	s.publish(ctx, "Cart updated", fmt.Sprintf("Quantity for %s updated.", product.Name), notify.SeverityInfo)
	return nil
}

// RemoveItem deletes the line for productID. Removing an absent product
// succeeds without effect.
func (s *Session) RemoveItem(ctx context.Context, productID string) error {
	if productID == "" {
		return ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Remove(productID)
	if err := s.persist(ctx); err != nil {
		return err
	}

	s.publish(ctx, "Removed from cart", "The item was removed from your cart.", notify.SeverityInfo)
	return nil
}

// Clear empties the cart. Checkout calls this after the order snapshot is
// taken.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart.Clear()
	if err := s.persist(ctx); err != nil {
		return err
	}

	s.publish(ctx, "Cart cleared", "All items were removed from your cart.", notify.SeverityInfo)
	return nil
}

// Lines returns a copy of the current cart lines in insertion order.
func (s *Session) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Line, len(s.cart.Lines))
	copy(out, s.cart.Lines)
	return out
}

func (s *Session) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsEmpty()
}

// Totals recomputes the derived amounts from live catalog prices. Lines
// whose product has disappeared from the catalog are skipped.
func (s *Session) Totals(ctx context.Context) Totals {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart.Totals(func(productID string) (int64, bool) {
		product, ok, err := s.catalog.GetProduct(ctx, productID)
		if err != nil || !ok {
			return 0, false
		}
		return product.Price, true
	})
}

// ItemView pairs a line with its current product snapshot for display.
type ItemView struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Items resolves each line against the catalog. Lines with vanished
// products are omitted.
func (s *Session) Items(ctx context.Context) []ItemView {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]ItemView, 0, len(s.cart.Lines))
	for _, line := range s.cart.Lines {
		product, ok, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil || !ok {
			continue
		}
		items = append(items, ItemView{Product: product, Quantity: line.Quantity})
	}
	return items
}

// persist writes the full cart state. The in-memory state is already
// mutated; a storage failure is surfaced so the caller can report it, but is
// not rolled back.
func (s *Session) persist(ctx context.Context) error {
	data, err := json.Marshal(&s.cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

// publish is fire-and-forget: sink failures are logged, never returned.
func (s *Session) publish(ctx context.Context, title, description string, severity notify.Severity) {
	if s.sink == nil {
		return
	}
	n := notify.New(s.userID, title, description, severity)
	if err := s.sink.Publish(ctx, n); err != nil {
		log.Printf("[Cart] Failed to publish notification for user %s: %v", s.userID, err)
	}
}
