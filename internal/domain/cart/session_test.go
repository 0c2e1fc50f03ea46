package cart

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/example/quickbasket/internal/catalog"
	"github.com/example/quickbasket/internal/notify"
	"github.com/example/quickbasket/internal/notify/mocks"
	"github.com/example/quickbasket/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() *catalog.InMemory {
	return catalog.NewInMemory(nil, []catalog.Product{
		{ID: "prod-1", Name: "Apples", Price: 12000, Stock: 50},
		{ID: "prod-2", Name: "Milk", Price: 6000, Stock: 30},
		{ID: "prod-3", Name: "Bread", Price: 4000, Stock: 3},
	})
}

func newTestSession(t *testing.T) (*Session, *storage.Memory, *mocks.MockSink) {
	t.Helper()
	kv := storage.NewMemory()
	sink := mocks.NewMockSink()
	s := NewSession(context.Background(), "user-1", testCatalog(), kv, sink)
	return s, kv, sink
}

func TestSession_AddItem_PersistsCart(t *testing.T) {
	s, kv, sink := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, "prod-1", 2))

	data, ok, err := kv.Get(ctx, StorageKey("user-1"))
	require.NoError(t, err)
	require.True(t, ok)

	var stored Cart
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, 2, stored.Quantity("prod-1"))

	last, ok := sink.Last()
	require.True(t, ok)
	assert.Equal(t, notify.SeveritySuccess, last.Severity)
	assert.Equal(t, "Added to cart", last.Title)
}

func TestSession_AddItem_UnknownProduct(t *testing.T) {
	s, _, sink := newTestSession(t)

	err := s.AddItem(context.Background(), "prod-99", 1)

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, sink.Published)
	assert.True(t, s.IsEmpty())
}

func TestSession_AddItem_InvalidQuantity(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.ErrorIs(t, s.AddItem(context.Background(), "prod-1", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, s.AddItem(context.Background(), "prod-1", -2), ErrInvalidQuantity)
}

func TestSession_ConcurrentRequests(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	// Simultaneous requests from one user (two tabs, a double-click) all
	// land on the same session. Mutations and reads must be safe to
	// interleave, and no add may be lost.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				assert.NoError(t, s.AddItem(ctx, "prod-1", 1))
				s.Totals(ctx)
				s.Lines()
			}
		}()
	}
	wg.Wait()

	items := s.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 40, items[0].Quantity)
}

func TestSession_AddItem_ClampsToStock(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	// prod-3 has stock 3; repeated adds cannot exceed it.
	require.NoError(t, s.AddItem(ctx, "prod-3", 2))
	require.NoError(t, s.AddItem(ctx, "prod-3", 2))

	items := s.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestSession_SetQuantity_ZeroRemoves(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, "prod-1", 2))
	require.NoError(t, s.SetQuantity(ctx, "prod-1", 0))

	assert.True(t, s.IsEmpty())
	assert.Equal(t, Totals{}, s.Totals(ctx))
}

func TestSession_RemoveItem_Idempotent(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.RemoveItem(ctx, "prod-1"))
	require.NoError(t, s.RemoveItem(ctx, "prod-1"))

	assert.True(t, s.IsEmpty())
}

func TestSession_Totals_MatchesLiveQuantities(t *testing.T) {
	s, _, _ := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, "prod-1", 2)) // 24000
	require.NoError(t, s.AddItem(ctx, "prod-2", 1)) // 6000
	require.NoError(t, s.SetQuantity(ctx, "prod-1", 1))
	require.NoError(t, s.RemoveItem(ctx, "prod-2"))

	totals := s.Totals(ctx)
	assert.Equal(t, int64(12000), totals.Subtotal)
}

func TestSession_Clear(t *testing.T) {
	s, kv, _ := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.AddItem(ctx, "prod-1", 2))
	require.NoError(t, s.Clear(ctx))

	assert.True(t, s.IsEmpty())
	assert.Equal(t, Totals{}, s.Totals(ctx))

	// The persisted state is the empty cart, not a stale one.
	data, ok, err := kv.Get(ctx, StorageKey("user-1"))
	require.NoError(t, err)
	require.True(t, ok)
	var stored Cart
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.True(t, stored.IsEmpty())
}

func TestNewSession_RestoresPersistedCart(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()

	first := NewSession(ctx, "user-1", testCatalog(), kv, nil)
	require.NoError(t, first.AddItem(ctx, "prod-1", 2))

	second := NewSession(ctx, "user-1", testCatalog(), kv, nil)
	assert.Equal(t, 2, second.Lines()[0].Quantity)
}

func TestNewSession_DiscardsCorruptState(t *testing.T) {
	kv := storage.NewMemory()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, StorageKey("user-1"), []byte("{not json")))

	s := NewSession(ctx, "user-1", testCatalog(), kv, nil)

	assert.True(t, s.IsEmpty())

	// The corrupt value is dropped from storage.
	_, ok, err := kv.Get(ctx, StorageKey("user-1"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_ReturnsSameSessionPerUser(t *testing.T) {
	m := NewManager(testCatalog(), storage.NewMemory(), nil)
	ctx := context.Background()

	a := m.Session(ctx, "user-1")
	b := m.Session(ctx, "user-1")
	other := m.Session(ctx, "user-2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, other)
}

func TestManager_DropForgetsSessionButKeepsState(t *testing.T) {
	kv := storage.NewMemory()
	m := NewManager(testCatalog(), kv, nil)
	ctx := context.Background()

	s := m.Session(ctx, "user-1")
	require.NoError(t, s.AddItem(ctx, "prod-1", 2))

	m.Drop("user-1")

	restored := m.Session(ctx, "user-1")
	assert.NotSame(t, s, restored)
	assert.Equal(t, 2, restored.Lines()[0].Quantity)
}
