package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/quickbasket/internal/catalog"
	"github.com/example/quickbasket/internal/domain/tracking"
	"github.com/example/quickbasket/internal/notify"
	"github.com/example/quickbasket/internal/notify/mocks"
	"github.com/example/quickbasket/internal/storage"
)

func newTestService(t *testing.T) (*Service, *mocks.MockSink) {
	t.Helper()
	kv := storage.NewMemory()
	sink := mocks.NewMockSink()
	svc := NewService(NewStore(kv), tracking.NewStore(kv), sink)
	return svc, sink
}

func placeTestOrder(t *testing.T, svc *Service, id string) *Order {
	t.Helper()
	o := testOrder(id, "user-1")
	o.EstimatedDelivery = o.CreatedAt.Add(2 * time.Hour)
	require.NoError(t, svc.Place(context.Background(), o))
	return o
}

func TestService_Place(t *testing.T) {
	ctx := context.Background()
	svc, sink := newTestService(t)

	o := placeTestOrder(t, svc, "ORD-1")

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, 1, o.Version)

	got, err := svc.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)

	// Placement opens the tracking record with the first update.
	tr, err := svc.Tracking(ctx, "ORD-1")
	require.NoError(t, err)
	require.Len(t, tr.Updates, 1)
	assert.Equal(t, "Order Placed", tr.Updates[0].Status)
	assert.Equal(t, o.EstimatedDelivery, tr.EstimatedArrival)

	require.Len(t, sink.Published, 1)
	assert.Equal(t, "user-1", sink.Published[0].UserID)
	assert.Equal(t, notify.SeveritySuccess, sink.Published[0].Severity)
}

func TestService_PlaceRejectsEmptyOrder(t *testing.T) {
	svc, _ := newTestService(t)

	o := testOrder("ORD-1", "user-1")
	o.Items = nil

	err := svc.Place(context.Background(), o)
	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestService_SetStatus(t *testing.T) {
	ctx := context.Background()
	svc, sink := newTestService(t)
	placeTestOrder(t, svc, "ORD-1")

	got, err := svc.SetStatus(ctx, "ORD-1", StatusConfirmed, 1)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
	assert.Equal(t, 2, got.Version)

	tr, err := svc.Tracking(ctx, "ORD-1")
	require.NoError(t, err)
	require.Len(t, tr.Updates, 2)
	assert.Equal(t, "Order Confirmed", tr.Updates[1].Status)
	assert.Equal(t, "Order Confirmed", tr.Status)

	last, ok := sink.Last()
	require.True(t, ok)
	assert.Equal(t, "Order Confirmed", last.Title)
	assert.Equal(t, notify.SeverityInfo, last.Severity)
}

func TestService_SetStatusFullLifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	placeTestOrder(t, svc, "ORD-1")

	steps := []Status{StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered}
	version := 1
	for _, next := range steps {
		got, err := svc.SetStatus(ctx, "ORD-1", next, version)
		require.NoError(t, err, "transition to %s", next)
		version = got.Version
	}

	got, err := svc.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, got.Status)
	assert.Equal(t, 5, got.Version)

	// Each transition leaves one history entry behind the placement entry.
	tr, err := svc.Tracking(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Len(t, tr.Updates, 5)
}

func TestService_SetStatusRejectsSkippedSteps(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	placeTestOrder(t, svc, "ORD-1")

	_, err := svc.SetStatus(ctx, "ORD-1", StatusDelivered, 1)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// The rejected transition must leave the order untouched.
	got, err := svc.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, StatusPending, got.Status)
	assert.Equal(t, 1, got.Version)

	tr, err := svc.Tracking(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Len(t, tr.Updates, 1)
}

func TestService_SetStatusRejectsTerminalOrders(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	placeTestOrder(t, svc, "ORD-1")

	got, err := svc.SetStatus(ctx, "ORD-1", StatusCancelled, 1)
	require.NoError(t, err)

	for _, next := range []Status{StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled} {
		_, err := svc.SetStatus(ctx, "ORD-1", next, got.Version)
		assert.ErrorIs(t, err, ErrTerminalStatus, "cancelled order accepted transition to %s", next)
	}
}

func TestService_SetStatusVersionConflict(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	placeTestOrder(t, svc, "ORD-1")

	_, err := svc.SetStatus(ctx, "ORD-1", StatusConfirmed, 1)
	require.NoError(t, err)

	// A second admin still holding version 1 must be told to re-read.
	_, err = svc.SetStatus(ctx, "ORD-1", StatusCancelled, 1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	got, err := svc.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, got.Status)
}

// slowReadKV delays reads so that overlapping read-check-write cycles
// collide unless the store serializes them.
type slowReadKV struct {
	storage.KV
}

func (s slowReadKV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	time.Sleep(5 * time.Millisecond)
	return s.KV.Get(ctx, key)
}

func TestService_SetStatusConcurrentAdmins(t *testing.T) {
	ctx := context.Background()
	kv := slowReadKV{storage.NewMemory()}
	svc := NewService(NewStore(kv), tracking.NewStore(kv), nil)
	placeTestOrder(t, svc, "ORD-1")

	// Two admins both hold version 1 and race conflicting transitions.
	// Exactly one may win; the other must be told to re-read, and the
	// loser's write must not overwrite the winner's.
	results := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, results[0] = svc.SetStatus(ctx, "ORD-1", StatusConfirmed, 1)
	}()
	go func() {
		defer wg.Done()
		_, results[1] = svc.SetStatus(ctx, "ORD-1", StatusCancelled, 1)
	}()
	wg.Wait()

	conflicts := 0
	for _, err := range results {
		if err != nil {
			assert.ErrorIs(t, err, ErrVersionConflict)
			conflicts++
		}
	}
	assert.Equal(t, 1, conflicts, "exactly one of the racing transitions must lose")

	got, err := svc.Get(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Contains(t, []Status{StatusConfirmed, StatusCancelled}, got.Status)
}

func TestService_CancellationRefundsPaidOrders(t *testing.T) {
	ctx := context.Background()
	svc, sink := newTestService(t)
	placeTestOrder(t, svc, "ORD-1")

	got, err := svc.SetStatus(ctx, "ORD-1", StatusCancelled, 1)
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusRefunded, got.PaymentStatus)

	last, ok := sink.Last()
	require.True(t, ok)
	assert.Equal(t, notify.SeverityError, last.Severity)
}

func TestService_SetStatusUnknownOrder(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SetStatus(context.Background(), "ORD-missing", StatusConfirmed, 1)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestService_AssignDeliveryPartner(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)
	placeTestOrder(t, svc, "ORD-1")

	partner := tracking.Partner{ID: "DEL789", Name: "Michael Johnson", Phone: "+1234567890"}
	location := &tracking.Location{Lat: 40.7128, Lng: -74.006}
	require.NoError(t, svc.AssignDeliveryPartner(ctx, "ORD-1", partner, location))

	tr, err := svc.Tracking(ctx, "ORD-1")
	require.NoError(t, err)
	require.NotNil(t, tr.Partner)
	assert.Equal(t, "Michael Johnson", tr.Partner.Name)
	require.NotNil(t, tr.CurrentLocation)
	assert.InDelta(t, 40.7128, tr.CurrentLocation.Lat, 0.0001)

	err = svc.AssignDeliveryPartner(ctx, "ORD-missing", partner, nil)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()
	store := NewStore(kv)
	trackingStore := tracking.NewStore(kv)

	require.NoError(t, Seed(ctx, store, trackingStore, catalog.NewInMemory(catalog.Fixture())))

	delivered, err := store.Get(ctx, "ORD12345")
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, delivered.Status)
	assert.Equal(t, int64(30000), delivered.Total)
	assert.Equal(t, PaymentStatusPaid, delivered.PaymentStatus)

	ofd, err := store.Get(ctx, "ORD12346")
	require.NoError(t, err)
	assert.Equal(t, StatusOutForDelivery, ofd.Status)
	assert.Equal(t, int64(22000), ofd.Total)

	tr, err := trackingStore.Get(ctx, "ORD12346")
	require.NoError(t, err)
	require.NotNil(t, tr.Partner)
	assert.Equal(t, "Michael Johnson", tr.Partner.Name)
	assert.Len(t, tr.Updates, 3)
}
