package live

import (
	"context"
	"sync"
	"testing"
	"time"

	"laundry-booking/internal/models"
	"laundry-booking/internal/modules/orders"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memOrderStore is a threadsafe in-memory order store backing feed
// tests. Only the read side matters here; writes go through put.
type memOrderStore struct {
	mu     sync.Mutex
	byID   map[string]*models.Order
	nextID int
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{byID: make(map[string]*models.Order)}
}

func (m *memOrderStore) put(order models.Order) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID == "" {
		m.nextID++
		order.ID = "order-" + time.Now().Format("150405") + "-" + string(rune('a'+m.nextID))
	}
	m.byID[order.ID] = &order
	return order.ID
}

func (m *memOrderStore) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	cp := *order
	cp.ID = m.put(cp)
	return &cp, nil
}

func (m *memOrderStore) FindByID(_ context.Context, orderID string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[orderID]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderStore) FindByTrackingCode(_ context.Context, code string) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.byID {
		if o.TrackingCode == code {
			cp := *o
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memOrderStore) list(keep func(*models.Order) bool) []*models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Order{}
	for _, o := range m.byID {
		if keep(o) {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out
}

func (m *memOrderStore) ListByUserID(_ context.Context, userID string) ([]*models.Order, error) {
	return m.list(func(o *models.Order) bool { return o.UserID == userID }), nil
}

func (m *memOrderStore) ListByStatus(_ context.Context, status models.OrderStatus) ([]*models.Order, error) {
	return m.list(func(o *models.Order) bool { return o.Status == status }), nil
}

func (m *memOrderStore) ListAll(_ context.Context) ([]*models.Order, error) {
	return m.list(func(*models.Order) bool { return true }), nil
}

func (m *memOrderStore) Update(_ context.Context, orderID string, _ orders.OrderChanges) (*models.Order, error) {
	return m.FindByID(context.Background(), orderID)
}

func (m *memOrderStore) UpdateStatus(_ context.Context, orderID string, status models.OrderStatus, cancelledAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[orderID]
	if !ok {
		return models.ErrNotFound
	}
	o.Status = status
	if cancelledAt != nil {
		t := *cancelledAt
		o.CancelledAt = &t
	}
	return nil
}

func (m *memOrderStore) SetPhotos(_ context.Context, orderID string, photos []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[orderID]
	if !ok {
		return models.ErrNotFound
	}
	o.Photos = append([]string{}, photos...)
	return nil
}

func (m *memOrderStore) Delete(_ context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, orderID)
	return nil
}

// waitFor reads snapshots until one satisfies the predicate. Stale
// intermediate snapshots are allowed; the latest one must converge.
func waitFor(t *testing.T, sub *Subscription, pred func([]*models.Order) bool) []*models.Order {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap, ok := <-sub.C:
			if !ok {
				t.Fatal("subscription closed before the expected snapshot arrived")
			}
			if pred(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
		}
	}
}

func TestSubscriptionDeliversInitialSnapshot(t *testing.T) {
	store := newMemOrderStore()
	store.put(models.Order{ID: "o1", UserID: "user-1", Status: models.StatusPending})
	store.put(models.Order{ID: "o2", UserID: "user-2", Status: models.StatusPending})

	feed := NewFeed(store)
	sub := feed.SubscribeUserOrders(context.Background(), "user-1")
	defer sub.Close()

	snap := waitFor(t, sub, func(s []*models.Order) bool { return len(s) == 1 })
	assert.Equal(t, "o1", snap[0].ID)
}

func TestSnapshotsAreFullReplacements(t *testing.T) {
	store := newMemOrderStore()
	store.put(models.Order{ID: "o1", UserID: "user-1", Status: models.StatusPending})

	feed := NewFeed(store)
	sub := feed.SubscribeUserOrders(context.Background(), "user-1")
	defer sub.Close()

	waitFor(t, sub, func(s []*models.Order) bool { return len(s) == 1 })

	store.put(models.Order{ID: "o2", UserID: "user-1", Status: models.StatusPending})
	feed.Notify()

	// The next converged snapshot carries both orders, not just the
	// new one.
	snap := waitFor(t, sub, func(s []*models.Order) bool { return len(s) == 2 })
	ids := map[string]bool{}
	for _, o := range snap {
		ids[o.ID] = true
	}
	assert.True(t, ids["o1"] && ids["o2"])
}

func TestNotifyCoalesces(t *testing.T) {
	store := newMemOrderStore()
	feed := NewFeed(store)
	sub := feed.SubscribeAll(context.Background())
	defer sub.Close()

	waitFor(t, sub, func(s []*models.Order) bool { return len(s) == 0 })

	for i := 0; i < 50; i++ {
		store.put(models.Order{UserID: "user-1", Status: models.StatusPending})
		feed.Notify()
	}

	// Regardless of how many notifications were dropped along the way,
	// the subscription converges on the final state.
	waitFor(t, sub, func(s []*models.Order) bool { return len(s) == 50 })
}

func TestTrackingSubscriptionEmptyUntilCodeResolves(t *testing.T) {
	store := newMemOrderStore()
	feed := NewFeed(store)
	sub := feed.SubscribeTracking(context.Background(), "AB12C")
	defer sub.Close()

	snap := waitFor(t, sub, func(s []*models.Order) bool { return s != nil })
	assert.Empty(t, snap, "unknown code yields an empty snapshot, not an error")

	store.put(models.Order{ID: "o1", TrackingCode: "AB12C", UserID: "user-1", Status: models.StatusPending})
	feed.Notify()

	snap = waitFor(t, sub, func(s []*models.Order) bool { return len(s) == 1 })
	assert.Equal(t, "o1", snap[0].ID)
}

func TestStatusSubscriptionFollowsTransitions(t *testing.T) {
	store := newMemOrderStore()
	id := store.put(models.Order{UserID: "user-1", Status: models.StatusPending})

	feed := NewFeed(store)
	sub := feed.SubscribeStatus(context.Background(), models.StatusApproved)
	defer sub.Close()

	waitFor(t, sub, func(s []*models.Order) bool { return len(s) == 0 })

	require.NoError(t, store.UpdateStatus(context.Background(), id, models.StatusApproved, nil))
	feed.Notify()

	waitFor(t, sub, func(s []*models.Order) bool { return len(s) == 1 })
}

func TestCloseIsIdempotentAndIndependent(t *testing.T) {
	store := newMemOrderStore()
	store.put(models.Order{UserID: "user-1", Status: models.StatusPending})

	feed := NewFeed(store)
	a := feed.SubscribeUserOrders(context.Background(), "user-1")
	b := feed.SubscribeUserOrders(context.Background(), "user-1")

	waitFor(t, a, func(s []*models.Order) bool { return len(s) == 1 })
	waitFor(t, b, func(s []*models.Order) bool { return len(s) == 1 })

	a.Close()
	a.Close() // second close is a no-op

	// a's channel drains then closes.
	for {
		if _, ok := <-a.C; !ok {
			break
		}
	}

	// b keeps receiving.
	store.put(models.Order{UserID: "user-1", Status: models.StatusPending})
	feed.Notify()
	waitFor(t, b, func(s []*models.Order) bool { return len(s) == 2 })
	b.Close()
}

func TestSubscriptionStopsWhenContextCancelled(t *testing.T) {
	store := newMemOrderStore()
	feed := NewFeed(store)

	ctx, cancel := context.WithCancel(context.Background())
	sub := feed.SubscribeAll(ctx)
	defer sub.Close()

	waitFor(t, sub, func(s []*models.Order) bool { return len(s) == 0 })
	cancel()

	// After cancellation no further snapshots arrive even when the
	// collection changes.
	store.put(models.Order{UserID: "user-1", Status: models.StatusPending})
	feed.Notify()

	select {
	case snap, ok := <-sub.C:
		if ok {
			assert.Empty(t, snap, "a snapshot queued before cancellation may still drain")
		}
	case <-time.After(100 * time.Millisecond):
	}
}
