// Package live maintains locally consistent projections of the order
// collection, kept current via standing subscriptions. Subscribers
// never receive diffs: every delivery is the full current result set
// for their query, and their job is to replace their snapshot
// wholesale.
package live

import (
	"context"
	"errors"
	"log"
	"sync"

	"laundry-booking/internal/models"
	"laundry-booking/internal/modules/orders"
)

// fetchFunc re-queries the full result set for one subscription.
type fetchFunc func(ctx context.Context) ([]*models.Order, error)

// Feed fans order-collection changes out to any number of independent
// subscriptions. Writers call Notify after each successful store
// write; the change-stream watcher calls it for out-of-process writes.
type Feed struct {
	repo orders.RepositoryInterface

	mu     sync.Mutex
	subs   map[int]*Subscription
	nextID int
}

// NewFeed creates a feed over the given order store.
func NewFeed(repo orders.RepositoryInterface) *Feed {
	return &Feed{
		repo: repo,
		subs: make(map[int]*Subscription),
	}
}

// Subscription is one standing query. Snapshots arrive on C; the
// channel is closed by Close. Every subscription must be closed by the
// component that opened it, or the pump goroutine leaks.
type Subscription struct {
	// C delivers full result-set snapshots, newest first. Slow readers
	// only ever see the latest snapshot; intermediate ones are
	// coalesced away.
	C <-chan []*models.Order

	feed      *Feed
	id        int
	out       chan []*models.Order
	notifyCh  chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// Notify tells every open subscription that the order collection
// changed. It never blocks: each subscription coalesces pending
// notifications into a single re-query.
func (f *Feed) Notify() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.subs {
		select {
		case s.notifyCh <- struct{}{}:
		default:
			// A refresh is already queued; the next re-query will see
			// this change too.
		}
	}
}

func (f *Feed) subscribe(ctx context.Context, fetch fetchFunc) *Subscription {
	subCtx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		feed:     f,
		out:      make(chan []*models.Order, 1),
		notifyCh: make(chan struct{}, 1),
		ctx:      subCtx,
		cancel:   cancel,
	}
	s.C = s.out

	f.mu.Lock()
	f.nextID++
	s.id = f.nextID
	f.subs[s.id] = s
	f.mu.Unlock()

	// Seed the first snapshot immediately.
	s.notifyCh <- struct{}{}
	go s.pump(fetch)
	return s
}

// pump re-queries on every notification and hands the subscriber the
// latest snapshot, dropping any it has not consumed yet. The pump is
// the only sender on out, so it also closes it on the way down.
func (s *Subscription) pump(fetch fetchFunc) {
	defer close(s.out)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.notifyCh:
		}

		snapshot, err := fetch(s.ctx)
		if err != nil {
			if s.ctx.Err() != nil {
				return
			}
			log.Printf("live: snapshot re-query failed: %v", err)
			continue
		}

		// Keep-latest delivery: replace an unconsumed snapshot rather
		// than blocking the pump.
		for {
			select {
			case <-s.ctx.Done():
				return
			case s.out <- snapshot:
			default:
				select {
				case <-s.out:
				default:
				}
				continue
			}
			break
		}
	}
}

// Close tears the subscription down and releases its pump. Closing is
// idempotent; closing one subscription never affects another.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		s.feed.mu.Lock()
		delete(s.feed.subs, s.id)
		s.feed.mu.Unlock()
	})
}

// SubscribeUserOrders projects "all orders owned by userID".
func (f *Feed) SubscribeUserOrders(ctx context.Context, userID string) *Subscription {
	return f.subscribe(ctx, func(ctx context.Context) ([]*models.Order, error) {
		return f.repo.ListByUserID(ctx, userID)
	})
}

// SubscribeTracking projects "the single order matching code". The
// snapshot is empty until the code resolves.
func (f *Feed) SubscribeTracking(ctx context.Context, code string) *Subscription {
	return f.subscribe(ctx, func(ctx context.Context) ([]*models.Order, error) {
		order, err := f.repo.FindByTrackingCode(ctx, code)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return []*models.Order{}, nil
			}
			return nil, err
		}
		return []*models.Order{order}, nil
	})
}

// SubscribeStatus projects all orders in one lifecycle state.
func (f *Feed) SubscribeStatus(ctx context.Context, status models.OrderStatus) *Subscription {
	return f.subscribe(ctx, func(ctx context.Context) ([]*models.Order, error) {
		return f.repo.ListByStatus(ctx, status)
	})
}

// SubscribeAll projects the entire order collection (admin dashboard).
func (f *Feed) SubscribeAll(ctx context.Context) *Subscription {
	return f.subscribe(ctx, func(ctx context.Context) ([]*models.Order, error) {
		return f.repo.ListAll(ctx)
	})
}
