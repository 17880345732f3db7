package postgres

import (
	"context"
	"log/slog"
	"sync"

	"staffing/internal/core/domain/model/order"
)

// SnapshotSource reads the full current order list. Satisfied by the order
// repository.
type SnapshotSource interface {
	GetAll(ctx context.Context) ([]*order.Order, error)
}

// Watcher streams full order snapshots to subscribers. Units of work call
// Notify after committing changes; the watcher then re-reads the orders table
// and pushes the fresh snapshot to every open subscription. Slow subscribers
// only ever see the latest snapshot, intermediate ones are coalesced away.
type Watcher struct {
	repo   SnapshotSource
	logger *slog.Logger

	mu      sync.Mutex
	subs    map[int]chan []*order.Order
	nextSub int
}

// NewWatcher creates a watcher reading snapshots through the given source.
func NewWatcher(repo SnapshotSource, logger *slog.Logger) *Watcher {
	return &Watcher{
		repo:   repo,
		logger: logger.With("component", "order_watcher"),
		subs:   make(map[int]chan []*order.Order),
	}
}

// ObserveOrders subscribes to order snapshots. The current snapshot is
// delivered immediately; later ones arrive after each committed change.
// The returned cancel function closes the stream and is safe to call twice.
func (w *Watcher) ObserveOrders(ctx context.Context) (<-chan []*order.Order, func()) {
	ch := make(chan []*order.Order, 1)

	w.mu.Lock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = ch
	w.mu.Unlock()

	// A Notify racing the subscription may already have filled the buffer.
	// Deliver the initial snapshot the same replace-latest way so the send
	// can never block.
	if snapshot, err := w.repo.GetAll(ctx); err != nil {
		w.logger.Error("initial snapshot failed", "error", err)
	} else {
		deliver(ch, snapshot)
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			w.mu.Lock()
			delete(w.subs, id)
			w.mu.Unlock()
			close(ch)
		})
	}

	go func() {
		<-ctx.Done()
		cancel()
	}()

	return ch, cancel
}

// Notify re-reads the orders table and fans the snapshot out to subscribers.
func (w *Watcher) Notify() {
	snapshot, err := w.repo.GetAll(context.Background())
	if err != nil {
		w.logger.Error("snapshot refresh failed", "error", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ch := range w.subs {
		deliver(ch, snapshot)
	}
}

// deliver hands a snapshot to a subscriber without blocking, dropping any
// undelivered earlier snapshot in its favor.
func deliver(ch chan []*order.Order, snapshot []*order.Order) {
	select {
	case ch <- snapshot:
	default:
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snapshot:
		default:
		}
	}
}
