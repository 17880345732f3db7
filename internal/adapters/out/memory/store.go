// Package memory is an in-memory order store. It backs tests and local runs
// with the same contract as the postgres adapter: version-checked updates,
// transactional units of work and a coalescing snapshot stream.
package memory

import (
	"context"
	"sort"
	"sync"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
	"staffing/internal/pkg/errs"
)

// Store holds order aggregates in memory. All access goes through one data
// mutex; units of work additionally serialize on a transaction mutex, which
// stands in for database-level isolation.
type Store struct {
	txMu sync.Mutex

	mu      sync.Mutex
	orders  map[kernel.UUID]*order.Order
	seq     map[kernel.UUID]int64 // insertion order for stable listings
	nextSeq int64

	subMu   sync.Mutex
	subs    map[int]chan []*order.Order
	nextSub int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		orders: make(map[kernel.UUID]*order.Order),
		seq:    make(map[kernel.UUID]int64),
		subs:   make(map[int]chan []*order.Order),
	}
}

// clone deep-copies an aggregate so store state never aliases caller state.
func clone(o *order.Order, version int) (*order.Order, error) {
	return order.RestoreOrder(
		o.ID(), o.CreatedBy(), o.Title(), o.Address(), o.PricePerHour(),
		o.Schedule(), o.Duration(), o.RequiredWorkers(), o.Tags(), o.Metadata(),
		o.Comment(), o.CancelReason(), o.Status(),
		o.Applications(), o.Assignments(), version,
	)
}

// Add stores a new aggregate outside any unit of work.
func (s *Store) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	err := s.add(aggregate)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// Update stores a changed aggregate outside any unit of work.
func (s *Store) Update(_ context.Context, aggregate *order.Order) error {
	s.mu.Lock()
	err := s.update(aggregate)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify()
	return nil
}

// Get returns a copy of the aggregate.
func (s *Store) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(id)
}

// GetAllInStaffingStatus returns copies of all staffing orders.
func (s *Store) GetAllInStaffingStatus(_ context.Context) ([]*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]*order.Order, 0)
	for _, o := range s.sorted() {
		if o.Status() != order.StatusStaffing {
			continue
		}
		copied, err := clone(o, o.Version())
		if err != nil {
			return nil, err
		}
		result = append(result, copied)
	}
	return result, nil
}

// HasActiveAssignment reports whether the worker is busy on any order.
func (s *Store) HasActiveAssignment(ctx context.Context, loaderID kernel.UUID) (bool, error) {
	busy, err := s.GetBusyAssignments(ctx, []kernel.UUID{loaderID})
	if err != nil {
		return false, err
	}
	_, ok := busy[loaderID]
	return ok, nil
}

// GetBusyAssignments maps each busy worker from the set to the order holding
// their active assignment.
func (s *Store) GetBusyAssignments(
	_ context.Context, loaderIDs []kernel.UUID,
) (map[kernel.UUID]kernel.UUID, error) {
	wanted := make(map[kernel.UUID]bool, len(loaderIDs))
	for _, id := range loaderIDs {
		wanted[id] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	busy := make(map[kernel.UUID]kernel.UUID)
	for _, o := range s.orders {
		for _, a := range o.Assignments() {
			if a.IsActive() && wanted[a.LoaderID()] {
				busy[a.LoaderID()] = o.ID()
			}
		}
	}
	return busy, nil
}

// CountActiveApplicationsForLimit counts the worker's in-flight applications
// on non-terminal orders.
func (s *Store) CountActiveApplicationsForLimit(
	_ context.Context, loaderID kernel.UUID,
) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, o := range s.orders {
		if o.Status().IsTerminal() {
			continue
		}
		if app, ok := o.ApplicationFor(loaderID); ok && app.IsInFlight() {
			count++
		}
	}
	return count, nil
}

// ObserveOrders subscribes to full order snapshots. The current snapshot is
// delivered immediately, then again after every committed change. A slow
// subscriber keeps only the latest snapshot.
func (s *Store) ObserveOrders(ctx context.Context) (<-chan []*order.Order, func()) {
	ch := make(chan []*order.Order, 1)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}

	// The channel is already registered, so a concurrent notify may have
	// filled the buffer. Deliver the initial snapshot the same replace-latest
	// way so the send can never block.
	deliver(ch, s.snapshot())

	if ctx != nil {
		go func() {
			<-ctx.Done()
			cancel()
		}()
	}

	return ch, cancel
}

func (s *Store) add(aggregate *order.Order) error {
	if _, exists := s.orders[aggregate.ID()]; exists {
		return errs.NewStateError("order already exists")
	}

	copied, err := clone(aggregate, aggregate.Version())
	if err != nil {
		return err
	}

	s.orders[aggregate.ID()] = copied
	s.seq[aggregate.ID()] = s.nextSeq
	s.nextSeq++
	return nil
}

func (s *Store) update(aggregate *order.Order) error {
	stored, exists := s.orders[aggregate.ID()]
	if !exists {
		return errs.NewObjectNotFoundError("orderID", aggregate.ID())
	}
	if stored.Version() != aggregate.Version() {
		return errs.NewConflictError("", aggregate.ID().String())
	}

	copied, err := clone(aggregate, aggregate.Version()+1)
	if err != nil {
		return err
	}

	s.orders[aggregate.ID()] = copied
	return nil
}

func (s *Store) get(id kernel.UUID) (*order.Order, error) {
	stored, exists := s.orders[id]
	if !exists {
		return nil, errs.NewObjectNotFoundError("orderID", id)
	}
	return clone(stored, stored.Version())
}

// sorted returns stored aggregates in insertion order. Callers hold mu.
func (s *Store) sorted() []*order.Order {
	all := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.orders {
		all = append(all, o)
	}
	sort.Slice(all, func(i, j int) bool {
		return s.seq[all[i].ID()] < s.seq[all[j].ID()]
	})
	return all
}

func (s *Store) snapshot() []*order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]*order.Order, 0, len(s.orders))
	for _, o := range s.sorted() {
		copied, err := clone(o, o.Version())
		if err != nil {
			continue
		}
		snapshot = append(snapshot, copied)
	}
	return snapshot
}

// notify pushes the current snapshot to every subscriber, replacing any
// undelivered one.
func (s *Store) notify() {
	snapshot := s.snapshot()

	s.subMu.Lock()
	defer s.subMu.Unlock()

	for _, ch := range s.subs {
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
