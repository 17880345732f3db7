package memory

import (
	"context"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// UnitOfWork stages writes against the store and applies them atomically on
// Commit. Begin takes the store's transaction mutex, so units of work are
// serialized; Rollback simply discards the staged writes.
type UnitOfWork struct {
	store  *Store
	active bool

	added   map[kernel.UUID]*order.Order
	updated map[kernel.UUID]*order.Order
}

// NewUnitOfWork creates a unit of work over the store.
func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

// Begin starts the transaction.
func (u *UnitOfWork) Begin(_ context.Context) error {
	if u.active {
		return errs.NewStateError("transaction already started")
	}

	u.store.txMu.Lock()
	u.active = true
	u.added = make(map[kernel.UUID]*order.Order)
	u.updated = make(map[kernel.UUID]*order.Order)
	return nil
}

// Commit applies all staged writes and notifies subscribers once.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if !u.active {
		return errs.NewStateError("no active transaction")
	}

	u.store.mu.Lock()
	var err error
	for _, aggregate := range u.added {
		if err = u.store.add(aggregate); err != nil {
			break
		}
	}
	if err == nil {
		for _, aggregate := range u.updated {
			if err = u.store.update(aggregate); err != nil {
				break
			}
		}
	}
	u.store.mu.Unlock()

	u.finish()
	if err != nil {
		return err
	}

	u.store.notify()
	return nil
}

// Rollback discards staged writes. Calling it after Commit is a no-op, which
// lets handlers defer it unconditionally.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if !u.active {
		return nil
	}
	u.finish()
	return nil
}

// OrderRepository returns a repository bound to this transaction.
func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &txRepository{uow: u}
}

func (u *UnitOfWork) finish() {
	u.active = false
	u.added = nil
	u.updated = nil
	u.store.txMu.Unlock()
}

// txRepository reads through the staged writes and collects new ones.
type txRepository struct {
	uow *UnitOfWork
}

func (r *txRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	store := r.uow.store
	store.mu.Lock()
	_, exists := store.orders[aggregate.ID()]
	store.mu.Unlock()
	if exists {
		return errs.NewStateError("order already exists")
	}
	if _, staged := r.uow.added[aggregate.ID()]; staged {
		return errs.NewStateError("order already exists")
	}

	copied, err := clone(aggregate, aggregate.Version())
	if err != nil {
		return err
	}
	r.uow.added[aggregate.ID()] = copied
	return nil
}

func (r *txRepository) Update(_ context.Context, aggregate *order.Order) error {
	if _, staged := r.uow.added[aggregate.ID()]; staged {
		copied, err := clone(aggregate, aggregate.Version())
		if err != nil {
			return err
		}
		r.uow.added[aggregate.ID()] = copied
		return nil
	}

	store := r.uow.store
	store.mu.Lock()
	stored, exists := store.orders[aggregate.ID()]
	var version int
	if exists {
		version = stored.Version()
	}
	store.mu.Unlock()

	if !exists {
		return errs.NewObjectNotFoundError("orderID", aggregate.ID())
	}
	if _, staged := r.uow.updated[aggregate.ID()]; !staged && version != aggregate.Version() {
		return errs.NewConflictError("", aggregate.ID().String())
	}

	copied, err := clone(aggregate, aggregate.Version())
	if err != nil {
		return err
	}
	r.uow.updated[aggregate.ID()] = copied
	return nil
}

func (r *txRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if staged, ok := r.uow.updated[id]; ok {
		return clone(staged, staged.Version())
	}
	if staged, ok := r.uow.added[id]; ok {
		return clone(staged, staged.Version())
	}
	return r.uow.store.Get(ctx, id)
}

func (r *txRepository) GetAllInStaffingStatus(ctx context.Context) ([]*order.Order, error) {
	return r.uow.store.GetAllInStaffingStatus(ctx)
}

func (r *txRepository) HasActiveAssignment(ctx context.Context, loaderID kernel.UUID) (bool, error) {
	return r.uow.store.HasActiveAssignment(ctx, loaderID)
}

func (r *txRepository) GetBusyAssignments(
	ctx context.Context, loaderIDs []kernel.UUID,
) (map[kernel.UUID]kernel.UUID, error) {
	return r.uow.store.GetBusyAssignments(ctx, loaderIDs)
}

func (r *txRepository) CountActiveApplicationsForLimit(
	ctx context.Context, loaderID kernel.UUID,
) (int, error) {
	return r.uow.store.CountActiveApplicationsForLimit(ctx, loaderID)
}
