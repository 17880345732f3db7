// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. A unit of work owns one database transaction; repositories created
// from it run inside that transaction, and aggregates written through them
// are tracked so subscribers can be told about committed changes.
package postgres

import (
	"context"

	"staffing/internal/adapters/out/postgres/orderrepo"
	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/ports"

	"gorm.io/gorm"
)

// ChangeNotifier is told after a unit of work commits aggregate changes.
// The snapshot watcher implements it.
type ChangeNotifier interface {
	Notify()
}

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using a GORM connection.
// Each business operation gets a fresh unit of work with its own transaction.
type GormUnitOfWorkFactory struct {
	db       *gorm.DB
	notifier ChangeNotifier
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based units of work.
// notifier may be nil when nobody observes changes.
func NewGormUnitOfWorkFactory(db *gorm.DB, notifier ChangeNotifier) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, notifier: notifier}
}

// Create produces a new UnitOfWork ready for one business transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		notifier:          f.notifier,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and tracks the
// aggregates changed within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	notifier          ChangeNotifier
	trackedAggregates []trackedAggregate
}

// Begin initiates the transaction. Calling Begin again on an instance with an
// open transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the transaction. If any aggregates were written, change
// subscribers are notified after the commit lands.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	if uow.notifier != nil && len(uow.trackedAggregates) > 0 {
		uow.notifier.Notify()
	}

	return nil
}

// Rollback discards the transaction. Rolling back after Commit is an error,
// which callers deliberately ignore in their deferred cleanup.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// OrderRepository returns an order repository bound to the current
// transaction, or to the base connection when none is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate registers an aggregate as modified within this unit of work.
// Called by repositories on successful writes.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
