// Package ports defines repository interfaces for the staffing domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An aggregate is always stored and loaded as one consistent unit: the order
// row together with all of its applications and assignments.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate: the order row
	// plus any application and assignment deltas, atomically. The write is
	// guarded by the aggregate version; a stale version yields
	// errs.ErrConflict and nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, fully
	// joined with its applications and assignments.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInStaffingStatus retrieves all orders still looking for workers.
	// Feeds the expiry sweep and the observable order list.
	GetAllInStaffingStatus(ctx context.Context) ([]*order.Order, error)

	// HasActiveAssignment reports whether the worker currently holds an
	// active assignment on any order.
	HasActiveAssignment(ctx context.Context, loaderID kernel.UUID) (bool, error)

	// GetBusyAssignments resolves active assignments for a set of workers in
	// one query. The result maps each busy worker to the order they are
	// assigned to; free workers are absent from the map.
	GetBusyAssignments(ctx context.Context, loaderIDs []kernel.UUID) (map[kernel.UUID]kernel.UUID, error)

	// CountActiveApplicationsForLimit counts the worker's Applied and
	// Selected applications across all non-terminal orders.
	CountActiveApplicationsForLimit(ctx context.Context, loaderID kernel.UUID) (int, error)
}

// OrderWatcher is a push stream of order snapshots for read models.
type OrderWatcher interface {
	// ObserveOrders delivers the full joined snapshot of all orders on
	// subscription and again after every committed mutation. Snapshots are
	// always consistent; a slow subscriber is coalesced to the latest
	// snapshot instead of blocking writers. The returned cancel func stops
	// the subscription; the channel is closed on cancel or ctx done.
	ObserveOrders(ctx context.Context) (<-chan []*order.Order, func())
}
