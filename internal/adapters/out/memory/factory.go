package memory

import (
	"staffing/internal/core/ports"
)

// UnitOfWorkFactory creates units of work over one shared store.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory creates a factory bound to the store.
func NewUnitOfWorkFactory(store *Store) UnitOfWorkFactory {
	return UnitOfWorkFactory{store: store}
}

// Create returns a fresh unit of work.
func (f UnitOfWorkFactory) Create() ports.UnitOfWork {
	return NewUnitOfWork(f.store)
}
