package queries

import (
	"errors"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

var ErrGetRespondersWithAvailabilityQueryIsNotConstructed = errors.New(
	"GetRespondersWithAvailabilityQuery must be created via NewGetRespondersWithAvailabilityQuery constructor",
)

// GetRespondersWithAvailabilityQuery resolves global availability for a set
// of workers, typically the applicants of one order.
type GetRespondersWithAvailabilityQuery struct {
	loaderIDs []kernel.UUID

	guard kernel.ConstructorGuard
}

// NewGetRespondersWithAvailabilityQuery creates an availability query.
// Every id must be valid; an empty set is allowed and yields an empty result.
func NewGetRespondersWithAvailabilityQuery(loaderIDs []kernel.UUID) (GetRespondersWithAvailabilityQuery, error) {
	for _, id := range loaderIDs {
		if err := id.Validate(); err != nil {
			return GetRespondersWithAvailabilityQuery{}, errs.NewValueIsRequiredErrorWithCause("loaderIDs", err)
		}
	}

	ids := make([]kernel.UUID, len(loaderIDs))
	copy(ids, loaderIDs)

	return GetRespondersWithAvailabilityQuery{
		loaderIDs: ids,
		guard:     kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetRespondersWithAvailabilityQuery) Validate() error {
	return q.guard.Validate(ErrGetRespondersWithAvailabilityQueryIsNotConstructed)
}

// LoaderIDs returns the workers whose availability is being resolved.
func (q GetRespondersWithAvailabilityQuery) LoaderIDs() []kernel.UUID {
	return q.loaderIDs
}

// ResponderAvailability is one worker's global busy state.
type ResponderAvailability struct {
	LoaderID kernel.UUID
	Busy     bool

	// BusyOrderID is the order holding the worker's active assignment,
	// nil when the worker is free.
	BusyOrderID *kernel.UUID
}
