package queries

import (
	"context"

	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// GetRespondersWithAvailabilityQueryHandler resolves worker availability in
// bulk: one repository call for the whole id set, never one per worker.
type GetRespondersWithAvailabilityQueryHandler struct {
	repo ports.OrderRepository
}

// NewGetRespondersWithAvailabilityQueryHandler creates a handler for
// availability queries.
func NewGetRespondersWithAvailabilityQueryHandler(repo ports.OrderRepository) GetRespondersWithAvailabilityQueryHandler {
	return GetRespondersWithAvailabilityQueryHandler{repo: repo}
}

// Handle resolves availability for every requested worker, preserving the
// input order.
func (h GetRespondersWithAvailabilityQueryHandler) Handle(
	ctx context.Context,
	query GetRespondersWithAvailabilityQuery,
) ([]ResponderAvailability, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	busy, err := h.repo.GetBusyAssignments(ctx, query.LoaderIDs())
	if err != nil {
		return nil, errs.WrapUnknown(err)
	}

	responders := make([]ResponderAvailability, 0, len(query.LoaderIDs()))
	for _, loaderID := range query.LoaderIDs() {
		availability := ResponderAvailability{LoaderID: loaderID}
		if busyOn, ok := busy[loaderID]; ok {
			availability.Busy = true
			availability.BusyOrderID = &busyOn
		}
		responders = append(responders, availability)
	}

	return responders, nil
}
