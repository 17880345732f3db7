package commands

import (
	"context"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// RefreshOrdersCommandHandler runs the expiry sweep. It walks every staffing
// order and expires the ones whose scheduled time has passed. Sweeping zero
// orders is a normal outcome, not an error.
type RefreshOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.StaffingPolicy
	clock      ports.Clock
}

// NewRefreshOrdersCommandHandler creates a handler for the expiry sweep.
func NewRefreshOrdersCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) RefreshOrdersCommandHandler {
	return RefreshOrdersCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewStaffingPolicy(),
		clock:      clock,
	}
}

// Handle processes the sweep and returns how many orders were expired.
func (h RefreshOrdersCommandHandler) Handle(ctx context.Context, cmd RefreshOrdersCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, errs.WrapUnknown(err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	staffing, err := repo.GetAllInStaffingStatus(ctx)
	if err != nil {
		return 0, errs.WrapUnknown(err)
	}

	now := h.clock.Now()
	expired := 0

	var system kernel.Actor
	for _, aggregate := range staffing {
		if reason := h.policy.Decide(
			aggregate, services.EventExpire, system, kernel.UUID{}, now, services.GuardContext{},
		); reason != nil {
			continue
		}

		if err = h.policy.Transition(
			aggregate, services.EventExpire, system, kernel.UUID{}, now, services.GuardContext{},
		); err != nil {
			return 0, err
		}

		if err = repo.Update(ctx, aggregate); err != nil {
			return 0, err
		}
		expired++
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, errs.WrapUnknown(err)
	}

	return expired, nil
}
