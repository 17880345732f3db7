package commands

import (
	"context"

	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// StartOrderCommandHandler handles the staffing-to-in-progress transition.
// It runs in two phases inside one transaction: first the structural guards
// (creator, full quorum), then an authoritative re-read of the selected
// workers' active assignments immediately before commit. A worker who became
// busy elsewhere after selection fails the start with a conflict carrying
// the competing order id; nothing is written in that case.
type StartOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.StaffingPolicy
	clock      ports.Clock
}

// NewStartOrderCommandHandler creates a handler for starting orders.
func NewStartOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) StartOrderCommandHandler {
	return StartOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewStaffingPolicy(),
		clock:      clock,
	}
}

// Handle processes the start command. On success every selected application
// becomes an active assignment, remaining Applied applications are rejected,
// and the order moves to InProgress, all atomically.
func (h StartOrderCommandHandler) Handle(ctx context.Context, cmd StartOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return errs.WrapUnknown(err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	aggregate, err := repo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := h.clock.Now()

	// Phase 1: structural guards without busy data.
	if reason := h.policy.Decide(
		aggregate, services.EventStart, cmd.Actor(), cmd.Actor().ID(), now, services.GuardContext{},
	); reason != nil {
		return blockedToError(reason)
	}

	// Phase 2: re-check exclusivity for exactly the selected workers within
	// the same transaction, then transition with the fresh busy data.
	busy, err := repo.GetBusyAssignments(ctx, aggregate.SelectedLoaderIDs())
	if err != nil {
		return errs.WrapUnknown(err)
	}

	if err = transitionOrFail(
		h.policy, aggregate, services.EventStart,
		cmd.Actor(), cmd.Actor().ID(), now,
		services.GuardContext{BusyLoaders: busy},
	); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.WrapUnknown(err)
	}

	return nil
}
