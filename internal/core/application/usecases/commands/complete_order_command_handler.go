package commands

import (
	"context"

	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// CompleteOrderCommandHandler handles finishing an in-progress order. Active
// assignments are completed in the same transaction, releasing the workers.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.StaffingPolicy
	clock      ports.Clock
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewStaffingPolicy(),
		clock:      clock,
	}
}

// Handle processes the completion command.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	if err = transitionOrFail(
		h.policy, aggregate, services.EventComplete,
		cmd.Actor(), cmd.Actor().ID(), h.clock.Now(), services.GuardContext{},
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
