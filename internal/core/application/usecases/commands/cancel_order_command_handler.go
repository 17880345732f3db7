package commands

import (
	"context"

	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// CancelOrderCommandHandler handles order cancellation from Staffing or
// InProgress. Active assignments are canceled in the same transaction so the
// affected workers become free again.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.StaffingPolicy
	clock      ports.Clock
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewStaffingPolicy(),
		clock:      clock,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
		h.policy, aggregate, services.EventCancel,
		cmd.Actor(), cmd.Actor().ID(), h.clock.Now(),
		services.GuardContext{CancelReason: cmd.Reason()},
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
