package commands

import (
	"context"

	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// ApplyToOrderCommandHandler handles a worker's application to an order.
// Besides the order-local guards it consults the worker's cross-order state:
// an active assignment anywhere or too many in-flight applications blocks the
// application before it is recorded.
type ApplyToOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.StaffingPolicy
	clock      ports.Clock
}

// NewApplyToOrderCommandHandler creates a handler for worker applications.
func NewApplyToOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) ApplyToOrderCommandHandler {
	return ApplyToOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewStaffingPolicy(),
		clock:      clock,
	}
}

// Handle processes the application command.
func (h ApplyToOrderCommandHandler) Handle(ctx context.Context, cmd ApplyToOrderCommand) error {
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

	gc, err := actorGuardContext(ctx, repo, cmd.Actor().ID())
	if err != nil {
		return err
	}
	gc.ApplicantRating = cmd.Rating()

	if err = transitionOrFail(
		h.policy, aggregate, services.EventApply,
		cmd.Actor(), cmd.Actor().ID(), h.clock.Now(), gc,
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
