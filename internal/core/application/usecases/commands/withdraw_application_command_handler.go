package commands

import (
	"context"

	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// WithdrawApplicationCommandHandler handles a worker withdrawing their
// application. A Selected application withdraws too and frees a quorum slot.
type WithdrawApplicationCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.StaffingPolicy
	clock      ports.Clock
}

// NewWithdrawApplicationCommandHandler creates a handler for withdrawals.
func NewWithdrawApplicationCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) WithdrawApplicationCommandHandler {
	return WithdrawApplicationCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewStaffingPolicy(),
		clock:      clock,
	}
}

// Handle processes the withdrawal command.
func (h WithdrawApplicationCommandHandler) Handle(ctx context.Context, cmd WithdrawApplicationCommand) error {
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
		h.policy, aggregate, services.EventWithdraw,
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
