package commands

import (
	"context"

	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// UnselectApplicantCommandHandler handles dropping a selected applicant back
// to Applied, reopening a quorum slot.
type UnselectApplicantCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.StaffingPolicy
	clock      ports.Clock
}

// NewUnselectApplicantCommandHandler creates a handler for unselection.
func NewUnselectApplicantCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) UnselectApplicantCommandHandler {
	return UnselectApplicantCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewStaffingPolicy(),
		clock:      clock,
	}
}

// Handle processes the unselection command.
func (h UnselectApplicantCommandHandler) Handle(ctx context.Context, cmd UnselectApplicantCommand) error {
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
		h.policy, aggregate, services.EventUnselect,
		cmd.Actor(), cmd.LoaderID(), h.clock.Now(), services.GuardContext{},
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
