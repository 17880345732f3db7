package commands

import (
	"context"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// SelectApplicantCommandHandler handles selecting an applicant into the
// quorum. The applicant's global busy state is checked here so an already
// assigned worker is refused immediately with the conflicting order id. The
// check is advisory only; Start repeats it authoritatively before committing.
type SelectApplicantCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.StaffingPolicy
	clock      ports.Clock
}

// NewSelectApplicantCommandHandler creates a handler for applicant selection.
func NewSelectApplicantCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) SelectApplicantCommandHandler {
	return SelectApplicantCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewStaffingPolicy(),
		clock:      clock,
	}
}

// Handle processes the selection command.
func (h SelectApplicantCommandHandler) Handle(ctx context.Context, cmd SelectApplicantCommand) error {
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

	busy, err := repo.GetBusyAssignments(ctx, []kernel.UUID{cmd.LoaderID()})
	if err != nil {
		return errs.WrapUnknown(err)
	}

	if err = transitionOrFail(
		h.policy, aggregate, services.EventSelect,
		cmd.Actor(), cmd.LoaderID(), h.clock.Now(),
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
