package commands

import (
	"context"
	"time"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// blockedToError maps a staffing policy refusal into the error taxonomy.
// Authorization-shaped reasons become AuthorizationError, the exclusivity
// conflict keeps its worker and order ids, everything else is a StateError.
func blockedToError(reason services.BlockReason) error {
	switch r := reason.(type) {
	case services.WorkerBusy:
		return errs.NewConflictError(r.LoaderID.String(), r.OrderID.String())
	case services.NoActorSelected, services.RoleNotAllowed, services.NotCreator, services.NotAssigned:
		return errs.NewAuthorizationError(reason.Message())
	default:
		return errs.NewStateError(reason.Message())
	}
}

// transitionOrFail runs the policy transition and maps a refusal into the
// taxonomy. Aggregate-level errors pass through untouched.
func transitionOrFail(
	policy services.StaffingPolicy,
	o *order.Order,
	ev services.Event,
	actor kernel.Actor,
	target kernel.UUID,
	now time.Time,
	gc services.GuardContext,
) error {
	err := policy.Transition(o, ev, actor, target, now, gc)
	if err == nil {
		return nil
	}
	if reason, ok := err.(services.BlockReason); ok {
		return blockedToError(reason)
	}
	return err
}

// actorGuardContext loads the acting worker's cross-order facts: the order
// they are busy on (if any) and their in-flight application count.
func actorGuardContext(
	ctx context.Context,
	repo ports.OrderRepository,
	actorID kernel.UUID,
) (services.GuardContext, error) {
	busy, err := repo.GetBusyAssignments(ctx, []kernel.UUID{actorID})
	if err != nil {
		return services.GuardContext{}, errs.WrapUnknown(err)
	}

	inFlight, err := repo.CountActiveApplicationsForLimit(ctx, actorID)
	if err != nil {
		return services.GuardContext{}, errs.WrapUnknown(err)
	}

	gc := services.GuardContext{ApplicationsInFlight: inFlight}
	if busyOn, ok := busy[actorID]; ok {
		gc.ActorBusyOn = &busyOn
	}
	return gc, nil
}
