package queries

import (
	"context"
	"log/slog"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
	"staffing/internal/core/domain/services"
	"staffing/internal/core/ports"
	"staffing/internal/pkg/errs"
)

// ObserveOrderModelsQueryHandler turns the repository's snapshot stream into
// per-actor order models. Each snapshot costs a constant number of repository
// calls: the actor's cross-order facts are fetched once and every order in
// the snapshot is projected from data already on the aggregate. A subscriber
// that falls behind receives the latest projection, not the backlog.
type ObserveOrderModelsQueryHandler struct {
	watcher ports.OrderWatcher
	repo    ports.OrderRepository
	policy  services.StaffingPolicy
	clock   ports.Clock
	logger  *slog.Logger
}

// NewObserveOrderModelsQueryHandler creates a handler for live order lists.
func NewObserveOrderModelsQueryHandler(
	watcher ports.OrderWatcher,
	repo ports.OrderRepository,
	clock ports.Clock,
	logger *slog.Logger,
) ObserveOrderModelsQueryHandler {
	return ObserveOrderModelsQueryHandler{
		watcher: watcher,
		repo:    repo,
		policy:  services.NewStaffingPolicy(),
		clock:   clock,
		logger:  logger.With("component", "observe_order_models"),
	}
}

// Handle subscribes the actor and returns the model stream plus a cancel
// func. The channel closes when the subscription is canceled or ctx ends.
func (h ObserveOrderModelsQueryHandler) Handle(
	ctx context.Context,
	query ObserveOrderModelsQuery,
) (<-chan []OrderModel, func(), error) {
	if err := query.Validate(); err != nil {
		return nil, nil, err
	}

	snapshots, cancel := h.watcher.ObserveOrders(ctx)
	out := make(chan []OrderModel, 1)

	go func() {
		defer close(out)
		for snapshot := range snapshots {
			models, err := h.project(ctx, query.Actor(), snapshot)
			if err != nil {
				h.logger.Error("projection failed", "error", err)
				continue
			}
			publishLatest(out, models)
		}
	}()

	return out, cancel, nil
}

func (h ObserveOrderModelsQueryHandler) project(
	ctx context.Context,
	actor kernel.Actor,
	snapshot []*order.Order,
) ([]OrderModel, error) {
	gc := services.GuardContext{}
	if actor.IsWorker() {
		busy, err := h.repo.GetBusyAssignments(ctx, []kernel.UUID{actor.ID()})
		if err != nil {
			return nil, errs.WrapUnknown(err)
		}
		if busyOn, ok := busy[actor.ID()]; ok {
			gc.ActorBusyOn = &busyOn
		}

		inFlight, err := h.repo.CountActiveApplicationsForLimit(ctx, actor.ID())
		if err != nil {
			return nil, errs.WrapUnknown(err)
		}
		gc.ApplicationsInFlight = inFlight
	}

	now := h.clock.Now()
	models := make([]OrderModel, 0, len(snapshot))
	for _, o := range snapshot {
		model := OrderModel{
			ID:              o.ID(),
			Title:           o.Title(),
			Address:         o.Address(),
			PricePerHour:    o.PricePerHour(),
			Schedule:        o.Schedule(),
			Duration:        o.Duration(),
			RequiredWorkers: o.RequiredWorkers(),
			SelectedCount:   o.SelectedCount(),
			Status:          o.Status(),
			CancelReason:    o.CancelReason(),
			Actions:         h.policy.ActionsFor(o, actor, now, gc),
		}
		if app, ok := o.ApplicationFor(actor.ID()); ok {
			status := app.Status()
			model.MyApplicationStatus = &status
		}
		models = append(models, model)
	}
	return models, nil
}

// publishLatest delivers the projection without ever blocking on a slow
// consumer: a stale undelivered projection is replaced by the new one.
func publishLatest(out chan []OrderModel, models []OrderModel) {
	select {
	case out <- models:
	default:
		select {
		case <-out:
		default:
		}
		select {
		case out <- models:
		default:
		}
	}
}
