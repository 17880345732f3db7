package commands

import (
	"context"

	"staffing/internal/core/domain/model/order"
	"staffing/internal/pkg/errs"
)

// CreateOrderCommandHandler handles order publication.
// New orders start in Staffing status with no applications and no assignments.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order publication.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command. Only a dispatcher may publish
// an order; the actor becomes the order's creator.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().IsDispatcher() {
		return errs.NewAuthorizationError("only a dispatcher can create orders")
	}

	aggregate, err := order.NewOrder(
		cmd.OrderID(),
		cmd.Actor().ID(),
		cmd.Title(),
		cmd.Address(),
		cmd.PricePerHour(),
		cmd.Schedule(),
		cmd.Duration(),
		cmd.RequiredWorkers(),
		cmd.Tags(),
		cmd.Metadata(),
		cmd.Comment(),
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return errs.WrapUnknown(err)
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return errs.WrapUnknown(err)
	}

	if err = uow.Commit(ctx); err != nil {
		return errs.WrapUnknown(err)
	}

	return nil
}
