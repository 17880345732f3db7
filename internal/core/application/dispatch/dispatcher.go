package dispatch

import (
	"context"
	"fmt"
	"log/slog"

	"staffing/internal/core/application/usecases/commands"
	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/ports"
)

// Handlers bundles one handler per dispatchable command.
type Handlers struct {
	CreateOrder         commands.CreateOrderCommandHandler
	ApplyToOrder        commands.ApplyToOrderCommandHandler
	WithdrawApplication commands.WithdrawApplicationCommandHandler
	SelectApplicant     commands.SelectApplicantCommandHandler
	UnselectApplicant   commands.UnselectApplicantCommandHandler
	StartOrder          commands.StartOrderCommandHandler
	CancelOrder         commands.CancelOrderCommandHandler
	CompleteOrder       commands.CompleteOrderCommandHandler
	RefreshOrders       commands.RefreshOrdersCommandHandler
}

// Dispatcher routes commands to handlers. All mutations flow through here so
// actor resolution, logging and outcome classification happen exactly once.
type Dispatcher struct {
	actors   ports.ActorProvider
	handlers Handlers
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given handler set.
func NewDispatcher(actors ports.ActorProvider, handlers Handlers, logger *slog.Logger) Dispatcher {
	return Dispatcher{
		actors:   actors,
		handlers: handlers,
		logger:   logger.With("component", "dispatch"),
	}
}

// Dispatch executes one command and reports the outcome. It never returns an
// error: every failure is folded into the result.
func (d Dispatcher) Dispatch(ctx context.Context, cmd Command) Result {
	d.logger.Info("command received", "type", cmd.Type)

	result := d.dispatch(ctx, cmd)

	if result.Outcome == OutcomeOK {
		d.logger.Info("command applied", "type", cmd.Type)
	} else {
		d.logger.Warn("command refused",
			"type", cmd.Type, "outcome", result.Outcome, "reason", result.Reason)
	}

	return result
}

func (d Dispatcher) dispatch(ctx context.Context, cmd Command) Result {
	if cmd.Type == CommandRefresh {
		return d.dispatchRefresh(ctx)
	}

	actor, err := d.actors.CurrentActor(ctx)
	if err != nil {
		return Result{Outcome: OutcomeForbidden, Reason: "no actor selected"}
	}

	switch cmd.Type {
	case CommandCreate:
		return d.dispatchCreate(ctx, actor, cmd)
	case CommandApply:
		command, err := commands.NewApplyToOrderCommand(cmd.OrderID, actor, cmd.Rating)
		if err != nil {
			return resultFromError(err)
		}
		return d.simple(d.handlers.ApplyToOrder.Handle(ctx, command))
	case CommandWithdraw:
		command, err := commands.NewWithdrawApplicationCommand(cmd.OrderID, actor)
		if err != nil {
			return resultFromError(err)
		}
		return d.simple(d.handlers.WithdrawApplication.Handle(ctx, command))
	case CommandSelect:
		command, err := commands.NewSelectApplicantCommand(cmd.OrderID, actor, cmd.LoaderID)
		if err != nil {
			return resultFromError(err)
		}
		return d.simple(d.handlers.SelectApplicant.Handle(ctx, command))
	case CommandUnselect:
		command, err := commands.NewUnselectApplicantCommand(cmd.OrderID, actor, cmd.LoaderID)
		if err != nil {
			return resultFromError(err)
		}
		return d.simple(d.handlers.UnselectApplicant.Handle(ctx, command))
	case CommandStart:
		command, err := commands.NewStartOrderCommand(cmd.OrderID, actor)
		if err != nil {
			return resultFromError(err)
		}
		return d.simple(d.handlers.StartOrder.Handle(ctx, command))
	case CommandCancel:
		command, err := commands.NewCancelOrderCommand(cmd.OrderID, actor, cmd.Reason)
		if err != nil {
			return resultFromError(err)
		}
		return d.simple(d.handlers.CancelOrder.Handle(ctx, command))
	case CommandComplete:
		command, err := commands.NewCompleteOrderCommand(cmd.OrderID, actor)
		if err != nil {
			return resultFromError(err)
		}
		return d.simple(d.handlers.CompleteOrder.Handle(ctx, command))
	default:
		return Result{
			Outcome: OutcomeInvalid,
			Reason:  fmt.Sprintf("unknown command type %q", cmd.Type),
		}
	}
}

func (d Dispatcher) dispatchRefresh(ctx context.Context) Result {
	command := commands.NewRefreshOrdersCommand()
	expired, err := d.handlers.RefreshOrders.Handle(ctx, command)
	if err != nil {
		return resultFromError(err)
	}

	result := ok()
	result.Expired = expired
	return result
}

func (d Dispatcher) dispatchCreate(ctx context.Context, actor kernel.Actor, cmd Command) Result {
	if cmd.Create == nil {
		return Result{Outcome: OutcomeInvalid, Reason: "create payload is required"}
	}

	orderID := kernel.NewUUID()
	command, err := commands.NewCreateOrderCommand(
		orderID, actor,
		cmd.Create.Title, cmd.Create.Address, cmd.Create.PricePerHour,
		cmd.Create.Schedule, cmd.Create.Duration, cmd.Create.RequiredWorkers,
		cmd.Create.Tags, cmd.Create.Metadata, cmd.Create.Comment,
	)
	if err != nil {
		return resultFromError(err)
	}

	if err = d.handlers.CreateOrder.Handle(ctx, command); err != nil {
		return resultFromError(err)
	}

	result := ok()
	result.OrderID = orderID
	return result
}

func (d Dispatcher) simple(err error) Result {
	if err != nil {
		return resultFromError(err)
	}
	return ok()
}
