package commands

import (
	"errors"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

var ErrWithdrawApplicationCommandIsNotConstructed = errors.New(
	"WithdrawApplicationCommand must be created via NewWithdrawApplicationCommand constructor",
)

// WithdrawApplicationCommand represents a worker pulling their own
// application while the order is still staffing.
type WithdrawApplicationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard kernel.ConstructorGuard
}

// NewWithdrawApplicationCommand creates a command to withdraw an application.
func NewWithdrawApplicationCommand(orderID kernel.UUID, actor kernel.Actor) (WithdrawApplicationCommand, error) {
	command := WithdrawApplicationCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return WithdrawApplicationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawApplicationCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawApplicationCommandIsNotConstructed)
}

// OrderID returns the order the application belongs to.
func (c WithdrawApplicationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the withdrawing worker.
func (c WithdrawApplicationCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *WithdrawApplicationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *WithdrawApplicationCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	c.actor = actor
	return nil
}
