package commands

import (
	"errors"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

var ErrStartOrderCommandIsNotConstructed = errors.New(
	"StartOrderCommand must be created via NewStartOrderCommand constructor",
)

// StartOrderCommand represents the order creator converting a full quorum
// into active assignments.
type StartOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor

	guard kernel.ConstructorGuard
}

// NewStartOrderCommand creates a command to start an order.
func NewStartOrderCommand(orderID kernel.UUID, actor kernel.Actor) (StartOrderCommand, error) {
	command := StartOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
	); err != nil {
		return StartOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c StartOrderCommand) Validate() error {
	return c.guard.Validate(ErrStartOrderCommandIsNotConstructed)
}

// OrderID returns the order being started.
func (c StartOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the dispatcher issuing the command.
func (c StartOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c *StartOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *StartOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	c.actor = actor
	return nil
}
