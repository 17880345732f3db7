package commands

import (
	"errors"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

var ErrApplyToOrderCommandIsNotConstructed = errors.New(
	"ApplyToOrderCommand must be created via NewApplyToOrderCommand constructor",
)

// ApplyToOrderCommand represents a worker asking to be considered for an
// order. The optional rating is a snapshot of the worker's rating at the
// moment of application.
type ApplyToOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	rating  *float64

	guard kernel.ConstructorGuard
}

// NewApplyToOrderCommand creates a command for a worker to apply to an order.
func NewApplyToOrderCommand(orderID kernel.UUID, actor kernel.Actor, rating *float64) (ApplyToOrderCommand, error) {
	command := ApplyToOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setRating(rating),
	); err != nil {
		return ApplyToOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyToOrderCommand) Validate() error {
	return c.guard.Validate(ErrApplyToOrderCommandIsNotConstructed)
}

// OrderID returns the order being applied to.
func (c ApplyToOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the applying worker.
func (c ApplyToOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// Rating returns the worker's rating snapshot, nil when unrated.
func (c ApplyToOrderCommand) Rating() *float64 {
	return c.rating
}

func (c *ApplyToOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *ApplyToOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	c.actor = actor
	return nil
}

func (c *ApplyToOrderCommand) setRating(rating *float64) error {
	if rating != nil && (*rating < 0 || *rating > 5) {
		return errs.NewValueIsInvalidError("rating")
	}

	if rating != nil {
		value := *rating
		c.rating = &value
	}
	return nil
}
