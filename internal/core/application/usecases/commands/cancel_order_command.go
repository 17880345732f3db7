package commands

import (
	"errors"
	"strings"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents the order creator calling an order off. The
// reason is optional, but a provided reason must not be blank.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   kernel.Actor
	reason  string

	guard kernel.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order. A nil reason
// means no reason was given; a non-nil blank reason fails validation.
func NewCancelOrderCommand(orderID kernel.UUID, actor kernel.Actor, reason *string) (CancelOrderCommand, error) {
	command := CancelOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setReason(reason),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order being canceled.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the dispatcher issuing the command.
func (c CancelOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// Reason returns the cancellation reason, empty when none was given.
func (c CancelOrderCommand) Reason() string {
	return c.reason
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	c.actor = actor
	return nil
}

func (c *CancelOrderCommand) setReason(reason *string) error {
	if reason == nil {
		return nil
	}
	if strings.TrimSpace(*reason) == "" {
		return errs.NewValueIsInvalidError("reason")
	}

	c.reason = *reason
	return nil
}
