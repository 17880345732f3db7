package commands

import (
	"errors"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

var ErrUnselectApplicantCommandIsNotConstructed = errors.New(
	"UnselectApplicantCommand must be created via NewUnselectApplicantCommand constructor",
)

// UnselectApplicantCommand represents the order creator dropping a selected
// applicant back to Applied.
type UnselectApplicantCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actor    kernel.Actor
	loaderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewUnselectApplicantCommand creates a command to unselect an applicant.
func NewUnselectApplicantCommand(orderID kernel.UUID, actor kernel.Actor, loaderID kernel.UUID) (UnselectApplicantCommand, error) {
	command := UnselectApplicantCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setLoaderID(loaderID),
	); err != nil {
		return UnselectApplicantCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UnselectApplicantCommand) Validate() error {
	return c.guard.Validate(ErrUnselectApplicantCommandIsNotConstructed)
}

// OrderID returns the order being staffed.
func (c UnselectApplicantCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the dispatcher issuing the command.
func (c UnselectApplicantCommand) Actor() kernel.Actor {
	return c.actor
}

// LoaderID returns the applicant being unselected.
func (c UnselectApplicantCommand) LoaderID() kernel.UUID {
	return c.loaderID
}

func (c *UnselectApplicantCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *UnselectApplicantCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	c.actor = actor
	return nil
}

func (c *UnselectApplicantCommand) setLoaderID(loaderID kernel.UUID) error {
	if err := loaderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("loaderID", err)
	}

	c.loaderID = loaderID
	return nil
}
