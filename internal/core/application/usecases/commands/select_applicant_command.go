package commands

import (
	"errors"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

var ErrSelectApplicantCommandIsNotConstructed = errors.New(
	"SelectApplicantCommand must be created via NewSelectApplicantCommand constructor",
)

// SelectApplicantCommand represents the order creator picking an applicant
// into the quorum.
type SelectApplicantCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	actor    kernel.Actor
	loaderID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewSelectApplicantCommand creates a command to select an applicant.
func NewSelectApplicantCommand(orderID kernel.UUID, actor kernel.Actor, loaderID kernel.UUID) (SelectApplicantCommand, error) {
	command := SelectApplicantCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setLoaderID(loaderID),
	); err != nil {
		return SelectApplicantCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectApplicantCommand) Validate() error {
	return c.guard.Validate(ErrSelectApplicantCommandIsNotConstructed)
}

// OrderID returns the order being staffed.
func (c SelectApplicantCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the dispatcher issuing the command.
func (c SelectApplicantCommand) Actor() kernel.Actor {
	return c.actor
}

// LoaderID returns the applicant being selected.
func (c SelectApplicantCommand) LoaderID() kernel.UUID {
	return c.loaderID
}

func (c *SelectApplicantCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *SelectApplicantCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	c.actor = actor
	return nil
}

func (c *SelectApplicantCommand) setLoaderID(loaderID kernel.UUID) error {
	if err := loaderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("loaderID", err)
	}

	c.loaderID = loaderID
	return nil
}
