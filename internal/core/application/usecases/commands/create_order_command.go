package commands

import (
	"errors"
	"time"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a dispatcher's request to publish a new order.
// Carries everything the order needs to start staffing: title, address, rate,
// schedule, duration and the required crew size.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	actor           kernel.Actor
	title           string
	address         string
	pricePerHour    int
	schedule        kernel.Schedule
	duration        time.Duration
	requiredWorkers int
	tags            []string
	metadata        map[string]string
	comment         string

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand creates a command to publish a new order.
// Validates ids, the non-empty title and address, the positive rate and
// duration, and the crew size. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	title string,
	address string,
	pricePerHour int,
	schedule kernel.Schedule,
	duration time.Duration,
	requiredWorkers int,
	tags []string,
	metadata map[string]string,
	comment string,
) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		tags:     tags,
		metadata: metadata,
		comment:  comment,
		guard:    kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setActor(actor),
		command.setTitle(title),
		command.setAddress(address),
		command.setPricePerHour(pricePerHour),
		command.setSchedule(schedule),
		command.setDuration(duration),
		command.setRequiredWorkers(requiredWorkers),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the dispatcher issuing the command.
func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

// Title returns the short human-readable order title.
func (c CreateOrderCommand) Title() string {
	return c.title
}

// Address returns the work site address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// PricePerHour returns the hourly rate in minor currency units.
func (c CreateOrderCommand) PricePerHour() int {
	return c.pricePerHour
}

// Schedule returns when the work is planned to happen.
func (c CreateOrderCommand) Schedule() kernel.Schedule {
	return c.schedule
}

// Duration returns the planned length of the work.
func (c CreateOrderCommand) Duration() time.Duration {
	return c.duration
}

// RequiredWorkers returns the crew size the order is staffing for.
func (c CreateOrderCommand) RequiredWorkers() int {
	return c.requiredWorkers
}

// Tags returns the free-form order tags.
func (c CreateOrderCommand) Tags() []string {
	return c.tags
}

// Metadata returns the free-form order metadata.
func (c CreateOrderCommand) Metadata() map[string]string {
	return c.metadata
}

// Comment returns the optional dispatcher comment.
func (c CreateOrderCommand) Comment() string {
	return c.comment
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}

	c.title = title
	return nil
}

func (c *CreateOrderCommand) setAddress(address string) error {
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	c.address = address
	return nil
}

func (c *CreateOrderCommand) setPricePerHour(pricePerHour int) error {
	if pricePerHour <= 0 {
		return errs.NewValueIsInvalidError("pricePerHour")
	}

	c.pricePerHour = pricePerHour
	return nil
}

func (c *CreateOrderCommand) setSchedule(schedule kernel.Schedule) error {
	if err := schedule.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("schedule", err)
	}

	c.schedule = schedule
	return nil
}

func (c *CreateOrderCommand) setDuration(duration time.Duration) error {
	if duration <= 0 {
		return errs.NewValueIsInvalidError("duration")
	}

	c.duration = duration
	return nil
}

func (c *CreateOrderCommand) setRequiredWorkers(requiredWorkers int) error {
	if requiredWorkers < 1 {
		return errs.NewValueIsInvalidError("requiredWorkers")
	}

	c.requiredWorkers = requiredWorkers
	return nil
}
