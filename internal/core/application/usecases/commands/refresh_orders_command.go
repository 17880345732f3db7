package commands

import (
	"errors"

	"staffing/internal/core/domain/model/kernel"
)

var ErrRefreshOrdersCommandIsNotConstructed = errors.New(
	"RefreshOrdersCommand must be created via NewRefreshOrdersCommand constructor",
)

// RefreshOrdersCommand triggers the expiry sweep over staffing orders.
// Orders whose exact schedule has passed move to Expired; "soon" orders are
// never touched. Issued by the system, not by an actor.
type RefreshOrdersCommand struct {
	guard kernel.ConstructorGuard
}

// NewRefreshOrdersCommand creates a command to run the expiry sweep.
func NewRefreshOrdersCommand() RefreshOrdersCommand {
	return RefreshOrdersCommand{
		guard: kernel.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *RefreshOrdersCommand) Validate() error {
	return c.guard.Validate(ErrRefreshOrdersCommandIsNotConstructed)
}
