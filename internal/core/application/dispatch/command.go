// Package dispatch is the single entry point for mutating the system. It
// resolves the acting user, routes a command from the closed command set to
// its handler, and folds every outcome into a uniform result.
package dispatch

import (
	"time"

	"staffing/internal/core/domain/model/kernel"
)

// CommandType enumerates the closed set of dispatchable commands.
type CommandType string

const (
	CommandRefresh  CommandType = "refresh"
	CommandCreate   CommandType = "create"
	CommandApply    CommandType = "apply"
	CommandWithdraw CommandType = "withdraw"
	CommandSelect   CommandType = "select"
	CommandUnselect CommandType = "unselect"
	CommandStart    CommandType = "start"
	CommandCancel   CommandType = "cancel"
	CommandComplete CommandType = "complete"
)

// Command is one dispatch request. Type decides which payload fields matter:
// OrderID for everything except Refresh and Create, LoaderID for Select and
// Unselect, Reason for Cancel, Rating for Apply, and Create for Create.
type Command struct {
	Type     CommandType
	OrderID  kernel.UUID
	LoaderID kernel.UUID
	Reason   *string
	Rating   *float64
	Create   *CreateOrderSpec
}

// CreateOrderSpec is the payload for publishing a new order.
type CreateOrderSpec struct {
	Title           string
	Address         string
	PricePerHour    int
	Schedule        kernel.Schedule
	Duration        time.Duration
	RequiredWorkers int
	Tags            []string
	Metadata        map[string]string
	Comment         string
}
