package services

import (
	"fmt"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
)

// BlockReason explains why the staffing policy refused an event or disabled
// an action. The set of reasons is closed: every implementation lives in this
// package, and each carries the structured data behind the refusal. A reason
// doubles as an error so it can travel up through ordinary return values.
type BlockReason interface {
	error

	// Message is the short, displayable explanation shown next to a
	// disabled action.
	Message() string

	blockReason()
}

// TerminalStatus blocks every event uniformly once an order is completed,
// canceled, or expired.
type TerminalStatus struct {
	Status order.Status
}

func (r TerminalStatus) Message() string {
	return fmt.Sprintf("order is %s", r.Status)
}

// UnsupportedEventForStatus blocks an event the current status does not
// define an edge for.
type UnsupportedEventForStatus struct {
	Event  Event
	Status order.Status
}

func (r UnsupportedEventForStatus) Message() string {
	return fmt.Sprintf("%s is not possible while the order is %s", r.Event, r.Status)
}

// NoActorSelected blocks everything when the session layer could not resolve
// a caller.
type NoActorSelected struct{}

func (r NoActorSelected) Message() string {
	return "no actor selected"
}

// RoleNotAllowed blocks an event reserved for the other marketplace role.
type RoleNotAllowed struct {
	Event Event
	Role  kernel.Role
}

func (r RoleNotAllowed) Message() string {
	return fmt.Sprintf("a %s cannot %s", r.Role, r.Event)
}

// NotCreator blocks dispatcher actions on orders created by someone else.
type NotCreator struct{}

func (r NotCreator) Message() string {
	return "only the order creator can do this"
}

// AlreadyApplied blocks a second application by the same worker, whatever
// became of the first one.
type AlreadyApplied struct {
	Status order.ApplicationStatus
}

func (r AlreadyApplied) Message() string {
	return fmt.Sprintf("worker already has a %s application on this order", r.Status)
}

// WorkerBusy blocks an event because the worker holds an active assignment on
// another order: the global exclusivity invariant.
type WorkerBusy struct {
	LoaderID kernel.UUID
	OrderID  kernel.UUID
}

func (r WorkerBusy) Message() string {
	return fmt.Sprintf("worker is already assigned to order %s", r.OrderID)
}

// ApplyLimitReached blocks a worker who already has the maximum number of
// applications in flight across all orders.
type ApplyLimitReached struct {
	Limit int
}

func (r ApplyLimitReached) Message() string {
	return fmt.Sprintf("worker already has %d applications in flight", r.Limit)
}

// NoApplication blocks events that require the worker to have an in-flight
// application on the order.
type NoApplication struct{}

func (r NoApplication) Message() string {
	return "worker has no active application on this order"
}

// ApplicationNotApplied blocks selecting an application that is not in
// Applied status.
type ApplicationNotApplied struct {
	Status order.ApplicationStatus
}

func (r ApplicationNotApplied) Message() string {
	return fmt.Sprintf("application is %s, not Applied", r.Status)
}

// ApplicationNotSelected blocks unselecting an application that is not part
// of the quorum.
type ApplicationNotSelected struct {
	Status order.ApplicationStatus
}

func (r ApplicationNotSelected) Message() string {
	return fmt.Sprintf("application is %s, not Selected", r.Status)
}

// SelectionFull blocks selecting another worker once the quorum is complete.
type SelectionFull struct {
	Required int
}

func (r SelectionFull) Message() string {
	return fmt.Sprintf("all %d required workers are already selected", r.Required)
}

// SelectedCountMismatch blocks starting an order whose quorum is unmet.
type SelectedCountMismatch struct {
	Selected int
	Required int
}

func (r SelectedCountMismatch) Message() string {
	return fmt.Sprintf("selected %d of %d required workers", r.Selected, r.Required)
}

// NotAssigned blocks a worker from completing an order they hold no active
// assignment on.
type NotAssigned struct{}

func (r NotAssigned) Message() string {
	return "worker has no active assignment on this order"
}

// ScheduleNotElapsed blocks expiring an order whose exact time has not passed
// or which is scheduled "soon".
type ScheduleNotElapsed struct{}

func (r ScheduleNotElapsed) Message() string {
	return "scheduled time has not passed"
}

func (r TerminalStatus) Error() string            { return r.Message() }
func (r UnsupportedEventForStatus) Error() string { return r.Message() }
func (r NoActorSelected) Error() string           { return r.Message() }
func (r RoleNotAllowed) Error() string            { return r.Message() }
func (r NotCreator) Error() string                { return r.Message() }
func (r AlreadyApplied) Error() string            { return r.Message() }
func (r WorkerBusy) Error() string                { return r.Message() }
func (r ApplyLimitReached) Error() string         { return r.Message() }
func (r NoApplication) Error() string             { return r.Message() }
func (r ApplicationNotApplied) Error() string     { return r.Message() }
func (r ApplicationNotSelected) Error() string    { return r.Message() }
func (r SelectionFull) Error() string             { return r.Message() }
func (r SelectedCountMismatch) Error() string     { return r.Message() }
func (r NotAssigned) Error() string               { return r.Message() }
func (r ScheduleNotElapsed) Error() string        { return r.Message() }

func (TerminalStatus) blockReason()            {}
func (UnsupportedEventForStatus) blockReason() {}
func (NoActorSelected) blockReason()           {}
func (RoleNotAllowed) blockReason()            {}
func (NotCreator) blockReason()                {}
func (AlreadyApplied) blockReason()            {}
func (WorkerBusy) blockReason()                {}
func (ApplyLimitReached) blockReason()         {}
func (NoApplication) blockReason()             {}
func (ApplicationNotApplied) blockReason()     {}
func (ApplicationNotSelected) blockReason()    {}
func (SelectionFull) blockReason()             {}
func (SelectedCountMismatch) blockReason()     {}
func (NotAssigned) blockReason()               {}
func (ScheduleNotElapsed) blockReason()        {}
