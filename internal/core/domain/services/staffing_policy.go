package services

import (
	"fmt"
	"time"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
)

// DefaultApplyLimit is how many applications a worker may have in flight
// (Applied or Selected) across all non-terminal orders at once.
const DefaultApplyLimit = 3

// Event is one of the closed set of things that can happen to an order.
type Event int

const (
	// EventUnknown is the invalid zero value.
	EventUnknown Event = iota

	// EventApply is a worker asking to be considered.
	EventApply

	// EventWithdraw is a worker pulling their own application.
	EventWithdraw

	// EventSelect is the creator picking an applicant into the quorum.
	EventSelect

	// EventUnselect is the creator dropping an applicant from the quorum.
	EventUnselect

	// EventStart is the creator converting a full quorum into assignments.
	EventStart

	// EventCancel is the creator calling the order off.
	EventCancel

	// EventComplete is finishing an in-progress order.
	EventComplete

	// EventExpire is the system sweeping an overdue staffing order.
	EventExpire
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventUnknown:  "Unknown",
		EventApply:    "Apply",
		EventWithdraw: "Withdraw",
		EventSelect:   "Select",
		EventUnselect: "Unselect",
		EventStart:    "Start",
		EventCancel:   "Cancel",
		EventComplete: "Complete",
		EventExpire:   "Expire",
	}
}

// String returns the human-readable name of the event.
func (e Event) String() string {
	if s, ok := getEventStrings()[e]; ok {
		return s
	}
	return "Unknown"
}

// GuardContext carries the facts the policy cannot derive from the order
// alone, plus the payload an event brings along. The use case layer fills it
// from the repository before calling the policy; the policy itself never
// touches storage.
type GuardContext struct {
	// ActorBusyOn is the id of the order the acting worker holds an active
	// assignment on, nil when the worker is free. Feeds the exclusivity
	// guard on Apply.
	ActorBusyOn *kernel.UUID

	// ApplicationsInFlight is the acting worker's count of Applied or
	// Selected applications across all non-terminal orders.
	ApplicationsInFlight int

	// ApplyLimit overrides DefaultApplyLimit when positive.
	ApplyLimit int

	// BusyLoaders maps worker ids to the order they are actively assigned
	// to. Feeds the exclusivity guard on Select (the fail-fast check) and
	// Start (the authoritative commit-time re-check). Workers without an
	// active assignment are absent.
	BusyLoaders map[kernel.UUID]kernel.UUID

	// ApplicantRating is the rating snapshot recorded with an Apply event.
	ApplicantRating *float64

	// CancelReason is the reason recorded with a Cancel event.
	CancelReason string
}

func (gc GuardContext) applyLimit() int {
	if gc.ApplyLimit > 0 {
		return gc.ApplyLimit
	}
	return DefaultApplyLimit
}

// StaffingPolicy is the domain service deciding which staffing events are
// allowed. It is stateless; all inputs arrive as arguments.
type StaffingPolicy struct{}

// NewStaffingPolicy creates a new StaffingPolicy instance.
func NewStaffingPolicy() StaffingPolicy {
	return StaffingPolicy{}
}

// Decide evaluates the guards for one event and returns nil when the event is
// allowed, or the BlockReason refusing it. target is the worker the event is
// aimed at: the actor's own id for Apply/Withdraw, the applicant for
// Select/Unselect, and ignored otherwise. Decide never mutates the order.
func (p StaffingPolicy) Decide(
	o *order.Order,
	ev Event,
	actor kernel.Actor,
	target kernel.UUID,
	now time.Time,
	gc GuardContext,
) BlockReason {
	if err := o.Validate(); err != nil {
		return UnsupportedEventForStatus{Event: ev, Status: order.StatusUnknown}
	}
	if ev != EventExpire && actor.Validate() != nil {
		return NoActorSelected{}
	}
	if o.Status().IsTerminal() {
		return TerminalStatus{Status: o.Status()}
	}

	switch ev {
	case EventApply:
		return p.decideApply(o, actor, gc)
	case EventWithdraw:
		return p.decideWithdraw(o, actor)
	case EventSelect:
		return p.decideSelect(o, actor, target, gc)
	case EventUnselect:
		return p.decideUnselect(o, actor, target)
	case EventStart:
		return p.decideStart(o, actor, gc)
	case EventCancel:
		return p.decideCancel(o, actor)
	case EventComplete:
		return p.decideComplete(o, actor)
	case EventExpire:
		return p.decideExpire(o, now)
	default:
		return UnsupportedEventForStatus{Event: ev, Status: o.Status()}
	}
}

// Transition applies an allowed event to the aggregate. The order is mutated
// in place on success; on refusal it is untouched and the BlockReason comes
// back as the error. Persisting the result is the caller's job.
func (p StaffingPolicy) Transition(
	o *order.Order,
	ev Event,
	actor kernel.Actor,
	target kernel.UUID,
	now time.Time,
	gc GuardContext,
) error {
	if reason := p.Decide(o, ev, actor, target, now, gc); reason != nil {
		return reason
	}

	switch ev {
	case EventApply:
		return o.Apply(actor.ID(), now.UnixMilli(), gc.ApplicantRating)
	case EventWithdraw:
		return o.Withdraw(actor.ID())
	case EventSelect:
		return o.SelectApplicant(target)
	case EventUnselect:
		return o.UnselectApplicant(target)
	case EventStart:
		return o.Start(now)
	case EventCancel:
		return o.Cancel(gc.CancelReason)
	case EventComplete:
		return o.Complete()
	case EventExpire:
		return o.Expire(now)
	default:
		return fmt.Errorf("unhandled event %s", ev)
	}
}

func (p StaffingPolicy) decideApply(o *order.Order, actor kernel.Actor, gc GuardContext) BlockReason {
	if !actor.IsWorker() {
		return RoleNotAllowed{Event: EventApply, Role: actor.Role()}
	}
	if o.Status() != order.StatusStaffing {
		return UnsupportedEventForStatus{Event: EventApply, Status: o.Status()}
	}
	if app, ok := o.ApplicationFor(actor.ID()); ok {
		return AlreadyApplied{Status: app.Status()}
	}
	if gc.ActorBusyOn != nil {
		return WorkerBusy{LoaderID: actor.ID(), OrderID: *gc.ActorBusyOn}
	}
	if gc.ApplicationsInFlight >= gc.applyLimit() {
		return ApplyLimitReached{Limit: gc.applyLimit()}
	}
	return nil
}

func (p StaffingPolicy) decideWithdraw(o *order.Order, actor kernel.Actor) BlockReason {
	if !actor.IsWorker() {
		return RoleNotAllowed{Event: EventWithdraw, Role: actor.Role()}
	}
	if o.Status() != order.StatusStaffing {
		return UnsupportedEventForStatus{Event: EventWithdraw, Status: o.Status()}
	}
	app, ok := o.ApplicationFor(actor.ID())
	if !ok || !app.IsInFlight() {
		return NoApplication{}
	}
	return nil
}

func (p StaffingPolicy) decideSelect(o *order.Order, actor kernel.Actor, target kernel.UUID, gc GuardContext) BlockReason {
	if !actor.IsDispatcher() {
		return RoleNotAllowed{Event: EventSelect, Role: actor.Role()}
	}
	if !o.IsCreator(actor) {
		return NotCreator{}
	}
	if o.Status() != order.StatusStaffing {
		return UnsupportedEventForStatus{Event: EventSelect, Status: o.Status()}
	}
	app, ok := o.ApplicationFor(target)
	if !ok {
		return NoApplication{}
	}
	if app.Status() != order.ApplicationApplied {
		return ApplicationNotApplied{Status: app.Status()}
	}
	if o.SelectedCount() >= o.RequiredWorkers() {
		return SelectionFull{Required: o.RequiredWorkers()}
	}
	if busyOn, busy := gc.BusyLoaders[target]; busy && !busyOn.IsEqual(o.ID()) {
		return WorkerBusy{LoaderID: target, OrderID: busyOn}
	}
	return nil
}

func (p StaffingPolicy) decideUnselect(o *order.Order, actor kernel.Actor, target kernel.UUID) BlockReason {
	if !actor.IsDispatcher() {
		return RoleNotAllowed{Event: EventUnselect, Role: actor.Role()}
	}
	if !o.IsCreator(actor) {
		return NotCreator{}
	}
	if o.Status() != order.StatusStaffing {
		return UnsupportedEventForStatus{Event: EventUnselect, Status: o.Status()}
	}
	app, ok := o.ApplicationFor(target)
	if !ok {
		return NoApplication{}
	}
	if app.Status() != order.ApplicationSelected {
		return ApplicationNotSelected{Status: app.Status()}
	}
	return nil
}

func (p StaffingPolicy) decideStart(o *order.Order, actor kernel.Actor, gc GuardContext) BlockReason {
	if !actor.IsDispatcher() {
		return RoleNotAllowed{Event: EventStart, Role: actor.Role()}
	}
	if !o.IsCreator(actor) {
		return NotCreator{}
	}
	if o.Status() != order.StatusStaffing {
		return UnsupportedEventForStatus{Event: EventStart, Status: o.Status()}
	}
	if selected := o.SelectedCount(); selected != o.RequiredWorkers() {
		return SelectedCountMismatch{Selected: selected, Required: o.RequiredWorkers()}
	}
	for _, loaderID := range o.SelectedLoaderIDs() {
		if busyOn, busy := gc.BusyLoaders[loaderID]; busy && !busyOn.IsEqual(o.ID()) {
			return WorkerBusy{LoaderID: loaderID, OrderID: busyOn}
		}
	}
	return nil
}

func (p StaffingPolicy) decideCancel(o *order.Order, actor kernel.Actor) BlockReason {
	if !actor.IsDispatcher() {
		return RoleNotAllowed{Event: EventCancel, Role: actor.Role()}
	}
	if !o.IsCreator(actor) {
		return NotCreator{}
	}
	return nil
}

func (p StaffingPolicy) decideComplete(o *order.Order, actor kernel.Actor) BlockReason {
	if o.Status() != order.StatusInProgress {
		return UnsupportedEventForStatus{Event: EventComplete, Status: o.Status()}
	}
	if actor.IsDispatcher() {
		if !o.IsCreator(actor) {
			return NotCreator{}
		}
		return nil
	}
	if !o.HasActiveAssignmentFor(actor.ID()) {
		return NotAssigned{}
	}
	return nil
}

func (p StaffingPolicy) decideExpire(o *order.Order, now time.Time) BlockReason {
	if o.Status() != order.StatusStaffing {
		return UnsupportedEventForStatus{Event: EventExpire, Status: o.Status()}
	}
	if !o.Schedule().IsPast(now) {
		return ScheduleNotElapsed{}
	}
	return nil
}
