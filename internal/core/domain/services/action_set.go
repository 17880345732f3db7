package services

import (
	"time"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
)

// Capability is one cell of the per-order action matrix: whether the action
// is currently available to the actor, and the reason when it is not.
type Capability struct {
	Allowed bool
	Reason  BlockReason
}

// DisabledReason returns the displayable explanation for a blocked action,
// empty when the action is allowed.
func (c Capability) DisabledReason() string {
	if c.Allowed || c.Reason == nil {
		return ""
	}
	return c.Reason.Message()
}

// ActionSet is the full action-availability matrix the UI renders for one
// order and one actor.
type ActionSet struct {
	Apply    Capability
	Withdraw Capability
	Select   Capability
	Unselect Capability
	Start    Capability
	Cancel   Capability
	Complete Capability
	OpenChat Capability
}

// ActionsFor computes the action matrix for one order and one actor. It is
// pure: everything it needs beyond the order itself arrives in gc.
//
// Select and Unselect are per-applicant events; at the order level they are
// reported as available when at least one eligible applicant exists. Decide
// remains the authority for a concrete target.
func (p StaffingPolicy) ActionsFor(
	o *order.Order,
	actor kernel.Actor,
	now time.Time,
	gc GuardContext,
) ActionSet {
	toCapability := func(reason BlockReason) Capability {
		if reason != nil {
			return Capability{Allowed: false, Reason: reason}
		}
		return Capability{Allowed: true}
	}

	actorID := actor.ID()
	return ActionSet{
		Apply:    toCapability(p.Decide(o, EventApply, actor, actorID, now, gc)),
		Withdraw: toCapability(p.Decide(o, EventWithdraw, actor, actorID, now, gc)),
		Select:   toCapability(p.decideSelectAny(o, actor, now, gc)),
		Unselect: toCapability(p.decideUnselectAny(o, actor, now, gc)),
		Start:    toCapability(p.Decide(o, EventStart, actor, actorID, now, gc)),
		Cancel:   toCapability(p.Decide(o, EventCancel, actor, actorID, now, gc)),
		Complete: toCapability(p.Decide(o, EventComplete, actor, actorID, now, gc)),
		OpenChat: toCapability(p.decideOpenChat(o, actor)),
	}
}

// decideSelectAny reports whether any applicant could currently be selected.
func (p StaffingPolicy) decideSelectAny(o *order.Order, actor kernel.Actor, now time.Time, gc GuardContext) BlockReason {
	var firstReason BlockReason
	for _, app := range o.Applications() {
		if app.Status() != order.ApplicationApplied {
			continue
		}
		reason := p.Decide(o, EventSelect, actor, app.LoaderID(), now, gc)
		if reason == nil {
			return nil
		}
		if firstReason == nil {
			firstReason = reason
		}
	}
	if firstReason != nil {
		return firstReason
	}
	// No applied applications at all: surface the generic refusal, or the
	// structural one when the order/actor would not admit a select anyway.
	if reason := p.decideSelectPreconditions(o, actor); reason != nil {
		return reason
	}
	return NoApplication{}
}

// decideUnselectAny reports whether any selected applicant could be dropped.
func (p StaffingPolicy) decideUnselectAny(o *order.Order, actor kernel.Actor, now time.Time, gc GuardContext) BlockReason {
	var firstReason BlockReason
	for _, app := range o.Applications() {
		if app.Status() != order.ApplicationSelected {
			continue
		}
		reason := p.Decide(o, EventUnselect, actor, app.LoaderID(), now, gc)
		if reason == nil {
			return nil
		}
		if firstReason == nil {
			firstReason = reason
		}
	}
	if firstReason != nil {
		return firstReason
	}
	if reason := p.decideSelectPreconditions(o, actor); reason != nil {
		return reason
	}
	return NoApplication{}
}

// decideSelectPreconditions checks the actor/status part of the select guards
// without requiring a target application.
func (p StaffingPolicy) decideSelectPreconditions(o *order.Order, actor kernel.Actor) BlockReason {
	if actor.Validate() != nil {
		return NoActorSelected{}
	}
	if o.Status().IsTerminal() {
		return TerminalStatus{Status: o.Status()}
	}
	if !actor.IsDispatcher() {
		return RoleNotAllowed{Event: EventSelect, Role: actor.Role()}
	}
	if !o.IsCreator(actor) {
		return NotCreator{}
	}
	if o.Status() != order.StatusStaffing {
		return UnsupportedEventForStatus{Event: EventSelect, Status: o.Status()}
	}
	return nil
}

// decideOpenChat gates the chat entry point: the creator and every worker
// with skin in the game (an in-flight application or any assignment) may open
// it while the order is alive.
func (p StaffingPolicy) decideOpenChat(o *order.Order, actor kernel.Actor) BlockReason {
	if actor.Validate() != nil {
		return NoActorSelected{}
	}
	if o.Status().IsTerminal() {
		return TerminalStatus{Status: o.Status()}
	}
	if actor.IsDispatcher() {
		if !o.IsCreator(actor) {
			return NotCreator{}
		}
		return nil
	}
	if app, ok := o.ApplicationFor(actor.ID()); ok && app.IsInFlight() {
		return nil
	}
	if _, ok := o.AssignmentFor(actor.ID()); ok {
		return nil
	}
	return NoApplication{}
}
