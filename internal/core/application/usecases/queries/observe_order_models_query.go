// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
	"staffing/internal/core/domain/services"
	"staffing/internal/pkg/errs"
)

var ErrObserveOrderModelsQueryIsNotConstructed = errors.New(
	"ObserveOrderModelsQuery must be created via NewObserveOrderModelsQuery constructor",
)

// ObserveOrderModelsQuery subscribes an actor to the live order list. Every
// committed mutation produces a fresh set of models with the actor's
// capabilities recomputed.
type ObserveOrderModelsQuery struct {
	actor kernel.Actor

	guard kernel.ConstructorGuard
}

// NewObserveOrderModelsQuery creates a subscription query for the given actor.
func NewObserveOrderModelsQuery(actor kernel.Actor) (ObserveOrderModelsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ObserveOrderModelsQuery{}, errs.NewValueIsRequiredErrorWithCause("actor", err)
	}

	return ObserveOrderModelsQuery{
		actor: actor,
		guard: kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ObserveOrderModelsQuery) Validate() error {
	return q.guard.Validate(ErrObserveOrderModelsQueryIsNotConstructed)
}

// Actor returns the subscribing actor.
func (q ObserveOrderModelsQuery) Actor() kernel.Actor {
	return q.actor
}

// OrderModel is one order as the subscribing actor sees it: the order data
// plus the actor's allowed actions and, for workers, their own application
// status on the order.
type OrderModel struct {
	ID              kernel.UUID
	Title           string
	Address         string
	PricePerHour    int
	Schedule        kernel.Schedule
	Duration        time.Duration
	RequiredWorkers int
	SelectedCount   int
	Status          order.Status
	CancelReason    string

	// MyApplicationStatus is the actor's application status on this order,
	// nil when the actor never applied.
	MyApplicationStatus *order.ApplicationStatus

	// Actions holds per-capability allowed flags with disabled reasons.
	Actions services.ActionSet
}
