package dispatch

import (
	"errors"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

// Outcome classifies how a command ended.
type Outcome string

const (
	// OutcomeOK means the command was applied and committed.
	OutcomeOK Outcome = "ok"

	// OutcomeInvalid means the command's input failed validation.
	OutcomeInvalid Outcome = "invalid"

	// OutcomeForbidden means the actor is missing or not allowed to do this.
	OutcomeForbidden Outcome = "forbidden"

	// OutcomeNotFound means the target order does not exist.
	OutcomeNotFound Outcome = "not_found"

	// OutcomeRejected means a state guard refused the command.
	OutcomeRejected Outcome = "rejected"

	// OutcomeConflict means a worker's exclusive assignment got in the way.
	OutcomeConflict Outcome = "conflict"

	// OutcomeError means an infrastructure failure, nothing was decided.
	OutcomeError Outcome = "error"
)

// Result is the uniform answer to every dispatched command.
type Result struct {
	Outcome Outcome

	// Reason is the human-readable refusal, empty on success.
	Reason string

	// OrderID is set on successful Create.
	OrderID kernel.UUID

	// Expired is set on successful Refresh.
	Expired int
}

func ok() Result {
	return Result{Outcome: OutcomeOK}
}

// resultFromError folds a handler error into an outcome by its place in the
// error taxonomy.
func resultFromError(err error) Result {
	outcome := OutcomeError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValidation):
		outcome = OutcomeInvalid
	case errors.Is(err, errs.ErrAuthorization):
		outcome = OutcomeForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		outcome = OutcomeNotFound
	case errors.Is(err, errs.ErrConflict):
		outcome = OutcomeConflict
	case errors.Is(err, errs.ErrState):
		outcome = OutcomeRejected
	}

	return Result{Outcome: outcome, Reason: err.Error()}
}
