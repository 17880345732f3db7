// Package errs provides the standardized error taxonomy for the staffing engine.
//
// Every expected failure mode of the core maps onto one of six categories:
//
//   - ValidationError: malformed input (blank title, blank cancel reason)
//   - AuthorizationError: wrong role, missing actor, or non-creator dispatcher
//   - StateError: an event that is invalid for the order's current status
//   - ConflictError: the global exclusivity invariant would be violated
//   - ObjectNotFoundError: an unknown order or application
//   - UnknownError: an unexpected storage failure wrapped at the use case boundary
//
// Each category follows the same pattern: a sentinel error variable usable with
// errors.Is, a struct type carrying the failure details, constructors with and
// without a cause, an Error() method producing a short displayable message, and
// an Unwrap() method yielding the sentinel. Two generic value errors
// (ValueIsRequiredError, ValueIsInvalidError) back the domain value objects.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValueIsRequired = errors.New("value is required")
	ErrValueIsInvalid  = errors.New("value is invalid")
	ErrValidation      = errors.New("validation failed")
	ErrAuthorization   = errors.New("not authorized")
	ErrState           = errors.New("operation is not valid for the current state")
	ErrConflict        = errors.New("worker is already assigned")
	ErrObjectNotFound  = errors.New("object not found")
	ErrUnknown         = errors.New("unexpected error")
)

// sanitize strips newlines so error messages stay single-line in logs.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ValueIsRequiredError indicates a required value is missing or zero.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, sanitize(e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ValueIsInvalidError indicates a value is present but malformed or out of range.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, sanitize(e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValidationError indicates malformed command input rejected before any
// repository access.
type ValidationError struct {
	ParamName string
	Cause     error
}

func NewValidationError(paramName string) *ValidationError {
	return &ValidationError{ParamName: paramName}
}

func NewValidationErrorWithCause(paramName string, cause error) *ValidationError {
	return &ValidationError{ParamName: paramName, Cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValidation, sanitize(e.ParamName), sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, sanitize(e.ParamName))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// AuthorizationError indicates the actor may not perform the operation:
// wrong role, not the order's creator, or no actor selected at all.
type AuthorizationError struct {
	Reason string
}

func NewAuthorizationError(reason string) *AuthorizationError {
	return &AuthorizationError{Reason: reason}
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAuthorization, sanitize(e.Reason))
}

func (e *AuthorizationError) Unwrap() error {
	return ErrAuthorization
}

// StateError indicates an event was rejected by the staffing state machine:
// the order's status does not admit it, or a guard such as the selection
// quorum is unmet.
type StateError struct {
	Reason string
}

func NewStateError(reason string) *StateError {
	return &StateError{Reason: reason}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s", ErrState, sanitize(e.Reason))
}

func (e *StateError) Unwrap() error {
	return ErrState
}

// ConflictError indicates the global exclusivity invariant blocked the
// operation: the worker already holds an active assignment on another order.
// Both ids are carried so callers can surface the conflicting order.
type ConflictError struct {
	WorkerID string
	OrderID  string
}

func NewConflictError(workerID, orderID string) *ConflictError {
	return &ConflictError{WorkerID: workerID, OrderID: orderID}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: worker %s is active on order %s", ErrConflict, sanitize(e.WorkerID), sanitize(e.OrderID))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// ObjectNotFoundError indicates a lookup by identifier found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, sanitize(e.ParamName), e.ID, sanitize(e.Cause.Error()))
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// UnknownError wraps an unexpected failure (usually from storage) so it can
// cross the use case boundary as a typed result instead of a panic.
type UnknownError struct {
	Cause error
}

func NewUnknownError(cause error) *UnknownError {
	return &UnknownError{Cause: cause}
}

func (e *UnknownError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", ErrUnknown, sanitize(e.Cause.Error()))
	}
	return ErrUnknown.Error()
}

func (e *UnknownError) Unwrap() error {
	return ErrUnknown
}

// WrapUnknown converts err into an UnknownError unless it already belongs to
// the taxonomy, in which case it is returned unchanged. A nil err stays nil.
func WrapUnknown(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		ErrValueIsRequired, ErrValueIsInvalid, ErrValidation, ErrAuthorization,
		ErrState, ErrConflict, ErrObjectNotFound, ErrUnknown,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return NewUnknownError(err)
}
