package order

import (
	"fmt"

	"staffing/internal/pkg/errs"
)

// Status represents the lifecycle state of an order. It implements a small
// state machine with a closed set of edges:
//
//	Staffing ──┬──> InProgress ──┬──> Completed
//	           │                 └──> Canceled
//	           ├──> Canceled
//	           └──> Expired
//
// Completed, Canceled, and Expired are terminal: no event is accepted once an
// order reaches one of them. Expired is reachable only from Staffing, and only
// for orders with an exact schedule whose time has passed.
type Status int

const (
	// StatusUnknown is the invalid zero value. It helps catch uninitialized
	// Status values restored from persistence.
	StatusUnknown Status = iota

	// StatusStaffing is the initial status: workers may apply and the
	// creating dispatcher selects among them.
	StatusStaffing

	// StatusInProgress means the order was started: a full quorum of selected
	// workers was converted into active assignments.
	StatusInProgress

	// StatusCompleted is terminal: the work was finished.
	StatusCompleted

	// StatusCanceled is terminal: the dispatcher called the order off.
	StatusCanceled

	// StatusExpired is terminal: the order's exact scheduled time passed
	// before staffing finished.
	StatusExpired
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusStaffing:   "Staffing",
		StatusInProgress: "InProgress",
		StatusCompleted:  "Completed",
		StatusCanceled:   "Canceled",
		StatusExpired:    "Expired",
	}
}

// getValidStatusStrings returns only the valid Status values, to support validation.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusStaffing:   "Staffing",
		StatusInProgress: "InProgress",
		StatusCompleted:  "Completed",
		StatusCanceled:   "Canceled",
		StatusExpired:    "Expired",
	}
}

// Validate checks that the Status is one of the defined lifecycle states.
// StatusUnknown and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. Safe to call on any
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status accepts no further events.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled || s == StatusExpired
}

// Start transitions Staffing -> InProgress.
func (s Status) Start() (Status, error) {
	if s != StatusStaffing {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to start", s))
	}
	return StatusInProgress, nil
}

// Cancel transitions Staffing or InProgress -> Canceled.
func (s Status) Cancel() (Status, error) {
	if s != StatusStaffing && s != StatusInProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to cancel", s))
	}
	return StatusCanceled, nil
}

// Complete transitions InProgress -> Completed.
func (s Status) Complete() (Status, error) {
	if s != StatusInProgress {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to complete", s))
	}
	return StatusCompleted, nil
}

// Expire transitions Staffing -> Expired. The schedule guard (exact time in
// the past) belongs to the aggregate; this method only checks the edge.
func (s Status) Expire() (Status, error) {
	if s != StatusStaffing {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to expire", s))
	}
	return StatusExpired, nil
}
