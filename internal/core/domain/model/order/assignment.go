package order

import (
	"errors"
	"fmt"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

// ErrAssignmentIsNotConstructed is returned when an Assignment was not
// created through NewAssignment or RestoreAssignment.
var ErrAssignmentIsNotConstructed = errors.New(
	"Assignment must be created via NewAssignment or RestoreAssignment")

// AssignmentStatus is the lifecycle state of a confirmed assignment.
// Active assignments flip to Completed or Canceled together with their order;
// there are no other edges.
type AssignmentStatus int

const (
	// AssignmentUnknown is the invalid zero value.
	AssignmentUnknown AssignmentStatus = iota

	// AssignmentActive means the worker is committed to the order. The
	// global exclusivity invariant counts exactly these.
	AssignmentActive

	// AssignmentCompleted is terminal: the order finished.
	AssignmentCompleted

	// AssignmentCanceled is terminal: the order was canceled.
	AssignmentCanceled
)

func getAssignmentStatusStrings() map[AssignmentStatus]string {
	return map[AssignmentStatus]string{
		AssignmentUnknown:   "Unknown",
		AssignmentActive:    "Active",
		AssignmentCompleted: "Completed",
		AssignmentCanceled:  "Canceled",
	}
}

// Validate checks that the status is one of the defined assignment states.
func (s AssignmentStatus) Validate() error {
	switch s {
	case AssignmentActive, AssignmentCompleted, AssignmentCanceled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("assignment status",
			fmt.Errorf("%d is not a valid assignment status", s))
	}
}

// String returns the human-readable name of the status.
func (s AssignmentStatus) String() string {
	if str, ok := getAssignmentStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Assignment is confirmed, scheduled work for one worker on one order. It is
// created only when the order starts (one per then-selected application)
// and is never deleted afterwards.
type Assignment struct {
	orderID  kernel.UUID
	loaderID kernel.UUID
	status   AssignmentStatus

	// assignedAtMillis carries over the appliedAt of the application the
	// assignment was created from.
	assignedAtMillis int64

	// startedAtMillis is when the order actually started, nil for
	// assignments restored from legacy rows that predate the field.
	startedAtMillis *int64

	guard kernel.ConstructorGuard
}

// NewAssignment creates an active assignment at order start.
func NewAssignment(orderID, loaderID kernel.UUID, assignedAtMillis, startedAtMillis int64) (Assignment, error) {
	return RestoreAssignment(orderID, loaderID, AssignmentActive, assignedAtMillis, &startedAtMillis)
}

// RestoreAssignment reconstructs an assignment from persistence.
func RestoreAssignment(
	orderID, loaderID kernel.UUID,
	status AssignmentStatus,
	assignedAtMillis int64,
	startedAtMillis *int64,
) (Assignment, error) {
	if err := errors.Join(
		orderID.Validate(),
		loaderID.Validate(),
		status.Validate(),
	); err != nil {
		return Assignment{}, err
	}
	if assignedAtMillis <= 0 {
		return Assignment{}, errs.NewValueIsInvalidErrorWithCause("assignedAtMillis",
			fmt.Errorf("%d is not a valid timestamp", assignedAtMillis))
	}

	var startedCopy *int64
	if startedAtMillis != nil {
		v := *startedAtMillis
		startedCopy = &v
	}

	return Assignment{
		orderID:          orderID,
		loaderID:         loaderID,
		status:           status,
		assignedAtMillis: assignedAtMillis,
		startedAtMillis:  startedCopy,
		guard:            kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Assignment was created through a constructor.
func (a Assignment) Validate() error {
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

// OrderID returns the order the assignment belongs to.
func (a Assignment) OrderID() kernel.UUID {
	return a.orderID
}

// LoaderID returns the assigned worker's id.
func (a Assignment) LoaderID() kernel.UUID {
	return a.loaderID
}

// Status returns the assignment's current status.
func (a Assignment) Status() AssignmentStatus {
	return a.status
}

// AssignedAtMillis returns the application timestamp the assignment inherited.
func (a Assignment) AssignedAtMillis() int64 {
	return a.assignedAtMillis
}

// StartedAtMillis returns a copy of the start timestamp, nil when absent.
func (a Assignment) StartedAtMillis() *int64 {
	if a.startedAtMillis == nil {
		return nil
	}
	v := *a.startedAtMillis
	return &v
}

// IsActive reports whether the assignment counts toward the global
// exclusivity invariant.
func (a Assignment) IsActive() bool {
	return a.status == AssignmentActive
}

func (a *Assignment) markCompleted() error {
	if a.status != AssignmentActive {
		return errs.NewValueIsInvalidErrorWithCause("assignment status",
			fmt.Errorf("%s assignment cannot be completed", a.status))
	}
	a.status = AssignmentCompleted
	return nil
}

func (a *Assignment) markCanceled() error {
	if a.status != AssignmentActive {
		return errs.NewValueIsInvalidErrorWithCause("assignment status",
			fmt.Errorf("%s assignment cannot be canceled", a.status))
	}
	a.status = AssignmentCanceled
	return nil
}
