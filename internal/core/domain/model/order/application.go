package order

import (
	"errors"
	"fmt"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

// ErrApplicationIsNotConstructed is returned when an Application was not
// created through NewApplication or RestoreApplication.
var ErrApplicationIsNotConstructed = errors.New(
	"Application must be created via NewApplication or RestoreApplication")

// ApplicationStatus is the lifecycle state of a worker's application.
//
//	Applied <──> Selected
//	   │  │          │
//	   │  └──────────┴──> Withdrawn
//	   └──> Rejected
//
// Rejected and Withdrawn are terminal for the application; the model does not
// support re-applying to the same order afterwards.
type ApplicationStatus int

const (
	// ApplicationUnknown is the invalid zero value.
	ApplicationUnknown ApplicationStatus = iota

	// ApplicationApplied means the worker asked to be considered.
	ApplicationApplied

	// ApplicationSelected means the dispatcher picked the worker for the
	// staffing quorum. Reversible via unselect until the order starts.
	ApplicationSelected

	// ApplicationRejected means the application was passed over when the
	// order started with a full quorum of other workers.
	ApplicationRejected

	// ApplicationWithdrawn means the worker pulled their own application.
	ApplicationWithdrawn
)

func getApplicationStatusStrings() map[ApplicationStatus]string {
	return map[ApplicationStatus]string{
		ApplicationUnknown:   "Unknown",
		ApplicationApplied:   "Applied",
		ApplicationSelected:  "Selected",
		ApplicationRejected:  "Rejected",
		ApplicationWithdrawn: "Withdrawn",
	}
}

// Validate checks that the status is one of the defined application states.
func (s ApplicationStatus) Validate() error {
	switch s {
	case ApplicationApplied, ApplicationSelected, ApplicationRejected, ApplicationWithdrawn:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("application status",
			fmt.Errorf("%d is not a valid application status", s))
	}
}

// String returns the human-readable name of the status.
func (s ApplicationStatus) String() string {
	if str, ok := getApplicationStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsInFlight reports whether the application still counts against the
// worker's application limit: Applied or Selected.
func (s ApplicationStatus) IsInFlight() bool {
	return s == ApplicationApplied || s == ApplicationSelected
}

// Application is a worker's request to be considered for an order. Keyed by
// (order, loader); created once by apply and only ever mutated in status
// afterwards, never deleted: the history of who applied is kept.
type Application struct {
	orderID  kernel.UUID
	loaderID kernel.UUID
	status   ApplicationStatus

	// appliedAtMillis is the unix-millisecond timestamp of the apply.
	appliedAtMillis int64

	// rating is the worker's rating snapshot at the time of application,
	// nil when the worker had no rating yet.
	rating *float64

	guard kernel.ConstructorGuard
}

// NewApplication creates a fresh application in Applied status.
func NewApplication(orderID, loaderID kernel.UUID, appliedAtMillis int64, rating *float64) (Application, error) {
	return RestoreApplication(orderID, loaderID, ApplicationApplied, appliedAtMillis, rating)
}

// RestoreApplication reconstructs an application from persistence.
func RestoreApplication(
	orderID, loaderID kernel.UUID,
	status ApplicationStatus,
	appliedAtMillis int64,
	rating *float64,
) (Application, error) {
	if err := errors.Join(
		orderID.Validate(),
		loaderID.Validate(),
		status.Validate(),
	); err != nil {
		return Application{}, err
	}
	if appliedAtMillis <= 0 {
		return Application{}, errs.NewValueIsInvalidErrorWithCause("appliedAtMillis",
			fmt.Errorf("%d is not a valid timestamp", appliedAtMillis))
	}

	var ratingCopy *float64
	if rating != nil {
		v := *rating
		ratingCopy = &v
	}

	return Application{
		orderID:         orderID,
		loaderID:        loaderID,
		status:          status,
		appliedAtMillis: appliedAtMillis,
		rating:          ratingCopy,
		guard:           kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Application was created through a constructor.
func (a Application) Validate() error {
	return a.guard.Validate(ErrApplicationIsNotConstructed)
}

// OrderID returns the order the application belongs to.
func (a Application) OrderID() kernel.UUID {
	return a.orderID
}

// LoaderID returns the applying worker's id.
func (a Application) LoaderID() kernel.UUID {
	return a.loaderID
}

// Status returns the application's current status.
func (a Application) Status() ApplicationStatus {
	return a.status
}

// AppliedAtMillis returns when the worker applied, in unix milliseconds.
func (a Application) AppliedAtMillis() int64 {
	return a.appliedAtMillis
}

// Rating returns a copy of the rating snapshot, nil when none was recorded.
func (a Application) Rating() *float64 {
	if a.rating == nil {
		return nil
	}
	v := *a.rating
	return &v
}

// IsInFlight reports whether the application is Applied or Selected.
func (a Application) IsInFlight() bool {
	return a.status.IsInFlight()
}

func (a *Application) markSelected() error {
	if a.status != ApplicationApplied {
		return errs.NewValueIsInvalidErrorWithCause("application status",
			fmt.Errorf("%s application cannot be selected", a.status))
	}
	a.status = ApplicationSelected
	return nil
}

func (a *Application) markUnselected() error {
	if a.status != ApplicationSelected {
		return errs.NewValueIsInvalidErrorWithCause("application status",
			fmt.Errorf("%s application cannot be unselected", a.status))
	}
	a.status = ApplicationApplied
	return nil
}

func (a *Application) markRejected() error {
	if a.status != ApplicationApplied {
		return errs.NewValueIsInvalidErrorWithCause("application status",
			fmt.Errorf("%s application cannot be rejected", a.status))
	}
	a.status = ApplicationRejected
	return nil
}

func (a *Application) markWithdrawn() error {
	if !a.status.IsInFlight() {
		return errs.NewValueIsInvalidErrorWithCause("application status",
			fmt.Errorf("%s application cannot be withdrawn", a.status))
	}
	a.status = ApplicationWithdrawn
	return nil
}
