package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New(
	"Order must be created via NewOrder or RestoreOrder")

// Order is the aggregate root of the staffing domain. It carries the order's
// descriptive fields, its lifecycle status, and the two joined collections
// (applications and assignments) that the staffing process mutates.
//
// Invariants maintained by the aggregate:
//   - At most one application per worker, kept forever once created.
//   - Assignments exist only for workers that were selected when the order
//     started, and are never deleted.
//   - Status changes happen only through the transition methods; every
//     transition re-validates its local preconditions.
//
// The aggregate deliberately knows nothing about other orders: cross-order
// guards (global exclusivity, application limits) are evaluated by the
// staffing policy in the services package before a transition is invoked.
type Order struct {
	id        kernel.UUID
	createdBy kernel.UUID

	title           string
	address         string
	pricePerHour    int
	schedule        kernel.Schedule
	duration        time.Duration
	requiredWorkers int
	tags            []string
	metadata        map[string]string
	comment         string
	cancelReason    string

	status       Status
	applications []Application
	assignments  []Assignment

	// version backs optimistic concurrency in the repository: two writers
	// racing on the same order cannot both commit.
	version int

	isConstructed bool
}

// NewOrder creates an order in Staffing status with no applications yet.
// Title must be non-blank, pricePerHour and duration positive, and
// requiredWorkers at least 1. Tags and metadata are copied defensively.
func NewOrder(
	id kernel.UUID,
	createdBy kernel.UUID,
	title string,
	address string,
	pricePerHour int,
	schedule kernel.Schedule,
	duration time.Duration,
	requiredWorkers int,
	tags []string,
	metadata map[string]string,
	comment string,
) (*Order, error) {
	return RestoreOrder(id, createdBy, title, address, pricePerHour, schedule, duration,
		requiredWorkers, tags, metadata, comment, "", StatusStaffing, nil, nil, 0)
}

// RestoreOrder reconstructs an order from persistence, including its joined
// applications and assignments and the stored version.
func RestoreOrder(
	id kernel.UUID,
	createdBy kernel.UUID,
	title string,
	address string,
	pricePerHour int,
	schedule kernel.Schedule,
	duration time.Duration,
	requiredWorkers int,
	tags []string,
	metadata map[string]string,
	comment string,
	cancelReason string,
	status Status,
	applications []Application,
	assignments []Assignment,
	version int,
) (*Order, error) {
	o := &Order{
		comment:       comment,
		cancelReason:  cancelReason,
		version:       version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCreatedBy(createdBy),
		o.setTitle(title),
		o.setAddress(address),
		o.setPricePerHour(pricePerHour),
		o.setSchedule(schedule),
		o.setDuration(duration),
		o.setRequiredWorkers(requiredWorkers),
		o.setStatus(status),
	); err != nil {
		return nil, err
	}

	o.tags = append([]string(nil), tags...)
	o.metadata = make(map[string]string, len(metadata))
	for k, v := range metadata {
		o.metadata[k] = v
	}

	o.applications = make([]Application, 0, len(applications))
	for _, a := range applications {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		o.applications = append(o.applications, a)
	}

	o.assignments = make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		o.assignments = append(o.assignments, a)
	}

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// CreatedBy returns the id of the dispatcher who created the order.
func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

// IsCreator reports whether the actor is the dispatcher who created the order.
func (o *Order) IsCreator(actor kernel.Actor) bool {
	return actor.IsDispatcher() && actor.ID().IsEqual(o.createdBy)
}

// Title returns the order's title.
func (o *Order) Title() string {
	return o.title
}

// Address returns the work site address.
func (o *Order) Address() string {
	return o.address
}

// PricePerHour returns the offered hourly rate in minor currency units.
func (o *Order) PricePerHour() int {
	return o.pricePerHour
}

// Schedule returns the order's schedule.
func (o *Order) Schedule() kernel.Schedule {
	return o.schedule
}

// Duration returns the planned duration of the work.
func (o *Order) Duration() time.Duration {
	return o.duration
}

// RequiredWorkers returns how many workers must be selected before the order
// can start.
func (o *Order) RequiredWorkers() int {
	return o.requiredWorkers
}

// Tags returns a copy of the order's ordered tag list.
func (o *Order) Tags() []string {
	return append([]string(nil), o.tags...)
}

// Metadata returns a copy of the order's metadata map.
func (o *Order) Metadata() map[string]string {
	m := make(map[string]string, len(o.metadata))
	for k, v := range o.metadata {
		m[k] = v
	}
	return m
}

// Comment returns the optional free-form comment.
func (o *Order) Comment() string {
	return o.comment
}

// CancelReason returns the reason recorded at cancellation, empty otherwise.
func (o *Order) CancelReason() string {
	return o.cancelReason
}

// Status returns the order's lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the persistence version used for optimistic concurrency.
func (o *Order) Version() int {
	return o.version
}

// Applications returns a copy of the order's applications.
func (o *Order) Applications() []Application {
	return append([]Application(nil), o.applications...)
}

// Assignments returns a copy of the order's assignments.
func (o *Order) Assignments() []Assignment {
	return append([]Assignment(nil), o.assignments...)
}

// ApplicationFor returns the worker's application on this order, if any.
func (o *Order) ApplicationFor(loaderID kernel.UUID) (Application, bool) {
	if a := o.applicationAt(loaderID); a != nil {
		return *a, true
	}
	return Application{}, false
}

// AssignmentFor returns the worker's assignment on this order, if any.
func (o *Order) AssignmentFor(loaderID kernel.UUID) (Assignment, bool) {
	for i := range o.assignments {
		if o.assignments[i].LoaderID().IsEqual(loaderID) {
			return o.assignments[i], true
		}
	}
	return Assignment{}, false
}

// HasActiveAssignmentFor reports whether the worker holds an active
// assignment on this order.
func (o *Order) HasActiveAssignmentFor(loaderID kernel.UUID) bool {
	a, ok := o.AssignmentFor(loaderID)
	return ok && a.IsActive()
}

// SelectedCount returns the number of applications in Selected status.
func (o *Order) SelectedCount() int {
	count := 0
	for i := range o.applications {
		if o.applications[i].Status() == ApplicationSelected {
			count++
		}
	}
	return count
}

// SelectedLoaderIDs returns the ids of all currently selected workers, in
// application order.
func (o *Order) SelectedLoaderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, o.requiredWorkers)
	for i := range o.applications {
		if o.applications[i].Status() == ApplicationSelected {
			ids = append(ids, o.applications[i].LoaderID())
		}
	}
	return ids
}

// Apply records a worker's application. The order must be in Staffing status
// and the worker must not have applied before: re-applying after a withdrawn
// or rejected application is not supported by the model.
func (o *Order) Apply(loaderID kernel.UUID, appliedAtMillis int64, rating *float64) error {
	if o.status != StatusStaffing {
		return errs.NewStateError(fmt.Sprintf("cannot apply to a %s order", o.status))
	}
	if a := o.applicationAt(loaderID); a != nil {
		return errs.NewStateError(fmt.Sprintf("worker already has a %s application on this order", a.Status()))
	}

	application, err := NewApplication(o.id, loaderID, appliedAtMillis, rating)
	if err != nil {
		return err
	}

	o.applications = append(o.applications, application)
	return nil
}

// Withdraw pulls the worker's own in-flight application back.
func (o *Order) Withdraw(loaderID kernel.UUID) error {
	if o.status != StatusStaffing {
		return errs.NewStateError(fmt.Sprintf("cannot withdraw from a %s order", o.status))
	}
	a := o.applicationAt(loaderID)
	if a == nil {
		return errs.NewStateError("worker has no application on this order")
	}
	return a.markWithdrawn()
}

// SelectApplicant moves an applied application into the staffing quorum.
// Fails when the quorum is already full.
func (o *Order) SelectApplicant(loaderID kernel.UUID) error {
	if o.status != StatusStaffing {
		return errs.NewStateError(fmt.Sprintf("cannot select on a %s order", o.status))
	}
	if o.SelectedCount() >= o.requiredWorkers {
		return errs.NewStateError(fmt.Sprintf("all %d required workers are already selected", o.requiredWorkers))
	}
	a := o.applicationAt(loaderID)
	if a == nil {
		return errs.NewStateError("worker has no application on this order")
	}
	return a.markSelected()
}

// UnselectApplicant moves a selected application back to Applied.
func (o *Order) UnselectApplicant(loaderID kernel.UUID) error {
	if o.status != StatusStaffing {
		return errs.NewStateError(fmt.Sprintf("cannot unselect on a %s order", o.status))
	}
	a := o.applicationAt(loaderID)
	if a == nil {
		return errs.NewStateError("worker has no application on this order")
	}
	return a.markUnselected()
}

// Start converts the full staffing quorum into active assignments and moves
// the order to InProgress. One assignment is created per selected application
// (assignedAt inherited from the application, startedAt = now); every
// remaining Applied application is rejected. The caller must have verified
// the global exclusivity invariant for all selected workers first.
func (o *Order) Start(now time.Time) error {
	newStatus, err := o.status.Start()
	if err != nil {
		return err
	}
	selected := o.SelectedCount()
	if selected != o.requiredWorkers {
		return errs.NewStateError(fmt.Sprintf("selected %d of %d required workers", selected, o.requiredWorkers))
	}

	startedAt := now.UnixMilli()
	for i := range o.applications {
		switch o.applications[i].Status() {
		case ApplicationSelected:
			assignment, assignErr := NewAssignment(
				o.id, o.applications[i].LoaderID(), o.applications[i].AppliedAtMillis(), startedAt)
			if assignErr != nil {
				return assignErr
			}
			o.assignments = append(o.assignments, assignment)
		case ApplicationApplied:
			if rejectErr := o.applications[i].markRejected(); rejectErr != nil {
				return rejectErr
			}
		}
	}

	o.status = newStatus
	return nil
}

// Cancel calls the order off. Allowed while Staffing or InProgress; every
// active assignment flips to Canceled with the order.
func (o *Order) Cancel(reason string) error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	for i := range o.assignments {
		if o.assignments[i].IsActive() {
			if cancelErr := o.assignments[i].markCanceled(); cancelErr != nil {
				return cancelErr
			}
		}
	}

	o.status = newStatus
	o.cancelReason = reason
	return nil
}

// Complete finishes an in-progress order; every active assignment flips to
// Completed with it.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	for i := range o.assignments {
		if o.assignments[i].IsActive() {
			if completeErr := o.assignments[i].markCompleted(); completeErr != nil {
				return completeErr
			}
		}
	}

	o.status = newStatus
	return nil
}

// Expire sweeps a staffing order whose exact scheduled time has passed into
// the Expired status. Orders scheduled "soon" never expire.
func (o *Order) Expire(now time.Time) error {
	newStatus, err := o.status.Expire()
	if err != nil {
		return err
	}
	if !o.schedule.IsPast(now) {
		return errs.NewStateError("scheduled time has not passed")
	}

	o.status = newStatus
	return nil
}

func (o *Order) applicationAt(loaderID kernel.UUID) *Application {
	for i := range o.applications {
		if o.applications[i].LoaderID().IsEqual(loaderID) {
			return &o.applications[i]
		}
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCreatedBy(createdBy kernel.UUID) error {
	if err := createdBy.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	o.createdBy = createdBy
	return nil
}

func (o *Order) setTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	o.title = title
	return nil
}

func (o *Order) setAddress(address string) error {
	if strings.TrimSpace(address) == "" {
		return errs.NewValueIsRequiredError("address")
	}
	o.address = address
	return nil
}

func (o *Order) setPricePerHour(pricePerHour int) error {
	if pricePerHour <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("pricePerHour",
			fmt.Errorf("%d is not greater than 0", pricePerHour))
	}
	o.pricePerHour = pricePerHour
	return nil
}

func (o *Order) setSchedule(schedule kernel.Schedule) error {
	if err := schedule.Validate(); err != nil {
		return err
	}
	o.schedule = schedule
	return nil
}

func (o *Order) setDuration(duration time.Duration) error {
	if duration <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("duration",
			fmt.Errorf("%s is not greater than 0", duration))
	}
	o.duration = duration
	return nil
}

func (o *Order) setRequiredWorkers(requiredWorkers int) error {
	if requiredWorkers < 1 {
		return errs.NewValueIsInvalidErrorWithCause("requiredWorkers",
			fmt.Errorf("%d is not at least 1", requiredWorkers))
	}
	o.requiredWorkers = requiredWorkers
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
