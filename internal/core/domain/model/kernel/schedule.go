package kernel

import (
	"time"

	"staffing/internal/pkg/errs"
)

// ErrScheduleIsNotConstructed indicates a Schedule was not created through
// NewExactSchedule or NewSoonSchedule.
var ErrScheduleIsNotConstructed = errs.NewValueIsRequiredError(
	"Schedule must be created via NewExactSchedule or NewSoonSchedule")

// Schedule is the value object describing when an order is supposed to take
// place: either an exact timestamp, or the "soon" sentinel used for orders
// whose time is resolved from metadata later.
//
// The distinction matters for expiry: only exact-scheduled orders can be swept
// into the expired status once their time has passed. A "soon" order never
// auto-expires, no matter how old it is.
type Schedule struct {
	exact time.Time
	soon  bool

	guard ConstructorGuard
}

// NewExactSchedule creates a schedule for a concrete point in time.
// The zero time is rejected.
func NewExactSchedule(at time.Time) (Schedule, error) {
	if at.IsZero() {
		return Schedule{}, errs.NewValueIsRequiredError("schedule time")
	}
	return Schedule{exact: at, guard: NewConstructorGuard()}, nil
}

// NewSoonSchedule creates the "soon" sentinel schedule.
func NewSoonSchedule() Schedule {
	return Schedule{soon: true, guard: NewConstructorGuard()}
}

// Validate reports whether the Schedule was constructed properly.
func (s Schedule) Validate() error {
	return s.guard.Validate(ErrScheduleIsNotConstructed)
}

// IsSoon reports whether the schedule is the "soon" sentinel.
func (s Schedule) IsSoon() bool {
	return s.soon
}

// ExactTime returns the scheduled time and true for exact schedules, and the
// zero time and false for "soon" schedules.
func (s Schedule) ExactTime() (time.Time, bool) {
	if s.soon {
		return time.Time{}, false
	}
	return s.exact, true
}

// IsPast reports whether an exact schedule lies strictly before now.
// A "soon" schedule is never past.
func (s Schedule) IsPast(now time.Time) bool {
	if s.soon {
		return false
	}
	return s.exact.Before(now)
}

// IsEqual compares two schedules by value.
func (s Schedule) IsEqual(other Schedule) bool {
	if s.soon != other.soon {
		return false
	}
	return s.soon || s.exact.Equal(other.exact)
}

// String returns "soon" or the RFC 3339 form of the exact time.
func (s Schedule) String() string {
	if s.soon {
		return "soon"
	}
	return s.exact.Format(time.RFC3339)
}
