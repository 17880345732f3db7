package services_test

import (
	"testing"
	"time"

	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
	"staffing/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	policy     services.StaffingPolicy
	order      *order.Order
	creator    kernel.Actor
	dispatcher kernel.Actor
	worker     kernel.Actor
}

func newFixture(t *testing.T, requiredWorkers int) *fixture {
	t.Helper()

	creatorID := kernel.NewUUID()
	creator, err := kernel.NewActor(creatorID, kernel.RoleDispatcher)
	require.NoError(t, err)
	dispatcher, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDispatcher)
	require.NoError(t, err)
	worker, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)

	schedule, err := kernel.NewExactSchedule(testNow.Add(time.Hour))
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), creatorID, "Move pallets", "Dock 5",
		1200, schedule, 2*time.Hour, requiredWorkers, nil, nil, "")
	require.NoError(t, err)

	return &fixture{
		policy:     services.NewStaffingPolicy(),
		order:      o,
		creator:    creator,
		dispatcher: dispatcher,
		worker:     worker,
	}
}

func newWorker(t *testing.T) kernel.Actor {
	t.Helper()
	w, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)
	return w
}

func (f *fixture) apply(t *testing.T, w kernel.Actor) {
	t.Helper()
	require.NoError(t, f.policy.Transition(
		f.order, services.EventApply, w, w.ID(), testNow, services.GuardContext{}))
}

func (f *fixture) selectWorker(t *testing.T, w kernel.Actor) {
	t.Helper()
	require.NoError(t, f.policy.Transition(
		f.order, services.EventSelect, f.creator, w.ID(), testNow, services.GuardContext{}))
}

func TestDecideApply(t *testing.T) {
	t.Run("free worker may apply to staffing order", func(t *testing.T) {
		f := newFixture(t, 1)

		reason := f.policy.Decide(f.order, services.EventApply, f.worker, f.worker.ID(),
			testNow, services.GuardContext{})

		assert.Nil(t, reason)
	})

	t.Run("dispatcher may not apply", func(t *testing.T) {
		f := newFixture(t, 1)

		reason := f.policy.Decide(f.order, services.EventApply, f.dispatcher, f.dispatcher.ID(),
			testNow, services.GuardContext{})

		require.IsType(t, services.RoleNotAllowed{}, reason)
	})

	t.Run("missing actor is a typed refusal", func(t *testing.T) {
		f := newFixture(t, 1)
		var nobody kernel.Actor

		reason := f.policy.Decide(f.order, services.EventApply, nobody, kernel.UUID{},
			testNow, services.GuardContext{})

		require.IsType(t, services.NoActorSelected{}, reason)
	})

	t.Run("second application is blocked whatever happened to the first", func(t *testing.T) {
		f := newFixture(t, 1)
		f.apply(t, f.worker)
		require.NoError(t, f.order.Withdraw(f.worker.ID()))

		reason := f.policy.Decide(f.order, services.EventApply, f.worker, f.worker.ID(),
			testNow, services.GuardContext{})

		blocked, ok := reason.(services.AlreadyApplied)
		require.True(t, ok)
		assert.Equal(t, order.ApplicationWithdrawn, blocked.Status)
	})

	t.Run("globally busy worker may not apply", func(t *testing.T) {
		f := newFixture(t, 1)
		otherOrderID := kernel.NewUUID()

		reason := f.policy.Decide(f.order, services.EventApply, f.worker, f.worker.ID(),
			testNow, services.GuardContext{ActorBusyOn: &otherOrderID})

		blocked, ok := reason.(services.WorkerBusy)
		require.True(t, ok)
		assert.True(t, blocked.OrderID.IsEqual(otherOrderID))
	})

	t.Run("worker at the in-flight limit may not apply", func(t *testing.T) {
		f := newFixture(t, 1)

		reason := f.policy.Decide(f.order, services.EventApply, f.worker, f.worker.ID(),
			testNow, services.GuardContext{ApplicationsInFlight: services.DefaultApplyLimit})

		blocked, ok := reason.(services.ApplyLimitReached)
		require.True(t, ok)
		assert.Equal(t, 3, blocked.Limit)
	})

	t.Run("worker below the limit may apply", func(t *testing.T) {
		f := newFixture(t, 1)

		reason := f.policy.Decide(f.order, services.EventApply, f.worker, f.worker.ID(),
			testNow, services.GuardContext{ApplicationsInFlight: services.DefaultApplyLimit - 1})

		assert.Nil(t, reason)
	})
}

func TestDecideSelect(t *testing.T) {
	t.Run("creator may select an applied worker", func(t *testing.T) {
		f := newFixture(t, 1)
		f.apply(t, f.worker)

		reason := f.policy.Decide(f.order, services.EventSelect, f.creator, f.worker.ID(),
			testNow, services.GuardContext{})

		assert.Nil(t, reason)
	})

	t.Run("non-creator dispatcher may not select", func(t *testing.T) {
		f := newFixture(t, 1)
		f.apply(t, f.worker)

		reason := f.policy.Decide(f.order, services.EventSelect, f.dispatcher, f.worker.ID(),
			testNow, services.GuardContext{})

		require.IsType(t, services.NotCreator{}, reason)
		app, _ := f.order.ApplicationFor(f.worker.ID())
		assert.Equal(t, order.ApplicationApplied, app.Status())
	})

	t.Run("busy worker is rejected fail-fast with the conflicting order", func(t *testing.T) {
		f := newFixture(t, 1)
		f.apply(t, f.worker)
		otherOrderID := kernel.NewUUID()

		reason := f.policy.Decide(f.order, services.EventSelect, f.creator, f.worker.ID(),
			testNow, services.GuardContext{
				BusyLoaders: map[kernel.UUID]kernel.UUID{f.worker.ID(): otherOrderID},
			})

		blocked, ok := reason.(services.WorkerBusy)
		require.True(t, ok)
		assert.True(t, blocked.LoaderID.IsEqual(f.worker.ID()))
		assert.True(t, blocked.OrderID.IsEqual(otherOrderID))
	})

	t.Run("full quorum blocks further selection", func(t *testing.T) {
		f := newFixture(t, 1)
		f.apply(t, f.worker)
		second := newWorker(t)
		f.apply(t, second)
		f.selectWorker(t, f.worker)

		reason := f.policy.Decide(f.order, services.EventSelect, f.creator, second.ID(),
			testNow, services.GuardContext{})

		blocked, ok := reason.(services.SelectionFull)
		require.True(t, ok)
		assert.Equal(t, 1, blocked.Required)
	})
}

func TestDecideStart(t *testing.T) {
	t.Run("unmet quorum blocks start with a count mismatch", func(t *testing.T) {
		f := newFixture(t, 2)
		f.apply(t, f.worker)
		f.selectWorker(t, f.worker)

		reason := f.policy.Decide(f.order, services.EventStart, f.creator, kernel.UUID{},
			testNow, services.GuardContext{})

		blocked, ok := reason.(services.SelectedCountMismatch)
		require.True(t, ok)
		assert.Equal(t, 1, blocked.Selected)
		assert.Equal(t, 2, blocked.Required)
		assert.Contains(t, blocked.Message(), "1 of 2")
	})

	t.Run("full quorum allows start", func(t *testing.T) {
		f := newFixture(t, 2)
		second := newWorker(t)
		f.apply(t, f.worker)
		f.apply(t, second)
		f.selectWorker(t, f.worker)
		f.selectWorker(t, second)

		reason := f.policy.Decide(f.order, services.EventStart, f.creator, kernel.UUID{},
			testNow, services.GuardContext{})

		assert.Nil(t, reason)
	})

	t.Run("selected worker busy elsewhere blocks start at commit time", func(t *testing.T) {
		f := newFixture(t, 1)
		f.apply(t, f.worker)
		f.selectWorker(t, f.worker)
		orderB := kernel.NewUUID()

		reason := f.policy.Decide(f.order, services.EventStart, f.creator, kernel.UUID{},
			testNow, services.GuardContext{
				BusyLoaders: map[kernel.UUID]kernel.UUID{f.worker.ID(): orderB},
			})

		blocked, ok := reason.(services.WorkerBusy)
		require.True(t, ok)
		assert.True(t, blocked.LoaderID.IsEqual(f.worker.ID()))
		assert.True(t, blocked.OrderID.IsEqual(orderB))
	})

	t.Run("worker may not start", func(t *testing.T) {
		f := newFixture(t, 1)
		f.apply(t, f.worker)
		f.selectWorker(t, f.worker)

		reason := f.policy.Decide(f.order, services.EventStart, f.worker, kernel.UUID{},
			testNow, services.GuardContext{})

		require.IsType(t, services.RoleNotAllowed{}, reason)
	})
}

func TestDecideComplete(t *testing.T) {
	startOrder := func(t *testing.T, f *fixture) {
		t.Helper()
		f.apply(t, f.worker)
		f.selectWorker(t, f.worker)
		require.NoError(t, f.policy.Transition(
			f.order, services.EventStart, f.creator, kernel.UUID{}, testNow, services.GuardContext{}))
	}

	t.Run("creator may complete", func(t *testing.T) {
		f := newFixture(t, 1)
		startOrder(t, f)

		reason := f.policy.Decide(f.order, services.EventComplete, f.creator, kernel.UUID{},
			testNow, services.GuardContext{})

		assert.Nil(t, reason)
	})

	t.Run("assigned worker may complete", func(t *testing.T) {
		f := newFixture(t, 1)
		startOrder(t, f)

		reason := f.policy.Decide(f.order, services.EventComplete, f.worker, f.worker.ID(),
			testNow, services.GuardContext{})

		assert.Nil(t, reason)
	})

	t.Run("unassigned worker may not complete", func(t *testing.T) {
		f := newFixture(t, 1)
		startOrder(t, f)
		stranger := newWorker(t)

		reason := f.policy.Decide(f.order, services.EventComplete, stranger, stranger.ID(),
			testNow, services.GuardContext{})

		require.IsType(t, services.NotAssigned{}, reason)
	})

	t.Run("non-creator dispatcher may not complete", func(t *testing.T) {
		f := newFixture(t, 1)
		startOrder(t, f)

		reason := f.policy.Decide(f.order, services.EventComplete, f.dispatcher, kernel.UUID{},
			testNow, services.GuardContext{})

		require.IsType(t, services.NotCreator{}, reason)
	})

	t.Run("staffing order cannot be completed", func(t *testing.T) {
		f := newFixture(t, 1)

		reason := f.policy.Decide(f.order, services.EventComplete, f.creator, kernel.UUID{},
			testNow, services.GuardContext{})

		require.IsType(t, services.UnsupportedEventForStatus{}, reason)
	})
}

func TestDecideExpire(t *testing.T) {
	t.Run("overdue exact order expires", func(t *testing.T) {
		f := newFixture(t, 1)
		var system kernel.Actor

		reason := f.policy.Decide(f.order, services.EventExpire, system, kernel.UUID{},
			testNow.Add(2*time.Hour), services.GuardContext{})

		assert.Nil(t, reason)
	})

	t.Run("order before its time does not expire", func(t *testing.T) {
		f := newFixture(t, 1)
		var system kernel.Actor

		reason := f.policy.Decide(f.order, services.EventExpire, system, kernel.UUID{},
			testNow, services.GuardContext{})

		require.IsType(t, services.ScheduleNotElapsed{}, reason)
	})

	t.Run("soon order never expires", func(t *testing.T) {
		creatorID := kernel.NewUUID()
		o, err := order.NewOrder(kernel.NewUUID(), creatorID, "t", "a", 1000,
			kernel.NewSoonSchedule(), time.Hour, 1, nil, nil, "")
		require.NoError(t, err)
		var system kernel.Actor

		reason := services.NewStaffingPolicy().Decide(o, services.EventExpire, system,
			kernel.UUID{}, testNow.Add(1000*time.Hour), services.GuardContext{})

		require.IsType(t, services.ScheduleNotElapsed{}, reason)
	})
}

func TestTerminalStatusesRejectEveryEvent(t *testing.T) {
	terminalize := map[string]func(t *testing.T, f *fixture){
		"Completed": func(t *testing.T, f *fixture) {
			f.apply(t, f.worker)
			f.selectWorker(t, f.worker)
			require.NoError(t, f.order.Start(testNow))
			require.NoError(t, f.order.Complete())
		},
		"Canceled": func(t *testing.T, f *fixture) {
			require.NoError(t, f.order.Cancel(""))
		},
		"Expired": func(t *testing.T, f *fixture) {
			require.NoError(t, f.order.Expire(testNow.Add(2*time.Hour)))
		},
	}

	events := []services.Event{
		services.EventApply, services.EventWithdraw, services.EventSelect,
		services.EventUnselect, services.EventStart, services.EventCancel,
		services.EventComplete, services.EventExpire,
	}

	for name, reach := range terminalize {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, 1)
			reach(t, f)
			require.True(t, f.order.Status().IsTerminal())

			for _, ev := range events {
				reason := f.policy.Decide(f.order, ev, f.creator, f.worker.ID(),
					testNow.Add(3*time.Hour), services.GuardContext{})

				blocked, ok := reason.(services.TerminalStatus)
				require.True(t, ok, "event %s must be blocked on %s", ev, name)
				assert.Equal(t, f.order.Status(), blocked.Status)
			}
		})
	}
}

func TestTransitionFullStaffingScenario(t *testing.T) {
	// create -> apply -> select -> start: one active assignment, no applied
	// applications left, order in progress.
	f := newFixture(t, 1)
	leftover := newWorker(t)

	f.apply(t, f.worker)
	f.apply(t, leftover)
	f.selectWorker(t, f.worker)

	require.NoError(t, f.policy.Transition(
		f.order, services.EventStart, f.creator, kernel.UUID{}, testNow, services.GuardContext{}))

	assert.Equal(t, order.StatusInProgress, f.order.Status())
	assert.True(t, f.order.HasActiveAssignmentFor(f.worker.ID()))

	leftoverApp, _ := f.order.ApplicationFor(leftover.ID())
	assert.Equal(t, order.ApplicationRejected, leftoverApp.Status())
	for _, app := range f.order.Applications() {
		assert.NotEqual(t, order.ApplicationApplied, app.Status())
	}
}

func TestTransitionCancelInProgress(t *testing.T) {
	f := newFixture(t, 1)
	f.apply(t, f.worker)
	f.selectWorker(t, f.worker)
	require.NoError(t, f.policy.Transition(
		f.order, services.EventStart, f.creator, kernel.UUID{}, testNow, services.GuardContext{}))

	require.NoError(t, f.policy.Transition(
		f.order, services.EventCancel, f.creator, kernel.UUID{}, testNow,
		services.GuardContext{CancelReason: "site closed"}))

	assert.Equal(t, order.StatusCanceled, f.order.Status())
	assert.Equal(t, "site closed", f.order.CancelReason())
	a, _ := f.order.AssignmentFor(f.worker.ID())
	assert.Equal(t, order.AssignmentCanceled, a.Status())
}

func TestTransitionBlockedLeavesOrderUntouched(t *testing.T) {
	f := newFixture(t, 2)
	f.apply(t, f.worker)
	f.selectWorker(t, f.worker)

	err := f.policy.Transition(
		f.order, services.EventStart, f.creator, kernel.UUID{}, testNow, services.GuardContext{})

	require.Error(t, err)
	var blocked services.BlockReason
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, order.StatusStaffing, f.order.Status())
	assert.Empty(t, f.order.Assignments())
}

func TestActionsFor(t *testing.T) {
	t.Run("fresh staffing order for a free worker", func(t *testing.T) {
		f := newFixture(t, 2)

		actions := f.policy.ActionsFor(f.order, f.worker, testNow, services.GuardContext{})

		assert.True(t, actions.Apply.Allowed)
		assert.False(t, actions.Withdraw.Allowed)
		assert.False(t, actions.Select.Allowed)
		assert.False(t, actions.Start.Allowed)
		assert.False(t, actions.Cancel.Allowed)
		assert.False(t, actions.OpenChat.Allowed)
		assert.Equal(t, "worker has no active application on this order",
			actions.Withdraw.DisabledReason())
	})

	t.Run("creator with partial quorum sees the count in the start reason", func(t *testing.T) {
		f := newFixture(t, 2)
		f.apply(t, f.worker)
		f.selectWorker(t, f.worker)

		actions := f.policy.ActionsFor(f.order, f.creator, testNow, services.GuardContext{})

		assert.False(t, actions.Start.Allowed)
		assert.Contains(t, actions.Start.DisabledReason(), "1 of 2")
		assert.True(t, actions.Cancel.Allowed)
		assert.True(t, actions.Unselect.Allowed)
		assert.True(t, actions.OpenChat.Allowed)
	})

	t.Run("creator with full quorum can start", func(t *testing.T) {
		f := newFixture(t, 2)
		second := newWorker(t)
		f.apply(t, f.worker)
		f.apply(t, second)
		f.selectWorker(t, f.worker)
		f.selectWorker(t, second)

		actions := f.policy.ActionsFor(f.order, f.creator, testNow, services.GuardContext{})

		assert.True(t, actions.Start.Allowed)
		assert.False(t, actions.Select.Allowed)
	})

	t.Run("applied worker can withdraw and chat but not re-apply", func(t *testing.T) {
		f := newFixture(t, 1)
		f.apply(t, f.worker)

		actions := f.policy.ActionsFor(f.order, f.worker, testNow, services.GuardContext{})

		assert.False(t, actions.Apply.Allowed)
		assert.True(t, actions.Withdraw.Allowed)
		assert.True(t, actions.OpenChat.Allowed)
	})

	t.Run("worker at apply limit sees the limit reason", func(t *testing.T) {
		f := newFixture(t, 1)

		actions := f.policy.ActionsFor(f.order, f.worker, testNow,
			services.GuardContext{ApplicationsInFlight: 3})

		assert.False(t, actions.Apply.Allowed)
		assert.Contains(t, actions.Apply.DisabledReason(), "3 applications in flight")
	})

	t.Run("terminal order disables everything", func(t *testing.T) {
		f := newFixture(t, 1)
		require.NoError(t, f.order.Cancel(""))

		actions := f.policy.ActionsFor(f.order, f.creator, testNow, services.GuardContext{})

		for name, c := range map[string]services.Capability{
			"apply": actions.Apply, "withdraw": actions.Withdraw,
			"select": actions.Select, "unselect": actions.Unselect,
			"start": actions.Start, "cancel": actions.Cancel,
			"complete": actions.Complete, "openChat": actions.OpenChat,
		} {
			assert.False(t, c.Allowed, "%s must be disabled", name)
			assert.NotEmpty(t, c.DisabledReason(), "%s must carry a reason", name)
		}
	})
}
