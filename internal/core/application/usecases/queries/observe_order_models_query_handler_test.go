package queries_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"staffing/internal/core/application/usecases/queries"
	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// fakeWatcher replays snapshots pushed by the test.
type fakeWatcher struct {
	snapshots chan []*order.Order
	canceled  bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{snapshots: make(chan []*order.Order, 8)}
}

func (w *fakeWatcher) ObserveOrders(_ context.Context) (<-chan []*order.Order, func()) {
	return w.snapshots, func() {
		if !w.canceled {
			w.canceled = true
			close(w.snapshots)
		}
	}
}

func newTestOrder(t *testing.T, creator kernel.UUID, requiredWorkers int) *order.Order {
	t.Helper()
	schedule, err := kernel.NewExactSchedule(testNow.Add(time.Hour))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), creator, "Unload truck", "Pier 3",
		1500, schedule, 2*time.Hour, requiredWorkers, nil, nil, "")
	require.NoError(t, err)
	return o
}

func receiveModels(t *testing.T, ch <-chan []queries.OrderModel) []queries.OrderModel {
	t.Helper()
	select {
	case models, ok := <-ch:
		require.True(t, ok, "stream closed before a snapshot arrived")
		return models
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot within 2s")
		return nil
	}
}

func TestObserveOrderModelsQueryHandler_Handle_WorkerView(t *testing.T) {
	ctx := t.Context()
	creatorID := kernel.NewUUID()
	worker, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)

	applied := newTestOrder(t, creatorID, 2)
	require.NoError(t, applied.Apply(worker.ID(), testNow.UnixMilli(), nil))
	open := newTestOrder(t, creatorID, 1)

	repo := new(MockOrderRepository)
	repo.On("GetBusyAssignments", ctx, []kernel.UUID{worker.ID()}).
		Return(map[kernel.UUID]kernel.UUID{}, nil)
	repo.On("CountActiveApplicationsForLimit", ctx, worker.ID()).Return(1, nil)

	watcher := newFakeWatcher()
	watcher.snapshots <- []*order.Order{applied, open}

	query, err := queries.NewObserveOrderModelsQuery(worker)
	require.NoError(t, err)

	h := queries.NewObserveOrderModelsQueryHandler(
		watcher, repo, fixedClock{testNow}, slog.Default())
	stream, cancel, err := h.Handle(ctx, query)
	require.NoError(t, err)
	defer cancel()

	models := receiveModels(t, stream)
	require.Len(t, models, 2)

	assert.True(t, models[0].ID.IsEqual(applied.ID()))
	require.NotNil(t, models[0].MyApplicationStatus)
	assert.Equal(t, order.ApplicationApplied, *models[0].MyApplicationStatus)
	assert.False(t, models[0].Actions.Apply.Allowed)
	assert.True(t, models[0].Actions.Withdraw.Allowed)
	assert.True(t, models[0].Actions.OpenChat.Allowed)

	assert.Nil(t, models[1].MyApplicationStatus)
	assert.True(t, models[1].Actions.Apply.Allowed)
	assert.False(t, models[1].Actions.Withdraw.Allowed)
}

func TestObserveOrderModelsQueryHandler_Handle_CreatorView(t *testing.T) {
	ctx := t.Context()
	creator, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDispatcher)
	require.NoError(t, err)
	workerID := kernel.NewUUID()

	staffed := newTestOrder(t, creator.ID(), 1)
	require.NoError(t, staffed.Apply(workerID, testNow.UnixMilli(), nil))
	require.NoError(t, staffed.SelectApplicant(workerID))

	repo := new(MockOrderRepository)

	watcher := newFakeWatcher()
	watcher.snapshots <- []*order.Order{staffed}

	query, err := queries.NewObserveOrderModelsQuery(creator)
	require.NoError(t, err)

	h := queries.NewObserveOrderModelsQueryHandler(
		watcher, repo, fixedClock{testNow}, slog.Default())
	stream, cancel, err := h.Handle(ctx, query)
	require.NoError(t, err)
	defer cancel()

	models := receiveModels(t, stream)
	require.Len(t, models, 1)

	assert.Equal(t, 1, models[0].SelectedCount)
	assert.True(t, models[0].Actions.Start.Allowed)
	assert.True(t, models[0].Actions.Cancel.Allowed)
	assert.False(t, models[0].Actions.Apply.Allowed)
	// Dispatcher projections never hit the repository.
	repo.AssertNotCalled(t, "GetBusyAssignments")
	repo.AssertNotCalled(t, "CountActiveApplicationsForLimit")
}

func TestObserveOrderModelsQueryHandler_Handle_CancelClosesStream(t *testing.T) {
	ctx := t.Context()
	worker, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	watcher := newFakeWatcher()

	query, err := queries.NewObserveOrderModelsQuery(worker)
	require.NoError(t, err)

	h := queries.NewObserveOrderModelsQueryHandler(
		watcher, repo, fixedClock{testNow}, slog.Default())
	stream, cancel, err := h.Handle(ctx, query)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-stream:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("stream did not close after cancel")
	}
}
