package commands_test

import (
	"context"
	"testing"
	"time"

	"staffing/internal/core/application/usecases/commands"
	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/model/order"
	"staffing/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetAllInStaffingStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if o := args.Get(0); o != nil {
		return o.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) HasActiveAssignment(ctx context.Context, loaderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, loaderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) GetBusyAssignments(
	ctx context.Context, loaderIDs []kernel.UUID,
) (map[kernel.UUID]kernel.UUID, error) {
	args := m.Called(ctx, loaderIDs)
	if b := args.Get(0); b != nil {
		return b.(map[kernel.UUID]kernel.UUID), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CountActiveApplicationsForLimit(
	ctx context.Context, loaderID kernel.UUID,
) (int, error) {
	args := m.Called(ctx, loaderID)
	return args.Int(0), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func newDispatcher(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleDispatcher)
	require.NoError(t, err)
	return actor
}

func newWorker(t *testing.T) kernel.Actor {
	t.Helper()
	actor, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleWorker)
	require.NoError(t, err)
	return actor
}

// newStaffingOrder builds an aggregate created by the given dispatcher,
// scheduled one hour after testNow.
func newStaffingOrder(t *testing.T, creator kernel.Actor, requiredWorkers int) *order.Order {
	t.Helper()
	schedule, err := kernel.NewExactSchedule(testNow.Add(time.Hour))
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), creator.ID(), "Unload truck", "Pier 3",
		1500, schedule, 2*time.Hour, requiredWorkers, nil, nil, "")
	require.NoError(t, err)
	return o
}
