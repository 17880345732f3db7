package cmd

import (
	"log/slog"

	httpin "staffing/internal/adapters/in/http"
	"staffing/internal/adapters/out/memory"
	"staffing/internal/adapters/out/postgres"
	"staffing/internal/adapters/out/postgres/orderrepo"
	"staffing/internal/core/application/dispatch"
	"staffing/internal/core/application/usecases/commands"
	"staffing/internal/core/application/usecases/queries"
	"staffing/internal/core/ports"

	"gorm.io/gorm"
)

// CompositionRoot wires the application graph for the selected store: the
// unit of work factory feeding the command handlers, the repository and
// watcher feeding the queries, and the clock everything shares.
type CompositionRoot struct {
	uowFactory ports.UnitOfWorkFactory
	queryRepo  ports.OrderRepository
	watcher    ports.OrderWatcher
	clock      ports.Clock
	logger     *slog.Logger
}

// NewCompositionRoot builds the graph over PostgreSQL. Committed mutations
// notify the snapshot watcher so subscriptions stay current.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	queryRepo := orderrepo.NewGormOrderRepository(gormDB, nil)
	watcher := postgres.NewWatcher(queryRepo, logger)

	return CompositionRoot{
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, watcher),
		queryRepo:  queryRepo,
		watcher:    watcher,
		clock:      ports.SystemClock{},
		logger:     logger,
	}
}

// NewMemoryCompositionRoot builds the graph over the in-memory store. Meant
// for local runs and tests where PostgreSQL is not available.
func NewMemoryCompositionRoot(_ Config, logger *slog.Logger) CompositionRoot {
	store := memory.NewStore()

	return CompositionRoot{
		uowFactory: memory.NewUnitOfWorkFactory(store),
		queryRepo:  store,
		watcher:    store,
		clock:      ports.SystemClock{},
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateApplyToOrderCommandHandler() commands.ApplyToOrderCommandHandler {
	return commands.NewApplyToOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateWithdrawApplicationCommandHandler() commands.WithdrawApplicationCommandHandler {
	return commands.NewWithdrawApplicationCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSelectApplicantCommandHandler() commands.SelectApplicantCommandHandler {
	return commands.NewSelectApplicantCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUnselectApplicantCommandHandler() commands.UnselectApplicantCommandHandler {
	return commands.NewUnselectApplicantCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateStartOrderCommandHandler() commands.StartOrderCommandHandler {
	return commands.NewStartOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRefreshOrdersCommandHandler() commands.RefreshOrdersCommandHandler {
	return commands.NewRefreshOrdersCommandHandler(c.orderUoWFactory(), c.clock)
}

// CreateDispatcher assembles the full command dispatcher with the HTTP
// context actor provider.
func (c *CompositionRoot) CreateDispatcher() dispatch.Dispatcher {
	handlers := dispatch.Handlers{
		CreateOrder:         c.CreateCreateOrderCommandHandler(),
		ApplyToOrder:        c.CreateApplyToOrderCommandHandler(),
		WithdrawApplication: c.CreateWithdrawApplicationCommandHandler(),
		SelectApplicant:     c.CreateSelectApplicantCommandHandler(),
		UnselectApplicant:   c.CreateUnselectApplicantCommandHandler(),
		StartOrder:          c.CreateStartOrderCommandHandler(),
		CancelOrder:         c.CreateCancelOrderCommandHandler(),
		CompleteOrder:       c.CreateCompleteOrderCommandHandler(),
		RefreshOrders:       c.CreateRefreshOrdersCommandHandler(),
	}

	return dispatch.NewDispatcher(httpin.ContextActorProvider{}, handlers, c.logger)
}

func (c *CompositionRoot) CreateObserveOrderModelsQueryHandler() queries.ObserveOrderModelsQueryHandler {
	return queries.NewObserveOrderModelsQueryHandler(c.watcher, c.queryRepo, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetRespondersWithAvailabilityQueryHandler() queries.GetRespondersWithAvailabilityQueryHandler {
	return queries.NewGetRespondersWithAvailabilityQueryHandler(c.queryRepo)
}

// FuncOrderUoWFactory adapts a closure to the commands.OrderUoWFactory
// interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
