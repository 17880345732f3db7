// Package http exposes the staffing engine over HTTP. All mutations are
// posted as commands and run through the dispatcher; reads are served from
// the query handlers. The acting user arrives in headers and is resolved by
// ActorMiddleware.
package http

import (
	"net/http"
	"strings"
	"time"

	"staffing/internal/core/application/dispatch"
	"staffing/internal/core/application/usecases/queries"
	"staffing/internal/core/domain/model/kernel"
	"staffing/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and the application layer.
type Server struct {
	dispatcher dispatch.Dispatcher

	observeOrdersHandler queries.ObserveOrderModelsQueryHandler
	respondersHandler    queries.GetRespondersWithAvailabilityQueryHandler
}

// NewServer creates a new HTTP server over the dispatcher and query handlers.
func NewServer(
	dispatcher dispatch.Dispatcher,
	observeOrdersHandler queries.ObserveOrderModelsQueryHandler,
	respondersHandler queries.GetRespondersWithAvailabilityQueryHandler,
) *Server {
	return &Server{
		dispatcher:           dispatcher,
		observeOrdersHandler: observeOrdersHandler,
		respondersHandler:    respondersHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Use(ActorMiddleware())

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/refresh", s.RefreshOrders)
	api.POST("/orders/:id/apply", s.orderAction(dispatch.CommandApply))
	api.POST("/orders/:id/withdraw", s.orderAction(dispatch.CommandWithdraw))
	api.POST("/orders/:id/select", s.orderAction(dispatch.CommandSelect))
	api.POST("/orders/:id/unselect", s.orderAction(dispatch.CommandUnselect))
	api.POST("/orders/:id/start", s.orderAction(dispatch.CommandStart))
	api.POST("/orders/:id/cancel", s.orderAction(dispatch.CommandCancel))
	api.POST("/orders/:id/complete", s.orderAction(dispatch.CommandComplete))
	api.GET("/responders/availability", s.GetResponderAvailability)
}

// errorBody is the uniform error payload.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// resultBody reports a dispatched command's outcome.
type resultBody struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
	OrderID string `json:"orderId,omitempty"`
	Expired int    `json:"expired,omitempty"`
}

// createOrderRequest is the payload for POST /api/v1/orders.
type createOrderRequest struct {
	Title           string            `json:"title"`
	Address         string            `json:"address"`
	PricePerHour    int               `json:"pricePerHour"`
	ScheduledAt     *time.Time        `json:"scheduledAt,omitempty"`
	DurationMinutes int               `json:"durationMinutes"`
	RequiredWorkers int               `json:"requiredWorkers"`
	WorkersCurrent  *int              `json:"workersCurrent,omitempty"`
	Tags            []string          `json:"tags,omitempty"`
	Metadata        map[string]string `json:"metadata,omitempty"`
	Comment         string            `json:"comment,omitempty"`
}

// actionRequest carries the optional payload fields of the per-order actions.
type actionRequest struct {
	LoaderID string   `json:"loaderId,omitempty"`
	Reason   *string  `json:"reason,omitempty"`
	Rating   *float64 `json:"rating,omitempty"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - publishes a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	// workersCurrent is advisory client state: it must be a sane count but a
	// new order always starts with zero selections regardless of its value.
	if req.WorkersCurrent != nil &&
		(*req.WorkersCurrent < 0 || *req.WorkersCurrent > req.RequiredWorkers) {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: "workersCurrent must be between 0 and requiredWorkers",
		})
	}

	schedule := kernel.NewSoonSchedule()
	if req.ScheduledAt != nil {
		var err error
		schedule, err = kernel.NewExactSchedule(*req.ScheduledAt)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorBody{
				Code:    http.StatusBadRequest,
				Message: "Invalid scheduledAt: " + err.Error(),
			})
		}
	}

	result := s.dispatcher.Dispatch(ctx.Request().Context(), dispatch.Command{
		Type: dispatch.CommandCreate,
		Create: &dispatch.CreateOrderSpec{
			Title:           req.Title,
			Address:         req.Address,
			PricePerHour:    req.PricePerHour,
			Schedule:        schedule,
			Duration:        time.Duration(req.DurationMinutes) * time.Minute,
			RequiredWorkers: req.RequiredWorkers,
			Tags:            req.Tags,
			Metadata:        req.Metadata,
			Comment:         req.Comment,
		},
	})

	return writeResult(ctx, result, http.StatusCreated)
}

// RefreshOrders handles POST /api/v1/orders/refresh - runs the expiry sweep.
func (s *Server) RefreshOrders(ctx echo.Context) error {
	result := s.dispatcher.Dispatch(ctx.Request().Context(), dispatch.Command{
		Type: dispatch.CommandRefresh,
	})
	return writeResult(ctx, result, http.StatusOK)
}

// orderAction builds the handler for one per-order lifecycle action.
func (s *Server) orderAction(commandType dispatch.CommandType) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		orderID, err := kernel.UUIDFromString(ctx.Param("id"))
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorBody{
				Code:    http.StatusBadRequest,
				Message: "Invalid order id",
			})
		}

		var req actionRequest
		if ctx.Request().ContentLength > 0 {
			if err = ctx.Bind(&req); err != nil {
				return ctx.JSON(http.StatusBadRequest, errorBody{
					Code:    http.StatusBadRequest,
					Message: "Invalid request body",
				})
			}
		}

		cmd := dispatch.Command{
			Type:    commandType,
			OrderID: orderID,
			Reason:  req.Reason,
			Rating:  req.Rating,
		}

		if req.LoaderID != "" {
			cmd.LoaderID, err = kernel.UUIDFromString(req.LoaderID)
			if err != nil {
				return ctx.JSON(http.StatusBadRequest, errorBody{
					Code:    http.StatusBadRequest,
					Message: "Invalid loader id",
				})
			}
		}

		result := s.dispatcher.Dispatch(ctx.Request().Context(), cmd)
		return writeResult(ctx, result, http.StatusOK)
	}
}

// orderResponse is one order as the calling actor sees it.
type orderResponse struct {
	ID                  string                    `json:"id"`
	Title               string                    `json:"title"`
	Address             string                    `json:"address"`
	PricePerHour        int                       `json:"pricePerHour"`
	Schedule            string                    `json:"schedule"`
	DurationMinutes     int                       `json:"durationMinutes"`
	RequiredWorkers     int                       `json:"requiredWorkers"`
	SelectedCount       int                       `json:"selectedCount"`
	Status              string                    `json:"status"`
	CancelReason        string                    `json:"cancelReason,omitempty"`
	MyApplicationStatus *string                   `json:"myApplicationStatus,omitempty"`
	Actions             map[string]actionResponse `json:"actions"`
}

// actionResponse is one capability cell of the action matrix.
type actionResponse struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// GetOrders handles GET /api/v1/orders - returns the current order list as
// the calling actor sees it, with per-order capabilities.
func (s *Server) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	actor, err := (ContextActorProvider{}).CurrentActor(reqCtx)
	if err != nil {
		return ctx.JSON(http.StatusForbidden, errorBody{
			Code:    http.StatusForbidden,
			Message: "No actor selected",
		})
	}

	query, err := queries.NewObserveOrderModelsQuery(actor)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	models, cancel, err := s.observeOrdersHandler.Handle(reqCtx, query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}
	defer cancel()

	// One snapshot is enough for a plain GET; streaming clients subscribe
	// through the query handler directly.
	select {
	case snapshot, ok := <-models:
		if !ok {
			return ctx.JSON(http.StatusInternalServerError, errorBody{
				Code:    http.StatusInternalServerError,
				Message: "Order stream closed",
			})
		}
		response := make([]orderResponse, len(snapshot))
		for i, model := range snapshot {
			response[i] = toOrderResponse(model)
		}
		return ctx.JSON(http.StatusOK, response)
	case <-reqCtx.Done():
		return reqCtx.Err()
	}
}

// availabilityResponse is one worker's global busy state.
type availabilityResponse struct {
	LoaderID    string  `json:"loaderId"`
	Busy        bool    `json:"busy"`
	BusyOrderID *string `json:"busyOrderId,omitempty"`
}

// GetResponderAvailability handles GET /api/v1/responders/availability.
// The ids query parameter carries a comma-separated list of worker ids.
func (s *Server) GetResponderAvailability(ctx echo.Context) error {
	rawIDs := ctx.QueryParam("ids")
	if rawIDs == "" {
		return ctx.JSON(http.StatusOK, []availabilityResponse{})
	}

	loaderIDs := make([]kernel.UUID, 0)
	for _, raw := range strings.Split(rawIDs, ",") {
		id, err := kernel.UUIDFromString(strings.TrimSpace(raw))
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorBody{
				Code:    http.StatusBadRequest,
				Message: "Invalid worker id: " + raw,
			})
		}
		loaderIDs = append(loaderIDs, id)
	}

	query, err := queries.NewGetRespondersWithAvailabilityQuery(loaderIDs)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorBody{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	availability, err := s.respondersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorBody{
			Code:    http.StatusInternalServerError,
			Message: "Failed to resolve availability",
		})
	}

	response := make([]availabilityResponse, len(availability))
	for i, entry := range availability {
		response[i] = availabilityResponse{
			LoaderID: entry.LoaderID.String(),
			Busy:     entry.Busy,
		}
		if entry.BusyOrderID != nil {
			busyOrderID := entry.BusyOrderID.String()
			response[i].BusyOrderID = &busyOrderID
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toOrderResponse(model queries.OrderModel) orderResponse {
	response := orderResponse{
		ID:              model.ID.String(),
		Title:           model.Title,
		Address:         model.Address,
		PricePerHour:    model.PricePerHour,
		Schedule:        model.Schedule.String(),
		DurationMinutes: int(model.Duration.Minutes()),
		RequiredWorkers: model.RequiredWorkers,
		SelectedCount:   model.SelectedCount,
		Status:          model.Status.String(),
		CancelReason:    model.CancelReason,
		Actions: map[string]actionResponse{
			"apply":    toActionResponse(model.Actions.Apply),
			"withdraw": toActionResponse(model.Actions.Withdraw),
			"select":   toActionResponse(model.Actions.Select),
			"unselect": toActionResponse(model.Actions.Unselect),
			"start":    toActionResponse(model.Actions.Start),
			"cancel":   toActionResponse(model.Actions.Cancel),
			"complete": toActionResponse(model.Actions.Complete),
			"openChat": toActionResponse(model.Actions.OpenChat),
		},
	}

	if model.MyApplicationStatus != nil {
		status := model.MyApplicationStatus.String()
		response.MyApplicationStatus = &status
	}

	return response
}

func toActionResponse(capability services.Capability) actionResponse {
	return actionResponse{
		Allowed: capability.Allowed,
		Reason:  capability.DisabledReason(),
	}
}

// writeResult folds a dispatch result into an HTTP response. successStatus is
// used for the OK outcome.
func writeResult(ctx echo.Context, result dispatch.Result, successStatus int) error {
	body := resultBody{
		Outcome: string(result.Outcome),
		Reason:  result.Reason,
		Expired: result.Expired,
	}
	if result.OrderID.Validate() == nil {
		body.OrderID = result.OrderID.String()
	}

	status := successStatus
	switch result.Outcome {
	case dispatch.OutcomeInvalid:
		status = http.StatusBadRequest
	case dispatch.OutcomeForbidden:
		status = http.StatusForbidden
	case dispatch.OutcomeNotFound:
		status = http.StatusNotFound
	case dispatch.OutcomeConflict:
		status = http.StatusConflict
	case dispatch.OutcomeRejected:
		status = http.StatusUnprocessableEntity
	case dispatch.OutcomeError:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, body)
}
