package http

import (
	"net/http"

	"logistics/internal/core/application/usecases/commands"
	"logistics/internal/core/application/usecases/queries"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/network"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/domain/services"

	"github.com/labstack/echo/v4"
)

// Server exposes the order management use cases over HTTP. It translates
// between the wire DTOs and the command/query layer; all business rules
// live below it.
type Server struct {
	// Command handlers
	createOrderHandler      *commands.CreateOrderCommandHandler
	advanceStatusHandler    *commands.AdvanceOrderStatusCommandHandler
	bulkAdvanceHandler      *commands.BulkAdvanceStatusCommandHandler
	assignToAgentHandler    *commands.AssignOrdersToAgentCommandHandler
	assignToVehicleHandler  *commands.AssignOrdersToVehicleCommandHandler
	registerHubHandler      *commands.RegisterHubCommandHandler
	registerAgentHandler    *commands.RegisterAgentCommandHandler
	registerVehicleHandler  *commands.RegisterVehicleCommandHandler
	registerCustomerHandler *commands.RegisterCustomerCommandHandler

	// Standalone pricing, outside of order creation
	estimator services.Estimator

	// Query handlers
	workflowStatusHandler    queries.GetWorkflowStatusQueryHandler
	trackOrderHandler        queries.TrackOrderQueryHandler
	hubDashboardHandler      queries.GetHubDashboardQueryHandler
	customerAnalyticsHandler queries.GetCustomerAnalyticsQueryHandler
}

// NewServer creates the HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler *commands.CreateOrderCommandHandler,
	advanceStatusHandler *commands.AdvanceOrderStatusCommandHandler,
	bulkAdvanceHandler *commands.BulkAdvanceStatusCommandHandler,
	assignToAgentHandler *commands.AssignOrdersToAgentCommandHandler,
	assignToVehicleHandler *commands.AssignOrdersToVehicleCommandHandler,
	registerHubHandler *commands.RegisterHubCommandHandler,
	registerAgentHandler *commands.RegisterAgentCommandHandler,
	registerVehicleHandler *commands.RegisterVehicleCommandHandler,
	registerCustomerHandler *commands.RegisterCustomerCommandHandler,
	estimator services.Estimator,
	workflowStatusHandler queries.GetWorkflowStatusQueryHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	hubDashboardHandler queries.GetHubDashboardQueryHandler,
	customerAnalyticsHandler queries.GetCustomerAnalyticsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		advanceStatusHandler:     advanceStatusHandler,
		bulkAdvanceHandler:       bulkAdvanceHandler,
		assignToAgentHandler:     assignToAgentHandler,
		assignToVehicleHandler:   assignToVehicleHandler,
		registerHubHandler:       registerHubHandler,
		registerAgentHandler:     registerAgentHandler,
		registerVehicleHandler:   registerVehicleHandler,
		registerCustomerHandler:  registerCustomerHandler,
		estimator:                estimator,
		workflowStatusHandler:    workflowStatusHandler,
		trackOrderHandler:        trackOrderHandler,
		hubDashboardHandler:      hubDashboardHandler,
		customerAnalyticsHandler: customerAnalyticsHandler,
	}
}

// RegisterRoutes wires every endpoint onto the echo instance. The echo
// Validator must be set before any request is served.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/status", s.AdvanceStatus)
	api.POST("/orders/bulk-status", s.BulkAdvanceStatus)
	api.GET("/orders/:id/workflow", s.GetWorkflowStatus)
	api.GET("/orders/:id/track", s.TrackOrder)

	api.POST("/pricing/estimate", s.EstimatePricing)

	api.POST("/hubs", s.RegisterHub)
	api.POST("/agents", s.RegisterAgent)
	api.POST("/vehicles", s.RegisterVehicle)
	api.POST("/customers", s.RegisterCustomer)

	api.POST("/agents/:id/orders", s.AssignOrdersToAgent)
	api.POST("/vehicles/:id/orders", s.AssignOrdersToVehicle)

	api.GET("/hubs/:id/dashboard", s.GetHubDashboard)
	api.GET("/customers/:id/analytics", s.GetCustomerAnalytics)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - registers a shipment.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, err)
	}
	pickup, err := req.PickupAddress.toDomain()
	if err != nil {
		return badRequest(ctx, err)
	}
	drop, err := req.DropAddress.toDomain()
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		customerID,
		req.SellerOrderID,
		pickup,
		drop,
		itemsToDomain(req.Items),
		order.OrderType(req.OrderType),
		order.Priority(req.Priority),
		order.DeliveryType(req.DeliveryType),
		order.PaymentMode(req.PaymentMode),
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse(result))
}

// AdvanceStatus handles POST /api/v1/orders/:id/status - moves one order
// through the workflow.
func (s *Server) AdvanceStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AdvanceStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(
		orderID, target, req.Location, req.HandledBy, req.Remarks)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.advanceStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AdvanceStatusResponse{
		Status:   result.Status.String(),
		Progress: result.Progress,
		Changed:  result.Changed,
	})
}

// BulkAdvanceStatus handles POST /api/v1/orders/bulk-status - moves a batch
// of orders to the same status. The response is always 200; per-order
// failures are reported in the results list.
func (s *Server) BulkAdvanceStatus(ctx echo.Context) error {
	var req BulkStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, err)
	}
	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewBulkAdvanceStatusCommand(
		orderIDs, target, req.Location, req.HandledBy, req.Remarks)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.bulkAdvanceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, bulkStatusResponse(result))
}

// GetWorkflowStatus handles GET /api/v1/orders/:id/workflow.
func (s *Server) GetWorkflowStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetWorkflowStatusQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.workflowStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, workflowStatusResponse(response))
}

// TrackOrder handles GET /api/v1/orders/:id/track.
func (s *Server) TrackOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewTrackOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, trackOrderResponse(response))
}

// EstimatePricing handles POST /api/v1/pricing/estimate - prices a
// hypothetical shipment without creating an order.
func (s *Server) EstimatePricing(ctx echo.Context) error {
	var req EstimateRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	estimateReq, err := req.toDomain()
	if err != nil {
		return badRequest(ctx, err)
	}

	reqCtx := ctx.Request().Context()
	pricing, err := s.estimator.EstimatePrice(reqCtx, estimateReq)
	if err != nil {
		return domainError(ctx, err)
	}
	timeEstimate, err := s.estimator.EstimateDeliveryTime(reqCtx, estimateReq)
	if err != nil {
		return domainError(ctx, err)
	}
	route, err := s.estimator.PlanRoute(reqCtx, estimateReq)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, EstimateResponse{
		Pricing: priceBreakdownResponse(pricing),
		Time:    timeEstimateResponse(timeEstimate),
		Route:   routePlanResponse(route),
	})
}

// RegisterHub handles POST /api/v1/hubs.
func (s *Server) RegisterHub(ctx echo.Context) error {
	var req RegisterHubRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterHubCommand(
		req.Code, req.State, req.City,
		network.Area(req.Area), req.MaxOrders, req.ServiceAreas)
	if err != nil {
		return badRequest(ctx, err)
	}

	id, err := s.registerHubHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// RegisterAgent handles POST /api/v1/agents.
func (s *Server) RegisterAgent(ctx echo.Context) error {
	var req RegisterAgentRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	hubID, err := kernel.UUIDFromString(req.HubID)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewRegisterAgentCommand(
		req.Code, req.Name, req.Phone, hubID,
		network.Area(req.Area), req.MaxOrders)
	if err != nil {
		return badRequest(ctx, err)
	}

	id, err := s.registerAgentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// RegisterVehicle handles POST /api/v1/vehicles.
func (s *Server) RegisterVehicle(ctx echo.Context) error {
	var req RegisterVehicleRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterVehicleCommand(
		req.Code, network.VehicleType(req.VehicleType), req.Registration,
		req.MaxWeightKg, req.MaxVolumeCbm, req.MaxOrders, req.ServiceStates)
	if err != nil {
		return badRequest(ctx, err)
	}

	id, err := s.registerVehicleHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// RegisterCustomer handles POST /api/v1/customers.
func (s *Server) RegisterCustomer(ctx echo.Context) error {
	var req RegisterCustomerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	cmd, err := commands.NewRegisterCustomerCommand(req.Name, req.Email, req.Phone)
	if err != nil {
		return badRequest(ctx, err)
	}

	id, err := s.registerCustomerHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// AssignOrdersToAgent handles POST /api/v1/agents/:id/orders - binds a
// batch of orders to one agent. The batch is all or nothing.
func (s *Server) AssignOrdersToAgent(ctx echo.Context) error {
	agentID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AssignOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignOrdersToAgentCommand(agentID, orderIDs)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.assignToAgentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AssignOrdersResponse{Assigned: len(orderIDs)})
}

// AssignOrdersToVehicle handles POST /api/v1/vehicles/:id/orders - binds a
// batch of orders to one line-haul vehicle. The batch is all or nothing.
func (s *Server) AssignOrdersToVehicle(ctx echo.Context) error {
	vehicleID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	var req AssignOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, err)
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	orderIDs, err := parseUUIDs(req.OrderIDs)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewAssignOrdersToVehicleCommand(vehicleID, orderIDs)
	if err != nil {
		return badRequest(ctx, err)
	}

	if err := s.assignToVehicleHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AssignOrdersResponse{Assigned: len(orderIDs)})
}

// GetHubDashboard handles GET /api/v1/hubs/:id/dashboard.
func (s *Server) GetHubDashboard(ctx echo.Context) error {
	hubID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetHubDashboardQuery(hubID)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.hubDashboardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, hubDashboardResponse(response))
}

// GetCustomerAnalytics handles GET /api/v1/customers/:id/analytics.
func (s *Server) GetCustomerAnalytics(ctx echo.Context) error {
	customerID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewGetCustomerAnalyticsQuery(customerID)
	if err != nil {
		return badRequest(ctx, err)
	}

	response, err := s.customerAnalyticsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, customerAnalyticsResponse(response))
}
