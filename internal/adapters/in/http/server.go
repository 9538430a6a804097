package http

import (
	"errors"
	"net/http"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler      commands.CreateOrderCommandHandler
	advanceStageHandler     commands.AdvanceStageCommandHandler
	changeStageHandler      commands.ChangeStageCommandHandler
	updateStatusHandler     commands.UpdateStatusCommandHandler
	bulkUpdateStatusHandler commands.BulkUpdateStatusCommandHandler
	assignTaskHandler       commands.AssignTaskCommandHandler

	// Query handlers
	getActiveOrdersHandler  queries.GetActiveOrdersQueryHandler
	getOverdueOrdersHandler queries.GetOverdueOrdersQueryHandler
	getOrderHistoryHandler  queries.GetOrderHistoryQueryHandler
	calculateBonusHandler   queries.CalculateBonusQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	advanceStageHandler commands.AdvanceStageCommandHandler,
	changeStageHandler commands.ChangeStageCommandHandler,
	updateStatusHandler commands.UpdateStatusCommandHandler,
	bulkUpdateStatusHandler commands.BulkUpdateStatusCommandHandler,
	assignTaskHandler commands.AssignTaskCommandHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
	getOverdueOrdersHandler queries.GetOverdueOrdersQueryHandler,
	getOrderHistoryHandler queries.GetOrderHistoryQueryHandler,
	calculateBonusHandler queries.CalculateBonusQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:      createOrderHandler,
		advanceStageHandler:     advanceStageHandler,
		changeStageHandler:      changeStageHandler,
		updateStatusHandler:     updateStatusHandler,
		bulkUpdateStatusHandler: bulkUpdateStatusHandler,
		assignTaskHandler:       assignTaskHandler,
		getActiveOrdersHandler:  getActiveOrdersHandler,
		getOverdueOrdersHandler: getOverdueOrdersHandler,
		getOrderHistoryHandler:  getOrderHistoryHandler,
		calculateBonusHandler:   calculateBonusHandler,
	}
}

// RegisterRoutes attaches all order tracking endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/overdue", s.GetOverdueOrders)
	api.POST("/orders/status", s.BulkUpdateStatus)
	api.POST("/orders/:orderId/advance", s.AdvanceStage)
	api.POST("/orders/:orderId/stage", s.ChangeStage)
	api.POST("/orders/:orderId/status", s.UpdateStatus)
	api.POST("/orders/:orderId/assignee", s.AssignTask)
	api.GET("/orders/:orderId/history", s.GetOrderHistory)
	api.GET("/teams/:teamId/bonus", s.GetTeamBonus)
	api.GET("/users/:userId/bonus", s.GetUserBonus)
}

// Error is the JSON error envelope returned on every failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrder is the request body for order creation.
type NewOrder struct {
	ProductID             string    `json:"productId"`
	Quantity              int       `json:"quantity"`
	Size                  string    `json:"size"`
	EstimatedCompletionAt time.Time `json:"estimatedCompletionAt"`
	ClientName            string    `json:"clientName"`
	AssignedUserID        *string   `json:"assignedUserId,omitempty"`
	AssignedTeamID        *string   `json:"assignedTeamId,omitempty"`
	ActingUserID          string    `json:"actingUserId"`
}

// StageChange is the request body for a manual stage move.
type StageChange struct {
	NewStage     string `json:"newStage"`
	Note         string `json:"note"`
	ActingUserID string `json:"actingUserId"`
}

// StatusChange is the request body for a status update.
type StatusChange struct {
	NewStatus    string `json:"newStatus"`
	Note         string `json:"note"`
	ActingUserID string `json:"actingUserId"`
}

// BulkStatusChange is the request body for updating several orders at once.
type BulkStatusChange struct {
	OrderIDs     []string `json:"orderIds"`
	NewStatus    string   `json:"newStatus"`
	Note         string   `json:"note"`
	ActingUserID string   `json:"actingUserId"`
}

// Assignment is the request body for assigning an order to an operator.
type Assignment struct {
	AssignedUserID string `json:"assignedUserId"`
	ActingUserID   string `json:"actingUserId"`
}

// ActorAction is the request body for endpoints that only need the actor.
type ActorAction struct {
	ActingUserID string `json:"actingUserId"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(body.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id: "+err.Error())
	}
	actingUserID, err := kernel.UUIDFromString(body.ActingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid acting user id: "+err.Error())
	}
	assignedUserID, err := optionalUUID(body.AssignedUserID)
	if err != nil {
		return badRequest(ctx, "Invalid assigned user id: "+err.Error())
	}
	assignedTeamID, err := optionalUUID(body.AssignedTeamID)
	if err != nil {
		return badRequest(ctx, "Invalid assigned team id: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		productID,
		body.Quantity,
		body.Size,
		body.EstimatedCompletionAt,
		body.ClientName,
		assignedUserID,
		assignedTeamID,
		actingUserID,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if handleErr := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// AdvanceStage handles POST /api/v1/orders/:orderId/advance.
func (s *Server) AdvanceStage(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body ActorAction
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	actingUserID, err := kernel.UUIDFromString(body.ActingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid acting user id: "+err.Error())
	}

	cmd, err := commands.NewAdvanceStageCommand(orderID, actingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.advanceStageHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr, "Failed to advance order stage")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeStage handles POST /api/v1/orders/:orderId/stage.
func (s *Server) ChangeStage(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body StageChange
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	newStage, err := order.ParseStage(body.NewStage)
	if err != nil {
		return badRequest(ctx, "Invalid stage: "+err.Error())
	}
	actingUserID, err := kernel.UUIDFromString(body.ActingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid acting user id: "+err.Error())
	}

	cmd, err := commands.NewChangeStageCommand(orderID, newStage, body.Note, actingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.changeStageHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr, "Failed to change order stage")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateStatus handles POST /api/v1/orders/:orderId/status.
func (s *Server) UpdateStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body StatusChange
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	newStatus, err := order.ParseStatus(body.NewStatus)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}
	actingUserID, err := kernel.UUIDFromString(body.ActingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid acting user id: "+err.Error())
	}

	cmd, err := commands.NewUpdateStatusCommand(orderID, newStatus, body.Note, actingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.updateStatusHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr, "Failed to update order status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BulkUpdateStatus handles POST /api/v1/orders/status.
func (s *Server) BulkUpdateStatus(ctx echo.Context) error {
	var body BulkStatusChange
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs := make([]kernel.UUID, 0, len(body.OrderIDs))
	for _, raw := range body.OrderIDs {
		id, err := kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid order id: "+err.Error())
		}
		orderIDs = append(orderIDs, id)
	}
	newStatus, err := order.ParseStatus(body.NewStatus)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}
	actingUserID, err := kernel.UUIDFromString(body.ActingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid acting user id: "+err.Error())
	}

	cmd, err := commands.NewBulkUpdateStatusCommand(orderIDs, newStatus, body.Note, actingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	result, err := s.bulkUpdateStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err, "Failed to update order statuses")
	}

	return ctx.JSON(http.StatusOK, result)
}

// AssignTask handles POST /api/v1/orders/:orderId/assignee.
func (s *Server) AssignTask(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var body Assignment
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	assignedUserID, err := kernel.UUIDFromString(body.AssignedUserID)
	if err != nil {
		return badRequest(ctx, "Invalid assigned user id: "+err.Error())
	}
	actingUserID, err := kernel.UUIDFromString(body.ActingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid acting user id: "+err.Error())
	}

	cmd, err := commands.NewAssignTaskCommand(orderID, assignedUserID, actingUserID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if handleErr := s.assignTaskHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return errorResponse(ctx, handleErr, "Failed to assign order")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveOrders handles GET /api/v1/orders/active.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOverdueOrders handles GET /api/v1/orders/overdue.
func (s *Server) GetOverdueOrders(ctx echo.Context) error {
	query, err := queries.NewGetOverdueOrdersQuery(time.Now().UTC())
	if err != nil {
		return errorResponse(ctx, err, "Failed to build overdue query")
	}

	orders, err := s.getOverdueOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err, "Failed to retrieve overdue orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrderHistory handles GET /api/v1/orders/:orderId/history.
func (s *Server) GetOrderHistory(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderHistoryQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	entries, err := s.getOrderHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err, "Failed to retrieve order history")
	}

	return ctx.JSON(http.StatusOK, entries)
}

// GetTeamBonus handles GET /api/v1/teams/:teamId/bonus.
func (s *Server) GetTeamBonus(ctx echo.Context) error {
	teamID, err := kernel.UUIDFromString(ctx.Param("teamId"))
	if err != nil {
		return badRequest(ctx, "Invalid team id: "+err.Error())
	}

	from, to, err := bonusPeriod(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid period: "+err.Error())
	}

	query, err := queries.NewCalculateTeamBonusQuery(teamID, from, to)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	report, err := s.calculateBonusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err, "Failed to calculate team bonus")
	}

	return ctx.JSON(http.StatusOK, report)
}

// GetUserBonus handles GET /api/v1/users/:userId/bonus.
func (s *Server) GetUserBonus(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.Param("userId"))
	if err != nil {
		return badRequest(ctx, "Invalid user id: "+err.Error())
	}

	from, to, err := bonusPeriod(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid period: "+err.Error())
	}

	query, err := queries.NewCalculateUserBonusQuery(userID, from, to)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	report, err := s.calculateBonusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err, "Failed to calculate user bonus")
	}

	return ctx.JSON(http.StatusOK, report)
}

func bonusPeriod(ctx echo.Context) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, ctx.QueryParam("from"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := time.Parse(time.RFC3339, ctx.QueryParam("to"))
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// errorResponse maps application errors to HTTP status codes.
func errorResponse(ctx echo.Context, err error, fallback string) error {
	code := http.StatusInternalServerError
	message := fallback + ": " + err.Error()

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, errs.ErrNotAllowed):
		code = http.StatusForbidden
	case errors.Is(err, errs.ErrLotCodeConflict):
		code = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	case errors.Is(err, order.ErrOrderAlreadyCompleted),
		errors.Is(err, order.ErrNoFurtherStage),
		errors.Is(err, order.ErrCompletionRequiresPackaging),
		errors.Is(err, order.ErrRollbackNoteRequired):
		code = http.StatusUnprocessableEntity
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}
