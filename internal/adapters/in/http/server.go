// Package http exposes the dispatch core over a JSON API. The gateway in
// front of the service resolves authentication and forwards the caller
// identity in headers; this adapter only translates between wire shapes
// and use cases.
package http

import (
	"encoding/base64"
	"net/http"
	"time"

	"fieldops/internal/core/application/usecases/commands"
	"fieldops/internal/core/application/usecases/queries"
	"fieldops/internal/core/domain/model/actor"
	"fieldops/internal/core/domain/model/kernel"
	"fieldops/internal/core/domain/model/task"

	"github.com/labstack/echo/v4"
)

const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	recordPositionHandler        commands.RecordCourierPositionCommandHandler
	createTaskHandler            commands.CreateTaskCommandHandler
	acceptTaskHandler            commands.AcceptTaskCommandHandler
	advanceTaskStatusHandler     commands.AdvanceTaskStatusCommandHandler
	confirmTaskHandler           commands.ConfirmTaskCommandHandler
	reassignTaskHandler          commands.ReassignTaskCommandHandler
	triggerPanicAlertHandler     commands.TriggerPanicAlertCommandHandler
	createChangeRequestHandler   commands.CreateChangeRequestCommandHandler
	approveChangeRequestHandler  commands.ApproveChangeRequestCommandHandler
	rejectChangeRequestHandler   commands.RejectChangeRequestCommandHandler
	completeChangeRequestHandler commands.CompleteChangeRequestCommandHandler

	// Query handlers
	getCourierPositionsHandler queries.GetCourierPositionsQueryHandler
	getNearestCourierHandler   queries.GetNearestCourierQueryHandler
	getTasksHandler            queries.GetTasksQueryHandler
	getChangeRequestsHandler   queries.GetChangeRequestsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	recordPositionHandler commands.RecordCourierPositionCommandHandler,
	createTaskHandler commands.CreateTaskCommandHandler,
	acceptTaskHandler commands.AcceptTaskCommandHandler,
	advanceTaskStatusHandler commands.AdvanceTaskStatusCommandHandler,
	confirmTaskHandler commands.ConfirmTaskCommandHandler,
	reassignTaskHandler commands.ReassignTaskCommandHandler,
	triggerPanicAlertHandler commands.TriggerPanicAlertCommandHandler,
	createChangeRequestHandler commands.CreateChangeRequestCommandHandler,
	approveChangeRequestHandler commands.ApproveChangeRequestCommandHandler,
	rejectChangeRequestHandler commands.RejectChangeRequestCommandHandler,
	completeChangeRequestHandler commands.CompleteChangeRequestCommandHandler,
	getCourierPositionsHandler queries.GetCourierPositionsQueryHandler,
	getNearestCourierHandler queries.GetNearestCourierQueryHandler,
	getTasksHandler queries.GetTasksQueryHandler,
	getChangeRequestsHandler queries.GetChangeRequestsQueryHandler,
) *Server {
	return &Server{
		recordPositionHandler:        recordPositionHandler,
		createTaskHandler:            createTaskHandler,
		acceptTaskHandler:            acceptTaskHandler,
		advanceTaskStatusHandler:     advanceTaskStatusHandler,
		confirmTaskHandler:           confirmTaskHandler,
		reassignTaskHandler:          reassignTaskHandler,
		triggerPanicAlertHandler:     triggerPanicAlertHandler,
		createChangeRequestHandler:   createChangeRequestHandler,
		approveChangeRequestHandler:  approveChangeRequestHandler,
		rejectChangeRequestHandler:   rejectChangeRequestHandler,
		completeChangeRequestHandler: completeChangeRequestHandler,
		getCourierPositionsHandler:   getCourierPositionsHandler,
		getNearestCourierHandler:     getNearestCourierHandler,
		getTasksHandler:              getTasksHandler,
		getChangeRequestsHandler:     getChangeRequestsHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.POST("/couriers/:courierId/positions", s.RecordCourierPosition)
	v1.GET("/couriers/:courierId/positions", s.GetCourierPositions)

	v1.GET("/sites/:siteId/nearest-courier", s.GetNearestCourier)
	v1.POST("/sites/:siteId/panic", s.TriggerPanicAlert)

	v1.POST("/tasks", s.CreateTask)
	v1.GET("/tasks", s.GetTasks)
	v1.POST("/tasks/:taskId/accept", s.AcceptTask)
	v1.POST("/tasks/:taskId/status", s.AdvanceTaskStatus)
	v1.POST("/tasks/:taskId/confirm", s.ConfirmTask)
	v1.POST("/tasks/:taskId/reassign", s.ReassignTask)

	v1.POST("/change-requests", s.CreateChangeRequest)
	v1.GET("/change-requests", s.GetChangeRequests)
	v1.POST("/change-requests/:requestId/approve", s.ApproveChangeRequest)
	v1.POST("/change-requests/:requestId/reject", s.RejectChangeRequest)
	v1.POST("/change-requests/:requestId/complete", s.CompleteChangeRequest)
}

// resolveActor builds the caller from the identity headers set by the
// gateway.
func resolveActor(ctx echo.Context) (actor.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return actor.Actor{}, err
	}

	role, err := actor.RoleFromString(ctx.Request().Header.Get(headerUserRole))
	if err != nil {
		return actor.Actor{}, err
	}

	return actor.NewActor(id, role)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// RecordCourierPosition handles POST /api/v1/couriers/{courierId}/positions.
func (s *Server) RecordCourierPosition(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var req RecordPositionRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var recordedAt time.Time
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	cmd, err := commands.NewRecordCourierPositionCommand(
		courierID, req.Latitude, req.Longitude, req.AccuracyM, req.SpeedKMH, req.HeadingDeg, recordedAt)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.recordPositionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetCourierPositions handles GET /api/v1/couriers/{courierId}/positions.
// Only pings inside the retention window are returned.
func (s *Server) GetCourierPositions(ctx echo.Context) error {
	courierID, err := pathUUID(ctx, "courierId")
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	query, err := queries.NewGetCourierPositionsQuery(courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	positions, err := s.getCourierPositionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]Position, len(positions))
	for i, p := range positions {
		response[i] = Position{
			Latitude:   p.Latitude,
			Longitude:  p.Longitude,
			AccuracyM:  p.AccuracyM,
			SpeedKMH:   p.SpeedKMH,
			HeadingDeg: p.HeadingDeg,
			RecordedAt: p.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetNearestCourier handles GET /api/v1/sites/{siteId}/nearest-courier.
// The optional kind query parameter adjusts the service-time part of the
// ETA.
func (s *Server) GetNearestCourier(ctx echo.Context) error {
	siteID, err := pathUUID(ctx, "siteId")
	if err != nil {
		return badRequest(ctx, "invalid site id")
	}

	query, err := queries.NewGetNearestCourierQuery(siteID, task.Kind(ctx.QueryParam("kind")))
	if err != nil {
		return respondError(ctx, err)
	}

	ranked, err := s.getNearestCourierHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]RankedCourier, len(ranked))
	for i, r := range ranked {
		response[i] = RankedCourier{
			CourierID:  r.CourierID.String(),
			Name:       r.Name,
			DistanceKM: r.DistanceKM,
			ETAMinutes: r.ETAMinutes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateTask handles POST /api/v1/tasks.
func (s *Server) CreateTask(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req NewTask
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	siteID, err := kernel.UUIDFromString(req.SiteID)
	if err != nil {
		return badRequest(ctx, "invalid site id")
	}

	photos := make([][]byte, 0, len(req.Photos))
	for _, encoded := range req.Photos {
		raw, decodeErr := base64.StdEncoding.DecodeString(encoded)
		if decodeErr != nil {
			return badRequest(ctx, "invalid photo encoding")
		}
		photos = append(photos, raw)
	}

	attrs := task.Attributes{
		Description: req.Description,
		Priority:    task.Priority(req.Priority),
		Amount:      req.Amount,
	}
	if req.Change != nil {
		attrs.Change = &task.ChangeDetails{Coins5: req.Change.Coins5, Coins10: req.Change.Coins10}
	}
	if req.Failure != nil {
		attrs.Failure = &task.FailureDetails{
			MachineID:        req.Failure.MachineID,
			ErrorCode:        req.Failure.ErrorCode,
			ErrorDescription: req.Failure.ErrorDescription,
			ClientName:       req.Failure.ClientName,
		}
	}
	if req.Refill != nil {
		attrs.Refill = &task.RefillDetails{
			Type:           task.RefillType(req.Refill.Type),
			Coins5:         req.Refill.Coins5,
			Coins10:        req.Refill.Coins10,
			PersonInCharge: req.Refill.PersonInCharge,
		}
	}

	taskID := kernel.NewUUID()
	cmd, err := commands.NewCreateTaskCommand(
		taskID, task.Kind(req.Kind), siteID, caller, attrs, photos, time.Now())
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: taskID.String()})
}

// GetTasks handles GET /api/v1/tasks. The listing is scoped to the
// caller's role; the optional status query parameter narrows it.
func (s *Server) GetTasks(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetTasksQuery(caller, ctx.QueryParam("status"))
	if err != nil {
		return respondError(ctx, err)
	}

	tasks, err := s.getTasksHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]Task, len(tasks))
	for i, t := range tasks {
		row := Task{
			ID:          t.ID.String(),
			Kind:        string(t.Kind),
			SiteID:      t.SiteID.String(),
			Status:      string(t.Status),
			Priority:    string(t.Priority),
			Description: t.Description,
			Amount:      t.Amount,
			CreatedAt:   t.CreatedAt,
			CompletedAt: t.CompletedAt,
		}
		if t.AssignedTo != nil {
			assigned := t.AssignedTo.String()
			row.AssignedTo = &assigned
		}
		response[i] = row
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptTask handles POST /api/v1/tasks/{taskId}/accept.
func (s *Server) AcceptTask(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	taskID, err := pathUUID(ctx, "taskId")
	if err != nil {
		return badRequest(ctx, "invalid task id")
	}

	cmd, err := commands.NewAcceptTaskCommand(taskID, caller.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.acceptTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceTaskStatus handles POST /api/v1/tasks/{taskId}/status.
func (s *Server) AdvanceTaskStatus(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	taskID, err := pathUUID(ctx, "taskId")
	if err != nil {
		return badRequest(ctx, "invalid task id")
	}

	var req AdvanceStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAdvanceTaskStatusCommand(taskID, caller.ID(), req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.advanceTaskStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmTask handles POST /api/v1/tasks/{taskId}/confirm.
func (s *Server) ConfirmTask(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	taskID, err := pathUUID(ctx, "taskId")
	if err != nil {
		return badRequest(ctx, "invalid task id")
	}

	cmd, err := commands.NewConfirmTaskCommand(taskID, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.confirmTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReassignTask handles POST /api/v1/tasks/{taskId}/reassign.
func (s *Server) ReassignTask(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	taskID, err := pathUUID(ctx, "taskId")
	if err != nil {
		return badRequest(ctx, "invalid task id")
	}

	var req ReassignRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	cmd, err := commands.NewReassignTaskCommand(taskID, courierID, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.reassignTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TriggerPanicAlert handles POST /api/v1/sites/{siteId}/panic. Only site
// attendants carry a panic button.
func (s *Server) TriggerPanicAlert(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if !caller.IsSite() {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "only site attendants can raise a panic alert",
		})
	}

	siteID, err := pathUUID(ctx, "siteId")
	if err != nil {
		return badRequest(ctx, "invalid site id")
	}

	var req PanicRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	photos := make([][]byte, 0, len(req.Photos))
	for _, encoded := range req.Photos {
		raw, decodeErr := base64.StdEncoding.DecodeString(encoded)
		if decodeErr != nil {
			return badRequest(ctx, "invalid photo encoding")
		}
		photos = append(photos, raw)
	}

	taskID := kernel.NewUUID()
	cmd, err := commands.NewTriggerPanicAlertCommand(taskID, siteID, caller.ID(), req.Message, photos)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.triggerPanicAlertHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: taskID.String()})
}

// CreateChangeRequest handles POST /api/v1/change-requests. Only site
// attendants open change requests, for their own site.
func (s *Server) CreateChangeRequest(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if !caller.IsSite() {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: "only site attendants can open change requests",
		})
	}

	var req NewChangeRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	requestID := kernel.NewUUID()
	cmd, err := commands.NewCreateChangeRequestCommand(
		requestID, caller.ID(), caller.ID(), req.Coins5, req.Coins10, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createChangeRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: requestID.String()})
}

// GetChangeRequests handles GET /api/v1/change-requests.
func (s *Server) GetChangeRequests(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetChangeRequestsQuery(caller, ctx.QueryParam("status"))
	if err != nil {
		return respondError(ctx, err)
	}

	requests, err := s.getChangeRequestsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]ChangeRequest, len(requests))
	for i, r := range requests {
		response[i] = ChangeRequest{
			ID:              r.ID.String(),
			SiteID:          r.SiteID.String(),
			Status:          string(r.Status),
			Coins5:          r.Coins5,
			Coins10:         r.Coins10,
			TotalAmount:     r.TotalAmount,
			RejectionReason: r.RejectionReason,
			CreatedAt:       r.CreatedAt,
			CompletedAt:     r.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ApproveChangeRequest handles POST /api/v1/change-requests/{requestId}/approve.
func (s *Server) ApproveChangeRequest(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	requestID, err := pathUUID(ctx, "requestId")
	if err != nil {
		return badRequest(ctx, "invalid request id")
	}

	var req ApproveRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	var courierID *kernel.UUID
	if req.CourierID != nil {
		parsed, parseErr := kernel.UUIDFromString(*req.CourierID)
		if parseErr != nil {
			return badRequest(ctx, "invalid courier id")
		}
		courierID = &parsed
	}

	cmd, err := commands.NewApproveChangeRequestCommand(requestID, caller, courierID)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.approveChangeRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectChangeRequest handles POST /api/v1/change-requests/{requestId}/reject.
func (s *Server) RejectChangeRequest(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	requestID, err := pathUUID(ctx, "requestId")
	if err != nil {
		return badRequest(ctx, "invalid request id")
	}

	var req RejectRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewRejectChangeRequestCommand(requestID, caller, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.rejectChangeRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteChangeRequest handles POST /api/v1/change-requests/{requestId}/complete.
// Completion deducts the site's float in the same transaction.
func (s *Server) CompleteChangeRequest(ctx echo.Context) error {
	caller, err := resolveActor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	requestID, err := pathUUID(ctx, "requestId")
	if err != nil {
		return badRequest(ctx, "invalid request id")
	}

	cmd, err := commands.NewCompleteChangeRequestCommand(requestID, caller.ID())
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.completeChangeRequestHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
