package http

import (
	"errors"
	"net/http"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/shipment"
	"parcels/internal/core/domain/services"
	"parcels/internal/generated/servers"
	"parcels/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const defaultQueryLimit = 100

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createShipmentHandler     commands.CreateShipmentCommandHandler
	transitionShipmentHandler commands.TransitionShipmentCommandHandler
	assignWorkerHandler       commands.AssignWorkerCommandHandler

	// Query handlers
	getAuditEntriesHandler        queries.GetAuditEntriesQueryHandler
	getExhaustedDeliveriesHandler queries.GetExhaustedDeliveriesQueryHandler
	suggestWorkerHandler          queries.SuggestWorkerQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	transitionShipmentHandler commands.TransitionShipmentCommandHandler,
	assignWorkerHandler commands.AssignWorkerCommandHandler,
	getAuditEntriesHandler queries.GetAuditEntriesQueryHandler,
	getExhaustedDeliveriesHandler queries.GetExhaustedDeliveriesQueryHandler,
	suggestWorkerHandler queries.SuggestWorkerQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:         createShipmentHandler,
		transitionShipmentHandler:     transitionShipmentHandler,
		assignWorkerHandler:           assignWorkerHandler,
		getAuditEntriesHandler:        getAuditEntriesHandler,
		getExhaustedDeliveriesHandler: getExhaustedDeliveriesHandler,
		suggestWorkerHandler:          suggestWorkerHandler,
	}
}

// CreateShipment handles POST /api/v1/shipments - registers a new shipment.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body servers.NewShipment
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	originBranchID, err := kernel.UUIDFromBytes(body.OriginBranchId[:])
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid origin branch id: "+err.Error())
	}
	destBranchID, err := kernel.UUIDFromBytes(body.DestBranchId[:])
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid destination branch id: "+err.Error())
	}

	cmd, err := commands.NewCreateShipmentCommand(
		kernel.NewUUID(),
		originBranchID,
		destBranchID,
		time.Duration(body.SlaThresholdHours)*time.Hour,
		body.Actor,
	)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment data: "+err.Error())
	}

	if handleErr := s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return commandError(ctx, handleErr, "Failed to register shipment")
	}

	return ctx.NoContent(http.StatusCreated)
}

// TransitionShipment handles POST /api/v1/shipments/{shipmentId}/transition -
// advances a shipment to the requested lifecycle status.
func (s *Server) TransitionShipment(ctx echo.Context, shipmentId openapi_types.UUID) error {
	var body servers.TransitionRequest
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromBytes(shipmentId[:])
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id: "+err.Error())
	}

	targetStatus, err := shipment.StatusFromString(body.TargetStatus)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Unknown target status: "+body.TargetStatus)
	}

	var reason string
	if body.Reason != nil {
		reason = *body.Reason
	}

	cmd, err := commands.NewTransitionShipmentCommand(
		shipmentID, targetStatus, body.ExpectedVersion, body.Actor, reason,
	)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid transition request: "+err.Error())
	}

	result, err := s.transitionShipmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return commandError(ctx, err, "Failed to transition shipment")
	}

	return ctx.JSON(http.StatusOK, servers.TransitionResult{
		Status:  result.NewStatus.String(),
		Version: result.NewVersion,
	})
}

// AssignWorker handles POST /api/v1/shipments/{shipmentId}/assign - assigns a
// named worker, or lets the assignment engine pick when no worker id is given.
func (s *Server) AssignWorker(ctx echo.Context, shipmentId openapi_types.UUID) error {
	var body servers.AssignRequest
	if err := ctx.Bind(&body); err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid request body")
	}

	shipmentID, err := kernel.UUIDFromBytes(shipmentId[:])
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid shipment id: "+err.Error())
	}

	var cmd commands.AssignWorkerCommand
	if body.WorkerId != nil {
		workerID, idErr := kernel.UUIDFromBytes(body.WorkerId[:])
		if idErr != nil {
			return errorJSON(ctx, http.StatusBadRequest, "Invalid worker id: "+idErr.Error())
		}
		cmd, err = commands.NewAssignWorkerCommand(shipmentID, workerID, body.Actor)
	} else {
		cmd, err = commands.NewAutoAssignCommand(shipmentID, body.Actor)
	}
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid assignment request: "+err.Error())
	}

	if handleErr := s.assignWorkerHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, services.ErrNoWorkersAvailable) {
			return errorJSON(ctx, http.StatusUnprocessableEntity, "No active worker available in the destination branch")
		}
		return commandError(ctx, handleErr, "Failed to assign worker")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetSuggestedWorker handles GET /api/v1/branches/{branchId}/suggested-worker -
// previews the worker the assignment engine would pick for the branch now.
func (s *Server) GetSuggestedWorker(ctx echo.Context, branchId openapi_types.UUID) error {
	branchID, err := kernel.UUIDFromBytes(branchId[:])
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid branch id: "+err.Error())
	}

	query, err := queries.NewSuggestWorkerQuery(branchID)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid branch id: "+err.Error())
	}

	suggested, err := s.suggestWorkerHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, services.ErrNoWorkersAvailable) {
			return errorJSON(ctx, http.StatusNotFound, "No active worker in the branch")
		}
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to suggest worker")
	}

	return ctx.JSON(http.StatusOK, servers.SuggestedWorker{
		WorkerId:      suggested.WorkerID.Bytes(),
		Name:          suggested.Name,
		OpenShipments: suggested.OpenShipments,
	})
}

// GetAuditEntries handles GET /api/v1/audit - searches the audit trail.
func (s *Server) GetAuditEntries(ctx echo.Context, params servers.GetAuditEntriesParams) error {
	query, err := queries.NewGetAuditEntriesQuery(
		stringOrEmpty(params.Actor),
		stringOrEmpty(params.Action),
		params.From,
		params.To,
		limitOrDefault(params.Limit),
	)
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid audit query: "+err.Error())
	}

	entries, err := s.getAuditEntriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve audit entries")
	}

	response := make([]servers.AuditEntry, len(entries))
	for i, entry := range entries {
		response[i] = servers.AuditEntry{
			Id:         entry.ID.Bytes(),
			Actor:      entry.Actor,
			Action:     entry.Action,
			SubjectId:  entry.SubjectID.Bytes(),
			Before:     snapshotOrNil(entry.Before),
			After:      snapshotOrNil(entry.After),
			RecordedAt: entry.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetExhaustedDeliveries handles GET /api/v1/webhook-deliveries/exhausted -
// lists webhook deliveries that ran out of retry budget.
func (s *Server) GetExhaustedDeliveries(ctx echo.Context, params servers.GetExhaustedDeliveriesParams) error {
	query, err := queries.NewGetExhaustedDeliveriesQuery(limitOrDefault(params.Limit))
	if err != nil {
		return errorJSON(ctx, http.StatusBadRequest, "Invalid query: "+err.Error())
	}

	deliveries, err := s.getExhaustedDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorJSON(ctx, http.StatusInternalServerError, "Failed to retrieve deliveries")
	}

	response := make([]servers.ExhaustedDelivery, len(deliveries))
	for i, delivery := range deliveries {
		response[i] = servers.ExhaustedDelivery{
			Id:           delivery.ID.Bytes(),
			SubscriberId: delivery.SubscriberID.Bytes(),
			EventId:      delivery.EventID.Bytes(),
			Endpoint:     delivery.Endpoint,
			Attempts:     delivery.Attempts,
			LastError:    delivery.LastError,
			UpdatedAt:    delivery.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// commandError maps domain errors from command handlers to HTTP statuses:
// missing aggregates to 404, stale versions to 409, forbidden lifecycle
// moves to 422, invalid values to 400, anything else to 500.
func commandError(ctx echo.Context, err error, fallback string) error {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return errorJSON(ctx, http.StatusNotFound, notFound.Error())
	}

	var conflict *errs.VersionConflictError
	if errors.As(err, &conflict) {
		return errorJSON(ctx, http.StatusConflict, conflict.Error())
	}

	var invalidTransition *errs.InvalidTransitionError
	if errors.As(err, &invalidTransition) {
		return errorJSON(ctx, http.StatusUnprocessableEntity, invalidTransition.Error())
	}

	var invalidValue *errs.ValueIsInvalidError
	if errors.As(err, &invalidValue) {
		return errorJSON(ctx, http.StatusBadRequest, invalidValue.Error())
	}

	return errorJSON(ctx, http.StatusInternalServerError, fallback)
}

func errorJSON(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func limitOrDefault(limit *int) int {
	if limit == nil {
		return defaultQueryLimit
	}
	return *limit
}

func snapshotOrNil(snapshot map[string]any) *map[string]interface{} {
	if snapshot == nil {
		return nil
	}
	return &snapshot
}
