package lendingserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	equipmenthttpmapper "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/http/mapper"
	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
	apierrors "github.com/Apurer/equipment-lending-api/internal/shared/errors"
)

// IdempotencyKeyHeader lets clients retry registrations safely.
const IdempotencyKeyHeader = "Idempotency-Key"

// EquipmentAPI wires HTTP transport with the equipment service and workflows.
type EquipmentAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
}

// NewEquipmentAPI creates an EquipmentAPI backed by the provided service.
func NewEquipmentAPI(service ports.Service, workflows ports.WorkflowOrchestrator) EquipmentAPI {
	return EquipmentAPI{service: service, workflows: workflows}
}

// Post /v1/equipment
// Register a new equipment item
func (api *EquipmentAPI) RegisterEquipment(c *gin.Context) {
	var payload equipmenthttpmapper.RegisterEquipmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	cmd := equipmenthttpmapper.ToRegisterCommand(payload, c.GetHeader(IdempotencyKeyHeader))
	saved, err := api.register(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, equipmenthttpmapper.FromEquipmentDTO(saved))
}

func (api *EquipmentAPI) register(ctx context.Context, cmd types.RegisterEquipmentCommand) (*types.EquipmentDTO, error) {
	if api.workflows != nil {
		return api.workflows.RegisterEquipment(ctx, cmd)
	}
	return api.service.RegisterEquipment(ctx, cmd)
}

// Get /v1/equipment
// List all equipment
func (api *EquipmentAPI) ListEquipment(c *gin.Context) {
	list, err := api.service.ListEquipment(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipmenthttpmapper.FromEquipmentDTOList(list))
}

// Get /v1/equipment/:equipmentId
// Find equipment by ID
func (api *EquipmentAPI) GetEquipment(c *gin.Context) {
	equipment, err := api.service.GetEquipment(c.Request.Context(), c.Param("equipmentId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipmenthttpmapper.FromEquipmentDTO(equipment))
}

// Post /v1/equipment/:equipmentId/borrowings
// Borrow equipment for an employee over a period
func (api *EquipmentAPI) BorrowEquipment(c *gin.Context) {
	var payload equipmenthttpmapper.BorrowEquipmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondProblem(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	cmd, err := equipmenthttpmapper.ToBorrowCommand(c.Param("equipmentId"), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result, err := api.service.BorrowEquipment(c.Request.Context(), cmd)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, equipmenthttpmapper.FromBorrowResult(result))
}

// Delete /v1/equipment/:equipmentId/borrowings/:borrowingId
// Return a borrowing
func (api *EquipmentAPI) ReturnBorrowing(c *gin.Context) {
	equipmentID := c.Param("equipmentId")
	borrowingID := c.Param("borrowingId")
	updated, err := api.service.ReturnBorrowing(c.Request.Context(), types.ReturnBorrowingCommand{
		EquipmentID: &equipmentID,
		BorrowingID: &borrowingID,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipmenthttpmapper.FromEquipmentDTO(updated))
}

// Post /v1/equipment/:equipmentId/dispose
// Dispose of equipment
func (api *EquipmentAPI) DisposeEquipment(c *gin.Context) {
	equipmentID := c.Param("equipmentId")
	updated, err := api.service.DisposeEquipment(c.Request.Context(), types.DisposeEquipmentCommand{EquipmentID: &equipmentID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipmenthttpmapper.FromEquipmentDTO(updated))
}
