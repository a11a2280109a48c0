package equipment

import (
	"go.temporal.io/sdk/workflow"

	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	"github.com/Apurer/equipment-lending-api/internal/platform/temporal/sequences"
)

const (
	// RegistrationWorkflowName is the public identifier for registering the workflow.
	RegistrationWorkflowName = "equipment.workflows.Registration"
	// StatusRefreshWorkflowName recomputes statuses, usually from a Temporal schedule.
	StatusRefreshWorkflowName = "equipment.workflows.StatusRefresh"
	// TaskQueue is consumed by the worker processing equipment workflows.
	TaskQueue = "EQUIPMENT_LENDING"
)

// RegistrationWorkflowInput captures the payload required to register equipment.
type RegistrationWorkflowInput struct {
	Command types.RegisterEquipmentCommand
	TraceID string
}

// RegistrationWorkflow orchestrates the activities needed to persist a new equipment item.
func RegistrationWorkflow(ctx workflow.Context, input RegistrationWorkflowInput) (*types.EquipmentDTO, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("RegistrationWorkflow started", withTraceID(input.TraceID)...)
	dto, err := sequences.RunEquipmentRegistrationSequence(ctx, input.Command)
	if err != nil {
		logger.Error("RegistrationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("RegistrationWorkflow completed", withTraceID(input.TraceID, "equipmentId", dto.ID)...)
	return dto, nil
}

// StatusRefreshWorkflow returns how many equipment items changed status.
func StatusRefreshWorkflow(ctx workflow.Context) (int, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("StatusRefreshWorkflow started")
	return sequences.RunStatusRefreshSequence(ctx)
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
