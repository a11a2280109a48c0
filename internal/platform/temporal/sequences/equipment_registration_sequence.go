package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	equipmentactivities "github.com/Apurer/equipment-lending-api/internal/platform/temporal/activities/equipment"
)

// RunEquipmentRegistrationSequence executes the activities needed to persist a new equipment item.
func RunEquipmentRegistrationSequence(ctx workflow.Context, cmd types.RegisterEquipmentCommand) (*types.EquipmentDTO, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("equipment registration sequence started")
	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{equipmentactivities.ErrTypeInvalidInput, equipmentactivities.ErrTypeConflict},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var dto types.EquipmentDTO
	err := workflow.ExecuteActivity(ctx, equipmentactivities.RegisterEquipmentActivityName, cmd).Get(ctx, &dto)
	if err != nil {
		logger.Error("equipment registration sequence failed", "error", err)
		return nil, err
	}
	logger.Info("equipment registration sequence completed", "equipmentId", dto.ID)
	return &dto, nil
}

// RunStatusRefreshSequence recomputes equipment statuses with a short retry budget.
func RunStatusRefreshSequence(ctx workflow.Context) (int, error) {
	logger := workflow.GetLogger(ctx)
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    5 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    time.Minute,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var changed int
	if err := workflow.ExecuteActivity(ctx, equipmentactivities.RefreshStatusesActivityName).Get(ctx, &changed); err != nil {
		logger.Error("status refresh sequence failed", "error", err)
		return 0, err
	}
	logger.Info("status refresh sequence completed", "changed", changed)
	return changed, nil
}
