package equipment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	equipmentactivities "github.com/Apurer/equipment-lending-api/internal/platform/temporal/activities/equipment"
)

func newEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()
	var activities *equipmentactivities.Activities
	env.RegisterActivityWithOptions(activities.RegisterEquipment, activity.RegisterOptions{Name: equipmentactivities.RegisterEquipmentActivityName})
	env.RegisterActivityWithOptions(activities.RefreshStatuses, activity.RegisterOptions{Name: equipmentactivities.RefreshStatusesActivityName})
	return env
}

func TestRegistrationWorkflowReturnsActivityResult(t *testing.T) {
	env := newEnv(t)
	name := "Laptop"
	cmd := types.RegisterEquipmentCommand{Name: &name, IdempotencyKey: "key-1"}
	env.OnActivity(equipmentactivities.RegisterEquipmentActivityName, mock.Anything, cmd).
		Return(&types.EquipmentDTO{ID: "eq-001", Name: name, Status: "AVAILABLE"}, nil).Once()

	env.ExecuteWorkflow(RegistrationWorkflow, RegistrationWorkflowInput{Command: cmd, TraceID: "trace"})

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var dto types.EquipmentDTO
	require.NoError(t, env.GetWorkflowResult(&dto))
	require.Equal(t, "eq-001", dto.ID)
	require.Equal(t, "AVAILABLE", dto.Status)
	env.AssertExpectations(t)
}

func TestRegistrationWorkflowDoesNotRetryInvalidInput(t *testing.T) {
	env := newEnv(t)
	calls := 0
	env.OnActivity(equipmentactivities.RegisterEquipmentActivityName, mock.Anything, mock.Anything).
		Return(func(context.Context, types.RegisterEquipmentCommand) (*types.EquipmentDTO, error) {
			calls++
			return nil, temporal.NewNonRetryableApplicationError("name is required", equipmentactivities.ErrTypeInvalidInput, nil)
		})

	env.ExecuteWorkflow(RegistrationWorkflow, RegistrationWorkflowInput{})

	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)
	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, equipmentactivities.ErrTypeInvalidInput, appErr.Type())
	require.Equal(t, 1, calls)
}

func TestStatusRefreshWorkflowReportsChanges(t *testing.T) {
	env := newEnv(t)
	env.OnActivity(equipmentactivities.RefreshStatusesActivityName, mock.Anything).Return(3, nil).Once()

	env.ExecuteWorkflow(StatusRefreshWorkflow)

	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	var changed int
	require.NoError(t, env.GetWorkflowResult(&changed))
	require.Equal(t, 3, changed)
}
