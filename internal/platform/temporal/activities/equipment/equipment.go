package equipment

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/application"
	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
)

const (
	// RegisterEquipmentActivityName persists a newly registered equipment item.
	RegisterEquipmentActivityName = "equipment.activities.RegisterEquipment"
	// RefreshStatusesActivityName recomputes availability of every item for today.
	RefreshStatusesActivityName = "equipment.activities.RefreshStatuses"

	// Application error types carried across the workflow boundary.
	ErrTypeInvalidInput = "InvalidInput"
	ErrTypeConflict     = "Conflict"
)

// Activities groups activities that operate on the equipment bounded context.
type Activities struct {
	service ports.Service
}

func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// RegisterEquipment stores a new equipment item. Rejected input is not retried.
func (a *Activities) RegisterEquipment(ctx context.Context, cmd types.RegisterEquipmentCommand) (*types.EquipmentDTO, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("equipment registration activity not initialized")
		return nil, errors.New("equipment registration activity not initialized")
	}
	logger.Info("RegisterEquipment activity started")
	dto, err := a.service.RegisterEquipment(ctx, cmd)
	if err != nil {
		logger.Error("RegisterEquipment activity failed", "error", err)
		return nil, nonRetryable(err)
	}
	logger.Info("RegisterEquipment activity completed", "equipmentId", dto.ID)
	return dto, nil
}

// RefreshStatuses returns the number of equipment snapshots whose status changed.
func (a *Activities) RefreshStatuses(ctx context.Context) (int, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("status refresh activity not initialized")
		return 0, errors.New("status refresh activity not initialized")
	}
	changed, err := a.service.RefreshStatuses(ctx)
	if err != nil {
		logger.Error("RefreshStatuses activity failed", "changed", changed, "error", err)
		return changed, err
	}
	logger.Info("RefreshStatuses activity completed", "changed", changed)
	return changed, nil
}

func nonRetryable(err error) error {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err)
	case errors.Is(err, application.ErrConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeConflict, err)
	}
	return err
}
