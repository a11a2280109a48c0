package ports

import (
	"context"

	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the equipment bounded context.
type WorkflowOrchestrator interface {
	RegisterEquipment(ctx context.Context, cmd types.RegisterEquipmentCommand) (*types.EquipmentDTO, error)
}
