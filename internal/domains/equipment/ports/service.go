package ports

import (
	"context"

	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
)

// Service defines the equipment lending use cases exposed to adapters (inbound/driving port).
type Service interface {
	RegisterEquipment(ctx context.Context, cmd types.RegisterEquipmentCommand) (*types.EquipmentDTO, error)
	GetEquipment(ctx context.Context, equipmentID string) (*types.EquipmentDTO, error)
	ListEquipment(ctx context.Context) ([]*types.EquipmentDTO, error)
	BorrowEquipment(ctx context.Context, cmd types.BorrowEquipmentCommand) (*types.BorrowEquipmentResult, error)
	ReturnBorrowing(ctx context.Context, cmd types.ReturnBorrowingCommand) (*types.EquipmentDTO, error)
	DisposeEquipment(ctx context.Context, cmd types.DisposeEquipmentCommand) (*types.EquipmentDTO, error)
	ListBorrowingsByEmployee(ctx context.Context, employeeID string) ([]types.BorrowingDTO, error)
	RefreshStatuses(ctx context.Context) (int, error)
}
