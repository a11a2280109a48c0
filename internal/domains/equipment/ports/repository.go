package ports

import (
	"context"
	"errors"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
)

var ErrNotFound = errors.New("equipment not found")

// Repository persists full equipment snapshots including their borrowings.
type Repository interface {
	NextID(ctx context.Context) (domain.EquipmentID, error)
	Save(ctx context.Context, equipment *domain.Equipment) error
	FindByID(ctx context.Context, id domain.EquipmentID) (*domain.Equipment, error)
	List(ctx context.Context) ([]*domain.Equipment, error)
	// FindByEmployee returns every equipment holding at least one borrowing of the employee.
	FindByEmployee(ctx context.Context, employeeID domain.EmployeeID) ([]*domain.Equipment, error)
}
