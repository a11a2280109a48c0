package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory equipment persistence adapter. Snapshots are
// immutable so they are stored and handed out without copying.
type Repository struct {
	mu    sync.RWMutex
	ids   ports.IDGenerator
	items map[domain.EquipmentID]*domain.Equipment
	order []domain.EquipmentID
}

func NewRepository(ids ports.IDGenerator) *Repository {
	return &Repository{ids: ids, items: map[domain.EquipmentID]*domain.Equipment{}}
}

func (r *Repository) NextID(_ context.Context) (domain.EquipmentID, error) {
	if r.ids == nil {
		return domain.EquipmentID{}, errors.New("memory equipment repository has no id generator")
	}
	raw := r.ids.Next(domain.EquipmentIDPrefix)
	return domain.ParseEquipmentID(&raw)
}

func (r *Repository) Save(_ context.Context, equipment *domain.Equipment) error {
	if equipment == nil {
		return errors.New("equipment is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[equipment.ID()]; !ok {
		r.order = append(r.order, equipment.ID())
	}
	r.items[equipment.ID()] = equipment
	return nil
}

func (r *Repository) FindByID(_ context.Context, id domain.EquipmentID) (*domain.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	equipment, ok := r.items[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return equipment, nil
}

// List returns equipment in registration order.
func (r *Repository) List(_ context.Context) ([]*domain.Equipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Equipment, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.items[id])
	}
	return list, nil
}

func (r *Repository) FindByEmployee(ctx context.Context, employeeID domain.EmployeeID) ([]*domain.Equipment, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	var result []*domain.Equipment
	for _, equipment := range all {
		if len(equipment.BorrowingsOf(employeeID)) > 0 {
			result = append(result, equipment)
		}
	}
	return result, nil
}
