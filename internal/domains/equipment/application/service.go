package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
)

const idempotencyLockPrefix = "idempotency:"

// Service orchestrates the equipment lending use cases.
type Service struct {
	repo        ports.Repository
	clock       ports.Clock
	ids         ports.IDGenerator
	idempotency ports.IdempotencyStore
	locks       *keyedMutex
}

type Option func(*Service)

// WithIdempotencyStore enables replay of registrations carrying an idempotency key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

// NewService wires the equipment service with its dependencies.
func NewService(repo ports.Repository, clock ports.Clock, ids ports.IDGenerator, opts ...Option) *Service {
	s := &Service{repo: repo, clock: clock, ids: ids, locks: newKeyedMutex()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// RegisterEquipment validates the name and stores a new available item.
func (s *Service) RegisterEquipment(ctx context.Context, cmd types.RegisterEquipmentCommand) (*types.EquipmentDTO, error) {
	name, err := domain.ParseEquipmentName(cmd.Name)
	if err != nil {
		return nil, mapError(err)
	}
	key := strings.TrimSpace(cmd.IdempotencyKey)
	if key == "" || s.idempotency == nil {
		id, err := s.repo.NextID(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		equipment := domain.NewEquipment(id, name)
		if err := s.repo.Save(ctx, equipment); err != nil {
			return nil, mapError(err)
		}
		return types.NewEquipmentDTO(equipment), nil
	}

	hash, err := FingerprintRegisterEquipment(cmd)
	if err != nil {
		return nil, err
	}
	unlock := s.locks.Lock(idempotencyLockPrefix + key)
	defer unlock()

	replayed, err := s.replayRegistration(ctx, key, hash)
	if err != nil || replayed != nil {
		return replayed, mapError(err)
	}
	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	// Claim the key before the aggregate exists.
	record, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{Key: key, RequestHash: hash, EquipmentID: id.String()})
	if errors.Is(err, ports.ErrIdempotencyConflict) && record != nil && record.RequestHash == hash {
		return s.claimedRegistration(ctx, record.EquipmentID)
	}
	if err != nil {
		return nil, mapError(err)
	}

	equipment := domain.NewEquipment(id, name)
	if err := s.repo.Save(ctx, equipment); err != nil {
		if releaseErr := s.idempotency.Delete(ctx, key); releaseErr != nil {
			return nil, mapError(errors.Join(err, releaseErr))
		}
		return nil, mapError(err)
	}
	return types.NewEquipmentDTO(equipment), nil
}

func (s *Service) replayRegistration(ctx context.Context, key, hash string) (*types.EquipmentDTO, error) {
	record, err := s.idempotency.Get(ctx, key)
	if err != nil || record == nil {
		return nil, err
	}
	if record.RequestHash != hash {
		return nil, ports.ErrIdempotencyConflict
	}
	return s.claimedRegistration(ctx, record.EquipmentID)
}

// claimedRegistration loads the equipment bound to a key. A key whose equipment
// is not stored yet belongs to a registration still in flight.
func (s *Service) claimedRegistration(ctx context.Context, equipmentID string) (*types.EquipmentDTO, error) {
	dto, err := s.GetEquipment(ctx, equipmentID)
	if errors.Is(err, ports.ErrNotFound) {
		return nil, mapError(fmt.Errorf("%w: registration %s still in progress", ports.ErrIdempotencyConflict, equipmentID))
	}
	return dto, err
}

// GetEquipment loads one equipment with its borrowings.
func (s *Service) GetEquipment(ctx context.Context, equipmentID string) (*types.EquipmentDTO, error) {
	id, err := domain.ParseEquipmentID(&equipmentID)
	if err != nil {
		return nil, mapError(err)
	}
	equipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return types.NewEquipmentDTO(equipment), nil
}

func (s *Service) ListEquipment(ctx context.Context) ([]*types.EquipmentDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	result := make([]*types.EquipmentDTO, 0, len(list))
	for _, equipment := range list {
		result = append(result, types.NewEquipmentDTO(equipment))
	}
	return result, nil
}

// BorrowEquipment reserves the equipment for the employee when the period is free.
func (s *Service) BorrowEquipment(ctx context.Context, cmd types.BorrowEquipmentCommand) (*types.BorrowEquipmentResult, error) {
	equipmentID, err := domain.ParseEquipmentID(cmd.EquipmentID)
	if err != nil {
		return nil, mapError(err)
	}
	employeeID, err := domain.ParseEmployeeID(cmd.EmployeeID)
	if err != nil {
		return nil, mapError(err)
	}
	today := s.clock.Today()
	period, err := domain.NewPeriod(derefTime(cmd.From), derefTime(cmd.To), today)
	if err != nil {
		return nil, mapError(err)
	}
	borrowingID, err := domain.ParseBorrowingID(ptr(s.ids.Next(domain.BorrowingIDPrefix)))
	if err != nil {
		return nil, mapError(err)
	}
	borrowing := domain.NewBorrowing(borrowingID, employeeID, equipmentID, period)

	var result *types.BorrowEquipmentResult
	err = s.mutate(ctx, equipmentID, func(equipment *domain.Equipment) (*domain.Equipment, error) {
		next, err := equipment.Borrow(borrowing, today)
		if err != nil {
			return nil, err
		}
		result = &types.BorrowEquipmentResult{
			Equipment: types.NewEquipmentDTO(next),
			Borrowing: types.NewBorrowingDTO(borrowing),
		}
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ReturnBorrowing evicts a borrowing from its equipment.
func (s *Service) ReturnBorrowing(ctx context.Context, cmd types.ReturnBorrowingCommand) (*types.EquipmentDTO, error) {
	equipmentID, err := domain.ParseEquipmentID(cmd.EquipmentID)
	if err != nil {
		return nil, mapError(err)
	}
	borrowingID, err := domain.ParseBorrowingID(cmd.BorrowingID)
	if err != nil {
		return nil, mapError(err)
	}
	today := s.clock.Today()
	return s.mutateDTO(ctx, equipmentID, func(equipment *domain.Equipment) (*domain.Equipment, error) {
		return equipment.ReturnBorrowing(borrowingID, today)
	})
}

// DisposeEquipment retires equipment without active or future borrowings.
func (s *Service) DisposeEquipment(ctx context.Context, cmd types.DisposeEquipmentCommand) (*types.EquipmentDTO, error) {
	equipmentID, err := domain.ParseEquipmentID(cmd.EquipmentID)
	if err != nil {
		return nil, mapError(err)
	}
	today := s.clock.Today()
	return s.mutateDTO(ctx, equipmentID, func(equipment *domain.Equipment) (*domain.Equipment, error) {
		return equipment.Dispose(today)
	})
}

// ListBorrowingsByEmployee collects the employee's borrowings across all equipment, ordered by start day.
func (s *Service) ListBorrowingsByEmployee(ctx context.Context, employeeID string) ([]types.BorrowingDTO, error) {
	id, err := domain.ParseEmployeeID(&employeeID)
	if err != nil {
		return nil, mapError(err)
	}
	list, err := s.repo.FindByEmployee(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	result := []types.BorrowingDTO{}
	for _, equipment := range list {
		for _, b := range equipment.BorrowingsOf(id) {
			result = append(result, types.NewBorrowingDTO(b))
		}
	}
	slices.SortStableFunc(result, func(a, b types.BorrowingDTO) int {
		if c := a.From.Compare(b.From); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result, nil
}

// RefreshStatuses recomputes the status of every equipment for today and
// returns how many snapshots changed.
func (s *Service) RefreshStatuses(ctx context.Context) (int, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return 0, mapError(err)
	}
	today := s.clock.Today()
	changed := 0
	for _, candidate := range list {
		if candidate.IsDisposed() || candidate.RefreshStatus(today).Status() == candidate.Status() {
			continue
		}
		updated := false
		err := s.mutate(ctx, candidate.ID(), func(equipment *domain.Equipment) (*domain.Equipment, error) {
			next := equipment.RefreshStatus(today)
			if next.Status() == equipment.Status() {
				return nil, nil
			}
			updated = true
			return next, nil
		})
		if err != nil {
			return changed, err
		}
		if updated {
			changed++
		}
	}
	return changed, nil
}

// mutate runs load, decide and save under the per-equipment lock. A nil
// snapshot from decide skips the save.
func (s *Service) mutate(ctx context.Context, id domain.EquipmentID, decide func(*domain.Equipment) (*domain.Equipment, error)) error {
	unlock := s.locks.Lock(id.String())
	defer unlock()

	equipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapError(err)
	}
	next, err := decide(equipment)
	if err != nil {
		return mapError(err)
	}
	if next == nil {
		return nil
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return mapError(err)
	}
	return nil
}

func (s *Service) mutateDTO(ctx context.Context, id domain.EquipmentID, decide func(*domain.Equipment) (*domain.Equipment, error)) (*types.EquipmentDTO, error) {
	var saved *domain.Equipment
	err := s.mutate(ctx, id, func(equipment *domain.Equipment) (*domain.Equipment, error) {
		next, err := decide(equipment)
		saved = next
		return next, err
	})
	if err != nil {
		return nil, err
	}
	return types.NewEquipmentDTO(saved), nil
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func ptr(s string) *string { return &s }

var _ ports.Service = (*Service)(nil)
