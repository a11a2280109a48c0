package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// IdempotencyStore persists registration idempotency keys in PostgreSQL.
type IdempotencyStore struct {
	db *gorm.DB
}

func NewIdempotencyStore(db *gorm.DB) *IdempotencyStore {
	return &IdempotencyStore{db: db}
}

// Get loads a record by key, returning nil when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var record idempotencyRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record.toPort(), nil
}

// Save inserts the record. A duplicate key resolves to the stored record, with
// ErrIdempotencyConflict when it belongs to another request or equipment.
func (s *IdempotencyStore) Save(ctx context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	dbRecord := idempotencyRecord{
		Key:         record.Key,
		RequestHash: record.RequestHash,
		EquipmentID: record.EquipmentID,
	}
	err := s.db.WithContext(ctx).Create(&dbRecord).Error
	if err == nil {
		return dbRecord.toPort(), nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, err
	}
	existing, getErr := s.Get(ctx, record.Key)
	if getErr != nil {
		return nil, getErr
	}
	if existing == nil {
		return nil, err
	}
	if existing.RequestHash != record.RequestHash || existing.EquipmentID != record.EquipmentID {
		return existing, ports.ErrIdempotencyConflict
	}
	return existing, nil
}

// Delete removes the key. Unknown keys are ignored.
func (s *IdempotencyStore) Delete(ctx context.Context, key string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&idempotencyRecord{}, "key = ?", key).Error
}

func (s *IdempotencyStore) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres idempotency store not configured")
	}
	return nil
}

type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	EquipmentID string    `gorm:"column:equipment_id;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "equipment_idempotency_keys" }

func (r *idempotencyRecord) toPort() *ports.IdempotencyRecord {
	return &ports.IdempotencyRecord{
		Key:         r.Key,
		RequestHash: r.RequestHash,
		EquipmentID: r.EquipmentID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
