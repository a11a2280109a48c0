package migrations

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema of the equipment bounded context.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&equipmentRecord{},
		&borrowingRecord{},
		&idempotencyRecord{},
	)
}

// Equipment schema mirrors the equipment Postgres adapter.
type equipmentRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	Name        string         `gorm:"column:name"`
	Status      string         `gorm:"column:status;type:varchar(16);index"`
	EmployeeIDs pq.StringArray `gorm:"column:employee_ids;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (equipmentRecord) TableName() string { return "equipment" }

type borrowingRecord struct {
	ID          string    `gorm:"primaryKey;column:id;size:64"`
	EquipmentID string    `gorm:"column:equipment_id;size:64;index:idx_borrowings_equipment_position"`
	Position    int       `gorm:"column:position;index:idx_borrowings_equipment_position"`
	EmployeeID  string    `gorm:"column:employee_id;size:64;index"`
	FromDate    time.Time `gorm:"column:from_date;type:date"`
	ToDate      time.Time `gorm:"column:to_date;type:date"`
	Returned    bool      `gorm:"column:returned"`
}

func (borrowingRecord) TableName() string { return "equipment_borrowings" }

// Idempotency schema mirrors the registration idempotency store.
type idempotencyRecord struct {
	Key         string    `gorm:"primaryKey;column:key;size:255"`
	RequestHash string    `gorm:"column:request_hash;size:128"`
	EquipmentID string    `gorm:"column:equipment_id;size:64"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (idempotencyRecord) TableName() string { return "equipment_idempotency_keys" }
