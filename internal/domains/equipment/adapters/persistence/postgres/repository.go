package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists equipment snapshots in PostgreSQL using GORM. The caller
// owns the DB lifecycle and applies the schema through platform/migrations.
type Repository struct {
	db  *gorm.DB
	ids ports.IDGenerator
}

func NewRepository(db *gorm.DB, ids ports.IDGenerator) *Repository {
	return &Repository{db: db, ids: ids}
}

// equipmentRecord keeps a denormalized employee_ids array so borrowings can be
// looked up by employee without joining.
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

func (r *Repository) NextID(_ context.Context) (domain.EquipmentID, error) {
	if r == nil || r.ids == nil {
		return domain.EquipmentID{}, errors.New("postgres equipment repository has no id generator")
	}
	raw := r.ids.Next(domain.EquipmentIDPrefix)
	return domain.ParseEquipmentID(&raw)
}

// Save replaces the stored snapshot, borrowings included, inside one transaction.
func (r *Repository) Save(ctx context.Context, equipment *domain.Equipment) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	if equipment == nil {
		return errors.New("cannot save nil equipment")
	}
	record, borrowings := toRecords(equipment)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":         record.Name,
				"status":       record.Status,
				"employee_ids": record.EmployeeIDs,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
			return err
		}
		if err := tx.Where("equipment_id = ?", record.ID).Delete(&borrowingRecord{}).Error; err != nil {
			return err
		}
		if len(borrowings) == 0 {
			return nil
		}
		return tx.Create(&borrowings).Error
	})
}

func (r *Repository) FindByID(ctx context.Context, id domain.EquipmentID) (*domain.Equipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record equipmentRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	list, err := r.hydrate(ctx, []equipmentRecord{record})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

// List returns all equipment ordered by registration time.
func (r *Repository) List(ctx context.Context) ([]*domain.Equipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []equipmentRecord
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&records).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, records)
}

func (r *Repository) FindByEmployee(ctx context.Context, employeeID domain.EmployeeID) ([]*domain.Equipment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []equipmentRecord
	if err := r.db.WithContext(ctx).
		Where("? = ANY(employee_ids)", employeeID.String()).
		Order("created_at, id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return r.hydrate(ctx, records)
}

func (r *Repository) hydrate(ctx context.Context, records []equipmentRecord) ([]*domain.Equipment, error) {
	if len(records) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		ids = append(ids, rec.ID)
	}
	var rows []borrowingRecord
	if err := r.db.WithContext(ctx).
		Where("equipment_id IN ?", ids).
		Order("equipment_id, position").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	grouped := make(map[string][]borrowingRecord, len(records))
	for _, row := range rows {
		grouped[row.EquipmentID] = append(grouped[row.EquipmentID], row)
	}
	list := make([]*domain.Equipment, 0, len(records))
	for _, rec := range records {
		equipment, err := toDomain(rec, grouped[rec.ID])
		if err != nil {
			return nil, fmt.Errorf("equipment %s: %w", rec.ID, err)
		}
		list = append(list, equipment)
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres equipment repository not configured")
	}
	return nil
}

func toRecords(equipment *domain.Equipment) (equipmentRecord, []borrowingRecord) {
	borrowings := equipment.Borrowings()
	record := equipmentRecord{
		ID:          equipment.ID().String(),
		Name:        equipment.Name().String(),
		Status:      string(equipment.Status()),
		EmployeeIDs: pq.StringArray{},
	}
	rows := make([]borrowingRecord, 0, len(borrowings))
	for i, b := range borrowings {
		rows = append(rows, borrowingRecord{
			ID:          b.ID().String(),
			EquipmentID: record.ID,
			Position:    i,
			EmployeeID:  b.EmployeeID().String(),
			FromDate:    b.Period().From(),
			ToDate:      b.Period().To(),
			Returned:    b.Returned(),
		})
		if !slices.Contains(record.EmployeeIDs, b.EmployeeID().String()) {
			record.EmployeeIDs = append(record.EmployeeIDs, b.EmployeeID().String())
		}
	}
	return record, rows
}

func toDomain(rec equipmentRecord, rows []borrowingRecord) (*domain.Equipment, error) {
	id, err := domain.ParseEquipmentID(&rec.ID)
	if err != nil {
		return nil, err
	}
	name, err := domain.ParseEquipmentName(&rec.Name)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(rec.Status)
	if err != nil {
		return nil, err
	}
	borrowings := make([]domain.Borrowing, 0, len(rows))
	for _, row := range rows {
		b, err := rowToBorrowing(row)
		if err != nil {
			return nil, err
		}
		borrowings = append(borrowings, b)
	}
	return domain.Reconstitute(id, name, status, borrowings)
}

func rowToBorrowing(row borrowingRecord) (domain.Borrowing, error) {
	id, err := domain.ParseBorrowingID(&row.ID)
	if err != nil {
		return domain.Borrowing{}, err
	}
	employeeID, err := domain.ParseEmployeeID(&row.EmployeeID)
	if err != nil {
		return domain.Borrowing{}, err
	}
	equipmentID, err := domain.ParseEquipmentID(&row.EquipmentID)
	if err != nil {
		return domain.Borrowing{}, err
	}
	period, err := domain.RestorePeriod(row.FromDate, row.ToDate)
	if err != nil {
		return domain.Borrowing{}, err
	}
	return domain.RestoreBorrowing(id, employeeID, equipmentID, period, row.Returned), nil
}
