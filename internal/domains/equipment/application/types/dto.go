package types

import (
	"time"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
)

// EquipmentDTO is the read model handed to adapters.
type EquipmentDTO struct {
	ID         string
	Name       string
	Status     string
	Borrowings []BorrowingDTO
}

type BorrowingDTO struct {
	ID          string
	EmployeeID  string
	EquipmentID string
	From        time.Time
	To          time.Time
	Returned    bool
}

// BorrowEquipmentResult pairs the new borrowing with the equipment snapshot that holds it.
type BorrowEquipmentResult struct {
	Equipment *EquipmentDTO
	Borrowing BorrowingDTO
}

// NewEquipmentDTO flattens an aggregate snapshot.
func NewEquipmentDTO(eq *domain.Equipment) *EquipmentDTO {
	if eq == nil {
		return nil
	}
	borrowings := eq.Borrowings()
	dto := &EquipmentDTO{
		ID:         eq.ID().String(),
		Name:       eq.Name().String(),
		Status:     string(eq.Status()),
		Borrowings: make([]BorrowingDTO, 0, len(borrowings)),
	}
	for _, b := range borrowings {
		dto.Borrowings = append(dto.Borrowings, NewBorrowingDTO(b))
	}
	return dto
}

func NewBorrowingDTO(b domain.Borrowing) BorrowingDTO {
	return BorrowingDTO{
		ID:          b.ID().String(),
		EmployeeID:  b.EmployeeID().String(),
		EquipmentID: b.EquipmentID().String(),
		From:        b.Period().From(),
		To:          b.Period().To(),
		Returned:    b.Returned(),
	}
}
