package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBorrowing       = errors.New("borrowing rejected")
	ErrAlreadyReturned = fmt.Errorf("%w: borrowing was already returned", ErrBorrowing)
)

// Borrowing reserves one equipment item for one employee over a period.
type Borrowing struct {
	id          BorrowingID
	employeeID  EmployeeID
	equipmentID EquipmentID
	period      Period
	returned    bool
}

// NewBorrowing builds an unreturned borrowing. Inputs are expected to be validated already.
func NewBorrowing(id BorrowingID, employeeID EmployeeID, equipmentID EquipmentID, period Period) Borrowing {
	return Borrowing{
		id:          id,
		employeeID:  employeeID,
		equipmentID: equipmentID,
		period:      period,
	}
}

// RestoreBorrowing rebuilds a persisted borrowing including its returned flag.
func RestoreBorrowing(id BorrowingID, employeeID EmployeeID, equipmentID EquipmentID, period Period, returned bool) Borrowing {
	b := NewBorrowing(id, employeeID, equipmentID, period)
	b.returned = returned
	return b
}

func (b Borrowing) ID() BorrowingID          { return b.id }
func (b Borrowing) EmployeeID() EmployeeID   { return b.employeeID }
func (b Borrowing) EquipmentID() EquipmentID { return b.equipmentID }
func (b Borrowing) Period() Period           { return b.period }
func (b Borrowing) Returned() bool           { return b.returned }

// MarkAsReturned returns a copy flagged as returned.
func (b Borrowing) MarkAsReturned() (Borrowing, error) {
	if b.returned {
		return b, ErrAlreadyReturned
	}
	b.returned = true
	return b, nil
}

// IsActiveOrFuture reports whether the borrowing still blocks today or a later day.
func (b Borrowing) IsActiveOrFuture(today time.Time) bool {
	return b.period.IsOngoingOrFuture(today)
}

func (b Borrowing) Overlaps(other Borrowing) bool {
	return b.period.Overlaps(other.period)
}

func (b Borrowing) Contains(date time.Time) bool {
	return b.period.Contains(date)
}

// Equal compares identity only.
func (b Borrowing) Equal(other Borrowing) bool {
	return b.id == other.id
}
