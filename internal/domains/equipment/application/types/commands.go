package types

import "time"

// RegisterEquipmentCommand carries the raw registration request. IdempotencyKey is optional.
type RegisterEquipmentCommand struct {
	Name           *string
	IdempotencyKey string
}

// BorrowEquipmentCommand reserves equipment for an employee over whole days.
type BorrowEquipmentCommand struct {
	EquipmentID *string
	EmployeeID  *string
	From        *time.Time
	To          *time.Time
}

type ReturnBorrowingCommand struct {
	EquipmentID *string
	BorrowingID *string
}

type DisposeEquipmentCommand struct {
	EquipmentID *string
}
