package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	EmployeeIDPrefix  = "emp-"
	EquipmentIDPrefix = "eq-"
	BorrowingIDPrefix = "brw-"
)

var (
	ErrEmployeeID    = errors.New("invalid employee id")
	ErrEquipmentID   = errors.New("invalid equipment id")
	ErrBorrowingID   = errors.New("invalid borrowing id")
	ErrEquipmentName = errors.New("invalid equipment name")
	ErrEmployeeName  = errors.New("invalid employee name")

	ErrEmployeeIDNull    = fmt.Errorf("%w: employee id is required", ErrEmployeeID)
	ErrEquipmentIDNull   = fmt.Errorf("%w: equipment id is required", ErrEquipmentID)
	ErrBorrowingIDNull   = fmt.Errorf("%w: borrowing id is required", ErrBorrowingID)
	ErrEquipmentNameNull = fmt.Errorf("%w: equipment name is required", ErrEquipmentName)
	ErrEmployeeNameNull  = fmt.Errorf("%w: employee name is required", ErrEmployeeName)
)

// InvalidFormatError reports an identifier without its mandatory prefix.
type InvalidFormatError struct {
	family error
	Prefix string
	Value  string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("%s: %q must start with %q", e.family, e.Value, e.Prefix)
}

func (e *InvalidFormatError) Unwrap() error { return e.family }

// EmptyError reports a name supplied as an empty string.
type EmptyError struct {
	family error
	Value  string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("%s: value must not be empty", e.family)
}

func (e *EmptyError) Unwrap() error { return e.family }

// EmployeeID identifies the employee borrowing equipment.
type EmployeeID struct{ value string }

// EquipmentID identifies an equipment aggregate.
type EquipmentID struct{ value string }

// BorrowingID identifies a borrowing inside its equipment.
type BorrowingID struct{ value string }

// EquipmentName is the display name of an equipment item.
type EquipmentName struct{ value string }

// EmployeeName is the display name of an employee.
type EmployeeName struct{ value string }

func (id EmployeeID) String() string { return id.value }
func (id EquipmentID) String() string { return id.value }
func (id BorrowingID) String() string { return id.value }
func (n EquipmentName) String() string { return n.value }
func (n EmployeeName) String() string { return n.value }
func (id EmployeeID) IsZero() bool { return id.value == "" }
func (id EquipmentID) IsZero() bool { return id.value == "" }
func (id BorrowingID) IsZero() bool { return id.value == "" }

// ParseEmployeeID validates an "emp-" prefixed identifier.
func ParseEmployeeID(raw *string) (EmployeeID, error) {
	value, err := parsePrefixed(raw, EmployeeIDPrefix, ErrEmployeeID, ErrEmployeeIDNull)
	if err != nil {
		return EmployeeID{}, err
	}
	return EmployeeID{value: value}, nil
}

// ParseEquipmentID validates an "eq-" prefixed identifier.
func ParseEquipmentID(raw *string) (EquipmentID, error) {
	value, err := parsePrefixed(raw, EquipmentIDPrefix, ErrEquipmentID, ErrEquipmentIDNull)
	if err != nil {
		return EquipmentID{}, err
	}
	return EquipmentID{value: value}, nil
}

// ParseBorrowingID validates a "brw-" prefixed identifier.
func ParseBorrowingID(raw *string) (BorrowingID, error) {
	value, err := parsePrefixed(raw, BorrowingIDPrefix, ErrBorrowingID, ErrBorrowingIDNull)
	if err != nil {
		return BorrowingID{}, err
	}
	return BorrowingID{value: value}, nil
}

// ParseEquipmentName rejects missing and empty names.
func ParseEquipmentName(raw *string) (EquipmentName, error) {
	value, err := parseNonEmpty(raw, ErrEquipmentName, ErrEquipmentNameNull)
	if err != nil {
		return EquipmentName{}, err
	}
	return EquipmentName{value: value}, nil
}

// ParseEmployeeName rejects missing and empty names.
func ParseEmployeeName(raw *string) (EmployeeName, error) {
	value, err := parseNonEmpty(raw, ErrEmployeeName, ErrEmployeeNameNull)
	if err != nil {
		return EmployeeName{}, err
	}
	return EmployeeName{value: value}, nil
}

func parsePrefixed(raw *string, prefix string, family, null error) (string, error) {
	if raw == nil {
		return "", null
	}
	if !strings.HasPrefix(*raw, prefix) {
		return "", &InvalidFormatError{family: family, Prefix: prefix, Value: *raw}
	}
	return *raw, nil
}

func parseNonEmpty(raw *string, family, null error) (string, error) {
	if raw == nil {
		return "", null
	}
	if *raw == "" {
		return "", &EmptyError{family: family, Value: *raw}
	}
	return *raw, nil
}
