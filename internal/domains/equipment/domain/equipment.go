package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Status enumerates equipment availability.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusBorrowed  Status = "BORROWED"
	StatusDisposed  Status = "DISPOSED"
)

var (
	ErrEquipment                  = errors.New("equipment operation rejected")
	ErrAlreadyDisposed            = fmt.Errorf("%w: equipment is already disposed", ErrEquipment)
	ErrPeriodOverlap              = fmt.Errorf("%w: period overlaps an existing borrowing", ErrEquipment)
	ErrBorrowingNotFound          = fmt.Errorf("%w: borrowing not found", ErrEquipment)
	ErrCannotDisposeWhileBorrowed = fmt.Errorf("%w: equipment has active or future borrowings", ErrEquipment)
	ErrInvalidStatus              = fmt.Errorf("%w: status is invalid", ErrEquipment)
)

// PeriodOverlapError cites the first existing borrowing that collides with the new one.
type PeriodOverlapError struct {
	Existing Borrowing
	New      Borrowing
}

func (e *PeriodOverlapError) Error() string {
	return fmt.Sprintf("%s: %s %s collides with %s %s", ErrPeriodOverlap,
		e.New.ID(), e.New.Period(), e.Existing.ID(), e.Existing.Period())
}

func (e *PeriodOverlapError) Unwrap() error { return ErrPeriodOverlap }

type BorrowingNotFoundError struct {
	BorrowingID BorrowingID
}

func (e *BorrowingNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrBorrowingNotFound, e.BorrowingID)
}

func (e *BorrowingNotFoundError) Unwrap() error { return ErrBorrowingNotFound }

// Equipment is the aggregate root owning all borrowings of one item.
// Every transition returns a new snapshot and leaves the receiver untouched.
type Equipment struct {
	id         EquipmentID
	name       EquipmentName
	status     Status
	borrowings []Borrowing
}

// NewEquipment registers an available item without borrowings.
func NewEquipment(id EquipmentID, name EquipmentName) *Equipment {
	return &Equipment{id: id, name: name, status: StatusAvailable}
}

// Reconstitute rebuilds persisted state. Status must be known and the
// borrowings must be free of overlaps.
func Reconstitute(id EquipmentID, name EquipmentName, status Status, borrowings []Borrowing) (*Equipment, error) {
	if !isValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	for i, b := range borrowings {
		if existing, ok := firstOverlap(borrowings[:i], b); ok {
			return nil, &PeriodOverlapError{Existing: existing, New: b}
		}
	}
	return &Equipment{id: id, name: name, status: status, borrowings: slices.Clone(borrowings)}, nil
}

func (e *Equipment) ID() EquipmentID     { return e.id }
func (e *Equipment) Name() EquipmentName { return e.name }
func (e *Equipment) Status() Status      { return e.status }
func (e *Equipment) IsDisposed() bool    { return e.status == StatusDisposed }

// Borrowings returns a copy in insertion order.
func (e *Equipment) Borrowings() []Borrowing {
	return slices.Clone(e.borrowings)
}

// BorrowingsOf returns the borrowings held by one employee.
func (e *Equipment) BorrowingsOf(employeeID EmployeeID) []Borrowing {
	var out []Borrowing
	for _, b := range e.borrowings {
		if b.EmployeeID() == employeeID {
			out = append(out, b)
		}
	}
	return out
}

// Borrow appends a borrowing when it collides with none of the existing ones.
func (e *Equipment) Borrow(borrowing Borrowing, today time.Time) (*Equipment, error) {
	if e.IsDisposed() {
		return nil, ErrAlreadyDisposed
	}
	if existing, ok := firstOverlap(e.borrowings, borrowing); ok {
		return nil, &PeriodOverlapError{Existing: existing, New: borrowing}
	}
	next := e.clone()
	next.borrowings = append(next.borrowings, borrowing)
	if borrowing.Contains(today) {
		next.status = StatusBorrowed
	}
	return next, nil
}

// ReturnBorrowing evicts every entry carrying the id and recomputes status for today.
func (e *Equipment) ReturnBorrowing(id BorrowingID, today time.Time) (*Equipment, error) {
	if e.IsDisposed() {
		return nil, ErrAlreadyDisposed
	}
	matches := func(b Borrowing) bool { return b.ID() == id }
	if !slices.ContainsFunc(e.borrowings, matches) {
		return nil, &BorrowingNotFoundError{BorrowingID: id}
	}
	next := e.clone()
	next.borrowings = slices.DeleteFunc(next.borrowings, matches)
	next.status = next.derivedStatus(today)
	return next, nil
}

// Dispose retires the item once no borrowing ends today or later. Borrowings are kept.
func (e *Equipment) Dispose(today time.Time) (*Equipment, error) {
	if e.IsDisposed() {
		return nil, ErrAlreadyDisposed
	}
	for _, b := range e.borrowings {
		if b.IsActiveOrFuture(today) {
			return nil, ErrCannotDisposeWhileBorrowed
		}
	}
	next := e.clone()
	next.status = StatusDisposed
	return next, nil
}

// RefreshStatus recomputes availability for a new day. Disposed items are returned as is.
func (e *Equipment) RefreshStatus(today time.Time) *Equipment {
	if e.IsDisposed() {
		return e
	}
	next := e.clone()
	next.status = next.derivedStatus(today)
	return next
}

func (e *Equipment) derivedStatus(today time.Time) Status {
	for _, b := range e.borrowings {
		if b.Contains(today) {
			return StatusBorrowed
		}
	}
	return StatusAvailable
}

func (e *Equipment) clone() *Equipment {
	return &Equipment{
		id:         e.id,
		name:       e.name,
		status:     e.status,
		borrowings: slices.Clone(e.borrowings),
	}
}

func firstOverlap(existing []Borrowing, candidate Borrowing) (Borrowing, bool) {
	for _, b := range existing {
		if b.Overlaps(candidate) {
			return b, true
		}
	}
	return Borrowing{}, false
}

// ParseStatus accepts one of the known status names.
func ParseStatus(value string) (Status, error) {
	status := Status(value)
	if !isValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusAvailable, StatusBorrowed, StatusDisposed:
		return true
	default:
		return false
	}
}
