package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
)

var (
	// ErrInvalidInput signals the request violated a validation rule.
	ErrInvalidInput = errors.New("invalid equipment input")
	// ErrConflict signals the request is valid but clashes with the current aggregate state.
	ErrConflict = errors.New("equipment state conflict")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrConflict), errors.Is(err, ports.ErrNotFound):
		return err
	case errors.Is(err, domain.ErrPeriod) ||
		errors.Is(err, domain.ErrEmployeeID) ||
		errors.Is(err, domain.ErrEquipmentID) ||
		errors.Is(err, domain.ErrBorrowingID) ||
		errors.Is(err, domain.ErrEquipmentName) ||
		errors.Is(err, domain.ErrEmployeeName):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, domain.ErrBorrowingNotFound):
		return fmt.Errorf("%w: %w", ports.ErrNotFound, err)
	case errors.Is(err, domain.ErrEquipment) ||
		errors.Is(err, domain.ErrBorrowing) ||
		errors.Is(err, ports.ErrIdempotencyConflict):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return err
}
