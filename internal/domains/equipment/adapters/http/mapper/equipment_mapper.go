package mapper

import (
	"fmt"
	"strings"
	"time"

	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
)

// RegisterEquipmentRequest captures the registration payload while preserving field presence.
type RegisterEquipmentRequest struct {
	Name *string `json:"name"`
}

// BorrowEquipmentRequest carries calendar days as YYYY-MM-DD strings.
type BorrowEquipmentRequest struct {
	EmployeeID *string `json:"employeeId"`
	From       *string `json:"from"`
	To         *string `json:"to"`
}

// Equipment is the HTTP representation of an equipment item.
type Equipment struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Status     string      `json:"status"`
	Borrowings []Borrowing `json:"borrowings"`
}

// Borrowing is the HTTP representation of a reservation.
type Borrowing struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	EquipmentID string `json:"equipmentId"`
	From        string `json:"from"`
	To          string `json:"to"`
	Returned    bool   `json:"returned"`
}

// BorrowEquipmentResponse is returned when a borrowing is created.
type BorrowEquipmentResponse struct {
	Borrowing Borrowing `json:"borrowing"`
	Equipment Equipment `json:"equipment"`
}

// DateFormatError reports a date field that is not a YYYY-MM-DD calendar day.
type DateFormatError struct {
	Field string
	Value string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("%s must be a YYYY-MM-DD date, got %q", e.Field, e.Value)
}

// ToRegisterCommand maps the payload and the Idempotency-Key header.
func ToRegisterCommand(req RegisterEquipmentRequest, idempotencyKey string) types.RegisterEquipmentCommand {
	return types.RegisterEquipmentCommand{Name: req.Name, IdempotencyKey: strings.TrimSpace(idempotencyKey)}
}

// ToBorrowCommand parses dates. Missing dates stay nil so the domain reports them.
func ToBorrowCommand(equipmentID string, req BorrowEquipmentRequest) (types.BorrowEquipmentCommand, error) {
	from, err := parseOptionalDate("from", req.From)
	if err != nil {
		return types.BorrowEquipmentCommand{}, err
	}
	to, err := parseOptionalDate("to", req.To)
	if err != nil {
		return types.BorrowEquipmentCommand{}, err
	}
	return types.BorrowEquipmentCommand{
		EquipmentID: &equipmentID,
		EmployeeID:  req.EmployeeID,
		From:        from,
		To:          to,
	}, nil
}

func parseOptionalDate(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		return nil, &DateFormatError{Field: field, Value: *raw}
	}
	return &t, nil
}

func FromEquipmentDTO(dto *types.EquipmentDTO) Equipment {
	if dto == nil {
		return Equipment{Borrowings: []Borrowing{}}
	}
	return Equipment{
		ID:         dto.ID,
		Name:       dto.Name,
		Status:     dto.Status,
		Borrowings: FromBorrowingDTOs(dto.Borrowings),
	}
}

func FromEquipmentDTOList(list []*types.EquipmentDTO) []Equipment {
	out := make([]Equipment, 0, len(list))
	for _, dto := range list {
		out = append(out, FromEquipmentDTO(dto))
	}
	return out
}

func FromBorrowingDTO(dto types.BorrowingDTO) Borrowing {
	return Borrowing{
		ID:          dto.ID,
		EmployeeID:  dto.EmployeeID,
		EquipmentID: dto.EquipmentID,
		From:        formatDate(dto.From),
		To:          formatDate(dto.To),
		Returned:    dto.Returned,
	}
}

func FromBorrowingDTOs(list []types.BorrowingDTO) []Borrowing {
	out := make([]Borrowing, 0, len(list))
	for _, dto := range list {
		out = append(out, FromBorrowingDTO(dto))
	}
	return out
}

func FromBorrowResult(result *types.BorrowEquipmentResult) BorrowEquipmentResponse {
	if result == nil {
		return BorrowEquipmentResponse{Equipment: FromEquipmentDTO(nil)}
	}
	return BorrowEquipmentResponse{
		Borrowing: FromBorrowingDTO(result.Borrowing),
		Equipment: FromEquipmentDTO(result.Equipment),
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
