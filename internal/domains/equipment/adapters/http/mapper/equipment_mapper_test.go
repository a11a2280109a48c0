package mapper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/Apurer/equipment-lending-api/internal/domains/equipment/application/types"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
)

func strPtr(s string) *string { return &s }

func TestToBorrowCommandParsesDates(t *testing.T) {
	cmd, err := ToBorrowCommand("eq-001", BorrowEquipmentRequest{
		EmployeeID: strPtr("emp-001"),
		From:       strPtr("2025-10-20"),
		To:         strPtr(" 2025-10-25 "),
	})
	require.NoError(t, err)
	assert.Equal(t, "eq-001", *cmd.EquipmentID)
	assert.Equal(t, "emp-001", *cmd.EmployeeID)
	assert.Equal(t, domain.Date(2025, 10, 20), *cmd.From)
	assert.Equal(t, domain.Date(2025, 10, 25), *cmd.To)
}

func TestToBorrowCommandKeepsMissingDatesNil(t *testing.T) {
	cmd, err := ToBorrowCommand("eq-001", BorrowEquipmentRequest{From: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, cmd.From)
	assert.Nil(t, cmd.To)
	assert.Nil(t, cmd.EmployeeID)
}

func TestToBorrowCommandRejectsMalformedDate(t *testing.T) {
	_, err := ToBorrowCommand("eq-001", BorrowEquipmentRequest{From: strPtr("2025-10-20"), To: strPtr("25/10/2025")})
	var dateErr *DateFormatError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "to", dateErr.Field)
}

func TestToRegisterCommandTrimsIdempotencyKey(t *testing.T) {
	cmd := ToRegisterCommand(RegisterEquipmentRequest{Name: strPtr("Laptop")}, "  key-1 ")
	assert.Equal(t, "key-1", cmd.IdempotencyKey)
	assert.Equal(t, "Laptop", *cmd.Name)
}

func TestFromEquipmentDTOFormatsDays(t *testing.T) {
	dto := &types.EquipmentDTO{
		ID:     "eq-001",
		Name:   "Projector",
		Status: "BORROWED",
		Borrowings: []types.BorrowingDTO{{
			ID: "brw-001", EmployeeID: "emp-001", EquipmentID: "eq-001",
			From: domain.Date(2025, 10, 20), To: domain.Date(2025, 10, 22),
		}},
	}
	out := FromEquipmentDTO(dto)
	require.Len(t, out.Borrowings, 1)
	assert.Equal(t, "2025-10-20", out.Borrowings[0].From)
	assert.Equal(t, "2025-10-22", out.Borrowings[0].To)

	empty := FromEquipmentDTO(&types.EquipmentDTO{ID: "eq-002"})
	assert.NotNil(t, empty.Borrowings)
}
