package lendingserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	equipmenthttpmapper "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/http/mapper"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
)

// EmployeeAPI exposes read models keyed by employee.
type EmployeeAPI struct {
	service ports.Service
}

func NewEmployeeAPI(service ports.Service) EmployeeAPI {
	return EmployeeAPI{service: service}
}

// Get /v1/employees/:employeeId/borrowings
// List the employee's borrowings across all equipment
func (api *EmployeeAPI) ListBorrowings(c *gin.Context) {
	list, err := api.service.ListBorrowingsByEmployee(c.Request.Context(), c.Param("employeeId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, equipmenthttpmapper.FromBorrowingDTOs(list))
}
