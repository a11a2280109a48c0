package lendingserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	equipmenthttpmapper "github.com/Apurer/equipment-lending-api/internal/domains/equipment/adapters/http/mapper"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/application"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/domain"
	"github.com/Apurer/equipment-lending-api/internal/domains/equipment/ports"
	apierrors "github.com/Apurer/equipment-lending-api/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("",
	mapDateFormatError,
	mapPeriodOverlapError,
	mapServiceError,
)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	responder.RespondError(c, err)
}

func mapDateFormatError(err error) (apierrors.ProblemDetail, bool) {
	var dateErr *equipmenthttpmapper.DateFormatError
	if !errors.As(err, &dateErr) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.NewValidationProblem(map[string]string{dateErr.Field: dateErr.Error()}).
		WithDetail(dateErr.Error()), true
}

func mapPeriodOverlapError(err error) (apierrors.ProblemDetail, bool) {
	var overlap *domain.PeriodOverlapError
	if !errors.As(err, &overlap) {
		return apierrors.ProblemDetail{}, false
	}
	return apierrors.NewPeriodOverlapProblem(overlap.Existing.ID().String(), overlap.New.ID().String(), overlap.Error()), true
}

func mapServiceError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, ports.ErrNotFound):
		var missing *domain.BorrowingNotFoundError
		if errors.As(err, &missing) {
			return apierrors.NewNotFoundProblem("borrowing", missing.BorrowingID.String()), true
		}
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, application.ErrConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
