package response

import (
	"errors"
	"net/http"

	domainErrors "github.com/yuzvak/stockdecay-service/internal/domain/errors"
)

type ErrorMapping struct {
	HTTPStatus int
	Status     Status
	Message    string
}

var errorMappings = []struct {
	err     error
	mapping ErrorMapping
}{
	{domainErrors.ErrInvalidQuality, ErrorMapping{
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Invalid item quality",
	}},
	{domainErrors.ErrInvalidItem, ErrorMapping{
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Invalid item",
	}},
	{domainErrors.ErrInvalidDays, ErrorMapping{
		HTTPStatus: http.StatusBadRequest,
		Status:     StatusValidationError,
		Message:    "Invalid number of days",
	}},
	{domainErrors.ErrItemNotFound, ErrorMapping{
		HTTPStatus: http.StatusNotFound,
		Status:     StatusNotFound,
		Message:    "Item not found",
	}},
	{domainErrors.ErrAdvanceInProgress, ErrorMapping{
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Another advance is in progress",
	}},
	{domainErrors.ErrDayAlreadyAdvanced, ErrorMapping{
		HTTPStatus: http.StatusConflict,
		Status:     StatusConflict,
		Message:    "Inventory already advanced today",
	}},
	{domainErrors.ErrTransactionFailed, ErrorMapping{
		HTTPStatus: http.StatusInternalServerError,
		Status:     StatusInternalError,
		Message:    "Transaction failed",
	}},
}

func MapDomainError(err error) (int, *ErrorResponse) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.mapping.HTTPStatus, Error(m.mapping.Status, m.mapping.Message, err.Error())
		}
	}

	return http.StatusInternalServerError, Error(StatusInternalError, "Internal server error")
}

func WriteDomainError(w http.ResponseWriter, err error) {
	statusCode, errorResponse := MapDomainError(err)
	WriteJSON(w, statusCode, errorResponse)
}
