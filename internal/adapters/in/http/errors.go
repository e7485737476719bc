package http

import (
	"errors"
	"net/http"

	"logistics/internal/core/domain/model/network"
	"logistics/internal/core/domain/model/order"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// domainError translates an application error into the HTTP envelope.
// Capacity and concurrency conflicts come back as 409 so callers can
// retry; the 409 message carries the remaining headroom when a capacity
// guard rejected the write.
func domainError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, order.ErrInvalidTransition):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, network.ErrCapacityExceeded):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, ports.ErrDuplicateSellerOrderID):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
		message = err.Error()
	}

	return ctx.JSON(status, Error{Code: status, Message: message})
}

// badRequest answers malformed bodies and invalid command arguments.
func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}
