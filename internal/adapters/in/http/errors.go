package http

import (
	"errors"
	"net/http"

	"fieldops/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// respondError maps a use-case error onto an HTTP status and body. Fund
// rejections carry their figures so clients can show the shortfall.
func respondError(ctx echo.Context, err error) error {
	var fundErr *errs.FundInsufficientError
	if errors.As(err, &fundErr) {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:        http.StatusBadRequest,
			Message:     fundErr.Error(),
			Requested:   &fundErr.Requested,
			CurrentFund: &fundErr.CurrentFund,
			MinimumFund: &fundErr.MinimumFund,
		})
	}

	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, Error{Code: status, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
