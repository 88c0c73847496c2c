package handlers

import (
	"errors"
	"net/http"

	"github.com/decidly/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// httpError maps a service error to the HTTP status for it. Validation,
// conflict, not-found and forbidden messages describe caller-fixable
// conditions and pass through verbatim; anything else is a store failure and
// only a generic message leaves the boundary.
func httpError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, services.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
