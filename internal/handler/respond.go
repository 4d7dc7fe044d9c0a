// Package handler contains the echo request handlers for the shop
// API. Handlers depend on small consumer-side store interfaces so the
// SQL repositories can be swapped for fakes in tests.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/telegram-shop-backend/internal/repository"
)

// storeErr maps repository failures onto the uniform {error} envelope:
// validation -> 400, missing entity -> 404, anything else -> 500 with
// the message passed through (this is an internal tool).
func storeErr(c echo.Context, err error) error {
	switch {
	case repository.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}
