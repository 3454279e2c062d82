package api

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/sanoy-si/FurnitureStore/internal/service"
)

// jsonError maps service errors onto the response envelope. Validation
// failures happen before any mutation, so 4xx responses never leave
// partial state behind; anything unrecognized is a store failure that was
// already rolled back.
func jsonError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(404, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrValidation):
		return c.JSON(400, map[string]string{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateItem), errors.Is(err, service.ErrDuplicateKey):
		return c.JSON(409, map[string]string{"error": err.Error()})
	default:
		return c.JSON(500, map[string]string{"error": "internal server error"})
	}
}
