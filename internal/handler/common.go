package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/middleware"
)

// getUserID extracts the authenticated user's id stored by the JWT
// middleware.
func getUserID(c echo.Context) (uint64, error) {
	if id, ok := c.Get(middleware.CtxUserID).(uint64); ok {
		return id, nil
	}
	return 0, errors.New("invalid user_id in context")
}

// pathID parses the numeric :id (or named) path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// validationFailed writes the 422 response carrying per-field messages.
// Field maps are the contract for malformed input everywhere in the API.
func validationFailed(c echo.Context, fields map[string]string) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"message": "validation failed",
		"errors":  fields,
	})
}
