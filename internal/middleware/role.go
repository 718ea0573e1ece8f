package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/docfest/festival-management/internal/model"
)

// RequireRole returns a middleware that enforces that the authenticated
// user holds one of the given roles.  It assumes JWTAuth already stored a
// parsed model.Role in the context; a missing or disallowed role aborts the
// request with 403 Forbidden.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(CtxRole).(model.Role)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// AnyAuthenticated is shorthand for routes open to every staff role.
func AnyAuthenticated() echo.MiddlewareFunc {
	return RequireRole(model.AllRoles()...)
}
