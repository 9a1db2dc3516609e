package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// RBAC lets the request through when the role set by Auth is one of roles.
// Anything else is domain.ErrForbidden, rendered by the error handler in the
// caller's language.
func RBAC(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := c.Get(CtxRole).(string); !allowed[role] {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
