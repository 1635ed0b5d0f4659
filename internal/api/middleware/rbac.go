package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

// RBAC admits the request only when gate passes for the authenticated actor.
// It must run after Auth. Failures render as 403.
func RBAC(gate domain.Gate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(ContextActor).(domain.Actor)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !gate(actor) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
