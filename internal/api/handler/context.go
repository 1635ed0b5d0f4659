package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/jobboard/jobboard-api/internal/api/middleware"
	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

// ctxActor returns the actor injected by the Auth middleware. Its absence
// means the route was wired without authentication.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := c.Get(middleware.ContextActor).(domain.Actor)
	if !ok || actor.ID == "" {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	return actor, nil
}

func ctxClaims(c echo.Context) *ports.TokenClaims {
	claims, _ := c.Get(middleware.ContextClaims).(*ports.TokenClaims)
	return claims
}

// bindAndValidate decodes the request body into req and runs the registered
// validator. Both failures are validation errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	return c.Validate(req)
}
