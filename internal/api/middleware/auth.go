package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
	"github.com/jobboard/jobboard-api/pkg/logger"
)

// Context keys set by Auth.
const (
	ContextUser   = "user"
	ContextActor  = "actor"
	ContextClaims = "claims"
)

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, *ports.TokenClaims, error)
}

// Auth validates the bearer JWT, rejects revoked tokens and unknown users, and
// injects the user, actor and claims into the echo context.
func Auth(authn Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			req := c.Request()
			user, claims, err := authn.Authenticate(req.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(ContextUser, user)
			c.Set(ContextActor, domain.ActorFor(user))
			c.Set(ContextClaims, claims)

			l := logger.FromContext(req.Context()).With().Str("user_id", user.ID).Logger()
			c.SetRequest(req.WithContext(logger.WithContext(req.Context(), l)))

			return next(c)
		}
	}
}
