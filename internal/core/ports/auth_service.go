package ports

import (
	"context"
	"time"

	"github.com/jobboard/jobboard-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at sign-up.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Company  string
}

// TokenClaims is the verified content of an access token.
type TokenClaims struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// AuthService covers identity: registration, login, token verification and revocation.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
	// Authenticate verifies a bearer token and resolves it to a live user.
	Authenticate(ctx context.Context, token string) (*domain.User, *TokenClaims, error)
	Logout(ctx context.Context, claims *TokenClaims) error
}
