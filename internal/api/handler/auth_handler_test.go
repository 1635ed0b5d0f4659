package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			if in.Name != "Alice" || in.Role != domain.RoleEmployee || in.Company != "Acme" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "tok", &domain.User{ID: "u1", Name: in.Name, Email: in.Email, Role: in.Role, Company: in.Company}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret","role":"employee","company":"Acme"}`, nil)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "u1" || resp["token"] != "tok" || resp["role"] != "employee" || resp["company"] != "Acme" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["password"]; ok {
		t.Fatalf("password leaked in response")
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			t.Fatalf("service should not be called")
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	cases := map[string]string{
		"missing email":  `{"name":"Bob","password":"secret"}`,
		"short password": `{"name":"Bob","email":"bob@example.com","password":"abc"}`,
		"unknown role":   `{"name":"Bob","email":"bob@example.com","password":"secret","role":"root"}`,
		"malformed":      `{"name":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := jsonContext(http.MethodPost, "/auth/register", body, nil)
			err := handler.Register(c)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Register_UserExists(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
			return "", nil, domain.ErrUserExists
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := jsonContext(http.MethodPost, "/auth/register",
		`{"name":"Bob","email":"bob@example.com","password":"secret"}`, nil)

	if err := handler.Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Login(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if password != "secret" {
				return "", nil, domain.ErrInvalidCredentials
			}
			return "tok", &domain.User{ID: "u1", Email: email, Role: domain.RoleJobSeeker}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"secret"}`, nil)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = jsonContext(http.MethodPost, "/auth/login", `{"email":"a@example.com","password":"wrong"}`, nil)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_ProfileAndLogout(t *testing.T) {
	user := &domain.User{ID: "u1", Name: "Alice", Role: domain.RoleJobSeeker}
	var revoked *ports.TokenClaims
	stub := &stubAuthService{
		profileFn: func(ctx context.Context, id string) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("unexpected id %q", id)
			}
			return user, nil
		},
		logoutFn: func(ctx context.Context, claims *ports.TokenClaims) error {
			revoked = claims
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := jsonContext(http.MethodGet, "/auth/profile", "", user)
	if err := handler.Profile(c); err != nil {
		t.Fatalf("profile error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = jsonContext(http.MethodPost, "/auth/logout", "", user)
	if err := handler.Logout(c); err != nil {
		t.Fatalf("logout error: %v", err)
	}
	if rec.Code != http.StatusOK || revoked == nil || revoked.TokenID != "jti-u1" {
		t.Fatalf("token not revoked: code=%d claims=%+v", rec.Code, revoked)
	}

	c, _ = jsonContext(http.MethodGet, "/auth/profile", "", nil)
	if err := handler.Profile(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without actor, got %v", err)
	}
}
