package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/jobboard-api/internal/api/middleware"
	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.User, error)
	profileFn  func(ctx context.Context, id string) (*domain.User, error)
	logoutFn   func(ctx context.Context, claims *ports.TokenClaims) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Profile(ctx context.Context, id string) (*domain.User, error) {
	return s.profileFn(ctx, id)
}

func (s *stubAuthService) Authenticate(context.Context, string) (*domain.User, *ports.TokenClaims, error) {
	return nil, nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) Logout(ctx context.Context, claims *ports.TokenClaims) error {
	return s.logoutFn(ctx, claims)
}

type stubJobService struct {
	ports.JobService
	createFn func(ctx context.Context, actor domain.Actor, in ports.JobInput) (*domain.Job, error)
	getFn    func(ctx context.Context, id string) (*domain.Job, error)
	deleteFn func(ctx context.Context, actor domain.Actor, id string) error
}

func (s *stubJobService) Create(ctx context.Context, actor domain.Actor, in ports.JobInput) (*domain.Job, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubJobService) Get(ctx context.Context, id string) (*domain.Job, error) {
	return s.getFn(ctx, id)
}

func (s *stubJobService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	return s.deleteFn(ctx, actor, id)
}

type stubApplicationService struct {
	ports.ApplicationService
	submitFn       func(ctx context.Context, actor domain.Actor, jobID string, cv ports.CVUpload) (*domain.Application, error)
	updateStatusFn func(ctx context.Context, actor domain.Actor, id string, status domain.ApplicationStatus) (*domain.Application, error)
}

func (s *stubApplicationService) Submit(ctx context.Context, actor domain.Actor, jobID string, cv ports.CVUpload) (*domain.Application, error) {
	return s.submitFn(ctx, actor, jobID, cv)
}

func (s *stubApplicationService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	return s.updateStatusFn(ctx, actor, id, status)
}

type stubPaymentService struct {
	processFn func(ctx context.Context, actor domain.Actor, applicationID, method string) (*domain.Invoice, error)
	invoiceFn func(ctx context.Context, actor domain.Actor, id string) (*domain.Invoice, error)
}

func (s *stubPaymentService) Process(ctx context.Context, actor domain.Actor, applicationID, method string) (*domain.Invoice, error) {
	return s.processFn(ctx, actor, applicationID, method)
}

func (s *stubPaymentService) GetInvoice(ctx context.Context, actor domain.Actor, id string) (*domain.Invoice, error) {
	return s.invoiceFn(ctx, actor, id)
}

// newContext builds an echo context with the validator registered and, when
// user is non-nil, the values the Auth middleware would inject.
func newContext(method, target string, body io.Reader, contentType string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.ContextUser, user)
		c.Set(middleware.ContextActor, domain.ActorFor(user))
		c.Set(middleware.ContextClaims, &ports.TokenClaims{UserID: user.ID, TokenID: "jti-" + user.ID})
	}
	return c, rec
}

func jsonContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	return newContext(method, target, strings.NewReader(body), echo.MIMEApplicationJSON, user)
}
