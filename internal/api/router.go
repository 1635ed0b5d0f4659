package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/jobboard/jobboard-api/internal/api/handler"
	"github.com/jobboard/jobboard-api/internal/api/middleware"
	"github.com/jobboard/jobboard-api/internal/core/domain"
	"github.com/jobboard/jobboard-api/internal/core/ports"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Auth         ports.AuthService
	Jobs         ports.JobService
	Applications ports.ApplicationService
	Payments     ports.PaymentService
	Admin        ports.AdminService
	Analytics    ports.AnalyticsService
}

// Options configures NewRouter.
type Options struct {
	Logger zerolog.Logger
	// Mongo and Redis back the readiness probe.
	Mongo *mongo.Database
	Redis *redis.Client
	// UploadDir is served under the path of UploadURL when CVs are stored
	// locally. UploadURL may be absolute. Empty UploadDir disables the route.
	UploadDir string
	UploadURL string
	// MaxUploadBytes caps the apply request body.
	MaxUploadBytes int64
	// AuthRateLimit is the sustained requests per second allowed per client
	// on /auth. Zero disables limiting.
	AuthRateLimit float64
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestContext(opts.Logger))
	e.Use(middleware.RequestLogger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "jobboard",
		Registerer: opts.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	jobHandler := handler.NewJobHandler(svc.Jobs, svc.Applications)
	paymentHandler := handler.NewPaymentHandler(svc.Payments)
	adminHandler := handler.NewAdminHandler(svc.Admin)
	analyticsHandler := handler.NewAnalyticsHandler(svc.Analytics)

	authn := middleware.Auth(svc.Auth)
	var authLimit []echo.MiddlewareFunc
	if opts.AuthRateLimit > 0 {
		store := echomiddleware.NewRateLimiterMemoryStore(rate.Limit(opts.AuthRateLimit))
		authLimit = append(authLimit, echomiddleware.RateLimiter(store))
	}
	uploadLimit := echomiddleware.BodyLimit(strconv.FormatInt(opts.MaxUploadBytes, 10) + "B")
	if opts.MaxUploadBytes <= 0 {
		uploadLimit = echomiddleware.BodyLimit("5M")
	}

	// Every API route is reachable at the root and under /api.
	for _, g := range []*echo.Group{e.Group(""), e.Group("/api")} {
		// --- Auth routes ---
		auth := g.Group("/auth")
		auth.POST("/register", authHandler.Register, authLimit...)
		auth.POST("/login", authHandler.Login, authLimit...)
		auth.GET("/profile", authHandler.Profile, authn)
		auth.POST("/logout", authHandler.Logout, authn)

		// --- Jobs and applications ---
		jobs := g.Group("/jobs")
		jobs.GET("", jobHandler.List)
		jobs.POST("", jobHandler.Create, authn, middleware.RBAC(domain.AdminOrEmployee))
		jobs.PUT("/applications/:id", jobHandler.UpdateApplicationStatus, authn, middleware.RBAC(domain.AdminOrEmployee))
		jobs.GET("/:id", jobHandler.Get)
		jobs.PUT("/:id", jobHandler.Update, authn, middleware.RBAC(domain.AdminOrEmployee))
		jobs.DELETE("/:id", jobHandler.Delete, authn, middleware.RBAC(domain.AdminOrEmployee))
		jobs.POST("/:id/apply", jobHandler.Apply, uploadLimit, authn, middleware.RBAC(domain.JobSeekerOnly))
		jobs.GET("/:id/applications", jobHandler.Applications, authn, middleware.RBAC(domain.AdminOrEmployee))

		// --- Payments ---
		payments := g.Group("/payments", authn)
		payments.POST("/process", paymentHandler.Process)
		payments.GET("/invoice/:id", paymentHandler.Invoice)

		// --- Admin ---
		admin := g.Group("/admin", authn, middleware.RBAC(domain.AdminOnly))
		admin.GET("/users", adminHandler.ListUsers)
		admin.GET("/users/:id", adminHandler.GetUser)
		admin.PUT("/users/:id", adminHandler.UpdateUser)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.GET("/jobs", adminHandler.ListJobs)
		admin.GET("/applications", adminHandler.ListApplications)

		// --- Analytics ---
		g.GET("/analytics/applicants/per/job", analyticsHandler.ApplicantsPerJob, authn, middleware.RBAC(domain.AdminOrEmployee))
	}

	// --- Stored CVs ---
	if opts.UploadDir != "" {
		e.Static(uploadRoute(opts.UploadURL), opts.UploadDir)
	}

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	e.GET("/health", healthHandler.Liveness)
	if opts.Mongo != nil && opts.Redis != nil {
		healthDepsHandler := handler.NewHealthDependenciesHandler(opts.Mongo, opts.Redis)
		e.GET("/health/ready", healthDepsHandler.Readiness)
	}

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Job board API is running"})
	})

	return e
}

// uploadRoute returns the route prefix stored CVs are served under: the path
// component of the public base URL, or /uploads when it has none.
func uploadRoute(baseURL string) string {
	const fallback = "/uploads"
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return fallback
	}
	p := strings.TrimRight(u.Path, "/")
	if p == "" {
		return fallback
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
