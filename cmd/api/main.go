package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	_ "github.com/jobboard/jobboard-api/docs"
	"github.com/jobboard/jobboard-api/internal/api"
	"github.com/jobboard/jobboard-api/internal/core/service"
	"github.com/jobboard/jobboard-api/internal/infrastructure/config"
	mongorepo "github.com/jobboard/jobboard-api/internal/infrastructure/db/mongo"
	redisrepo "github.com/jobboard/jobboard-api/internal/infrastructure/db/redis"
	"github.com/jobboard/jobboard-api/internal/infrastructure/payment"
	"github.com/jobboard/jobboard-api/internal/infrastructure/queue"
	"github.com/jobboard/jobboard-api/internal/infrastructure/storage"
	"github.com/jobboard/jobboard-api/pkg/logger"
)

// @title        Job Board API
// @version      1.0
// @description  Job postings, applications with CV upload, application fee payments and invoices.
// @BasePath     /
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	appLogger := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "job-board-api",
		Env:     cfg.Env,
	})

	// --- MongoDB ---
	mongoClient, db, err := mongorepo.Connect(ctx, mongorepo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Warn().Err(err).Msg("mongodb disconnect")
		}
	}()
	if err := mongorepo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	appLogger.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connection established")

	// --- Redis ---
	rdb, err := redisrepo.Connect(ctx, redisrepo.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer rdb.Close()
	appLogger.Info().Str("addr", cfg.Redis.Addr).Msg("redis connection established")

	// --- CV storage ---
	cvStorage, err := storage.New(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.UploadDir,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.S3Bucket,
		Region:    cfg.Storage.S3Region,
		Endpoint:  cfg.Storage.S3Endpoint,
		AccessKey: cfg.Storage.S3AccessKey,
		SecretKey: cfg.Storage.S3SecretKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialise storage: %w", err)
	}
	uploadDir := ""
	if local, ok := cvStorage.(*storage.LocalStorage); ok {
		uploadDir = local.BasePath()
	}

	// --- Repositories and services ---
	users := mongorepo.NewUserRepository(db)
	jobs := mongorepo.NewJobRepository(db)
	apps := mongorepo.NewApplicationRepository(db)
	// Payment audits are written by background workers and flushed on exit.
	payments := queue.NewAttemptDispatcher(0, mongorepo.NewPaymentRepository(db), component(appLogger, "payment_audit"))
	payments.Start(context.Background())
	defer payments.Close()
	blacklist := redisrepo.NewTokenBlacklist(rdb)
	processor := payment.NewMockProcessor(cfg.Payment.Delay, component(appLogger, "payment_processor"))

	services := api.Services{
		Auth:         service.NewAuthService(users, blacklist, cfg.JWTSecret, cfg.JWTExpire, component(appLogger, "auth")),
		Jobs:         service.NewJobService(jobs, users, component(appLogger, "jobs")),
		Applications: service.NewApplicationService(apps, jobs, cvStorage, component(appLogger, "applications")),
		Payments:     service.NewPaymentService(users, apps, jobs, payments, processor, component(appLogger, "payments")),
		Admin:        service.NewAdminService(users, jobs, apps, component(appLogger, "admin")),
		Analytics:    service.NewAnalyticsService(mongorepo.NewAnalyticsRepository(db)),
	}

	e := api.NewRouter(services, api.Options{
		Logger:         appLogger,
		Mongo:          db,
		Redis:          rdb,
		UploadDir:      uploadDir,
		UploadURL:      cfg.Storage.BaseURL,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
		AuthRateLimit:  cfg.RateLimitRPS,
	})

	// --- HTTP server ---
	addr := ":" + cfg.Port
	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info().Str("address", addr).Str("storage", cfg.Storage.Type).Msg("starting HTTP server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	appLogger.Info().Msg("server shutdown complete")
	return nil
}

func component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
