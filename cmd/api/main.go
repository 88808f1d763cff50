// Copyright (c) 2026 marsAI. All rights reserved.

// Command api is the entry point for the marsAI festival HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Connect to object storage and the task queue.
//  6. Wire domain services and HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marsai/festival/internal/admin"
	"github.com/marsai/festival/internal/api"
	"github.com/marsai/festival/internal/event"
	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/gallery"
	"github.com/marsai/festival/internal/jury"
	"github.com/marsai/festival/internal/platform/config"
	"github.com/marsai/festival/internal/platform/constants"
	"github.com/marsai/festival/internal/platform/migration"
	pgstore "github.com/marsai/festival/internal/platform/postgres"
	"github.com/marsai/festival/internal/platform/queue"
	redisstore "github.com/marsai/festival/internal/platform/redis"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/internal/platform/storage"
	"github.com/marsai/festival/internal/reference"
	"github.com/marsai/festival/internal/submission"
	"github.com/marsai/festival/internal/users/account"
	"github.com/marsai/festival/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	log := newLogger(slog.LevelInfo)
	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("default_locale", cfg.DefaultLocale),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	// ── 3. PostgreSQL & Redis ─────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, constants.AppName, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 5. Object Storage & Queue ─────────────────────────────────────────
	media, err := storage.New(storage.Options{
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		UseSSL:    cfg.S3UseSSL,
	})
	must(log, err, "create storage client")
	must(log, media.EnsureBucket(startupCtx, log), "ensure media bucket")

	queueOpt, err := queue.Opt(cfg.RedisURL)
	must(log, err, "parse queue connection")
	tasks := queue.NewClient(queueOpt, log)
	defer func() {
		if cerr := tasks.Close(); cerr != nil {
			log.Error("queue close error", slog.Any("error", cerr))
		}
	}()

	// ── 6. Auth ───────────────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		CheckStorage:  media.Ping,
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	festivalService := festival.NewService(festival.NewPostgresRepository(pool), log, time.Now)

	authService := auth.NewService(
		auth.NewUserRepository(pool),
		auth.NewSessionRepository(pool),
		auth.NewResetTokenRepository(rdb),
		jwtSvc,
		log,
		time.Now,
	)
	accountService := account.NewService(
		account.NewAccountRepository(pool),
		account.NewSessionRepository(pool),
		festivalService,
		log,
		time.Now,
	)

	submissionService := submission.NewService(submission.Dependencies{
		Drafts:    submission.NewRedisDraftStore(rdb, cfg.DraftTTL),
		Repo:      submission.NewPostgresRepository(pool),
		Media:     media,
		Festivals: festivalService,
		Handoff:   tasks,
		Logger:    log,
		Now:       time.Now,
	})

	galleryService := gallery.NewService(
		gallery.NewPostgresRepository(pool),
		gallery.NewRedisCache(rdb, cfg.GalleryCacheTTL),
		festivalService,
		log,
		time.Now,
	)
	jurySvc := jury.NewService(jury.NewPostgresRepository(pool), festivalService, log, time.Now)
	adminService := admin.NewService(admin.NewPostgresRepository(pool), galleryService, festivalService, log)
	eventService := event.NewService(event.NewPostgresRepository(pool), festivalService, log, time.Now)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, jwtSvc, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       auth.NewHandler(authService, cfg.IsDevelopment()),
		Account:    account.NewHandler(accountService),
		Festival:   festival.NewHandler(festivalService),
		Submission: submission.NewHandler(submissionService),
		Gallery:    gallery.NewHandler(galleryService),
		Jury:       jury.NewHandler(jurySvc),
		Admin:      admin.NewHandler(adminService),
		Event:      event.NewHandler(eventService),
		Reference:  reference.NewHandler(),
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	log.Info("shutting down server", slog.Duration("timeout", constants.ShutdownTimeout))

	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger tagged with the service name and installs
// it as the slog default.
func newLogger(level slog.Level) *slog.Logger {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName))
	slog.SetDefault(log)
	return log
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
