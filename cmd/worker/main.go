// Copyright (c) 2026 marsAI. All rights reserved.

// Command worker consumes the festival task queue.
//
// It processes submission:handoff tasks: each received submission is marked
// acknowledged and, when ACCEPTANCE_WEBHOOK_URL is set, forwarded to the
// external acceptance service. Failed webhooks are retried by asynq.
//
// Every HANDOFF_SWEEP_INTERVAL a scheduled submission:handoff_sweep task
// re-enqueues the handoff of submissions that were never acknowledged.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/marsai/festival/internal/platform/config"
	"github.com/marsai/festival/internal/platform/constants"
	pgstore "github.com/marsai/festival/internal/platform/postgres"
	"github.com/marsai/festival/internal/platform/queue"
	"github.com/marsai/festival/internal/submission"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With(slog.String("app", constants.WorkerName))
	slog.SetDefault(log)

	cfg, err := config.Load()
	must(log, err, "load configuration")

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.Int("concurrency", cfg.WorkerConcurrency),
		slog.Bool("webhook_enabled", cfg.AcceptanceWebhookURL != ""),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer startupCancel()

	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer pool.Close()

	queueOpt, err := queue.Opt(cfg.RedisURL)
	must(log, err, "parse queue connection")

	tasks := queue.NewClient(queueOpt, log)
	defer func() {
		if cerr := tasks.Close(); cerr != nil {
			log.Error("queue close error", slog.Any("error", cerr))
		}
	}()

	repo := submission.NewPostgresRepository(pool)

	mux := asynq.NewServeMux()
	submission.NewProcessor(repo, cfg.AcceptanceWebhookURL, log).Register(mux)
	submission.NewSweeper(repo, tasks, log, time.Now).Register(mux)

	server := queue.NewServer(queueOpt, cfg.WorkerConcurrency, log)
	must(log, server.Start(mux), "start worker")

	scheduler, err := queue.NewScheduler(queueOpt, cfg.HandoffSweepInterval, log)
	must(log, err, "create scheduler")
	must(log, scheduler.Start(), "start scheduler")
	log.Info("worker started", slog.Duration("sweep_interval", cfg.HandoffSweepInterval))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	// Shutdown waits for in-flight tasks up to asynq's ShutdownTimeout.
	server.Shutdown()
	log.Info("worker stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
