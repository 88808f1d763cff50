// Copyright (c) 2026 marsAI. All rights reserved.

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/marsai/festival/internal/platform/respond"
)

// readinessTimeout bounds each dependency check of /ready.
const readinessTimeout = 2 * time.Second

// HealthDependencies holds the injectable dependency checkers for the /ready endpoint.
// A nil checker is skipped.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func(ctx context.Context) error

	// CheckCache pings the Redis client backing drafts, caches and the queue.
	CheckCache func(ctx context.Context) error

	// CheckStorage verifies the media bucket is reachable.
	CheckStorage func(ctx context.Context) error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers creates the /health and /ready http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health (Liveness probe).
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// readiness handles GET /ready (Readiness probe).
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	checks := []struct {
		name  string
		check func(ctx context.Context) error
	}{
		{"postgres", handler.dependencies.CheckDatabase},
		{"redis", handler.dependencies.CheckCache},
		{"storage", handler.dependencies.CheckStorage},
	}

	results := make([]checkResult, 0, len(checks))
	isSystemReady := true

	for _, dependency := range checks {
		if dependency.check == nil {
			continue
		}

		result := checkResult{Name: dependency.name, IsOK: true}
		if err := handler.run(request.Context(), dependency.check); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			isSystemReady = false
			handler.logger.Error("readiness_check_failed", slog.String("dependency", dependency.name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	body := map[string]any{
		"status": "ready",
		"checks": results,
	}

	status := http.StatusOK
	if !isSystemReady {
		body["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}

	respond.JSON(writer, status, respond.SuccessEnvelope{Data: body})
}

func (handler *healthHandler) run(parent context.Context, check func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, readinessTimeout)
	defer cancel()
	return check(ctx)
}
