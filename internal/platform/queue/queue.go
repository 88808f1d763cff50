// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package queue wires the asynq Redis-backed task queue.

The API enqueues one task per accepted submission; cmd/worker consumes them.
Task type names and payloads live here so both sides agree on the wire format.
*/
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	redisstore "github.com/marsai/festival/internal/platform/redis"
)

// # Task Types

const (
	// TypeSubmissionHandoff forwards an accepted submission to the acceptance service.
	TypeSubmissionHandoff = "submission:handoff"

	// TypeHandoffSweep re-enqueues handoffs of submissions never acknowledged.
	TypeHandoffSweep = "submission:handoff_sweep"

	// QueueDefault is the only queue the festival uses.
	QueueDefault = "default"
)

// Handoff task tuning.
const (
	handoffMaxRetry  = 5
	handoffTimeout   = 2 * time.Minute
	handoffRetention = 24 * time.Hour
)

// HandoffPayload is the JSON body of a [TypeSubmissionHandoff] task.
type HandoffPayload struct {
	SubmissionID string `json:"submission_id"`
	FestivalID   string `json:"festival_id"`
}

// NewHandoffTask builds the asynq task for payload. The task ID is derived
// from the submission so a retried enqueue cannot duplicate work.
func NewHandoffTask(payload HandoffPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("queue: marshal handoff payload: %w", err)
	}

	return asynq.NewTask(TypeSubmissionHandoff, body,
		asynq.TaskID("handoff:"+payload.SubmissionID),
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(handoffMaxRetry),
		asynq.Timeout(handoffTimeout),
		asynq.Retention(handoffRetention),
	), nil
}

// NewSweepTask builds the periodic sweep task. A missed sweep is not
// retried: the next tick covers it.
func NewSweepTask(interval time.Duration) *asynq.Task {
	return asynq.NewTask(TypeHandoffSweep, nil,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(0),
		asynq.Timeout(interval),
		asynq.Unique(interval),
	)
}

// ParseHandoff decodes a handoff task payload.
func ParseHandoff(task *asynq.Task) (HandoffPayload, error) {
	var payload HandoffPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("queue: unmarshal handoff payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.SubmissionID == "" {
		return payload, fmt.Errorf("queue: handoff payload without submission id: %w", asynq.SkipRetry)
	}
	return payload, nil
}

// # Connection

// Opt converts a Redis URL into asynq connection options.
func Opt(redisURL string) (asynq.RedisClientOpt, error) {
	options, err := redisstore.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("queue: %w", err)
	}

	return asynq.RedisClientOpt{
		Addr:         options.Addr,
		Username:     options.Username,
		Password:     options.Password,
		DB:           options.DB,
		DialTimeout:  options.DialTimeout,
		ReadTimeout:  options.ReadTimeout,
		WriteTimeout: options.WriteTimeout,
		TLSConfig:    options.TLSConfig,
	}, nil
}

// # Producer

// Client enqueues festival tasks.
type Client struct {
	client *asynq.Client
	logger *slog.Logger
}

// NewClient creates a producer bound to the Redis server in opt.
func NewClient(opt asynq.RedisClientOpt, logger *slog.Logger) *Client {
	return &Client{client: asynq.NewClient(opt), logger: logger}
}

// EnqueueHandoff schedules the handoff of one submission.
// A task that is already queued for the same submission is not an error.
func (client *Client) EnqueueHandoff(ctx context.Context, payload HandoffPayload) error {
	task, err := NewHandoffTask(payload)
	if err != nil {
		return err
	}

	info, err := client.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			client.logger.WarnContext(ctx, "handoff_already_enqueued", slog.String("submission_id", payload.SubmissionID))
			return nil
		}
		return fmt.Errorf("queue: enqueue handoff: %w", err)
	}

	client.logger.InfoContext(ctx, "handoff_enqueued",
		slog.String("submission_id", payload.SubmissionID),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue),
	)
	return nil
}

// Close releases the producer connection.
func (client *Client) Close() error {
	return client.client.Close()
}

// # Consumer

// NewServer builds an asynq server with bounded concurrency, logging through slog.
func NewServer(opt asynq.RedisClientOpt, concurrency int, logger *slog.Logger) *asynq.Server {
	return asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueDefault: 1},
		Logger:      &slogAdapter{logger: logger},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.ErrorContext(ctx, "task_failed",
				slog.String("type", task.Type()),
				slog.Int("retried", retried),
				slog.Int("max_retry", maxRetry),
				slog.Any("error", err),
			)
		}),
	})
}

// NewScheduler builds the scheduler that enqueues [TypeHandoffSweep] every interval.
func NewScheduler(opt asynq.RedisClientOpt, interval time.Duration, logger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Logger:   &slogAdapter{logger: logger},
		Location: time.UTC,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
				logger.Error("sweep_enqueue_failed", slog.Any("error", err))
			}
		},
	})

	if _, err := scheduler.Register("@every "+interval.String(), NewSweepTask(interval)); err != nil {
		return nil, fmt.Errorf("queue: register handoff sweep: %w", err)
	}
	return scheduler, nil
}

// slogAdapter satisfies asynq.Logger.
type slogAdapter struct {
	logger *slog.Logger
}

func (adapter *slogAdapter) Debug(args ...any) { adapter.logger.Debug(fmt.Sprint(args...)) }
func (adapter *slogAdapter) Info(args ...any)  { adapter.logger.Info(fmt.Sprint(args...)) }
func (adapter *slogAdapter) Warn(args ...any)  { adapter.logger.Warn(fmt.Sprint(args...)) }
func (adapter *slogAdapter) Error(args ...any) { adapter.logger.Error(fmt.Sprint(args...)) }
func (adapter *slogAdapter) Fatal(args ...any) {
	adapter.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
