// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/queue"
)

// webhookTimeout bounds one call to the acceptance service.
const webhookTimeout = 30 * time.Second

// Sweep tuning. Submissions younger than sweepGrace are left to the
// enqueue done by Submit.
const (
	sweepGrace = 10 * time.Minute
	sweepBatch = 200
)

// # Handoff Worker

// Processor consumes [queue.TypeSubmissionHandoff] tasks: it forwards the
// submission to the acceptance service, when one is configured, and marks
// it acknowledged.
type Processor struct {
	repo       Repository
	webhookURL string
	client     *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewProcessor builds a handoff processor. An empty webhookURL only
// acknowledges submissions.
func NewProcessor(repo Repository, webhookURL string, logger *slog.Logger) *Processor {
	return &Processor{
		repo:       repo,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: webhookTimeout},
		logger:     logger,
		now:        time.Now,
	}
}

// Register binds the processor to its task type.
func (processor *Processor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeSubmissionHandoff, processor.HandleHandoff)
}

/*
HandleHandoff processes one handoff task.

Description: Missing submissions and malformed payloads are permanent
failures and skip retries. Webhook failures are retried by asynq.
An already acknowledged submission is not forwarded again.
*/
func (processor *Processor) HandleHandoff(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseHandoff(task)
	if err != nil {
		return err
	}

	logger := processor.logger.With(slog.String("submission_id", payload.SubmissionID))

	submission, err := processor.repo.FindByID(ctx, payload.SubmissionID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			logger.WarnContext(ctx, "handoff_submission_missing")
			return fmt.Errorf("submission %s: %w", payload.SubmissionID, asynq.SkipRetry)
		}
		return err
	}

	if submission.AcknowledgedAt != nil {
		logger.InfoContext(ctx, "handoff_already_acknowledged")
		return nil
	}

	if processor.webhookURL != "" {
		if err := processor.forward(ctx, submission); err != nil {
			return err
		}
	}

	if _, err := processor.repo.MarkAcknowledged(ctx, submission.ID, processor.now()); err != nil {
		return err
	}

	logger.InfoContext(ctx, "submission_acknowledged", slog.Bool("forwarded", processor.webhookURL != ""))
	return nil
}

// forward POSTs the submission as JSON and expects a 2xx answer.
func (processor *Processor) forward(ctx context.Context, submission *Submission) error {
	body, err := json.Marshal(submission)
	if err != nil {
		return fmt.Errorf("marshal submission: %v: %w", err, asynq.SkipRetry)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, processor.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %v: %w", err, asynq.SkipRetry)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Idempotency-Key", submission.ID)

	response, err := processor.client.Do(request)
	if err != nil {
		return fmt.Errorf("acceptance webhook: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("acceptance webhook answered %d", response.StatusCode)
	}
	return nil
}

// # Handoff Sweep

// Sweeper re-enqueues the handoff of submissions that were stored but
// never acknowledged, such as when Submit could not reach the queue.
// Handoff task IDs are derived from the submission, so a sweep never
// duplicates a task that is still queued.
type Sweeper struct {
	repo    Repository
	handoff Handoff
	logger  *slog.Logger
	now     func() time.Time
}

// NewSweeper builds a handoff sweeper.
func NewSweeper(repo Repository, handoff Handoff, logger *slog.Logger, now func() time.Time) *Sweeper {
	return &Sweeper{repo: repo, handoff: handoff, logger: logger, now: now}
}

// Register binds the sweeper to [queue.TypeHandoffSweep].
func (sweeper *Sweeper) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeHandoffSweep, sweeper.HandleSweep)
}

// HandleSweep runs one sweep for the scheduler.
func (sweeper *Sweeper) HandleSweep(ctx context.Context, _ *asynq.Task) error {
	_, err := sweeper.Sweep(ctx)
	return err
}

/*
Sweep enqueues the handoff of every unacknowledged submission older than
the grace period, one batch per call.

Returns:
  - int: number of handoffs enqueued (or found already queued)
  - error: listing failure, or the enqueue failures joined
*/
func (sweeper *Sweeper) Sweep(ctx context.Context) (int, error) {
	pending, err := sweeper.repo.ListUnacknowledged(ctx, sweeper.now().Add(-sweepGrace), sweepBatch)
	if err != nil {
		return 0, err
	}

	var failures []error
	enqueued := 0
	for _, submission := range pending {
		payload := queue.HandoffPayload{SubmissionID: submission.ID, FestivalID: submission.FestivalID}
		if err := sweeper.handoff.EnqueueHandoff(ctx, payload); err != nil {
			failures = append(failures, fmt.Errorf("submission %s: %w", submission.ID, err))
			continue
		}
		enqueued++
	}

	if len(pending) > 0 {
		sweeper.logger.InfoContext(ctx, "handoff_sweep_completed",
			slog.Int("pending", len(pending)),
			slog.Int("enqueued", enqueued),
			slog.Int("failed", len(failures)),
		)
	}
	return enqueued, errors.Join(failures...)
}
