// Copyright (c) 2026 marsAI. All rights reserved.

package submission_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsai/festival/internal/platform/queue"
	"github.com/marsai/festival/internal/submission"
)

func handoffTask(t *testing.T, submissionID string) *asynq.Task {
	t.Helper()
	task, err := queue.NewHandoffTask(queue.HandoffPayload{SubmissionID: submissionID, FestivalID: "fest-2026"})
	require.NoError(t, err)
	return task
}

func seededRepo(t *testing.T) *memoryRepo {
	t.Helper()
	repo := newMemoryRepo()
	_, err := repo.Create(context.Background(), submission.FromDraft("s1", "fest-2026", completeDraft(), now))
	require.NoError(t, err)
	return repo
}

func TestHandleHandoff_ForwardsOnce(t *testing.T) {
	var calls atomic.Int32
	webhook := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		assert.Equal(t, "s1", request.Header.Get("Idempotency-Key"))

		var body submission.Submission
		assert.NoError(t, json.NewDecoder(request.Body).Decode(&body))
		assert.Equal(t, "Les Marées", body.Title)
		writer.WriteHeader(http.StatusAccepted)
	}))
	defer webhook.Close()

	repo := seededRepo(t)
	processor := submission.NewProcessor(repo, webhook.URL, discardLogger())

	require.NoError(t, processor.HandleHandoff(context.Background(), handoffTask(t, "s1")))
	assert.Contains(t, repo.acknowledged, "s1")

	require.NoError(t, processor.HandleHandoff(context.Background(), handoffTask(t, "s1")))
	assert.EqualValues(t, 1, calls.Load(), "acknowledged submissions are not forwarded again")
}

func TestHandleHandoff_WebhookFailureRetries(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
	}))
	defer webhook.Close()

	repo := seededRepo(t)
	err := submission.NewProcessor(repo, webhook.URL, discardLogger()).HandleHandoff(context.Background(), handoffTask(t, "s1"))

	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
	assert.NotContains(t, repo.acknowledged, "s1")
}

func TestHandleHandoff_PermanentFailures(t *testing.T) {
	processor := submission.NewProcessor(newMemoryRepo(), "", discardLogger())

	err := processor.HandleHandoff(context.Background(), handoffTask(t, "missing"))
	assert.True(t, errors.Is(err, asynq.SkipRetry))

	err = processor.HandleHandoff(context.Background(), asynq.NewTask(queue.TypeSubmissionHandoff, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleHandoff_WithoutWebhook(t *testing.T) {
	repo := seededRepo(t)
	require.NoError(t, submission.NewProcessor(repo, "", discardLogger()).HandleHandoff(context.Background(), handoffTask(t, "s1")))
	assert.Contains(t, repo.acknowledged, "s1")
}

// received stores a submission of its own draft, submitted at the given time.
func received(t *testing.T, repo *memoryRepo, id string, at time.Time) *submission.Submission {
	t.Helper()
	draft := completeDraft()
	draft.ID = id + "-draft"
	stored, err := repo.Create(context.Background(), submission.FromDraft(id, "fest-2026", draft, at))
	require.NoError(t, err)
	return stored
}

func TestSweep_RequeuesUnacknowledged(t *testing.T) {
	repo := newMemoryRepo()
	received(t, repo, "lost", now.Add(-2*time.Hour))
	received(t, repo, "done", now.Add(-time.Hour))
	received(t, repo, "fresh", now.Add(-time.Minute))
	_, err := repo.MarkAcknowledged(context.Background(), "done", now.Add(-50*time.Minute))
	require.NoError(t, err)

	handoff := &recordingHandoff{}
	enqueued, err := submission.NewSweeper(repo, handoff, discardLogger(), clock).Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, enqueued)
	assert.Equal(t, []queue.HandoffPayload{{SubmissionID: "lost", FestivalID: "fest-2026"}}, handoff.payloads)
}

func TestSweep_ReportsEnqueueFailures(t *testing.T) {
	repo := newMemoryRepo()
	received(t, repo, "lost", now.Add(-2*time.Hour))

	handoff := &recordingHandoff{err: errors.New("redis down")}
	enqueued, err := submission.NewSweeper(repo, handoff, discardLogger(), clock).Sweep(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lost")
	assert.Zero(t, enqueued)
}

func TestSweep_HandleTask(t *testing.T) {
	repo := newMemoryRepo()
	received(t, repo, "lost", now.Add(-2*time.Hour))

	handoff := &recordingHandoff{}
	sweeper := submission.NewSweeper(repo, handoff, discardLogger(), clock)

	mux := asynq.NewServeMux()
	sweeper.Register(mux)
	require.NoError(t, mux.ProcessTask(context.Background(), queue.NewSweepTask(time.Minute)))
	assert.Len(t, handoff.payloads, 1)
}
