// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"context"
	"io"
	"time"

	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/platform/queue"
)

// DraftStore keeps drafts between requests.
type DraftStore interface {
	// Save writes the draft and restarts its expiry.
	Save(context context.Context, draft *Draft) error
	// Load reads the draft and restarts its expiry, or returns NOT_FOUND.
	Load(context context.Context, id string) (*Draft, error)
	Delete(context context.Context, id string) error
}

// Repository persists received submissions.
type Repository interface {
	// Create inserts submission and returns it. When its draft was already
	// submitted, nothing is written and the stored submission is returned.
	Create(context context.Context, submission *Submission) (*Submission, error)
	FindByID(context context.Context, id string) (*Submission, error)
	// MarkAcknowledged records the handoff. It reports false when the
	// submission was already acknowledged.
	MarkAcknowledged(context context.Context, id string, at time.Time) (bool, error)
	// ListUnacknowledged returns up to limit submissions received before
	// cutoff whose handoff never completed, oldest first.
	ListUnacknowledged(context context.Context, cutoff time.Time, limit int) ([]*Submission, error)
}

// MediaStore holds uploaded posters, stills and subtitles.
type MediaStore interface {
	Put(context context.Context, key string, reader io.Reader, size int64, contentType string) error
	PresignGet(context context.Context, key string, ttl time.Duration) (string, error)
	Remove(context context.Context, key string) error
}

// Festivals answers which festival currently accepts films.
type Festivals interface {
	OpenForSubmissions(context context.Context) (*festival.Festival, error)
}

// Handoff schedules a received submission for the acceptance service.
type Handoff interface {
	EnqueueHandoff(context context.Context, payload queue.HandoffPayload) error
}
