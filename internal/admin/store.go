// Copyright (c) 2026 marsAI. All rights reserved.

package admin

import (
	"context"

	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/gallery"
	"github.com/marsai/festival/internal/submission"
)

// Repository reads and reviews the submissions of a festival.
type Repository interface {
	List(context context.Context, festivalID string, filter ListFilter, limit, offset int) ([]SubmissionSummary, int, error)
	// Find returns a submission with its full draft, or NOT_FOUND when it
	// belongs to another festival.
	Find(context context.Context, festivalID, id string) (*submission.Submission, error)
	SetStatus(context context.Context, festivalID, id string, status submission.Status) error
	Stats(context context.Context, festivalID string) (*Stats, error)
}

// Gallery publishes reviewed films.
type Gallery interface {
	Publish(context context.Context, input gallery.PublishInput) (*gallery.Film, error)
	Unpublish(context context.Context, submissionID string) error
}

// Festivals resolves the festival an admin works on.
type Festivals interface {
	ForAccount(context context.Context, festivalID string) (*festival.Festival, error)
}
