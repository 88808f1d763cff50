// Copyright (c) 2026 marsAI. All rights reserved.

package gallery

import (
	"context"

	"github.com/marsai/festival/internal/festival"
)

// Repository persists published films.
type Repository interface {
	// ListPublished returns the festival's catalogue, newest first.
	ListPublished(context context.Context, festivalID string) ([]Film, error)
	FindByID(context context.Context, id string) (*Film, error)
	// Publish inserts the film, or replaces the entry of the same submission.
	Publish(context context.Context, film *Film) error
	// Unpublish removes the film of a submission and returns it.
	Unpublish(context context.Context, submissionID string) (*Film, error)
}

// Cache holds a festival's catalogue between requests.
type Cache interface {
	// Get reports false on a miss.
	Get(context context.Context, festivalID string) ([]Film, bool, error)
	Set(context context.Context, festivalID string, films []Film) error
	Invalidate(context context.Context, festivalID string) error
}

// Festivals resolves which festival's gallery is shown.
type Festivals interface {
	Active(context context.Context) (*festival.Festival, error)
	GetFestival(context context.Context, identifier string) (*festival.Festival, error)
}
