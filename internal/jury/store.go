// Copyright (c) 2026 marsAI. All rights reserved.

package jury

import (
	"context"

	"github.com/marsai/festival/internal/festival"
)

// Repository reads the films assigned to jurors and stores their evaluations.
type Repository interface {
	// ListAssigned returns the validated submissions of the festival with the
	// juror's evaluations attached, oldest submission first.
	ListAssigned(context context.Context, festivalID, jurorID string) ([]AssignedFilm, error)
	// FindAssigned returns one assigned film, or NOT_FOUND when the
	// submission is not a validated film of the festival.
	FindAssigned(context context.Context, festivalID, jurorID, submissionID string) (*AssignedFilm, error)
	// SaveOpen upserts the evaluation unless it is already submitted, in
	// which case it reports false and writes nothing.
	SaveOpen(context context.Context, evaluation *Evaluation) (bool, error)
	// SetSubmitted locks or unlocks an existing evaluation.
	SetSubmitted(context context.Context, submissionID, jurorID string, submitted bool) error
}

// Festivals resolves the festival a juror works on.
type Festivals interface {
	ForAccount(context context.Context, festivalID string) (*festival.Festival, error)
}
