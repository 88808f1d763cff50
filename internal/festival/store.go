// Copyright (c) 2026 marsAI. All rights reserved.

package festival

import "context"

// Repository persists festival instances.
type Repository interface {
	List(context context.Context) ([]*Festival, error)
	FindByID(context context.Context, id string) (*Festival, error)
	FindBySlug(context context.Context, slug string) (*Festival, error)

	// FindActive returns the single active festival, or apperr NOT_FOUND.
	FindActive(context context.Context) (*Festival, error)

	Create(context context.Context, festival *Festival) error
	Update(context context.Context, festival *Festival) error

	// Activate makes id the active festival and archives the previous one
	// atomically. It returns the archived festival ID, or "" if none.
	Activate(context context.Context, id string) (string, error)

	SetStatus(context context.Context, id string, status Status) error
}
