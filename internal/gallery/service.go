// Copyright (c) 2026 marsAI. All rights reserved.

package gallery

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/validate"
	"github.com/marsai/festival/pkg/uuid"
)

// # Service Layer

// Service serves the public gallery and publishes films into it.
type Service struct {
	repo      Repository
	cache     Cache
	festivals Festivals
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a new gallery [Service]. now may be nil.
func NewService(repo Repository, cache Cache, festivals Festivals, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, cache: cache, festivals: festivals, logger: logger, now: now}
}

// Query is one gallery request.
type Query struct {
	// Festival is a festival ID or slug; empty means the active festival.
	Festival    string
	Filter      Filter
	Page        int
	FilterToken string
}

/*
Browse returns one page of the filtered catalogue.

Description: A filter_token that does not match the current filter resets
the page to 1. Unknown categories are rejected.

Returns:
  - Page: The films and pagination metadata
  - error: VALIDATION_ERROR, or NOT_FOUND when the festival does not exist
*/
func (service *Service) Browse(context context.Context, query Query) (Page, error) {
	if category := query.Filter.Category; category != "" && category != CategoryAll && !category.Valid() {
		return Page{}, (&validate.Validator{}).OneOf("category", string(category), categoryNames()...).Err()
	}

	festivalID, err := service.resolveFestival(context, query.Festival)
	if err != nil {
		return Page{}, err
	}

	catalogue, err := service.catalogue(context, festivalID)
	if err != nil {
		return Page{}, err
	}

	return Paginate(catalogue, query.Filter, query.Page, query.FilterToken), nil
}

// GetFilm returns one published film.
func (service *Service) GetFilm(context context.Context, id string) (*Film, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Film")
	}
	return service.repo.FindByID(context, id)
}

// # Publication

// PublishInput describes a film entering the gallery.
type PublishInput struct {
	FestivalID        string
	SubmissionID      string
	Title             string
	TitleEnglish      string
	Director          string
	Country           string
	Category          Category
	AITools           []string
	OfficialSelection bool
	DurationSeconds   int
	ThumbnailURL      string
	VideoURL          string
}

/*
Publish adds or refreshes the gallery entry of a submission and drops the
festival's cached catalogue.
*/
func (service *Service) Publish(context context.Context, input PublishInput) (*Film, error) {
	film := &Film{
		ID:                uuid.New(),
		FestivalID:        input.FestivalID,
		SubmissionID:      input.SubmissionID,
		Title:             strings.TrimSpace(input.Title),
		TitleEnglish:      strings.TrimSpace(input.TitleEnglish),
		Director:          strings.TrimSpace(input.Director),
		Country:           strings.ToUpper(strings.TrimSpace(input.Country)),
		Category:          input.Category,
		AITools:           canonicalSet(input.AITools, strings.TrimSpace),
		OfficialSelection: input.OfficialSelection,
		DurationSeconds:   input.DurationSeconds,
		ThumbnailURL:      strings.TrimSpace(input.ThumbnailURL),
		VideoURL:          strings.TrimSpace(input.VideoURL),
		PublishedAt:       service.now(),
	}

	if err := validateFilm(film); err != nil {
		return nil, err
	}

	if err := service.repo.Publish(context, film); err != nil {
		return nil, err
	}
	service.invalidate(context, film.FestivalID)

	service.logger.InfoContext(context, "film_published",
		slog.String("film_id", film.ID),
		slog.String("submission_id", film.SubmissionID),
		slog.Bool("official_selection", film.OfficialSelection),
	)
	return film, nil
}

// Unpublish removes a submission's film from the gallery.
func (service *Service) Unpublish(context context.Context, submissionID string) error {
	film, err := service.repo.Unpublish(context, submissionID)
	if err != nil {
		return err
	}
	service.invalidate(context, film.FestivalID)

	service.logger.InfoContext(context, "film_unpublished",
		slog.String("film_id", film.ID),
		slog.String("submission_id", submissionID),
	)
	return nil
}

// # Helpers

func (service *Service) resolveFestival(context context.Context, identifier string) (string, error) {
	if identifier != "" {
		festival, err := service.festivals.GetFestival(context, identifier)
		if err != nil {
			return "", err
		}
		return festival.ID, nil
	}

	festival, err := service.festivals.Active(context)
	if err != nil {
		return "", err
	}
	return festival.ID, nil
}

// catalogue reads through the cache. Cache failures degrade to the database.
func (service *Service) catalogue(context context.Context, festivalID string) ([]Film, error) {
	films, hit, err := service.cache.Get(context, festivalID)
	if err != nil {
		service.logger.WarnContext(context, "gallery_cache_read_failed", slog.Any("error", err))
	}
	if hit {
		return films, nil
	}

	films, err = service.repo.ListPublished(context, festivalID)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Set(context, festivalID, films); err != nil {
		service.logger.WarnContext(context, "gallery_cache_write_failed", slog.Any("error", err))
	}
	return films, nil
}

func (service *Service) invalidate(context context.Context, festivalID string) {
	if err := service.cache.Invalidate(context, festivalID); err != nil {
		service.logger.ErrorContext(context, "gallery_cache_invalidate_failed",
			slog.String("festival_id", festivalID),
			slog.Any("error", err),
		)
	}
}

func categoryNames() []string {
	names := make([]string, 0, len(Categories))
	for _, category := range Categories {
		names = append(names, string(category))
	}
	return names
}

func validateFilm(film *Film) error {
	validator := &validate.Validator{}

	validator.Required("title", film.Title).MaxLen("title", film.Title, 300)
	validator.Required("title_english", film.TitleEnglish).MaxLen("title_english", film.TitleEnglish, 300)
	validator.Required("director", film.Director).MaxLen("director", film.Director, 300)
	validator.Custom("country", len(film.Country) != 2, "Must be a valid ISO country code")
	validator.OneOf("category", string(film.Category), categoryNames()...)
	validator.Range("duration_seconds", film.DurationSeconds, 0, 60)
	validator.OptionalURL("thumbnail_url", film.ThumbnailURL)
	validator.OptionalURL("video_url", film.VideoURL)

	return validator.Err()
}
