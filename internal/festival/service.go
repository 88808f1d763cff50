// Copyright (c) 2026 marsAI. All rights reserved.

package festival

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/validate"
	"github.com/marsai/festival/pkg/pointer"
	"github.com/marsai/festival/pkg/slug"
	"github.com/marsai/festival/pkg/uuid"
)

// Field limits.
const (
	maxNameLength = 200
	maxCityLength = 120
	minYear       = 2000
	maxYear       = 2100
)

// # Service Layer

// Service manages festival instances for the super admin CMS and answers
// "which festival is open" for the rest of the API.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service]. now may be nil, in which case the
// wall clock is used.
func NewService(repo Repository, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, logger: logger, now: now}
}

// # Lookups

func (service *Service) ListFestivals(context context.Context) ([]*Festival, error) {
	return service.repo.List(context)
}

// GetFestival resolves a festival by UUID or slug.
func (service *Service) GetFestival(context context.Context, identifier string) (*Festival, error) {
	if uuid.Valid(identifier) {
		return service.repo.FindByID(context, identifier)
	}
	return service.repo.FindBySlug(context, identifier)
}

// Active returns the festival currently in its active edition.
func (service *Service) Active(context context.Context) (*Festival, error) {
	return service.repo.FindActive(context)
}

// ForAccount returns the festival an admin or jury account works on: its
// own festival when scoped, otherwise the active one.
func (service *Service) ForAccount(context context.Context, festivalID string) (*Festival, error) {
	if festivalID != "" {
		return service.repo.FindByID(context, festivalID)
	}
	return service.repo.FindActive(context)
}

/*
OpenForSubmissions returns the festival that accepts new films right now.

Returns:
  - *Festival: The active festival
  - error: apperr SUBMISSIONS_CLOSED when no festival is active or its deadline passed
*/
func (service *Service) OpenForSubmissions(context context.Context) (*Festival, error) {
	festival, err := service.repo.FindActive(context)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.SubmissionsClosed()
		}
		return nil, err
	}

	if !festival.AcceptsSubmissions(service.now()) {
		return nil, apperr.SubmissionsClosed()
	}
	return festival, nil
}

// # Management

/*
CreateFestival registers a new festival edition.

Description: New instances start "upcoming" with no submissions. The year
defaults to the current year and the slug is derived from the name when
left empty.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Festival: The persisted instance
  - error: Validation or persistence errors
*/
func (service *Service) CreateFestival(context context.Context, input CreateInput) (*Festival, error) {
	now := service.now()

	festival := &Festival{
		ID:                 uuid.New(),
		Name:               strings.TrimSpace(input.Name),
		Slug:               strings.TrimSpace(input.Slug),
		Year:               input.Year,
		City:               strings.TrimSpace(input.City),
		Status:             StatusUpcoming,
		LogoURL:            strings.TrimSpace(input.LogoURL),
		PrimaryColor:       strings.TrimSpace(input.PrimaryColor),
		SubmissionDeadline: input.SubmissionDeadline,
		EventDays:          input.EventDays,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if festival.Year == 0 {
		festival.Year = now.Year()
	}
	if festival.Slug == "" {
		festival.Slug = slug.From(festival.Name)
	}
	if festival.PrimaryColor == "" {
		festival.PrimaryColor = DefaultPrimaryColor
	}
	if len(festival.EventDays) == 0 {
		festival.EventDays = append([]string(nil), DefaultEventDays...)
	}

	if err := validateFestival(festival); err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, festival); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "festival_created",
		slog.String("festival_id", festival.ID),
		slog.String("slug", festival.Slug),
	)
	return festival, nil
}

// UpdateFestival applies a partial update to the festival's identity fields.
func (service *Service) UpdateFestival(context context.Context, id string, input UpdateInput) (*Festival, error) {
	festival, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	festival.Name = strings.TrimSpace(pointer.Fallback(input.Name, festival.Name))
	festival.Slug = strings.TrimSpace(pointer.Fallback(input.Slug, festival.Slug))
	festival.Year = pointer.Fallback(input.Year, festival.Year)
	festival.City = strings.TrimSpace(pointer.Fallback(input.City, festival.City))

	if input.SubmissionDeadline != nil {
		festival.SubmissionDeadline = input.SubmissionDeadline
	}
	if input.ClearDeadline {
		festival.SubmissionDeadline = nil
	}
	if input.EventDays != nil {
		festival.EventDays = input.EventDays
	}

	if err := validateFestival(festival); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, festival); err != nil {
		return nil, err
	}
	return festival, nil
}

// UpdateBranding changes the logo, primary color or YouTube API key.
func (service *Service) UpdateBranding(context context.Context, id string, input BrandingInput) (*Festival, error) {
	festival, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	festival.LogoURL = strings.TrimSpace(pointer.Fallback(input.LogoURL, festival.LogoURL))
	festival.PrimaryColor = strings.TrimSpace(pointer.Fallback(input.PrimaryColor, festival.PrimaryColor))
	festival.YouTubeAPIKey = strings.TrimSpace(pointer.Fallback(input.YouTubeAPIKey, festival.YouTubeAPIKey))

	if err := validateFestival(festival); err != nil {
		return nil, err
	}

	if err := service.repo.Update(context, festival); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "festival_branding_updated", slog.String("festival_id", id))
	return festival, nil
}

/*
Activate opens a festival for submissions.

Description: Exactly one festival is active at any time; the previously
active one is archived in the same transaction.
*/
func (service *Service) Activate(context context.Context, id string) (*Festival, error) {
	festival, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if festival.Status == StatusActive {
		return festival, nil
	}

	archivedID, err := service.repo.Activate(context, id)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "festival_activated",
		slog.String("festival_id", id),
		slog.String("archived_id", archivedID),
	)

	festival.Status = StatusActive
	return festival, nil
}

// Archive closes a festival edition for good.
func (service *Service) Archive(context context.Context, id string) (*Festival, error) {
	festival, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if festival.Status == StatusArchived {
		return festival, nil
	}

	if err := service.repo.SetStatus(context, id, StatusArchived); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "festival_archived", slog.String("festival_id", id))
	festival.Status = StatusArchived
	return festival, nil
}

// # Validation

func validateFestival(festival *Festival) error {
	validator := &validate.Validator{}

	validator.Required(FieldName, festival.Name).MaxLen(FieldName, festival.Name, maxNameLength)
	validator.MaxLen(FieldCity, festival.City, maxCityLength)
	validator.Range(FieldYear, festival.Year, minYear, maxYear)

	if festival.Slug == "" {
		validator.Required(FieldSlug, festival.Slug)
	} else {
		validator.Slug(FieldSlug, festival.Slug)
	}

	validator.HexColor(FieldPrimaryColor, festival.PrimaryColor)
	validator.OptionalURL(FieldLogoURL, festival.LogoURL)

	validator.Custom(FieldEventDays, len(festival.EventDays) == 0, "This field is required")
	for _, day := range festival.EventDays {
		validator.Date(FieldEventDays, day)
	}

	return validator.Err()
}
