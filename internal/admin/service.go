// Copyright (c) 2026 marsAI. All rights reserved.

package admin

import (
	"context"
	"log/slog"
	"strings"

	"github.com/marsai/festival/internal/gallery"
	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/internal/platform/validate"
	"github.com/marsai/festival/internal/reference"
	"github.com/marsai/festival/internal/submission"
	"github.com/marsai/festival/pkg/pagination"
	"github.com/marsai/festival/pkg/uuid"
)

// # Service Layer

// Service runs the admin dashboard of one festival.
type Service struct {
	repo      Repository
	gallery   Gallery
	festivals Festivals
	logger    *slog.Logger
}

// NewService constructs a new admin [Service].
func NewService(repo Repository, gallery Gallery, festivals Festivals, logger *slog.Logger) *Service {
	return &Service{repo: repo, gallery: gallery, festivals: festivals, logger: logger}
}

/*
ListSubmissions returns one page of the festival's submissions.

Parameters:
  - admin: sec.Identity of the caller
  - filter: ListFilter search and status
  - params: pagination.Params already clamped by the handler

Returns:
  - []SubmissionSummary: The page
  - pagination.Meta: Page metadata over the filtered total
  - error: FORBIDDEN when the admin has no festival
*/
func (service *Service) ListSubmissions(context context.Context, admin sec.Identity, filter ListFilter, params pagination.Params) ([]SubmissionSummary, pagination.Meta, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		err := (&validate.Validator{}).OneOf("status", string(filter.Status), statusNames(true)...).Err()
		return nil, pagination.Meta{}, err
	}

	festivalID, err := service.festivalOf(context, admin)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	summaries, total, err := service.repo.List(context, festivalID, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return summaries, pagination.NewMeta(params.Page, params.Limit, total), nil
}

// GetSubmission returns one submission with its full draft.
func (service *Service) GetSubmission(context context.Context, admin sec.Identity, id string) (*submission.Submission, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Submission")
	}

	festivalID, err := service.festivalOf(context, admin)
	if err != nil {
		return nil, err
	}
	return service.repo.Find(context, festivalID, id)
}

/*
SetStatus moves a submission to another review state.

Description: Leaving the validated state also withdraws the film from the
gallery, so only validated submissions are ever published.
*/
func (service *Service) SetStatus(context context.Context, admin sec.Identity, id string, status submission.Status) (*submission.Submission, error) {
	if !status.Valid() {
		return nil, (&validate.Validator{}).OneOf("status", string(status), statusNames(false)...).Err()
	}

	found, err := service.GetSubmission(context, admin, id)
	if err != nil {
		return nil, err
	}

	if err := service.repo.SetStatus(context, found.FestivalID, id, status); err != nil {
		return nil, err
	}

	if status != submission.StatusValidated {
		if err := service.gallery.Unpublish(context, id); err != nil && !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, err
		}
	}

	service.logger.InfoContext(context, "submission_status_changed",
		slog.String("submission_id", id),
		slog.String("from", string(found.Status)),
		slog.String("to", string(status)),
		slog.String("admin_id", admin.UserID),
	)

	found.Status = status
	return found, nil
}

// # Gallery Publication

// PublishInput is the curation an admin adds when publishing a film.
type PublishInput struct {
	Category          gallery.Category `json:"category"`
	AITools           []string         `json:"ai_tools"`
	OfficialSelection bool             `json:"official_selection"`
	ThumbnailURL      string           `json:"thumbnail_url"`

	// Country overrides the director's country (an ISO alpha-2 code or a country name).
	Country string `json:"country"`
}

/*
Publish puts a validated submission into the public gallery.

Description: Titles, director and duration come from the submission and
the video link from its deliverables. The director's country, typed freely
in the form, is resolved to its ISO code unless input.Country overrides it.
Publishing again updates the entry.

Returns:
  - *gallery.Film: The published film
  - error: UNPROCESSABLE when the submission is not validated, VALIDATION_ERROR
*/
func (service *Service) Publish(context context.Context, admin sec.Identity, id string, input PublishInput) (*gallery.Film, error) {
	found, err := service.GetSubmission(context, admin, id)
	if err != nil {
		return nil, err
	}
	if found.Status != submission.StatusValidated {
		return nil, apperr.Unprocessable("Only validated submissions can be published")
	}

	country := strings.TrimSpace(input.Country)
	if country == "" {
		country = found.Country
	}
	code, ok := reference.CountryCode(country)
	if err := (&validate.Validator{}).Custom("country", !ok, "Unknown country, set an ISO alpha-2 code").Err(); err != nil {
		return nil, err
	}

	videoURL := ""
	if found.Draft != nil {
		videoURL = found.Draft.Deliverables.VideoURL
	}

	return service.gallery.Publish(context, gallery.PublishInput{
		FestivalID:        found.FestivalID,
		SubmissionID:      found.ID,
		Title:             found.Title,
		TitleEnglish:      found.TitleEnglish,
		Director:          found.Director,
		Country:           code,
		Category:          input.Category,
		AITools:           input.AITools,
		OfficialSelection: input.OfficialSelection,
		DurationSeconds:   found.DurationSeconds,
		ThumbnailURL:      input.ThumbnailURL,
		VideoURL:          videoURL,
	})
}

// Unpublish withdraws a submission's film from the gallery.
func (service *Service) Unpublish(context context.Context, admin sec.Identity, id string) error {
	if _, err := service.GetSubmission(context, admin, id); err != nil {
		return err
	}
	return service.gallery.Unpublish(context, id)
}

// Stats returns the dashboard figures of the admin's festival.
func (service *Service) Stats(context context.Context, admin sec.Identity) (*Stats, error) {
	festivalID, err := service.festivalOf(context, admin)
	if err != nil {
		return nil, err
	}

	stats, err := service.repo.Stats(context, festivalID)
	if err != nil {
		return nil, err
	}
	stats.finish()
	return stats, nil
}

// # Helpers

func (service *Service) festivalOf(context context.Context, admin sec.Identity) (string, error) {
	if admin.FestivalID == "" && !admin.Role.AtLeast(sec.RoleSuperAdmin) {
		return "", apperr.Forbidden("Account is not assigned to a festival")
	}

	festival, err := service.festivals.ForAccount(context, admin.FestivalID)
	if err != nil {
		return "", err
	}
	return festival.ID, nil
}

func statusNames(withAll bool) []string {
	names := []string{string(submission.StatusPending), string(submission.StatusValidated), string(submission.StatusRejected)}
	if withAll {
		names = append([]string{StatusAll}, names...)
	}
	return names
}
