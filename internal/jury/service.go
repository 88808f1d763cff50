// Copyright (c) 2026 marsAI. All rights reserved.

package jury

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/internal/platform/validate"
	"github.com/marsai/festival/pkg/slice"
	"github.com/marsai/festival/pkg/uuid"
)

// # Service Layer

// Service runs the jury workspace.
type Service struct {
	repo      Repository
	festivals Festivals
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a new jury [Service]. now may be nil.
func NewService(repo Repository, festivals Festivals, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, festivals: festivals, logger: logger, now: now}
}

// Workspace is the juror's film list with overall progress.
type Workspace struct {
	FestivalID string     `json:"festival_id"`
	Films      []FilmView `json:"films"`
	Progress   Progress   `json:"progress"`
}

/*
Workspace lists the films assigned to the juror.

Description: Progress always counts every assigned film; the filter only
narrows the list.

Parameters:
  - juror: sec.Identity of the authenticated juror
  - filter: Filter search text and rated/unrated toggles
  - tag: language.Tag used for score labels

Returns:
  - *Workspace: Films and progress
  - error: FORBIDDEN when the juror has no festival
*/
func (service *Service) Workspace(context context.Context, juror sec.Identity, filter Filter, tag language.Tag) (*Workspace, error) {
	festivalID, err := service.festivalOf(context, juror)
	if err != nil {
		return nil, err
	}

	films, err := service.repo.ListAssigned(context, festivalID, juror.UserID)
	if err != nil {
		return nil, err
	}

	visible := slice.Filter(films, filter.Matches)
	return &Workspace{
		FestivalID: festivalID,
		Films:      presentFilms(visible, juror.UserID, service.now(), tag),
		Progress:   ProgressOf(films),
	}, nil
}

// Film returns one assigned film with the juror's evaluation.
func (service *Service) Film(context context.Context, juror sec.Identity, submissionID string, tag language.Tag) (*FilmView, error) {
	film, err := service.assigned(context, juror, submissionID)
	if err != nil {
		return nil, err
	}
	return &presentFilms([]AssignedFilm{*film}, juror.UserID, service.now(), tag)[0], nil
}

// # Rating

// RateInput carries the criteria to change. Nil fields keep their value.
type RateInput struct {
	Creativity *int    `json:"creativity"`
	Technical  *int    `json:"technical"`
	Narrative  *int    `json:"narrative"`
	Comment    *string `json:"comment"`
}

func (input RateInput) apply(evaluation *Evaluation) {
	if input.Creativity != nil {
		evaluation.Creativity = *input.Creativity
	}
	if input.Technical != nil {
		evaluation.Technical = *input.Technical
	}
	if input.Narrative != nil {
		evaluation.Narrative = *input.Narrative
	}
	if input.Comment != nil {
		evaluation.Comment = *input.Comment
	}
}

func validateEvaluation(evaluation *Evaluation) error {
	return (&validate.Validator{}).
		Range("creativity", evaluation.Creativity, MinScore, MaxScore).
		Range("technical", evaluation.Technical, MinScore, MaxScore).
		Range("narrative", evaluation.Narrative, MinScore, MaxScore).
		MaxLen("comment", evaluation.Comment, maxCommentLength).
		Err()
}

/*
Rate saves scores without submitting them.

Returns:
  - *EvaluationView: The saved evaluation with its average
  - error: VALIDATION_ERROR, NOT_FOUND, or CONFLICT once submitted
*/
func (service *Service) Rate(context context.Context, juror sec.Identity, submissionID string, input RateInput, tag language.Tag) (*EvaluationView, error) {
	evaluation, err := service.save(context, juror, submissionID, input)
	if err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "evaluation_saved",
		slog.String("submission_id", submissionID),
		slog.String("juror_id", juror.UserID),
		slog.Int("average", evaluation.Average()),
	)
	return evaluation.View(tag), nil
}

/*
Submit saves the given scores and locks the evaluation.

Description: A film the juror never rated is submitted with whatever input
is given on top of the neutral 5/5/5 defaults.
*/
func (service *Service) Submit(context context.Context, juror sec.Identity, submissionID string, input RateInput, tag language.Tag) (*EvaluationView, error) {
	evaluation, err := service.save(context, juror, submissionID, input)
	if err != nil {
		return nil, err
	}

	if err := service.repo.SetSubmitted(context, submissionID, juror.UserID, true); err != nil {
		return nil, err
	}
	evaluation.Submitted = true

	service.logger.InfoContext(context, "evaluation_submitted",
		slog.String("submission_id", submissionID),
		slog.String("juror_id", juror.UserID),
		slog.Int("average", evaluation.Average()),
	)
	return evaluation.View(tag), nil
}

// Reopen unlocks a submitted evaluation so the juror can edit it again.
func (service *Service) Reopen(context context.Context, juror sec.Identity, submissionID string, tag language.Tag) (*EvaluationView, error) {
	film, err := service.assigned(context, juror, submissionID)
	if err != nil {
		return nil, err
	}
	if film.Evaluation == nil {
		return nil, apperr.NotFound("Evaluation")
	}

	evaluation := film.Evaluation
	if evaluation.Submitted {
		if err := service.repo.SetSubmitted(context, submissionID, juror.UserID, false); err != nil {
			return nil, err
		}
		evaluation.Submitted = false
		service.logger.InfoContext(context, "evaluation_reopened",
			slog.String("submission_id", submissionID),
			slog.String("juror_id", juror.UserID),
		)
	}
	return evaluation.View(tag), nil
}

func (service *Service) save(context context.Context, juror sec.Identity, submissionID string, input RateInput) (*Evaluation, error) {
	film, err := service.assigned(context, juror, submissionID)
	if err != nil {
		return nil, err
	}
	if film.Rated() {
		return nil, apperr.Conflict("Evaluation already submitted")
	}

	evaluation := NewEvaluation(film.SubmissionID, juror.UserID, service.now())
	if film.Evaluation != nil {
		current := *film.Evaluation
		evaluation = &current
		evaluation.UpdatedAt = service.now()
	}

	input.apply(evaluation)
	if err := validateEvaluation(evaluation); err != nil {
		return nil, err
	}

	saved, err := service.repo.SaveOpen(context, evaluation)
	if err != nil {
		return nil, err
	}
	if !saved {
		return nil, apperr.Conflict("Evaluation already submitted")
	}
	return evaluation, nil
}

// # Helpers

func (service *Service) assigned(context context.Context, juror sec.Identity, submissionID string) (*AssignedFilm, error) {
	if !uuid.Valid(submissionID) {
		return nil, apperr.NotFound("Film")
	}

	festivalID, err := service.festivalOf(context, juror)
	if err != nil {
		return nil, err
	}
	return service.repo.FindAssigned(context, festivalID, juror.UserID, submissionID)
}

// festivalOf scopes jurors to their own festival. Unscoped superadmins work
// on the active one.
func (service *Service) festivalOf(context context.Context, juror sec.Identity) (string, error) {
	if juror.FestivalID == "" && !juror.Role.AtLeast(sec.RoleSuperAdmin) {
		return "", apperr.Forbidden("Account is not assigned to a festival")
	}

	festival, err := service.festivals.ForAccount(context, juror.FestivalID)
	if err != nil {
		return "", err
	}
	return festival.ID, nil
}
