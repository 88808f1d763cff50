// Copyright (c) 2026 marsAI. All rights reserved.

package submission

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/text/language"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/i18n"
	"github.com/marsai/festival/internal/platform/queue"
	"github.com/marsai/festival/internal/platform/storage"
	"github.com/marsai/festival/pkg/uuid"
)

// presignTTL bounds the validity of media preview links.
const presignTTL = 15 * time.Minute

// # Service Layer

// Service drives the submission wizard: draft lifecycle, step navigation,
// team editing, media uploads and the final submit with handoff.
type Service struct {
	drafts    DraftStore
	repo      Repository
	media     MediaStore
	festivals Festivals
	handoff   Handoff
	logger    *slog.Logger
	now       func() time.Time
}

// Dependencies groups the collaborators of [Service].
type Dependencies struct {
	Drafts    DraftStore
	Repo      Repository
	Media     MediaStore
	Festivals Festivals
	Handoff   Handoff
	Logger    *slog.Logger
	// Now is the clock used for ages, deadlines and timestamps. Defaults to time.Now.
	Now func() time.Time
}

// NewService constructs a new [Service].
func NewService(deps Dependencies) *Service {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		drafts:    deps.Drafts,
		repo:      deps.Repo,
		media:     deps.Media,
		festivals: deps.Festivals,
		handoff:   deps.Handoff,
		logger:    deps.Logger,
		now:       now,
	}
}

// # Draft Lifecycle

// CreateDraft starts an empty draft at step 1. "Submit another film" also
// lands here.
func (service *Service) CreateDraft(context context.Context) (*Draft, error) {
	draft := NewDraft(uuid.New(), service.now())
	if err := service.drafts.Save(context, draft); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "draft_created", slog.String("draft_id", draft.ID))
	return draft, nil
}

// DraftView is a draft with preview links for its uploaded media.
type DraftView struct {
	*Draft
	Media MediaURLs `json:"media"`
}

// GetDraft loads a draft and presigns its media.
func (service *Service) GetDraft(context context.Context, id string) (*DraftView, error) {
	draft, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	view := &DraftView{Draft: draft, Media: MediaURLs{Stills: make([]string, 0, len(draft.Deliverables.StillsFiles))}}

	if key := draft.Deliverables.PosterFile; key != "" {
		if view.Media.Poster, err = service.media.PresignGet(context, key, presignTTL); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	if key := draft.Deliverables.SubtitlesFile; key != "" {
		if view.Media.Subtitles, err = service.media.PresignGet(context, key, presignTTL); err != nil {
			return nil, apperr.Internal(err)
		}
	}
	for _, key := range draft.Deliverables.StillsFiles {
		link, err := service.media.PresignGet(context, key, presignTTL)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		view.Media.Stills = append(view.Media.Stills, link)
	}

	return view, nil
}

// UpdateDraft merges a partial update into the draft. The step does not change.
func (service *Service) UpdateDraft(context context.Context, id string, patch Patch) (*Draft, error) {
	return service.mutate(context, id, func(draft *Draft) error {
		return draft.Apply(patch, service.now())
	})
}

// DiscardDraft deletes a draft and its uploaded media.
func (service *Service) DiscardDraft(context context.Context, id string) error {
	draft, err := service.load(context, id)
	if err != nil {
		return err
	}

	service.removeMedia(context, draft)
	return service.deleteDraft(context, id)
}

// # Navigation

// StepStatus reports whether one step currently validates.
type StepStatus struct {
	Step   int                 `json:"step"`
	Title  string              `json:"title"`
	Valid  bool                `json:"valid"`
	Errors []apperr.FieldError `json:"errors,omitempty"`
}

var stepTitles = map[int]i18n.Text{
	StepDirector:     {FR: "Réalisateur", EN: "Director"},
	StepFilm:         {FR: "Film", EN: "Film"},
	StepAIUsage:      {FR: "Usage de l'IA", EN: "AI usage"},
	StepDeliverables: {FR: "Livrables", EN: "Deliverables"},
	StepTeam:         {FR: "Équipe", EN: "Team"},
}

/*
Validation evaluates every step of a draft without moving it.

Description: Lets the client enable or disable its "Next" control, with
step titles and field errors in the request locale.

Parameters:
  - context: context.Context
  - id: string (draft ID)
  - locale: language.Tag
*/
func (service *Service) Validation(context context.Context, id string, locale language.Tag) ([]StepStatus, error) {
	draft, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	now := service.now()
	statuses := make([]StepStatus, 0, LastStep)
	for step := FirstStep; step <= LastStep; step++ {
		errs := ValidateStep(step, draft, now)
		if len(errs) > 0 {
			errs = i18n.LocalizeError(apperr.ValidationError("Validation failed", errs...), locale).Details
		}
		statuses = append(statuses, StepStatus{
			Step:   step,
			Title:  stepTitles[step].In(locale),
			Valid:  len(errs) == 0,
			Errors: errs,
		})
	}
	return statuses, nil
}

// Advance moves the draft one step forward if its current step validates.
func (service *Service) Advance(context context.Context, id string) (*Draft, Navigation, error) {
	var navigation Navigation
	draft, err := service.mutate(context, id, func(draft *Draft) error {
		var err error
		navigation, err = draft.Advance(service.now())
		return err
	})
	return draft, navigation, err
}

// Retreat moves the draft one step back.
func (service *Service) Retreat(context context.Context, id string) (*Draft, Navigation, error) {
	var navigation Navigation
	draft, err := service.mutate(context, id, func(draft *Draft) error {
		navigation = draft.Retreat()
		return nil
	})
	return draft, navigation, err
}

// GoTo jumps to a step, forward only over valid steps.
func (service *Service) GoTo(context context.Context, id string, step int) (*Draft, Navigation, error) {
	var navigation Navigation
	draft, err := service.mutate(context, id, func(draft *Draft) error {
		var err error
		navigation, err = draft.GoTo(step, service.now())
		return err
	})
	return draft, navigation, err
}

// # Team

// AddCollaborator appends a blank team member and returns its index.
func (service *Service) AddCollaborator(context context.Context, id string) (*Draft, int, error) {
	var index int
	draft, err := service.mutate(context, id, func(draft *Draft) error {
		var err error
		index, err = draft.AddCollaborator()
		return err
	})
	return draft, index, err
}

func (service *Service) UpdateCollaborator(context context.Context, id string, index int, collaborator Collaborator) (*Draft, error) {
	return service.mutate(context, id, func(draft *Draft) error {
		return draft.UpdateCollaborator(index, collaborator)
	})
}

func (service *Service) RemoveCollaborator(context context.Context, id string, index int) (*Draft, error) {
	return service.mutate(context, id, func(draft *Draft) error {
		return draft.RemoveCollaborator(index)
	})
}

// # Media

// Upload describes one incoming file.
type Upload struct {
	FileName string
	Size     int64
	Body     io.Reader
}

/*
UploadMedia stores a poster, still or subtitle file for the draft.

Description: The object key is written into the draft. A new poster or
subtitle replaces the previous object; stills append up to three.

Returns:
  - *Draft: The updated draft
  - error: VALIDATION_ERROR for a wrong type or size, UNPROCESSABLE when stills are full
*/
func (service *Service) UploadMedia(context context.Context, id string, kind MediaKind, upload Upload) (*Draft, error) {
	draft, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	contentType := storage.ContentTypeFor(upload.FileName)
	if contentType == "" || !kind.Accepts(contentType) {
		return nil, errUnsupportedType
	}
	if upload.Size <= 0 || upload.Size > kind.MaxBytes() {
		return nil, errFileTooLarge
	}
	if kind == MediaStill && len(draft.Deliverables.StillsFiles) >= MaxStills {
		return nil, apperr.Unprocessable("At most 3 stills")
	}

	key := objectKey(draft.ID, kind, uuid.New(), upload.FileName)
	if err := service.media.Put(context, key, upload.Body, upload.Size, contentType); err != nil {
		return nil, apperr.Internal(err)
	}

	var replaced string
	switch kind {
	case MediaPoster:
		replaced, draft.Deliverables.PosterFile = draft.Deliverables.PosterFile, key
	case MediaSubtitles:
		replaced, draft.Deliverables.SubtitlesFile = draft.Deliverables.SubtitlesFile, key
	case MediaStill:
		draft.Deliverables.StillsFiles = append(draft.Deliverables.StillsFiles, key)
	}
	draft.UpdatedAt = service.now()

	if err := service.drafts.Save(context, draft); err != nil {
		return nil, err
	}

	if replaced != "" {
		service.removeObject(context, replaced)
	}

	service.logger.InfoContext(context, "draft_media_uploaded",
		slog.String("draft_id", draft.ID),
		slog.String("kind", string(kind)),
		slog.Int64("size", upload.Size),
	)
	return draft, nil
}

// RemoveStill deletes the still at index.
func (service *Service) RemoveStill(context context.Context, id string, index int) (*Draft, error) {
	var removed string
	draft, err := service.mutate(context, id, func(draft *Draft) error {
		stills := draft.Deliverables.StillsFiles
		if index < 0 || index >= len(stills) {
			return apperr.NotFound("Still")
		}
		removed = stills[index]
		draft.Deliverables.StillsFiles = append(stills[:index], stills[index+1:]...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	service.removeObject(context, removed)
	return draft, nil
}

// # Final Submit

/*
Submit turns a complete draft into a Submission of the open festival.

Description:
 1. Refuses when no festival accepts films (SUBMISSIONS_CLOSED).
 2. Re-validates steps 1 to 4. On failure the draft is moved back to the
    first failing step and the error carries that step and its fields.
 3. Persists the Submission, enqueues its handoff and deletes the draft.
    A draft that was already submitted (its deletion failed) yields the
    stored Submission again. A failed enqueue is recovered by the worker's
    handoff sweep.

Returns:
  - *Confirmation: Summary for the success screen
  - error: SUBMISSIONS_CLOSED, UNPROCESSABLE, STEP_INVALID or storage errors
*/
func (service *Service) Submit(context context.Context, id string) (*Confirmation, error) {
	draft, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	festival, err := service.festivals.OpenForSubmissions(context)
	if err != nil {
		return nil, err
	}

	now := service.now()
	navigation, err := draft.CheckSubmittable(now)
	if err != nil {
		if navigation.Moved {
			draft.UpdatedAt = now
			if saveErr := service.drafts.Save(context, draft); saveErr != nil {
				return nil, saveErr
			}
		}
		return nil, err
	}

	candidate := FromDraft(uuid.New(), festival.ID, draft, now)
	submission, err := service.repo.Create(context, candidate)
	if err != nil {
		return nil, err
	}

	if submission.ID == candidate.ID {
		service.logger.InfoContext(context, "submission_received",
			slog.String("submission_id", submission.ID),
			slog.String("festival_id", festival.ID),
			slog.String("classification", string(submission.Classification)),
		)
	} else {
		service.logger.InfoContext(context, "submission_resubmitted",
			slog.String("submission_id", submission.ID),
			slog.String("draft_id", id),
		)
	}

	payload := queue.HandoffPayload{SubmissionID: submission.ID, FestivalID: submission.FestivalID}
	if err := service.handoff.EnqueueHandoff(context, payload); err != nil {
		service.logger.ErrorContext(context, "handoff_enqueue_failed",
			slog.String("submission_id", submission.ID),
			slog.Any("error", err),
		)
	}

	if err := service.deleteDraft(context, id); err != nil {
		service.logger.WarnContext(context, "draft_cleanup_failed", slog.String("draft_id", id), slog.Any("error", err))
	}

	confirmation := submission.Confirm()
	return &confirmation, nil
}

// # Helpers

func (service *Service) load(context context.Context, id string) (*Draft, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("Draft")
	}
	return service.drafts.Load(context, id)
}

// mutate loads the draft, applies change and saves it only when change succeeds.
func (service *Service) mutate(context context.Context, id string, change func(*Draft) error) (*Draft, error) {
	draft, err := service.load(context, id)
	if err != nil {
		return nil, err
	}

	if err := change(draft); err != nil {
		return nil, err
	}

	draft.UpdatedAt = service.now()
	if err := service.drafts.Save(context, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (service *Service) deleteDraft(context context.Context, id string) error {
	if err := service.drafts.Delete(context, id); err != nil {
		return err
	}
	service.logger.InfoContext(context, "draft_deleted", slog.String("draft_id", id))
	return nil
}

func (service *Service) removeMedia(context context.Context, draft *Draft) {
	keys := append([]string{draft.Deliverables.PosterFile, draft.Deliverables.SubtitlesFile}, draft.Deliverables.StillsFiles...)
	for _, key := range keys {
		if key != "" {
			service.removeObject(context, key)
		}
	}
}

// removeObject deletes an orphaned upload. Failures only leak storage.
func (service *Service) removeObject(context context.Context, key string) {
	if err := service.media.Remove(context, key); err != nil {
		service.logger.WarnContext(context, "media_remove_failed", slog.String("key", key), slog.Any("error", err))
	}
}
