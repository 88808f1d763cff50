// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package submission implements the five-step film submission wizard.

A draft lives server-side under an unguessable ID. Clients patch it field
by field, move between steps under the step predicates, edit the team,
upload media and finally submit it to the open festival.

# Routing Strategy

All endpoints are public; holding the draft ID is the authorization.
Wizard errors answer 422 STEP_INVALID with meta.step naming the step the
client must display.
*/
package submission

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marsai/festival/internal/platform/apperr"
	requestutil "github.com/marsai/festival/internal/platform/request"
	"github.com/marsai/festival/internal/platform/respond"
	"github.com/marsai/festival/internal/platform/validate"
)

// multipartOverhead is the slack allowed over a file's size limit for the
// multipart framing.
const multipartOverhead = 64 << 10

// Handler implements the HTTP layer of the wizard.
type Handler struct {
	service *Service
}

// NewHandler constructs a new submission [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the draft endpoints, mounted at /drafts.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/", handler.createDraft)

	router.Route("/{id}", func(draft chi.Router) {
		draft.Get("/", handler.getDraft)
		draft.Patch("/", handler.updateDraft)
		draft.Delete("/", handler.discardDraft)

		// Navigation
		draft.Get("/validation", handler.validation)
		draft.Post("/advance", handler.advance)
		draft.Post("/retreat", handler.retreat)
		draft.Put("/step", handler.goTo)

		// Team
		draft.Post("/collaborators", handler.addCollaborator)
		draft.Put("/collaborators/{index}", handler.updateCollaborator)
		draft.Delete("/collaborators/{index}", handler.removeCollaborator)

		// Media
		draft.Post("/media/{kind}", handler.uploadMedia)
		draft.Delete("/media/stills/{index}", handler.removeStill)

		draft.Post("/submit", handler.submit)
	})

	return router
}

// navigationResponse pairs the draft with the transition that produced it.
type navigationResponse struct {
	Draft      *Draft     `json:"draft"`
	Navigation Navigation `json:"navigation"`
}

// # Draft Lifecycle

/*
POST /api/v1/drafts.

Response:
  - 201: Draft (step 1, defaults applied)
*/
func (handler *Handler) createDraft(writer http.ResponseWriter, request *http.Request) {
	draft, err := handler.service.CreateDraft(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, draft)
}

/*
GET /api/v1/drafts/{id}.

Response:
  - 200: DraftView (draft plus presigned media links)
  - 404: unknown or expired draft
*/
func (handler *Handler) getDraft(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.GetDraft(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

/*
PATCH /api/v1/drafts/{id}.

Request:
  - body: Patch ({"director": {...}, "film": {...}, "ai_usage": {...}, "deliverables": {...}})

Response:
  - 200: Draft
*/
func (handler *Handler) updateDraft(writer http.ResponseWriter, request *http.Request) {
	var patch Patch
	if err := requestutil.DecodeJSON(request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.UpdateDraft(request.Context(), requestutil.Param(request, "id"), patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

func (handler *Handler) discardDraft(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DiscardDraft(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Navigation

/*
GET /api/v1/drafts/{id}/validation.

Response:
  - 200: []StepStatus (titles and field errors in the request locale)
*/
func (handler *Handler) validation(writer http.ResponseWriter, request *http.Request) {
	statuses, err := handler.service.Validation(request.Context(), requestutil.Param(request, "id"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, statuses)
}

/*
POST /api/v1/drafts/{id}/advance.

Response:
  - 200: {draft, navigation}
  - 422: STEP_INVALID with the current step's field errors
*/
func (handler *Handler) advance(writer http.ResponseWriter, request *http.Request) {
	draft, navigation, err := handler.service.Advance(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, navigationResponse{Draft: draft, Navigation: navigation})
}

func (handler *Handler) retreat(writer http.ResponseWriter, request *http.Request) {
	draft, navigation, err := handler.service.Retreat(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, navigationResponse{Draft: draft, Navigation: navigation})
}

/*
PUT /api/v1/drafts/{id}/step.

Request:
  - body: {"step": int}

Response:
  - 200: {draft, navigation}
  - 422: STEP_INVALID naming the first step that blocks a forward jump
*/
func (handler *Handler) goTo(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Step int `json:"step"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, navigation, err := handler.service.GoTo(request.Context(), requestutil.Param(request, "id"), body.Step)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, navigationResponse{Draft: draft, Navigation: navigation})
}

// # Team

func (handler *Handler) addCollaborator(writer http.ResponseWriter, request *http.Request) {
	draft, index, err := handler.service.AddCollaborator(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.JSON(writer, http.StatusCreated, respond.MetaEnvelope{Data: draft, Meta: map[string]int{"index": index}})
}

func (handler *Handler) updateCollaborator(writer http.ResponseWriter, request *http.Request) {
	index, err := requestutil.IntParam(request, "index")
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Collaborator"))
		return
	}

	var collaborator Collaborator
	if err := requestutil.DecodeJSON(request, &collaborator); err != nil {
		respond.Error(writer, request, err)
		return
	}

	draft, err := handler.service.UpdateCollaborator(request.Context(), requestutil.Param(request, "id"), index, collaborator)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

func (handler *Handler) removeCollaborator(writer http.ResponseWriter, request *http.Request) {
	index, err := requestutil.IntParam(request, "index")
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Collaborator"))
		return
	}

	draft, err := handler.service.RemoveCollaborator(request.Context(), requestutil.Param(request, "id"), index)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

// # Media

/*
POST /api/v1/drafts/{id}/media/{kind}.

Request:
  - kind: poster | still | subtitles
  - body: multipart/form-data with a "file" part

Response:
  - 200: Draft with the new object key
  - 400: unsupported type or size
*/
func (handler *Handler) uploadMedia(writer http.ResponseWriter, request *http.Request) {
	kind, ok := ParseMediaKind(requestutil.Param(request, "kind"))
	if !ok {
		respond.Error(writer, request, apperr.NotFound("Media kind"))
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, kind.MaxBytes()+multipartOverhead)
	file, header, err := request.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, errFileTooLarge)
			return
		}
		respond.Error(writer, request, validate.RequiredError(FieldFile, "This field is required"))
		return
	}
	defer file.Close()

	draft, err := handler.service.UploadMedia(request.Context(), requestutil.Param(request, "id"), kind, Upload{
		FileName: header.Filename,
		Size:     header.Size,
		Body:     file,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

func (handler *Handler) removeStill(writer http.ResponseWriter, request *http.Request) {
	index, err := requestutil.IntParam(request, "index")
	if err != nil {
		respond.Error(writer, request, apperr.NotFound("Still"))
		return
	}

	draft, err := handler.service.RemoveStill(request.Context(), requestutil.Param(request, "id"), index)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, draft)
}

// # Final Submit

/*
POST /api/v1/drafts/{id}/submit.

Response:
  - 201: Confirmation
  - 422: SUBMISSIONS_CLOSED, or STEP_INVALID with meta.step set to the
    first failing step (the draft has been moved there)
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	confirmation, err := handler.service.Submit(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, confirmation)
}
