// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package jury implements the jury workspace.

Jurors score the validated films of their festival on creativity,
technique and narrative, from 1 to 10. Saving keeps the evaluation open;
submitting locks it until the juror reopens it.
*/
package jury

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marsai/festival/internal/platform/middleware"
	requestutil "github.com/marsai/festival/internal/platform/request"
	"github.com/marsai/festival/internal/platform/respond"
	"github.com/marsai/festival/internal/platform/sec"
)

// Handler implements the jury HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new jury [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the workspace endpoints, mounted at /jury.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(jury chi.Router) {
		jury.Use(middleware.RequireRole(sec.RoleJury))

		jury.Get("/films", handler.workspace)
		jury.Get("/films/{id}", handler.getFilm)
		jury.Put("/films/{id}/evaluation", handler.rate)
		jury.Post("/films/{id}/evaluation/submit", handler.submit)
		jury.Post("/films/{id}/evaluation/reopen", handler.reopen)
	})

	return router
}

func juror(request *http.Request) (sec.Identity, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return sec.Identity{}, err
	}
	return claims.Identity(), nil
}

/*
GET /api/v1/jury/films.

Request (query):
  - q: search in title and director
  - rated_only, unrated_only: booleans; both together yield an empty list

Response:
  - 200: Workspace
*/
func (handler *Handler) workspace(writer http.ResponseWriter, request *http.Request) {
	identity, err := juror(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	workspace, err := handler.service.Workspace(request.Context(), identity, Filter{
		Query:       request.URL.Query().Get("q"),
		RatedOnly:   requestutil.Bool(request, "rated_only"),
		UnratedOnly: requestutil.Bool(request, "unrated_only"),
	}, requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, workspace)
}

func (handler *Handler) getFilm(writer http.ResponseWriter, request *http.Request) {
	identity, err := juror(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	film, err := handler.service.Film(request.Context(), identity, requestutil.Param(request, "id"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, film)
}

/*
PUT /api/v1/jury/films/{id}/evaluation.

Request:
  - body: RateInput; omitted criteria keep their value

Response:
  - 200: EvaluationView
  - 400: score outside 1..10
  - 409: evaluation already submitted
*/
func (handler *Handler) rate(writer http.ResponseWriter, request *http.Request) {
	identity, input, ok := handler.decodeRating(writer, request)
	if !ok {
		return
	}

	view, err := handler.service.Rate(request.Context(), identity, requestutil.Param(request, "id"), input, requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

/*
POST /api/v1/jury/films/{id}/evaluation/submit.

Request:
  - body: optional RateInput applied before locking

Response:
  - 200: EvaluationView with submitted=true
  - 409: evaluation already submitted
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	identity, input, ok := handler.decodeRating(writer, request)
	if !ok {
		return
	}

	view, err := handler.service.Submit(request.Context(), identity, requestutil.Param(request, "id"), input, requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) reopen(writer http.ResponseWriter, request *http.Request) {
	identity, err := juror(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.Reopen(request.Context(), identity, requestutil.Param(request, "id"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

// decodeRating reads an optional RateInput body. An empty body is a zero input.
func (handler *Handler) decodeRating(writer http.ResponseWriter, request *http.Request) (sec.Identity, RateInput, bool) {
	var input RateInput

	identity, err := juror(request)
	if err != nil {
		respond.Error(writer, request, err)
		return identity, input, false
	}

	if request.ContentLength != 0 {
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return identity, input, false
		}
	}
	return identity, input, true
}
