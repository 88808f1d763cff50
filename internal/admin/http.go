// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package admin implements the festival admin dashboard: submission review,
gallery curation and statistics.

Admin accounts are scoped to one festival through their token. Unscoped
super admins act on the active festival.
*/
package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marsai/festival/internal/platform/middleware"
	requestutil "github.com/marsai/festival/internal/platform/request"
	"github.com/marsai/festival/internal/platform/respond"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/internal/submission"
	"github.com/marsai/festival/pkg/pagination"
)

// Handler implements the admin HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new admin [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the dashboard endpoints, mounted at /admin.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireRole(sec.RoleAdmin))

		admin.Get("/stats", handler.stats)

		admin.Get("/submissions", handler.listSubmissions)
		admin.Get("/submissions/{id}", handler.getSubmission)
		admin.Put("/submissions/{id}/status", handler.setStatus)
		admin.Post("/submissions/{id}/publish", handler.publish)
		admin.Delete("/submissions/{id}/publish", handler.unpublish)
	})

	return router
}

func identity(request *http.Request) (sec.Identity, error) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		return sec.Identity{}, err
	}
	return claims.Identity(), nil
}

/*
GET /api/v1/admin/submissions.

Request (query):
  - q: search in title and director
  - status: all | pending | validated | rejected
  - page, limit: default 20, max 100

Response:
  - 200: {data: []SubmissionSummary, meta: pagination.Meta}
*/
func (handler *Handler) listSubmissions(writer http.ResponseWriter, request *http.Request) {
	admin, err := identity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	status := request.URL.Query().Get("status")
	if status == StatusAll {
		status = ""
	}

	params := pagination.FromRequest(request)
	summaries, meta, err := handler.service.ListSubmissions(request.Context(), admin, ListFilter{
		Query:  request.URL.Query().Get("q"),
		Status: submission.Status(status),
	}, params)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, summaries, meta)
}

func (handler *Handler) getSubmission(writer http.ResponseWriter, request *http.Request) {
	admin, err := identity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetSubmission(request.Context(), admin, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, found)
}

/*
PUT /api/v1/admin/submissions/{id}/status.

Request:
  - body: {"status": "pending" | "validated" | "rejected"}

Response:
  - 200: Submission
*/
func (handler *Handler) setStatus(writer http.ResponseWriter, request *http.Request) {
	admin, err := identity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Status submission.Status `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.SetStatus(request.Context(), admin, requestutil.Param(request, "id"), input.Status)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, updated)
}

/*
POST /api/v1/admin/submissions/{id}/publish.

Request:
  - body: PublishInput

Response:
  - 200: gallery.Film
  - 422: submission is not validated
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	admin, err := identity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input PublishInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	film, err := handler.service.Publish(request.Context(), admin, requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, film)
}

func (handler *Handler) unpublish(writer http.ResponseWriter, request *http.Request) {
	admin, err := identity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unpublish(request.Context(), admin, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
GET /api/v1/admin/stats.

Response:
  - 200: Stats
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	admin, err := identity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Stats(request.Context(), admin)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}
