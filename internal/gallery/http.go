// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package gallery serves the public film gallery.

Visitors filter the published catalogue of a festival by text, AI tools,
countries, category and official selection. Pages hold twenty films.

# Filter Token

Every page carries meta.filter_token, a fingerprint of the filter that
produced it. Clients send it back with the next request; when the filter
changed in between, the token no longer matches and page 1 is served.
*/
package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/marsai/festival/internal/platform/request"
	"github.com/marsai/festival/internal/platform/respond"
	"github.com/marsai/festival/pkg/pagination"
	"github.com/marsai/festival/pkg/query"
)

// Handler implements the gallery HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new gallery [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the gallery endpoints, mounted at /films.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.browse)
	router.Get("/{id}", handler.getFilm)

	return router
}

/*
GET /api/v1/films.

Request (query):
  - q: search in titles and director
  - ai_tools: Script,Image,Video,Sound (repeatable)
  - countries: ISO codes (repeatable)
  - category: Fiction | Documentaire | Animation | Expérimental | all
  - official: true to keep the official selection only
  - page, filter_token, festival (ID or slug, default the active festival)

Response:
  - 200: {data: []Film, meta: {page, limit, total, total_pages, filter_token, catalogue_total}}
*/
func (handler *Handler) browse(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()

	page, err := handler.service.Browse(request.Context(), Query{
		Festival: values.Get("festival"),
		Filter: Filter{
			Query:        values.Get("q"),
			AITools:      query.Values(values["ai_tools"]),
			Countries:    query.Values(values["countries"]),
			Category:     Category(values.Get("category")),
			OfficialOnly: requestutil.Bool(request, "official"),
		},
		Page:        pagination.PageFromRequest(request),
		FilterToken: values.Get("filter_token"),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.WithMeta(writer, page.Films, page.Meta)
}

func (handler *Handler) getFilm(writer http.ResponseWriter, request *http.Request) {
	film, err := handler.service.GetFilm(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, film)
}
