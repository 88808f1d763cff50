// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package festival manages festival instances, the tenants of the platform.

# Routing Strategy

  - Public: the active edition, without secrets (GET /festivals/active).
  - Super admin CMS: CRUD, branding and activation (/admin/festivals).

Every other domain asks [Service.OpenForSubmissions] or [Service.Active]
which edition it is serving.
*/
package festival

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marsai/festival/internal/platform/middleware"
	requestutil "github.com/marsai/festival/internal/platform/request"
	"github.com/marsai/festival/internal/platform/respond"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/pkg/slice"
)

// Handler implements the HTTP layer for festival instances.
type Handler struct {
	service *Service
}

// NewHandler constructs a new festival [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// PublicRoutes exposes the current edition to every visitor.
func (handler *Handler) PublicRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/active", handler.getActive)
	return router
}

// Routes returns the super admin CMS endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Group(func(cms chi.Router) {
		cms.Use(middleware.RequireRole(sec.RoleSuperAdmin))

		cms.Get("/", handler.listFestivals)
		cms.Post("/", handler.createFestival)
		cms.Get("/{identifier}", handler.getFestival)
		cms.Patch("/{id}", handler.updateFestival)
		cms.Put("/{id}/branding", handler.updateBranding)
		cms.Post("/{id}/activate", handler.activate)
		cms.Post("/{id}/archive", handler.archive)
	})

	return router
}

/*
GET /api/v1/festivals/active.

Response:
  - 200: Festival (secrets omitted)
  - 404: no festival is active
*/
func (handler *Handler) getActive(writer http.ResponseWriter, request *http.Request) {
	festival, err := handler.service.Active(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, festival)
}

/*
GET /api/v1/admin/festivals.

Response:
  - 200: []AdminView
*/
func (handler *Handler) listFestivals(writer http.ResponseWriter, request *http.Request) {
	festivals, err := handler.service.ListFestivals(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, slice.Map(festivals, (*Festival).ForAdmin))
}

func (handler *Handler) getFestival(writer http.ResponseWriter, request *http.Request) {
	festival, err := handler.service.GetFestival(request.Context(), requestutil.Param(request, "identifier"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, festival.ForAdmin())
}

/*
POST /api/v1/admin/festivals.

Request:
  - body: CreateInput

Response:
  - 201: AdminView
  - 400: validation errors
  - 409: slug already taken
*/
func (handler *Handler) createFestival(writer http.ResponseWriter, request *http.Request) {
	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	festival, err := handler.service.CreateFestival(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, festival.ForAdmin())
}

func (handler *Handler) updateFestival(writer http.ResponseWriter, request *http.Request) {
	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	festival, err := handler.service.UpdateFestival(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, festival.ForAdmin())
}

func (handler *Handler) updateBranding(writer http.ResponseWriter, request *http.Request) {
	var input BrandingInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	festival, err := handler.service.UpdateBranding(request.Context(), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, festival.ForAdmin())
}

func (handler *Handler) activate(writer http.ResponseWriter, request *http.Request) {
	festival, err := handler.service.Activate(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, festival.ForAdmin())
}

func (handler *Handler) archive(writer http.ResponseWriter, request *http.Request) {
	festival, err := handler.service.Archive(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, festival.ForAdmin())
}
