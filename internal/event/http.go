// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package event handles visitor registration for the festival events.

Four events share one catalog across editions. Each has a seat capacity
shared by its days and time slots; a visitor books at most one seat per
event and may cancel every booking by email.
*/
package event

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/marsai/festival/internal/platform/request"
	"github.com/marsai/festival/internal/platform/respond"
)

// Handler implements the event HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a new event [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the public event endpoints, mounted at /events.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.programme)
	router.Post("/registrations", handler.register)
	router.Post("/registrations/cancel", handler.cancel)

	return router
}

/*
GET /api/v1/events.

Request (query):
  - festival: ID or slug, default the active festival

Response:
  - 200: Programme
*/
func (handler *Handler) programme(writer http.ResponseWriter, request *http.Request) {
	programme, err := handler.service.Programme(request.Context(), request.URL.Query().Get("festival"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, programme)
}

/*
POST /api/v1/events/registrations.

Request:
  - body: RegistrationInput

Response:
  - 201: Registration
  - 400: validation errors
  - 409: already registered for one of the events
  - 422: an event is full
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input RegistrationInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	registration, err := handler.service.Register(request.Context(), request.URL.Query().Get("festival"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, registration)
}

/*
POST /api/v1/events/registrations/cancel.

Request:
  - body: {"email": "..."}

Response:
  - 200: CancelResult
  - 404: no registration for this email
*/
func (handler *Handler) cancel(writer http.ResponseWriter, request *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Cancel(request.Context(), request.URL.Query().Get("festival"), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}
