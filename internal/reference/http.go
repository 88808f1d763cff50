// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package reference serves the option lists the submission form and the
gallery filters are built from, labelled in the request locale.

Language and country names come from CLDR through golang.org/x/text; the
festival-specific values carry their own French and English labels.
*/
package reference

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/marsai/festival/internal/platform/request"
	"github.com/marsai/festival/internal/platform/respond"
)

// Handler implements the reference data endpoints.
type Handler struct{}

// NewHandler constructs a new reference [Handler].
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns the reference endpoints, mounted at /reference.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.names)
	router.Get("/{list}", handler.list)

	return router
}

func (handler *Handler) names(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, Names())
}

/*
GET /api/v1/reference/{list}.

Response:
  - 200: []Option
  - 404: unknown list
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	options, err := Lookup(requestutil.Param(request, "list"), requestutil.Locale(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, options)
}
