// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package account manages accounts once they exist: the signed-in user's
profile and devices, and the jury and admin accounts of a festival.

# Staff Provisioning

Admins add jury members to their own festival. Super admins add admins and
jury to any festival. Super admin accounts are never managed through the
API.
*/
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/marsai/festival/internal/platform/constants"
	"github.com/marsai/festival/internal/platform/middleware"
	requestutil "github.com/marsai/festival/internal/platform/request"
	"github.com/marsai/festival/internal/platform/respond"
	"github.com/marsai/festival/internal/platform/sec"
)

// Handler implements the HTTP layer for account management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Routes returns the self-service endpoints, mounted at /account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Patch("/me", handler.updateMe)
	router.Get("/me/sessions", handler.listSessions)
	router.Delete("/me/sessions/{id}", handler.revokeSession)

	return router
}

// StaffRoutes returns the staff provisioning endpoints, mounted at /admin/accounts.
func (handler *Handler) StaffRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listStaff)
	router.Post("/", handler.createStaff)
	router.Patch("/{id}", handler.updateStaff)
	router.Delete("/{id}", handler.deleteStaff)

	return router
}

// # Self Service

type updateMeRequest struct {
	DisplayName *string `json:"display_name"`
}

/*
PATCH /api/v1/account/me.

Response:
  - 200: User
  - 400: Validation failure
*/
func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateMeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateProfile(request.Context(), claims.UserID, UpdateProfileInput{DisplayName: input.DisplayName})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) listSessions(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var currentRefreshToken string
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		currentRefreshToken = cookie.Value
	}

	sessions, err := handler.accountService.ListSessions(request.Context(), claims.UserID, currentRefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, sessions)
}

func (handler *Handler) revokeSession(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.RevokeSession(request.Context(), claims.UserID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Staff

type createStaffRequest struct {
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Password    string       `json:"password"`
	DisplayName string       `json:"display_name"`
	Role        sec.UserRole `json:"role"`
	FestivalID  string       `json:"festival_id"`
}

type updateStaffRequest struct {
	DisplayName *string       `json:"display_name"`
	Role        *sec.UserRole `json:"role"`
	FestivalID  *string       `json:"festival_id"`
	IsActive    *bool         `json:"is_active"`
}

/*
GET /api/v1/admin/accounts.

Request (query):
  - role, festival_id: super admin filters

Response:
  - 200: []User
*/
func (handler *Handler) listStaff(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	values := request.URL.Query()
	users, err := handler.accountService.ListStaff(request.Context(), claims.Identity(), StaffFilter{
		Role:       sec.UserRole(values.Get(FieldRole)),
		FestivalID: values.Get(FieldFestivalID),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, users)
}

/*
POST /api/v1/admin/accounts.

Response:
  - 201: User
  - 403: Role outside the caller's reach
  - 409: Email or username already in use
*/
func (handler *Handler) createStaff(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createStaffRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.CreateStaff(request.Context(), claims.Identity(), StaffInput{
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
		Role:        input.Role,
		FestivalID:  input.FestivalID,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, user)
}

func (handler *Handler) updateStaff(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateStaffRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.UpdateStaff(request.Context(), claims.Identity(), requestutil.Param(request, "id"), StaffUpdate{
		DisplayName: input.DisplayName,
		Role:        input.Role,
		FestivalID:  input.FestivalID,
		IsActive:    input.IsActive,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

func (handler *Handler) deleteStaff(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.DeleteStaff(request.Context(), claims.Identity(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
