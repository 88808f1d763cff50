// Copyright (c) 2026 marsAI. All rights reserved.

/*
Package auth implements festival accounts and their sessions.

Visitors register themselves; staff accounts (jury, admin, super admin) are
provisioned by administrators. Every account signs in with its email or
username and receives a short-lived RS256 access token plus a refresh token
kept in an HttpOnly cookie scoped to /api/v1/auth.

# Sessions

Refresh sessions live in Postgres for thirty days and rotate on every use.
Replaying a rotated token revokes all sessions of the account. Password
reset tokens live in Redis for one hour; outside development they are never
returned to the caller.
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/constants"
	"github.com/marsai/festival/internal/platform/i18n"
	"github.com/marsai/festival/internal/platform/middleware"
	requestutil "github.com/marsai/festival/internal/platform/request"
	"github.com/marsai/festival/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService      *Service
	exposeResetToken bool
}

// NewHandler constructs a new [Handler]. exposeResetToken returns reset
// tokens in the forgot-password response, for development without email.
func NewHandler(service *Service, exposeResetToken bool) *Handler {
	return &Handler{authService: service, exposeResetToken: exposeResetToken}
}

// Routes returns the authentication endpoints, mounted at /auth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)
	router.Post("/logout", handler.logout)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
		r.Post("/change-password", handler.changePassword)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

/*
POST /api/v1/auth/register.

Request:
  - Body: registerRequest (username, email, password >= 8, display_name)

Response:
  - 201: User
  - 400: Validation failure
  - 409: Email or username already in use
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username:    input.Username,
		Email:       input.Email,
		Password:    input.Password,
		DisplayName: input.DisplayName,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
POST /api/v1/auth/login.

Request:
  - Body: loginRequest ("login" or "email", password >= 6)

Response:
  - 200: {access_token, token_type, expires_in, user} plus the refresh cookie
  - 401: Invalid credentials
  - 403: Disabled account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	login := input.Login
	if login == "" {
		login = input.Email
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Login:     login,
		Password:  input.Password,
		UserAgent: request.UserAgent(),
		IPAddress: getClientIP(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)
	respond.OK(writer, tokenBody(session))
}

/*
POST /api/v1/auth/logout.

Response:
  - 204: Session terminated (also when no session was open)
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err == nil && cookie.Value != "" {
		if err := handler.authService.Logout(request.Context(), cookie.Value); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respond.NoContent(writer)
}

/*
POST /api/v1/auth/refresh.

Response:
  - 200: {access_token, token_type, expires_in, user} plus the rotated cookie
  - 401: Missing, invalid, expired or replayed refresh token
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.Unauthorized("Invalid or expired refresh token"))
		return
	}

	session, err := handler.authService.RefreshSession(request.Context(), cookie.Value, request.UserAgent(), getClientIP(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	setRefreshCookie(writer, session)
	respond.OK(writer, tokenBody(session))
}

func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Me(request.Context(), claims.UserID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, user)
}

/*
POST /api/v1/auth/forgot-password.

Response:
  - 200: {message} whether or not the email is registered, plus
    {reset_token} in development
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, err := handler.authService.RequestPasswordReset(request.Context(), input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	body := map[string]string{
		FieldMessage: i18n.T(requestutil.Locale(request), "If this email is registered, a reset link has been sent."),
	}
	if handler.exposeResetToken && token != "" {
		body[FieldResetToken] = token
	}
	respond.OK(writer, body)
}

/*
POST /api/v1/auth/reset-password.

Response:
  - 204: Password updated, every session revoked
  - 400: Weak password
  - 422: Unknown or expired token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ResetPassword(request.Context(), input.Token, input.Password); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

/*
POST /api/v1/auth/change-password.

Response:
  - 204: Password changed, other sessions revoked
  - 401: Current password is incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var currentRefreshToken string
	if cookie, err := request.Cookie(constants.RefreshTokenCookieName); err == nil {
		currentRefreshToken = cookie.Value
	}

	err = handler.authService.ChangePassword(request.Context(), claims.UserID, input.CurrentPassword, input.NewPassword, currentRefreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Helpers

func setRefreshCookie(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func tokenBody(session *LoginSession) map[string]any {
	return map[string]any{
		FieldAccessToken: session.AccessToken,
		FieldTokenType:   "Bearer",
		FieldExpiresIn:   int(AccessTokenTTL / time.Second),
		FieldUser:        session.User,
	}
}

// getClientIP prefers the proxy headers over the socket address.
func getClientIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}
	if ip := request.Header.Get(constants.HeaderXForwardedFor); ip != "" {
		return ip
	}
	return request.RemoteAddr
}
