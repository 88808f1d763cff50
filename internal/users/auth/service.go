// Copyright (c) 2026 marsAI. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/internal/platform/validate"
	"github.com/marsai/festival/pkg/uuid"
)

// # Contracts & Types

// TokenProvider signs access tokens. [*sec.TokenService] satisfies it.
type TokenProvider interface {
	GenerateAccessToken(identity sec.Identity, timeToLive time.Duration) (string, error)
}

// Service implements account authentication use cases.
type Service struct {
	userRepository       UserRepository
	sessionRepository    SessionRepository
	resetTokenRepository ResetTokenRepository
	tokenProvider        TokenProvider
	logger               *slog.Logger
	now                  func() time.Time
}

// NewService constructs a new [Service]. now may be nil, in which case the
// wall clock is used.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	resetRepo ResetTokenRepository,
	tokenProv TokenProvider,
	logger *slog.Logger,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		userRepository:       userRepo,
		sessionRepository:    sessionRepo,
		resetTokenRepository: resetRepo,
		tokenProvider:        tokenProv,
		logger:               logger,
		now:                  now,
	}
}

// # Registration Flow

// RegisterInput holds the data required to create a visitor account.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

/*
Register validates, hashes and persists a new visitor account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: VALIDATION_ERROR, CONFLICT (email or username taken) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = NormalizeEmail(input.Email)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, MinUsernameLength).
		MaxLen(FieldUsername, input.Username, MaxUsernameLength).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, MaxEmailLength).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		MaxLen(FieldDisplayName, input.DisplayName, MaxDisplayNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.userRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("An account with this email already exists")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	if _, err := service.userRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("An account with this username already exists")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		Role:         sec.RoleVisitor,
		IsActive:     true,
		CreatedAt:    service.now(),
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "account_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Login     string // Email or username
	Password  string
	UserAgent string
	IPAddress string
}

// LoginSession is a freshly issued token pair.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates credentials and opens a refresh session.

Description: The login is looked up as an email when it contains "@", as a
username otherwise. Unknown accounts and wrong passwords produce the same
error so callers cannot enumerate accounts.

Returns:
  - *LoginSession: Access token, refresh token and the account
  - error: VALIDATION_ERROR, UNAUTHORIZED, FORBIDDEN (disabled account)
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginSession, error) {
	login := strings.TrimSpace(input.Login)

	validator := &validate.Validator{}
	validator.Required(FieldLogin, login).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinLoginPasswordLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var user *User
	var err error
	if strings.Contains(login, "@") {
		user, err = service.userRepository.FindByEmail(context, NormalizeEmail(login))
	} else {
		user, err = service.userRepository.FindByUsername(context, login)
	}
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, err
	}

	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid email or password")
	}
	if !user.IsActive {
		return nil, apperr.Forbidden("Account is disabled")
	}

	session, err := service.issue(context, user, input.UserAgent, input.IPAddress)
	if err != nil {
		return nil, err
	}

	if err := service.userRepository.TouchLogin(context, user.ID, service.now()); err != nil {
		service.logger.WarnContext(context, "login_touch_failed", slog.String("user_id", user.ID), slog.Any("error", err))
	}

	service.logger.InfoContext(context, "login_succeeded", slog.String("user_id", user.ID), slog.String("role", string(user.Role)))
	return session, nil
}

// issue signs an access token and persists a new refresh session for user.
func (service *Service) issue(context context.Context, user *User, userAgent, ipAddress string) (*LoginSession, error) {
	accessToken, err := service.tokenProvider.GenerateAccessToken(user.Identity(), AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	now := service.now()
	session := &Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: sec.HashToken(refreshToken),
		UserAgent: userAgent,
		IPAddress: ipAddress,
		ExpiresAt: now.Add(RefreshTokenTTL),
		CreatedAt: now,
	}
	if err := service.sessionRepository.Create(context, session); err != nil {
		return nil, err
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: session.ExpiresAt,
		User:                  user,
	}, nil
}

/*
Logout revokes the session behind refreshToken. Unknown or already revoked
tokens are not an error.
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil
		}
		return err
	}

	if _, err := service.sessionRepository.Revoke(context, session.ID); err != nil {
		return err
	}
	return nil
}

// # Session Management

/*
RefreshSession rotates a refresh token.

Description: The presented session is revoked and a new pair is issued.
Presenting a token that was already rotated away revokes every session of
the account, since only a copied token can be replayed that way.

Returns:
  - *LoginSession: New credentials
  - error: UNAUTHORIZED for unknown, expired or replayed tokens
*/
func (service *Service) RefreshSession(context context.Context, refreshToken, userAgent, ipAddress string) (*LoginSession, error) {
	invalid := apperr.Unauthorized("Invalid or expired refresh token")

	session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(refreshToken))
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, invalid
		}
		return nil, err
	}

	if session.IsRevoked {
		service.revokeReplayed(context, session)
		return nil, invalid
	}
	if !session.Usable(service.now()) {
		return nil, invalid
	}

	revoked, err := service.sessionRepository.Revoke(context, session.ID)
	if err != nil {
		return nil, err
	}
	if !revoked {
		service.revokeReplayed(context, session)
		return nil, invalid
	}

	user, err := service.userRepository.FindByID(context, session.UserID)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, invalid
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.Forbidden("Account is disabled")
	}

	return service.issue(context, user, userAgent, ipAddress)
}

func (service *Service) revokeReplayed(context context.Context, session *Session) {
	service.logger.WarnContext(context, "refresh_token_reused",
		slog.String("user_id", session.UserID),
		slog.String("session_id", session.ID),
	)
	if err := service.sessionRepository.RevokeAll(context, session.UserID); err != nil {
		service.logger.ErrorContext(context, "revoke_sessions_failed", slog.String("user_id", session.UserID), slog.Any("error", err))
	}
}

// Me returns the account behind an access token.
func (service *Service) Me(context context.Context, userID string) (*User, error) {
	return service.userRepository.FindByID(context, userID)
}

// # Password Recovery

/*
RequestPasswordReset stores a one-hour reset token for the account behind
email.

Returns:
  - string: The token, or "" when no account matches (no enumeration)
  - error: VALIDATION_ERROR or storage failures
*/
func (service *Service) RequestPasswordReset(context context.Context, email string) (string, error) {
	email = NormalizeEmail(email)

	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	if err := validator.Err(); err != nil {
		return "", err
	}

	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return "", nil
		}
		return "", err
	}

	token, err := sec.GenerateSecureToken(ResetTokenLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_generate_reset_token_failed: %w", err)
	}

	if err := service.resetTokenRepository.Set(context, token, user.ID, ResetTokenTTL); err != nil {
		return "", err
	}

	service.logger.InfoContext(context, "password_reset_requested", slog.String("user_id", user.ID))
	return token, nil
}

/*
ResetPassword completes the forgot-password flow and signs the account out
everywhere.

Returns:
  - error: VALIDATION_ERROR, UNPROCESSABLE (unknown or expired token) or storage failures
*/
func (service *Service) ResetPassword(context context.Context, token, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token).
		Required(FieldPassword, newPassword).
		MinLen(FieldPassword, newPassword, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	userID, err := service.resetTokenRepository.Get(context, token)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return apperr.Unprocessable("Invalid or expired reset token")
		}
		return err
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_reset_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	if err := service.sessionRepository.RevokeAll(context, userID); err != nil {
		return err
	}
	if err := service.resetTokenRepository.Delete(context, token); err != nil {
		service.logger.WarnContext(context, "reset_token_delete_failed", slog.Any("error", err))
	}

	service.logger.InfoContext(context, "password_reset", slog.String("user_id", userID))
	return nil
}

/*
ChangePassword updates the password of an authenticated account.

Description: Every other session is revoked; the session behind
currentRefreshToken, when given, stays signed in.
*/
func (service *Service) ChangePassword(context context.Context, userID, currentPassword, newPassword, currentRefreshToken string) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, currentPassword).
		Required(FieldNewPassword, newPassword).
		MinLen(FieldNewPassword, newPassword, MinPasswordLength)
	if err := validator.Err(); err != nil {
		return err
	}

	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return err
	}

	if currentRefreshToken != "" {
		session, err := service.sessionRepository.FindByTokenHash(context, sec.HashToken(currentRefreshToken))
		if err == nil && session.UserID == userID {
			return service.sessionRepository.RevokeOthers(context, userID, session.ID)
		}
	}
	return service.sessionRepository.RevokeAll(context, userID)
}
