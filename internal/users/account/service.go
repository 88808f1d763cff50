// Copyright (c) 2026 marsAI. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/marsai/festival/internal/platform/apperr"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/internal/platform/validate"
	"github.com/marsai/festival/internal/users/auth"
	"github.com/marsai/festival/pkg/uuid"
)

// # Service Layer

// Service manages the signed-in account (profile, sessions) and the staff
// accounts administrators provision.
type Service struct {
	accountRepository AccountRepository
	sessionRepository SessionRepository
	festivals         Festivals
	logger            *slog.Logger
	now               func() time.Time
}

// NewService constructs a new [Service]. now may be nil, in which case the
// wall clock is used.
func NewService(
	accountRepo AccountRepository,
	sessionRepo SessionRepository,
	festivals Festivals,
	logger *slog.Logger,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		accountRepository: accountRepo,
		sessionRepository: sessionRepo,
		festivals:         festivals,
		logger:            logger,
		now:               now,
	}
}

// # Profile Management

// UpdateProfileInput defines the mutable subset of the own profile.
type UpdateProfileInput struct {
	DisplayName *string
}

/*
UpdateProfile applies a partial update to the signed-in account.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated account
  - error: VALIDATION_ERROR, NOT_FOUND or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldDisplayName, user.DisplayName).
		MaxLen(auth.FieldDisplayName, user.DisplayName, auth.MaxDisplayNameLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user.UpdatedAt = service.now()
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "profile_updated", slog.String("user_id", userID))
	return user, nil
}

// # Session Security

// ListSessions returns the open sessions of userID. The session behind
// currentRefreshToken, when given, is flagged as current.
func (service *Service) ListSessions(context context.Context, userID, currentRefreshToken string) ([]SessionInfo, error) {
	sessions, err := service.sessionRepository.FindActiveByUserID(context, userID)
	if err != nil {
		return nil, err
	}

	var currentHash string
	if currentRefreshToken != "" {
		currentHash = sec.HashToken(currentRefreshToken)
	}

	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, SessionInfo{
			ID:        session.ID,
			UserAgent: session.UserAgent,
			IPAddress: session.IPAddress,
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
			IsCurrent: currentHash != "" && session.TokenHash == currentHash,
		})
	}
	return infos, nil
}

// RevokeSession signs one device of userID out.
func (service *Service) RevokeSession(context context.Context, userID, sessionID string) error {
	if !uuid.Valid(sessionID) {
		return apperr.NotFound("Session")
	}
	return service.sessionRepository.RevokeOwned(context, userID, sessionID)
}

// # Staff Accounts

// StaffInput holds the data of a new jury or admin account.
type StaffInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
	Role        sec.UserRole
	FestivalID  string
}

// StaffUpdate is a partial update of a staff account.
type StaffUpdate struct {
	DisplayName *string
	Role        *sec.UserRole
	FestivalID  *string
	IsActive    *bool
}

/*
ListStaff returns the staff accounts manager may see.

Description: Super admins see every staff account and may filter by role
and festival. Admins see the jury of their own festival only.
*/
func (service *Service) ListStaff(context context.Context, manager sec.Identity, filter StaffFilter) ([]*auth.User, error) {
	if manager.Role == sec.RoleSuperAdmin {
		validator := &validate.Validator{}
		if filter.Role != "" {
			validator.OneOf(FieldRole, string(filter.Role), roleNames(StaffRoles)...)
		}
		if filter.FestivalID != "" {
			validator.UUID(FieldFestivalID, filter.FestivalID)
		}
		if err := validator.Err(); err != nil {
			return nil, err
		}
		return service.accountRepository.ListStaff(context, filter)
	}

	if manager.FestivalID == "" {
		return nil, apperr.Forbidden("Account is not assigned to a festival")
	}
	return service.accountRepository.ListStaff(context, StaffFilter{Role: sec.RoleJury, FestivalID: manager.FestivalID})
}

/*
CreateStaff provisions a jury or admin account.

Description: Admins may only create jury accounts, always scoped to their own
festival. Super admins may create admins and jury for any festival, or
unscoped ones that follow the active festival.

Returns:
  - *auth.User: Created account
  - error: VALIDATION_ERROR, FORBIDDEN, CONFLICT or storage failures
*/
func (service *Service) CreateStaff(context context.Context, manager sec.Identity, input StaffInput) (*auth.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = auth.NormalizeEmail(input.Email)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.FestivalID = strings.TrimSpace(input.FestivalID)

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		MinLen(auth.FieldUsername, input.Username, auth.MinUsernameLength).
		MaxLen(auth.FieldUsername, input.Username, auth.MaxUsernameLength).
		Required(auth.FieldEmail, input.Email).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, auth.MaxEmailLength).
		Required(auth.FieldPassword, input.Password).
		MinLen(auth.FieldPassword, input.Password, auth.MinPasswordLength).
		MaxLen(auth.FieldDisplayName, input.DisplayName, auth.MaxDisplayNameLength).
		OneOf(FieldRole, string(input.Role), roleNames(StaffRoles)...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	festivalID, err := service.scope(context, manager, input.Role, input.FestivalID)
	if err != nil {
		return nil, err
	}

	if _, err := service.accountRepository.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.Conflict("An account with this email already exists")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}
	if _, err := service.accountRepository.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.Conflict("An account with this username already exists")
	} else if !apperr.HasCode(err, apperr.CodeNotFound) {
		return nil, err
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user := &auth.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		DisplayName:  displayName,
		Role:         input.Role,
		FestivalID:   festivalID,
		IsActive:     true,
		CreatedAt:    service.now(),
	}
	if err := service.accountRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.InfoContext(context, "staff_account_created",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
		slog.String("by", manager.UserID),
	)
	return user, nil
}

/*
UpdateStaff applies a partial update to a staff account.

Description: A change of role, festival or active flag revokes the
account's sessions, since access tokens carry role and festival.
*/
func (service *Service) UpdateStaff(context context.Context, manager sec.Identity, id string, update StaffUpdate) (*auth.User, error) {
	user, err := service.managed(context, manager, id)
	if err != nil {
		return nil, err
	}

	before := *user

	if update.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*update.DisplayName)
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	requestedFestival := user.FestivalID
	if update.FestivalID != nil {
		requestedFestival = strings.TrimSpace(*update.FestivalID)
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldDisplayName, user.DisplayName).
		MaxLen(auth.FieldDisplayName, user.DisplayName, auth.MaxDisplayNameLength).
		OneOf(FieldRole, string(user.Role), roleNames(StaffRoles)...)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user.FestivalID, err = service.scope(context, manager, user.Role, requestedFestival)
	if err != nil {
		return nil, err
	}

	user.UpdatedAt = service.now()
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, err
	}

	if user.Role != before.Role || user.FestivalID != before.FestivalID || user.IsActive != before.IsActive {
		if err := service.sessionRepository.RevokeAll(context, user.ID); err != nil {
			return nil, err
		}
	}

	service.logger.InfoContext(context, "staff_account_updated", slog.String("user_id", user.ID), slog.String("by", manager.UserID))
	return user, nil
}

// DeleteStaff removes a staff account and signs it out everywhere.
func (service *Service) DeleteStaff(context context.Context, manager sec.Identity, id string) error {
	user, err := service.managed(context, manager, id)
	if err != nil {
		return err
	}

	if err := service.accountRepository.SoftDelete(context, user.ID); err != nil {
		return err
	}
	if err := service.sessionRepository.RevokeAll(context, user.ID); err != nil {
		return err
	}

	service.logger.InfoContext(context, "staff_account_deleted", slog.String("user_id", user.ID), slog.String("by", manager.UserID))
	return nil
}

// # Authorization

// managed loads an account manager may change. Accounts outside the
// manager's reach are reported as missing.
func (service *Service) managed(context context.Context, manager sec.Identity, id string) (*auth.User, error) {
	if !uuid.Valid(id) {
		return nil, apperr.NotFound("User")
	}

	user, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if !canManage(manager.Role, user.Role) {
		return nil, apperr.Forbidden("Cannot manage an account with this role")
	}
	if manager.Role != sec.RoleSuperAdmin && user.FestivalID != manager.FestivalID {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

// scope checks that manager may hold an account of role in festivalID and
// returns the festival the account ends up scoped to.
func (service *Service) scope(context context.Context, manager sec.Identity, role sec.UserRole, festivalID string) (string, error) {
	if !canManage(manager.Role, role) {
		return "", apperr.Forbidden("Cannot manage an account with this role")
	}

	if manager.Role != sec.RoleSuperAdmin {
		if manager.FestivalID == "" {
			return "", apperr.Forbidden("Account is not assigned to a festival")
		}
		return manager.FestivalID, nil
	}

	if festivalID == "" {
		return "", nil
	}
	found, err := service.festivals.GetFestival(context, festivalID)
	if err != nil {
		return "", err
	}
	return found.ID, nil
}

// canManage reports whether manager may create or change accounts of target.
func canManage(manager, target sec.UserRole) bool {
	switch manager {
	case sec.RoleSuperAdmin:
		return target == sec.RoleAdmin || target == sec.RoleJury
	case sec.RoleAdmin:
		return target == sec.RoleJury
	default:
		return false
	}
}

func roleNames(roles []sec.UserRole) []string {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	return names
}
