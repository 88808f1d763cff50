// Copyright (c) 2026 marsAI. All rights reserved.

package account

import (
	"context"
	"time"

	"github.com/marsai/festival/internal/festival"
	"github.com/marsai/festival/internal/platform/sec"
	"github.com/marsai/festival/internal/users/auth"
)

// # Domain Entities

// SessionInfo is a refresh session as shown to its owner.
type SessionInfo struct {
	ID        string    `json:"id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IsCurrent bool      `json:"is_current"`
}

// StaffFilter narrows the staff listing.
type StaffFilter struct {
	Role       sec.UserRole
	FestivalID string
}

// StaffRoles are the roles provisioned through the staff endpoints. Super
// admins are created out of band.
var StaffRoles = []sec.UserRole{sec.RoleAdmin, sec.RoleJury}

// # Field Identifiers

const (
	FieldRole       = "role"
	FieldFestivalID = "festival_id"
)

// # Repository Contracts

// AccountRepository defines the persistence contract for account management.
type AccountRepository interface {

	// FindByID returns a live account or apperr.NotFound("User").
	FindByID(context context.Context, id string) (*auth.User, error)

	// FindByEmail and FindByUsername match case-insensitively.
	FindByEmail(context context.Context, email string) (*auth.User, error)
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		ListStaff returns jury, admin and super admin accounts, newest first.

		Parameters:
		  - context: context.Context
		  - filter: StaffFilter (zero fields disable the filter)

		Returns:
		  - []*auth.User: Matching accounts
		  - error: Storage failures
	*/
	ListStaff(context context.Context, filter StaffFilter) ([]*auth.User, error)

	// Create persists a new account; duplicates surface as apperr CONFLICT.
	Create(context context.Context, user *auth.User) error

	// Update persists display name, role, festival and active flag.
	Update(context context.Context, user *auth.User) error

	// SoftDelete flags an account as deleted.
	SoftDelete(context context.Context, id string) error
}

// SessionRepository defines the visibility and revocation contract for sessions.
type SessionRepository interface {

	// FindActiveByUserID lists sessions that are neither revoked nor expired.
	FindActiveByUserID(context context.Context, userID string) ([]*auth.Session, error)

	/*
		RevokeOwned revokes one session of userID.

		Returns:
		  - error: apperr.NotFound("Session") when the session is not owned or already revoked
	*/
	RevokeOwned(context context.Context, userID, sessionID string) error

	// RevokeAll revokes every active session of userID.
	RevokeAll(context context.Context, userID string) error
}

// Festivals resolves the festival a staff account is scoped to.
type Festivals interface {
	GetFestival(context context.Context, identifier string) (*festival.Festival, error)
}
