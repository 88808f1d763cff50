// Copyright (c) 2026 marsAI. All rights reserved.

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound("User") or database failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email, case-insensitively.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound("User") or database failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username, case-insensitively.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound("User") or database failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a brand-new account.

		Returns:
		  - error: apperr CONFLICT when the email or username is taken
	*/
	Create(context context.Context, user *User) error

	// UpdatePassword replaces only the password hash.
	UpdatePassword(context context.Context, userID, newHash string) error

	// TouchLogin records a successful login at the given time.
	TouchLogin(context context.Context, userID string, at time.Time) error
}

// # Session Data Access

// SessionRepository defines the data access contract for refresh sessions.
type SessionRepository interface {

	// Create persists a new session for an authenticated login.
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the session matching the token hash, revoked
		and expired ones included, so callers can detect token reuse.

		Returns:
		  - *Session: Hydrated entity
		  - error: apperr.NotFound("Session") or database failures
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		Revoke invalidates one session.

		Returns:
		  - bool: false when the session was already revoked
		  - error: Persistence failures
	*/
	Revoke(context context.Context, sessionID string) (bool, error)

	// RevokeAll revokes every active session of userID.
	RevokeAll(context context.Context, userID string) error

	// RevokeOthers revokes every active session of userID except keepSessionID.
	RevokeOthers(context context.Context, userID, keepSessionID string) error
}

// # Volatile Data Access

// ResetTokenRepository stores password reset tokens until they expire.
type ResetTokenRepository interface {

	// Set stores token for userID during ttl.
	Set(context context.Context, token string, userID string, ttl time.Duration) error

	/*
		Get returns the user the token was issued for.

		Returns:
		  - string: UserID
		  - error: apperr.NotFound when the token is unknown or expired
	*/
	Get(context context.Context, token string) (string, error)

	// Delete removes a token after use.
	Delete(context context.Context, token string) error
}
