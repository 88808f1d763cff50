// Copyright (c) 2026 marsAI. All rights reserved.

package auth

import (
	"strings"
	"time"

	"github.com/marsai/festival/internal/platform/sec"
)

// # Domain Entities

// User is a festival account: a self-registered visitor or a staff member
// (jury, admin, super admin).
//
// FestivalID scopes jury and admin accounts to one festival instance. It is
// empty for visitors and for staff working on whichever festival is active.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`
	FestivalID   string       `json:"festival_id,omitempty"`
	IsActive     bool         `json:"is_active"`
	LastLoginAt  *time.Time   `json:"last_login_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Identity returns what is signed into the user's access tokens.
func (user *User) Identity() sec.Identity {
	return sec.Identity{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		FestivalID: user.FestivalID,
	}
}

// Session is one refresh-token session. Only the SHA-256 of the token is stored.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// Usable reports whether the session can still be exchanged at now.
func (session *Session) Usable(now time.Time) bool {
	return !session.IsRevoked && now.Before(session.ExpiresAt)
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// # Field Identifiers

const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldLogin           = "login"
	FieldToken           = "token"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
	FieldTokenType       = "token_type"
	FieldExpiresIn       = "expires_in"
	FieldUser            = "user"
	FieldMessage         = "message"
	FieldResetToken      = "reset_token"
)
