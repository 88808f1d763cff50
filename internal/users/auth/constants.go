// Copyright (c) 2026 marsAI. All rights reserved.

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh session remains valid.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// ResetTokenTTL is the duration a password reset token remains valid.
	ResetTokenTTL = 1 * time.Hour

	// ResetTokenLength is the byte length of the random password reset token.
	ResetTokenLength = 32
)

// # Credential Rules

const (
	// MinLoginPasswordLength matches the visitor login form.
	MinLoginPasswordLength = 6

	// MinPasswordLength applies to every password that gets stored.
	MinPasswordLength = 8

	MinUsernameLength    = 3
	MaxUsernameLength    = 64
	MaxEmailLength       = 255
	MaxDisplayNameLength = 128
)
