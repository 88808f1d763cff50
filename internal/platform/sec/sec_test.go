// Copyright (c) 2026 marsAI. All rights reserved.

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsai/festival/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	service, err := sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
	require.NoError(t, err)
	return service
}

/*
TestTokenService_RoundTrip signs and verifies an access token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "marsai.test")

	token, err := service.GenerateAccessToken(sec.Identity{
		UserID:     "u-1",
		Username:   "juror",
		Role:       sec.RoleJury,
		FestivalID: "f-1",
	}, time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "jury", claims.Role)
	assert.Equal(t, "f-1", claims.FestivalID)
	assert.Equal(t, sec.Identity{UserID: "u-1", Username: "juror", Role: sec.RoleJury, FestivalID: "f-1"}, claims.Identity())
}

/*
TestTokenService_RejectsForeignIssuer refuses tokens signed for another issuer.
*/
func TestTokenService_RejectsForeignIssuer(t *testing.T) {
	service := newTokenService(t, "marsai.test")
	other := newTokenService(t, "elsewhere")

	token, err := other.GenerateAccessToken(sec.Identity{UserID: "u-1", Role: sec.RoleAdmin}, time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestTokenService_RejectsExpired refuses a token past its expiry.
*/
func TestTokenService_RejectsExpired(t *testing.T) {
	service := newTokenService(t, "marsai.test")

	token, err := service.GenerateAccessToken(sec.Identity{UserID: "u-1", Role: sec.RoleVisitor}, -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

/*
TestUserRole_AtLeast checks the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{sec.RoleSuperAdmin, sec.RoleAdmin, true},
		{sec.RoleAdmin, sec.RoleAdmin, true},
		{sec.RoleAdmin, sec.RoleSuperAdmin, false},
		{sec.RoleJury, sec.RoleAdmin, false},
		{sec.RoleVisitor, sec.RoleJury, false},
		{sec.UserRole("ghost"), sec.RoleVisitor, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"_"+string(tt.target), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestSecureToken produces distinct tokens with stable hashes.
*/
func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
	assert.Len(t, sec.HashToken(first), 64)

	_, err = sec.GenerateSecureToken(0)
	assert.Error(t, err)
}

/*
TestPasswordHash verifies bcrypt round trip.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("festival2026")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("festival2026", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
	assert.False(t, sec.CheckPasswordHash("festival2026", ""))
}
