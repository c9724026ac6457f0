// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/filekko/models"
)

func newTestTokenService(now *time.Time) *tokenService {
	s := NewTokenService(testAuthConfig()).(*tokenService)
	s.now = func() time.Time { return *now }
	return s
}

func TestTokenService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(&now)
	user := passwordUser(t, "a@x.com", "Abcdef12", true)

	tokens, err := s.GenerateTokens(user)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.AccessToken, tokens.RefreshToken)

	access, err := s.Verify(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.Snapshot(), access.User)
	assert.Equal(t, models.AccessToken, access.TokenType)
	assert.Equal(t, "filekko", access.Issuer)
	assert.True(t, now.Add(15*time.Minute).Equal(access.ExpiresAt.Time))

	refresh, err := s.Verify(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, models.RefreshToken, refresh.TokenType)
	assert.True(t, now.Add(24*time.Hour).Equal(refresh.ExpiresAt.Time))
}

func TestTokenService_SnapshotHasNoSecrets(t *testing.T) {
	now := time.Now()
	s := newTestTokenService(&now)
	user := passwordUser(t, "a@x.com", "Abcdef12", false)

	tokens, err := s.GenerateTokens(user)
	require.NoError(t, err)

	assert.NotContains(t, tokens.AccessToken, "old-token")
	claims, err := s.Verify(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.User.ID)
	assert.False(t, claims.User.IsEmailVerified)
}

func TestTokenService_Expiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(&now)

	tokens, err := s.GenerateTokens(passwordUser(t, "a@x.com", "Abcdef12", true))
	require.NoError(t, err)

	now = now.Add(16 * time.Minute)

	_, err = s.Verify(tokens.AccessToken)
	requireServiceError(t, err, ErrInvalidToken, MsgInvalidToken)

	_, err = s.Verify(tokens.RefreshToken)
	assert.NoError(t, err)

	now = now.Add(24 * time.Hour)
	_, err = s.RefreshAccessToken(tokens.RefreshToken)
	requireServiceError(t, err, ErrInvalidToken, MsgInvalidToken)
}

func TestTokenService_Verify_Rejects(t *testing.T) {
	now := time.Now()
	s := newTestTokenService(&now)
	tokens, err := s.GenerateTokens(passwordUser(t, "a@x.com", "Abcdef12", true))
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.TokenSignKey = "another-key"
	other := NewTokenService(otherCfg)
	foreign, err := other.GenerateTokens(passwordUser(t, "a@x.com", "Abcdef12", true))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"tampered", tokens.AccessToken[:strings.LastIndex(tokens.AccessToken, ".")+1] + "c2lnbmF0dXJl"},
		{"foreign key", foreign.AccessToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Verify(tt.token)
			requireServiceError(t, err, ErrInvalidToken, MsgInvalidToken)
		})
	}
}

func TestTokenService_RefreshAccessToken(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestTokenService(&now)
	user := passwordUser(t, "a@x.com", "Abcdef12", true)

	tokens, err := s.GenerateTokens(user)
	require.NoError(t, err)

	now = now.Add(time.Hour)

	access, err := s.RefreshAccessToken(tokens.RefreshToken)
	require.NoError(t, err)

	claims, err := s.Verify(access)
	require.NoError(t, err)
	assert.Equal(t, models.AccessToken, claims.TokenType)
	assert.Equal(t, user.Snapshot(), claims.User)
	assert.True(t, now.Add(15*time.Minute).Equal(claims.ExpiresAt.Time))

	_, err = s.RefreshAccessToken(tokens.AccessToken)
	requireServiceError(t, err, ErrInvalidToken, MsgInvalidToken)
}
