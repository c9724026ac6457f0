// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/utils"
	"github.com/MKhiriev/filekko/models"
)

// tokenService signs access and refresh tokens with one HMAC secret.
// Tokens are stateless: there is no revocation list.
type tokenService struct {
	signKey         string
	issuer          string
	accessDuration  time.Duration
	refreshDuration time.Duration
	now             func() time.Time
}

func NewTokenService(cfg config.Auth) TokenService {
	return &tokenService{
		signKey:         cfg.TokenSignKey,
		issuer:          cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		now:             time.Now,
	}
}

// GenerateTokens issues an access/refresh pair embedding the user
// snapshot.
func (s *tokenService) GenerateTokens(user models.User) (models.SessionTokens, error) {
	snapshot := user.Snapshot()
	issuedAt := s.now()

	access, err := utils.GenerateJWTToken(s.issuer, snapshot, models.AccessToken, issuedAt, s.accessDuration, s.signKey)
	if err != nil {
		return models.SessionTokens{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refresh, err := utils.GenerateJWTToken(s.issuer, snapshot, models.RefreshToken, issuedAt, s.refreshDuration, s.signKey)
	if err != nil {
		return models.SessionTokens{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return models.SessionTokens{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks signature, issuer and expiry. Every failure is reported
// as the same [ErrInvalidToken].
func (s *tokenService) Verify(token string) (*models.TokenClaims, error) {
	claims, err := utils.ValidateAndParseJWTToken(token, s.signKey, s.issuer, s.now)
	if err != nil {
		return nil, newError(ErrInvalidToken, MsgInvalidToken)
	}

	return claims, nil
}

// RefreshAccessToken issues a new access token for the user carried by a
// valid refresh token.
func (s *tokenService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := s.Verify(refreshToken)
	if err != nil {
		return "", err
	}
	if claims.TokenType != models.RefreshToken {
		return "", newError(ErrInvalidToken, MsgInvalidToken)
	}

	access, err := utils.GenerateJWTToken(s.issuer, claims.User, models.AccessToken, s.now(), s.accessDuration, s.signKey)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return access, nil
}
