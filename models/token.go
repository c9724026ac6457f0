// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/golang-jwt/jwt/v5"

// TokenType distinguishes access tokens from refresh tokens.
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// SessionTokens is a freshly issued access/refresh pair.
type SessionTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenClaims is the verified payload of a session token.
//
// User is the snapshot taken at issuance time, so it may be stale
// relative to the stored record.
type TokenClaims struct {
	User      UserSnapshot `json:"user"`
	TokenType TokenType    `json:"token_type"`
	jwt.RegisteredClaims
}

// IdentityClaims are the facts asserted by an external identity provider
// about the holder of a verified ID token.
type IdentityClaims struct {
	Provider   AuthMethod `json:"provider"`
	ExternalID string     `json:"externalId"`
	Fullname   string     `json:"fullname"`
	Email      string     `json:"email"`
	Avatar     string     `json:"avatar"`
}
