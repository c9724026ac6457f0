// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/filekko/internal/avatar"
	"github.com/MKhiriev/filekko/models"
)

// AuthService runs the account flows: signup, login, email verification
// and session refresh.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	VerifyEmail(ctx context.Context, token string) (models.AuthResult, error)
	ResendVerificationEmail(ctx context.Context, token string) (models.AuthResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (models.AuthResult, error)
	ParseToken(ctx context.Context, accessToken string) (*models.TokenClaims, error)
}

// AuthServiceWrapper decorates an AuthService with extra behavior such as
// input validation.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService
}

// TokenService issues and verifies session tokens.
type TokenService interface {
	GenerateTokens(user models.User) (models.SessionTokens, error)
	Verify(token string) (*models.TokenClaims, error)
	RefreshAccessToken(refreshToken string) (string, error)
}

// HealthService reports liveness of the API and its database.
type HealthService interface {
	Health(ctx context.Context) (models.HealthData, error)
}

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

type AvatarGenerator interface {
	Generate(opts avatar.Options) (string, error)
	RandomColor() string
}

type MailDispatcher interface {
	GenerateToken() string
	SendVerificationEmail(ctx context.Context, to, token string) error
}

type IDGenerator interface {
	Generate() string
}
