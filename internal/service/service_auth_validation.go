// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/store"
	"github.com/MKhiriev/filekko/internal/validators"
	"github.com/MKhiriev/filekko/models"
)

// authValidationService rejects invalid input before it reaches the
// wrapped AuthService. Besides the declarative rules it checks that a
// password signup does not reuse a taken email or username.
type authValidationService struct {
	inner     AuthService
	validator validators.Validator
	users     store.UserRepository
}

func NewAuthValidationService(validator validators.Validator, users store.UserRepository) AuthServiceWrapper {
	return &authValidationService{
		validator: validator,
		users:     users,
	}
}

func (v *authValidationService) Wrap(inner AuthService) AuthService {
	v.inner = inner
	return v
}

func (v *authValidationService) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, err
	}

	if req.AuthMethod == models.AuthMethodPassword {
		if err := v.checkUnique(ctx, req); err != nil {
			return models.AuthResult{}, err
		}
		if req.Avatar != nil {
			if err := v.validator.Validate(ctx, req.Avatar); err != nil {
				return models.AuthResult{}, err
			}
		}
	}

	return v.inner.Signup(ctx, req)
}

func (v *authValidationService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, err
	}
	return v.inner.Login(ctx, req)
}

func (v *authValidationService) VerifyEmail(ctx context.Context, token string) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, models.TokenRequest{Token: token}); err != nil {
		return models.AuthResult{}, err
	}
	return v.inner.VerifyEmail(ctx, token)
}

func (v *authValidationService) ResendVerificationEmail(ctx context.Context, token string) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, models.TokenRequest{Token: token}); err != nil {
		return models.AuthResult{}, err
	}
	return v.inner.ResendVerificationEmail(ctx, token)
}

func (v *authValidationService) RefreshToken(ctx context.Context, refreshToken string) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, models.RefreshTokenRequest{RefreshToken: refreshToken}); err != nil {
		return models.AuthResult{}, err
	}
	return v.inner.RefreshToken(ctx, refreshToken)
}

func (v *authValidationService) ParseToken(ctx context.Context, accessToken string) (*models.TokenClaims, error) {
	if accessToken == "" {
		return nil, newError(ErrInvalidToken, MsgInvalidToken)
	}
	return v.inner.ParseToken(ctx, accessToken)
}

// checkUnique reports a taken email or username. An email registered
// under another auth method skips the remaining checks so the signup can
// answer with the account conflict instead.
func (v *authValidationService) checkUnique(ctx context.Context, req models.SignupRequest) error {
	log := logger.FromContext(ctx)

	existing, err := v.users.FindUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if existing.AccountInfo.AuthType != req.AuthMethod {
			return nil
		}
		return newError(ErrEmailTaken, MsgEmailTaken)
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*authValidationService.checkUnique").Msg("email uniqueness check failed")
		return fmt.Errorf("email uniqueness check failed: %w", err)
	}

	taken, err := v.users.UsernameExists(ctx, req.Username)
	if err != nil {
		log.Err(err).Str("func", "*authValidationService.checkUnique").Msg("username uniqueness check failed")
		return fmt.Errorf("username uniqueness check failed: %w", err)
	}
	if taken {
		return newError(ErrUsernameTaken, MsgUsernameTaken)
	}

	return nil
}
