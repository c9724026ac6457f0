// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package identity verifies ID tokens issued by external identity
// providers and extracts the claims the account flows rely on.
package identity

import (
	"context"
	"errors"

	"github.com/MKhiriev/filekko/models"
)

var (
	ErrVerifierNotInitialized = errors.New("identity verifier is not initialized")
	ErrTokenVerification      = errors.New("token verification failed")
	ErrUnexpectedProvider     = errors.New("token was not issued for google sign-in")
	ErrInvalidAuthTime        = errors.New("token has no valid auth_time")
)

// Verifier checks an external ID token and returns the asserted identity.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (models.IdentityClaims, error)
}
