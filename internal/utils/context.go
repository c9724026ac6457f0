// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password
// hashing, HTTP response writing, HTTP client initialization, JWT token
// generation and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/filekko/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// ClaimsCtxKey is the key used to store verified session token claims in
// the request context.
//
//	ctx := context.WithValue(ctx, utils.ClaimsCtxKey, &claims)
var ClaimsCtxKey = contextKey("claims")

// GetClaimsFromContext retrieves the session claims stored by the auth
// middleware.
//
// ok == false means the value is missing or has an unexpected type.
func GetClaimsFromContext(ctx context.Context) (*models.TokenClaims, bool) {
	claims, ok := ctx.Value(ClaimsCtxKey).(*models.TokenClaims)
	return claims, ok && claims != nil
}
