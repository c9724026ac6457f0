// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/filekko/models"
)

// UserRepository is the user directory: persistent storage of accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByVerificationToken(ctx context.Context, token string) (models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateVerificationToken(ctx context.Context, userID, token string) error
	MarkEmailVerified(ctx context.Context, userID, token string) error
}

// Pinger reports database liveness.
type Pinger interface {
	PingContext(ctx context.Context) error
}
