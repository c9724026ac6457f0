// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/identity"
	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/storage"
	"github.com/MKhiriev/filekko/internal/store"
	"github.com/MKhiriev/filekko/internal/utils"
	"github.com/MKhiriev/filekko/internal/validators"
	"github.com/MKhiriev/filekko/models"
)

type Services struct {
	AuthService   AuthService
	HealthService HealthService
}

// Dependencies are the external collaborators the services are built on.
type Dependencies struct {
	Avatars  AvatarGenerator
	Mailer   MailDispatcher
	Identity identity.Verifier
	Files    storage.FileStorage
}

func NewServices(storages *store.Storages, deps Dependencies, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	validator, err := validators.NewRequestValidator()
	if err != nil {
		return nil, err
	}

	authService := NewAuthService(AuthDependencies{
		Users:    storages.UserRepository,
		Hasher:   utils.NewPasswordHasher(cfg.Auth.BcryptCost),
		Tokens:   NewTokenService(cfg.Auth),
		Avatars:  deps.Avatars,
		Mailer:   deps.Mailer,
		Identity: deps.Identity,
		Files:    deps.Files,
		IDs:      utils.NewUUIDGenerator(),
	}, logger)

	return &Services{
		AuthService:   NewAuthValidationService(validator, storages.UserRepository).Wrap(authService),
		HealthService: NewHealthService(storages.DB, buildInfo, cfg.App, logger),
	}, nil
}
