// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/store"
	"github.com/MKhiriev/filekko/models"
)

type healthService struct {
	db      store.Pinger
	version string
	commit  string

	logger *logger.Logger
}

// NewHealthService reports cfg.Version when set, otherwise the version
// the binary was built with.
func NewHealthService(db store.Pinger, buildInfo models.AppBuildInfo, cfg config.App, logger *logger.Logger) HealthService {
	version := cfg.Version
	if version == "" {
		version = buildInfo.BuildVersion()
	}

	return &healthService{
		db:      db,
		version: version,
		commit:  buildInfo.BuildCommit(),
		logger:  logger,
	}
}

func (s *healthService) Health(ctx context.Context) (models.HealthData, error) {
	data := models.HealthData{Version: s.version, Commit: s.commit}

	if err := s.db.PingContext(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*healthService.Health").Msg("database ping failed")
		return data, fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}

	return data, nil
}
