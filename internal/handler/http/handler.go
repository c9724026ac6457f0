// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/service"
	"github.com/MKhiriev/filekko/internal/storage"
)

type Handler struct {
	services *service.Services

	isDev          bool
	uploadDir      string
	allowedOrigins []string
	requestTimeout time.Duration

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. Locally stored uploads are served
// only when the local file driver is configured.
func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		isDev:          cfg.App.IsDev,
		allowedOrigins: cfg.Server.AllowedOrigins,
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}

	switch cfg.Storage.Files.Driver {
	case "", storage.DriverLocal:
		h.uploadDir = cfg.Storage.Files.UploadDir
	}

	logger.Info().Msg("http handler created")
	return h
}
