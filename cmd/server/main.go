// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/filekko/internal/avatar"
	"github.com/MKhiriev/filekko/internal/config"
	handler "github.com/MKhiriev/filekko/internal/handler/http"
	"github.com/MKhiriev/filekko/internal/identity"
	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/mail"
	"github.com/MKhiriev/filekko/internal/server"
	"github.com/MKhiriev/filekko/internal/service"
	"github.com/MKhiriev/filekko/internal/storage"
	"github.com/MKhiriev/filekko/internal/store"
	"github.com/MKhiriev/filekko/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("filekko-server", false).Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("filekko-server", cfg.App.IsDev)
	ctx := context.Background()

	db, err := store.NewConnection(ctx, cfg.DSN(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	files, err := storage.NewFileStorage(ctx, cfg.Storage.Files, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating file storage")
	}

	mailer, err := mail.NewDispatcher(newMailSender(cfg.Mail, log), cfg.App.FrontendURL, cfg.Mail.Strict, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating mail dispatcher")
	}

	verifier, err := identity.NewFirebaseVerifier(ctx, cfg.Identity, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating identity verifier")
	}

	services, err := service.NewServices(store.NewStorages(db, log), service.Dependencies{
		Avatars:  avatar.NewGenerator(),
		Mailer:   mailer,
		Identity: verifier,
		Files:    files,
	}, cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	srv, err := server.NewServer(handler.NewHandler(services, cfg, log).Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// newMailSender relays through SMTP when a host is configured and only
// logs outgoing mail otherwise.
func newMailSender(cfg config.Mail, log *logger.Logger) mail.Sender {
	if cfg.Host == "" {
		log.Warn().Msg("mail host is not configured, emails are only logged")
		return mail.NewLogSender(log)
	}
	return mail.NewSMTPSender(cfg)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
