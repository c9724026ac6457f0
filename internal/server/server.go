// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/filekko/internal/config"
	"github.com/MKhiriev/filekko/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

// NewServer prepares the HTTP server for handler on cfg.HTTPAddress.
func NewServer(handler http.Handler, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handler == nil {
		return nil, errNilHandler
	}
	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler, cfg, logger),
		logger:     logger,
		stop:       make(chan struct{}),
	}, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

func (s *server) Shutdown() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// run serves until ctx is done, Shutdown is called or the listener fails,
// then drains in-flight requests for at most shutdownTimeout.
func (s *server) run(ctx context.Context) error {
	if s.httpServer.listener == nil {
		if err := s.httpServer.listen(); err != nil {
			return err
		}
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case <-s.stop:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.httpServer.shutdown(shutdownCtx)

	if err := <-serveErr; err != nil {
		return err
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return nil
}
