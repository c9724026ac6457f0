// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const corsMaxAge = 86400

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, h.withRecovery)
	router.Use(cors.Handler(h.corsOptions()))
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		r.Get("/api/health", h.health)

		r.Post("/api/auth/signup", h.signup)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/verify-email", h.verifyEmail)
		r.Post("/api/auth/resend-verification-email", h.resendVerificationEmail)
		r.Post("/api/auth/refresh-token", h.refreshToken)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/api/auth/me", h.me)
		})
	})

	if h.uploadDir != "" {
		router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadDir))))
	}

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) corsOptions() cors.Options {
	origins := h.allowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           corsMaxAge,
	}
}
