// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/mail"
	"github.com/MKhiriev/filekko/internal/service"
	"github.com/MKhiriev/filekko/internal/store"
	"github.com/MKhiriev/filekko/internal/utils"
	"github.com/MKhiriev/filekko/internal/validators"
)

var errorStatusMap = map[error]int{
	validators.ErrValidation:         http.StatusBadRequest,
	service.ErrEmailTaken:            http.StatusBadRequest,
	service.ErrUsernameTaken:         http.StatusBadRequest,
	service.ErrUnsupportedAuthMethod: http.StatusBadRequest,
	service.ErrIdentityTokenRequired: http.StatusBadRequest,
	ErrInvalidBody:                   http.StatusBadRequest,

	service.ErrAccountExists:         http.StatusForbidden,
	service.ErrWrongAuthMethod:       http.StatusForbidden,
	service.ErrEmailNotVerified:      http.StatusForbidden,
	service.ErrIdentityVerification:  http.StatusForbidden,
	service.ErrIdentityEmailMismatch: http.StatusForbidden,

	service.ErrInvalidCredentials:       http.StatusNotFound,
	service.ErrInvalidVerificationToken: http.StatusNotFound,

	service.ErrInvalidToken: http.StatusUnauthorized,

	store.ErrEmailAlreadyExists:    http.StatusConflict,
	store.ErrUsernameAlreadyExists: http.StatusConflict,
	store.ErrUserAlreadyExists:     http.StatusConflict,

	mail.ErrMailNotSent:            http.StatusServiceUnavailable,
	service.ErrDatabaseUnavailable: http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// messageFromError returns the client-facing message carried by err.
// Errors without one are reported as an internal error.
func messageFromError(err error) (string, bool) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		return svcErr.Message, true
	}

	var validationErr *validators.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message, true
	}

	return msgInternalError, false
}

// writeError answers with the status mapped from err. Unexpected errors
// carry their details in data only in development mode.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	message, known := messageFromError(err)
	if known {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
		utils.WriteResponse(w, status, message, nil)
		return
	}

	log.Err(err).Int("status", status).Msg("request failed")
	if status != http.StatusInternalServerError {
		message = http.StatusText(status)
	}

	var data any
	if h.isDev {
		data = err.Error()
	}
	utils.WriteResponse(w, status, message, data)
}
