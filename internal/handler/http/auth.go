// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"

	"github.com/MKhiriev/filekko/internal/logger"
	"github.com/MKhiriev/filekko/internal/utils"
	"github.com/MKhiriev/filekko/internal/validators"
	"github.com/MKhiriev/filekko/models"
)

const (
	avatarFormField = "avatar"

	// maxSignupFormSize leaves room for the text fields next to the avatar.
	maxSignupFormSize = validators.MaxAvatarSize + 1<<20
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SignupRequest
	if isMultipart(r) {
		cleanup, err := parseSignupForm(w, r, &req)
		if cleanup != nil {
			defer cleanup()
		}
		if err != nil {
			log.Err(err).Str("func", "*Handler.signup").Msg("failed to parse signup form")
			h.writeBodyError(w, err, msgInvalidForm)
			return
		}
	} else if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.services.AuthService.Signup(ctx, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	utils.WriteResponse(w, status, result.Message, result.Data)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteResponse(w, http.StatusOK, result.Message, result.Data)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.services.AuthService.VerifyEmail(r.Context(), req.Token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteResponse(w, http.StatusOK, result.Message, result.Data)
}

func (h *Handler) resendVerificationEmail(w http.ResponseWriter, r *http.Request) {
	var req models.TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.services.AuthService.ResendVerificationEmail(r.Context(), req.Token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteResponse(w, http.StatusOK, result.Message, result.Data)
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.services.AuthService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteResponse(w, http.StatusOK, result.Message, result.Data)
}

// me returns the user snapshot carried by the session token.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetClaimsFromContext(r.Context())
	if !ok {
		utils.WriteResponse(w, http.StatusUnauthorized, msgUnauthorized, msgNoTokenProvided)
		return
	}

	utils.WriteResponse(w, http.StatusOK, msgAuthenticatedUser, claims.User)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.FromRequest(r).Err(err).Msg(msgInvalidJSON)
		utils.WriteResponse(w, http.StatusBadRequest, msgInvalidJSON, nil)
		return false
	}
	return true
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// parseSignupForm fills req from a multipart body. The returned cleanup
// releases the uploaded file and any temporary form storage.
func parseSignupForm(w http.ResponseWriter, r *http.Request, req *models.SignupRequest) (func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSignupFormSize)
	if err := r.ParseMultipartForm(maxSignupFormSize); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}
	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	req.Email = r.FormValue("email")
	req.Username = r.FormValue("username")
	req.Fullname = r.FormValue("fullname")
	req.Password = r.FormValue("password")
	req.AuthMethod = models.AuthMethod(r.FormValue("authMethod"))

	file, header, err := r.FormFile(avatarFormField)
	if errors.Is(err, http.ErrMissingFile) {
		return cleanup, nil
	}
	if err != nil {
		return cleanup, fmt.Errorf("%w: %w", ErrInvalidBody, err)
	}

	req.Avatar = &models.Upload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	}

	return func() {
		_ = file.Close()
		cleanup()
	}, nil
}

// writeBodyError reports an unreadable request body. An oversized body is
// reported with the avatar size message.
func (h *Handler) writeBodyError(w http.ResponseWriter, err error, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		message = validators.ErrAvatarTooLarge.Error()
	}
	utils.WriteResponse(w, http.StatusBadRequest, message, nil)
}
