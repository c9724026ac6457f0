// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "io"

// SignupRequest is the body of POST /api/auth/signup.
//
// For the google method Password carries the external ID token, Email is
// optional and Username, Fullname must be empty. Presence rules that depend
// on the method are checked at struct level.
type SignupRequest struct {
	Email      string     `json:"email" validate:"omitempty,email"`
	Username   string     `json:"username,omitempty" validate:"omitempty,min=3,max=30,username"`
	Fullname   string     `json:"fullname,omitempty" validate:"omitempty,min=2,max=50"`
	Password   string     `json:"password" validate:"omitempty,min=8,password_complexity"`
	AuthMethod AuthMethod `json:"authMethod" validate:"required,auth_method"`

	// Avatar is the optional uploaded avatar image (multipart only).
	Avatar *Upload `json:"-" validate:"-"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email      string     `json:"email" validate:"required,email"`
	Password   string     `json:"password" validate:"required,min=8,password_complexity"`
	AuthMethod AuthMethod `json:"authMethod" validate:"required,auth_method"`
}

// TokenRequest is the body of the verify-email and
// resend-verification-email endpoints.
type TokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// RefreshTokenRequest is the body of POST /api/auth/refresh-token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// Upload is a file received in a multipart request.
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Content     io.ReadSeeker
}

// Email is an outgoing transactional message.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}
