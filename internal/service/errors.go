// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/filekko/models"
)

// Error kinds. Each business failure is returned as an [*Error] wrapping
// one of them, the transport layer picks the status code by kind.
var (
	ErrAccountExists            = errors.New("account exists with another auth method")
	ErrWrongAuthMethod          = errors.New("account uses another auth method")
	ErrUnsupportedAuthMethod    = errors.New("unsupported auth method")
	ErrEmailNotVerified         = errors.New("email is not verified")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrIdentityTokenRequired    = errors.New("identity token is required")
	ErrIdentityVerification     = errors.New("identity verification failed")
	ErrIdentityEmailMismatch    = errors.New("identity email mismatch")
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	ErrInvalidToken             = errors.New("invalid or expired token")
	ErrEmailTaken               = errors.New("email is already taken")
	ErrUsernameTaken            = errors.New("username is already taken")

	ErrDatabaseUnavailable = errors.New("database is unavailable")
)

// Client facing messages.
const (
	MsgSignupVerifyEmail        = "Account created successfully. Check your email to verify your account"
	MsgSignupSuccess            = "Account created successfully"
	MsgLoginSuccess             = "Login successful"
	MsgInvalidCredentials       = "Invalid email or password"
	MsgEmailNotVerified         = "Email not verified, check your email to verify your account"
	MsgIdentityTokenRequired    = "Google ID token is required"
	MsgIdentityVerification     = "Invalid Google authentication"
	MsgIdentityEmailMismatch    = "Google authentication failed: Email mismatch"
	MsgInvalidVerificationToken = "Invalid verification token"
	MsgEmailVerified            = "Email verified successfully"
	MsgVerificationEmailSent    = "Verification email sent"
	MsgTokenRefreshed           = "Token refreshed successfully"
	MsgInvalidToken             = "Invalid or expired token"
	MsgInvalidAuthMethod        = "Invalid authentication method"
	MsgEmailTaken               = "Email is already taken"
	MsgUsernameTaken            = "Username is already taken"
	MsgMailNotSent              = "Verification email could not be sent"
)

// Error is a business rule failure with a message safe to return to the
// client.
type Error struct {
	Kind    error
	Message string
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func accountExistsError(authType models.AuthMethod) *Error {
	return newError(ErrAccountExists, fmt.Sprintf("Account already exists with %s authentication", authType))
}

func wrongAuthMethodError(authType models.AuthMethod) *Error {
	return newError(ErrWrongAuthMethod, fmt.Sprintf("Please login with %s", authType))
}
