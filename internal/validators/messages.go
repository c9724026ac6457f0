// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

const passwordComplexityMessage = "Password must contain at least one uppercase letter, one lowercase letter, and one number"

// messages maps "<Struct>.<field>.<tag>" to the client facing text.
var messages = map[string]string{
	"SignupRequest.email.required":               "Email is required",
	"SignupRequest.email.email":                  "Invalid email address",
	"SignupRequest.username.min":                 "Username must be at least 3 characters",
	"SignupRequest.username.max":                 "Username must not exceed 30 characters",
	"SignupRequest.username.username":            "Username can only contain letters, numbers, underscores, and hyphens",
	"SignupRequest.fullname.min":                 "Full name must be at least 2 characters",
	"SignupRequest.fullname.max":                 "Full name must not exceed 50 characters",
	"SignupRequest.password.required":            "Password is required",
	"SignupRequest.password.required_for_google": "Password is required for Google authentication",
	"SignupRequest.password.min":                 "Password must be at least 8 characters",
	"SignupRequest.password.password_complexity": passwordComplexityMessage,
	"SignupRequest.authMethod.required":          "Invalid authentication method",
	"SignupRequest.authMethod.auth_method":       "Invalid authentication method",
	"LoginRequest.email.required":                "Email is required",
	"LoginRequest.email.email":                   "Invalid email",
	"LoginRequest.password.required":             "Password is required",
	"LoginRequest.password.min":                  "Password must be at least 8 characters",
	"LoginRequest.password.password_complexity":  passwordComplexityMessage,
	"LoginRequest.authMethod.required":           "Invalid authentication method",
	"LoginRequest.authMethod.auth_method":        "Invalid authentication method",
	"TokenRequest.token.required":                "Token is required",
	"RefreshTokenRequest.refreshToken.required":  "Refresh token is required",
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Namespace()+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case tagRequired:
		return fmt.Sprintf("%s is required", fe.Field())
	case tagForbiddenGoogle:
		return fmt.Sprintf("%s should not be provided for Google authentication", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
