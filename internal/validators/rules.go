// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/filekko/models"
)

const (
	tagUsername           = "username"
	tagPasswordComplexity = "password_complexity"
	tagAuthMethod         = "auth_method"

	// struct level tags
	tagRequired          = "required"
	tagRequiredForGoogle = "required_for_google"
	tagForbiddenGoogle   = "forbidden_for_google"
)

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func registerCustomRules(v *validator.Validate) error {
	rules := map[string]validator.Func{
		tagUsername:           validateUsername,
		tagPasswordComplexity: validatePasswordComplexity,
		tagAuthMethod:         validateAuthMethod,
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validation tag %q: %w", tag, err)
		}
	}

	v.RegisterStructValidation(validateSignupRequest, models.SignupRequest{})
	return nil
}

func validateUsername(fl validator.FieldLevel) bool {
	return usernameRegexp.MatchString(fl.Field().String())
}

// validatePasswordComplexity requires a lowercase letter, an uppercase
// letter and a digit.
func validatePasswordComplexity(fl validator.FieldLevel) bool {
	var lower, upper, digit bool
	for _, r := range fl.Field().String() {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return lower && upper && digit
}

func validateAuthMethod(fl validator.FieldLevel) bool {
	return models.AuthMethod(fl.Field().String()).Valid()
}

// validateSignupRequest applies the presence rules that depend on the
// chosen auth method.
func validateSignupRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(models.SignupRequest)

	if req.AuthMethod == models.AuthMethodGoogle {
		if req.Password == "" {
			sl.ReportError(req.Password, "password", "Password", tagRequiredForGoogle, "")
		}
		if req.Username != "" {
			sl.ReportError(req.Username, "username", "Username", tagForbiddenGoogle, "")
		}
		if req.Fullname != "" {
			sl.ReportError(req.Fullname, "fullname", "Fullname", tagForbiddenGoogle, "")
		}
		return
	}

	if req.Email == "" {
		sl.ReportError(req.Email, "email", "Email", tagRequired, "")
	}
	if req.Username == "" {
		sl.ReportError(req.Username, "username", "Username", tagRequired, "")
	}
	if req.Password == "" {
		sl.ReportError(req.Password, "password", "Password", tagRequired, "")
	}
}
