// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/filekko/models"
)

// RequestValidator validates the auth request models and avatar uploads.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() (Validator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := registerCustomRules(v); err != nil {
		return nil, err
	}

	return &RequestValidator{validate: v}, nil
}

func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.SignupRequest:
		return v.validateStruct(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateStruct(ctx, *value, fields...)

	case models.TokenRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.TokenRequest:
		return v.validateStruct(ctx, *value, fields...)

	case models.RefreshTokenRequest:
		return v.validateStruct(ctx, value, fields...)
	case *models.RefreshTokenRequest:
		return v.validateStruct(ctx, *value, fields...)

	case *models.Upload:
		return ValidateAvatar(value)

	default:
		return ErrUnsupportedType
	}
}

// validateStruct returns the first violated rule as a *ValidationError.
func (v *RequestValidator) validateStruct(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return &ValidationError{Field: fe.Field(), Message: message(fe)}
	}

	return err
}
