// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrValidation      = errors.New("validation failed")

	ErrAvatarNotImage = errors.New("Only image files are allowed for avatars!")
	ErrAvatarTooLarge = errors.New("File too large")
)

// ValidationError is the first rule an input violated. Message is safe to
// show to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
