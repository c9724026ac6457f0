// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks request payloads before they reach the
// account services.
//
// Validation is declarative: request models carry go-playground/validator
// tags, this package registers the custom tags and method dependent rules
// and turns the first violation into a client facing [ValidationError].
package validators

import "context"

// Validator validates the provided input. Field names, when given,
// restrict validation to those struct fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
