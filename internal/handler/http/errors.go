// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidBody is returned when a request body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")
)

// Client-facing messages written by the transport layer itself.
const (
	msgUnauthorized      = "Unauthorized"
	msgNoTokenProvided   = "No token provided"
	msgInvalidToken      = "Invalid or expired token"
	msgInvalidJSON       = "Invalid JSON was passed"
	msgInvalidForm       = "Invalid form data"
	msgRouteNotFound     = "Route not found"
	msgInternalError     = "Internal server error"
	msgServiceHealthy    = "Service is healthy"
	msgServiceUnhealthy  = "Service is unavailable"
	msgAuthenticatedUser = "Authenticated user"
)
