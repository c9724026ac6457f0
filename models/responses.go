// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Response is the envelope of every API response.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// AuthData is returned after a successful login or google signup.
type AuthData struct {
	User         UserSummary `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

// AuthResult is the outcome of an auth operation.
//
// Created is set when the operation stored a new account,
// Data is nil when no session is issued (password signup).
type AuthResult struct {
	Created bool
	Message string
	Data    any
}

// AccessTokenData is returned by the refresh-token endpoint.
type AccessTokenData struct {
	AccessToken string `json:"accessToken"`
}

// HealthData is returned by the health endpoint.
type HealthData struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}
